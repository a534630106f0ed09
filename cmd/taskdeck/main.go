package main

import (
	"os"
	"strings"

	"taskdeck/internal/cli"
)

func isTaskID(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "task-") && len(s) > len("task-")
}

// rewriteDirectTaskArgs lets `taskdeck <task-id>` act like
// `taskdeck task show <task-id>`. Cobra treats the first non-flag
// token as a subcommand, so argv is rewritten before parsing.
// Persistent flags may come first, so we look for the first
// positional token rather than just argv[1].
func rewriteDirectTaskArgs(argv []string) []string {
	valueFlags := map[string]bool{
		"--config": true,
		"--dir":    true,
		"--server": true,
		"--user":   true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isTaskID(argv[i+1]) {
				return insertTaskShow(argv, i+1)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if valueFlags[a] {
				i++ // skip the flag's value
			}
			continue
		}
		if isTaskID(a) {
			return insertTaskShow(argv, i)
		}
		return argv
	}
	return argv
}

func insertTaskShow(argv []string, at int) []string {
	out := make([]string, 0, len(argv)+2)
	out = append(out, argv[:at]...)
	out = append(out, "task", "show")
	out = append(out, argv[at:]...)
	return out
}

func main() {
	os.Args = rewriteDirectTaskArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
