package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskdeck/internal/backend"
	"taskdeck/internal/model"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Create, inspect and mutate tasks",
	}
	cmd.AddCommand(newTaskListCmd(app))
	cmd.AddCommand(newTaskShowCmd(app))
	cmd.AddCommand(newTaskAddCmd(app))
	cmd.AddCommand(newTaskEditCmd(app))
	cmd.AddCommand(newTaskMoveCmd(app))
	cmd.AddCommand(newTaskRmCmd(app))
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.Backend()
			if err != nil {
				return err
			}
			tasks, err := b.GetAllTasks(cmd.Context())
			if err != nil {
				return err
			}
			if status != "" {
				st := model.TaskStatus(status)
				if !st.IsValid() {
					return fmt.Errorf("unknown status %q", status)
				}
				kept := tasks[:0]
				for _, t := range tasks {
					if t.Status == st {
						kept = append(kept, t)
					}
				}
				tasks = kept
			}
			return printJSON(cmd, app, tasks)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only tasks in this column (todo|in-progress|done)")
	return cmd
}

func newTaskShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.Backend()
			if err != nil {
				return err
			}
			task, err := b.GetTaskByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, app, task)
		},
	}
}

func newTaskAddCmd(app *App) *cobra.Command {
	var draft backend.TaskDraft
	var status, priority string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.Backend()
			if err != nil {
				return err
			}
			draft.Status = model.TaskStatus(status)
			draft.Priority = model.TaskPriority(priority)
			task, err := b.CreateTask(cmd.Context(), draft)
			if err != nil {
				return err
			}
			return printJSON(cmd, app, task)
		},
	}

	cmd.Flags().StringVar(&draft.Title, "title", "", "Task title (required, min 3 chars)")
	cmd.Flags().StringVar(&draft.Description, "description", "", "Task description (required, min 5 chars)")
	cmd.Flags().StringVar(&draft.DueDate, "due", "", "Due date, e.g. 2026-09-15 (required)")
	cmd.Flags().StringVar(&status, "status", "", "Column (default todo)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (default medium)")
	cmd.Flags().StringVar(&draft.AssigneeID, "assignee", "", "Assignee user id")
	cmd.Flags().StringSliceVar(&draft.Tags, "tag", nil, "Tag (repeatable)")
	return cmd
}

func newTaskEditCmd(app *App) *cobra.Command {
	var title, description, due, assignee, priority string
	var tags []string

	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Update task fields (unset flags keep current values)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.Backend()
			if err != nil {
				return err
			}
			var patch backend.TaskPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("due") {
				patch.DueDate = &due
			}
			if cmd.Flags().Changed("assignee") {
				patch.AssigneeID = &assignee
			}
			if cmd.Flags().Changed("priority") {
				p := model.TaskPriority(priority)
				patch.Priority = &p
			}
			if cmd.Flags().Changed("tag") {
				patch.Tags = &tags
			}
			task, err := b.UpdateTask(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			return printJSON(cmd, app, task)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&due, "due", "", "New due date")
	cmd.Flags().StringVar(&assignee, "assignee", "", "New assignee user id")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Replace tags (repeatable)")
	return cmd
}

func newTaskMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <task-id> <status>",
		Short: "Move a task to another column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.Backend()
			if err != nil {
				return err
			}
			task, err := b.UpdateTaskStatus(cmd.Context(), args[0], model.TaskStatus(args[1]))
			if err != nil {
				return err
			}
			return printJSON(cmd, app, task)
		},
	}
}

func newTaskRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.Backend()
			if err != nil {
				return err
			}
			task, err := b.DeleteTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, app, task)
		},
	}
}
