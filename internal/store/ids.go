package store

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	idLen      = 10
)

// NewID returns prefix-<suffix> with a lowercase nanoid suffix, retrying
// on the (vanishingly rare) collision against the current document set.
func (db *DB) NewID(prefix string) string {
	for i := 0; i < 20; i++ {
		suffix, err := gonanoid.Generate(idAlphabet, idLen)
		if err != nil {
			break
		}
		id := prefix + "-" + suffix
		if !db.idExists(id) {
			return id
		}
	}
	// Crypto-rand failure fallback: length-derived id, still unique-checked.
	for i := 0; ; i++ {
		id := fmt.Sprintf("%s-%d", prefix, len(db.Tasks)+len(db.Users)+i+1)
		if !db.idExists(id) {
			return id
		}
	}
}

func (db *DB) idExists(id string) bool {
	for _, t := range db.Tasks {
		if t.ID == id {
			return true
		}
	}
	for _, u := range db.Users {
		if u.ID == id {
			return true
		}
	}
	return false
}
