// Package models holds the GORM models for the Journey backend.
package models

import "github.com/google/uuid"

// ensureID fills a uuid primary key before insert. IDs are generated in the
// application rather than by a database column default.
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
