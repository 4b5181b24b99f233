package service

import (
	"context"

	"gorm.io/gorm"
)

// runTx runs fn inside a database transaction. A nil db short-circuits
// to fn(nil): the in-memory repositories used by unit tests ignore the
// tx handle entirely.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
