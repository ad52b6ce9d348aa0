// Package repo exposes the publishing operations over an injected store
// handle. Every repository accepts an orm.Querier, so the same code runs on
// a *orm.DB or inside a caller-owned *orm.Tx.
package repo

import (
	"errors"

	"github.com/mickamy/pressroom/model"
	"github.com/mickamy/pressroom/orm"
)

func storageErr(op string, err error) error {
	return &model.StorageError{Op: op, Err: err}
}

// lookupErr converts orm.ErrNotFound into a ReferenceError for entity.
func lookupErr(op, entity string, id int64, err error) error {
	if errors.Is(err, orm.ErrNotFound) {
		return &model.ReferenceError{Entity: entity, ID: id}
	}
	return storageErr(op, err)
}
