package service

import (
	"errors"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/poserror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// notFoundOr maps a gorm record-not-found into the domain taxonomy and
// passes everything else through.
func notFoundOr(entidad string, id uuid.UUID, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &poserror.NotFoundError{Entidad: entidad, ID: id}
	}
	return err
}

// notFoundOrNil is notFoundOr for call sites where err may be nil.
func notFoundOrNil(entidad string, id uuid.UUID, err error) error {
	if err == nil {
		return nil
	}
	return notFoundOr(entidad, id, err)
}
