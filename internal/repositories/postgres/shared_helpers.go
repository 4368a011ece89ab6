package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/EHB-MCT/forum-service/internal/repositories"
)

// handleDBError translates gorm errors into repository sentinels so the
// service layer can branch with errors.Is. Relies on the connection being
// opened with TranslateError so unique violations surface as
// gorm.ErrDuplicatedKey.
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", operation, repositories.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", operation, repositories.ErrDuplicateKey)
	}

	return fmt.Errorf("%s failed: %w", operation, err)
}

// getDB returns the transaction handle when one is passed, the default
// connection otherwise.
func getDB(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}
