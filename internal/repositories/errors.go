package repositories

import "errors"

// Storage-level sentinels. Repositories translate driver errors into these so
// the service layer never has to know about gorm error values.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// IsNotFoundError reports whether err means the target row does not exist.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateKeyError reports whether err means a unique constraint was hit.
func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}
