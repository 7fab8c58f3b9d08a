package postgres

import (
	"errors"

	"github.com/maplepath/api/internal/utils"
	"gorm.io/gorm"
)

// mapErr converts gorm errors into the utils sentinels. Unique and foreign key
// violations are only recognised when the DB was opened with TranslateError.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return utils.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return utils.ErrConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return utils.ErrNotFound
	}
	return err
}
