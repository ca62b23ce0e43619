package employee

import (
	"errors"
	"strings"

	employeeerrors "github.com/Shivkumar-Raghuwanshi/employee-hub/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "employees_pkey" {
			return employeeerrors.ErrDuplicateEmployeeID
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "employees_pkey") {
		return employeeerrors.ErrDuplicateEmployeeID
	}

	return err
}
