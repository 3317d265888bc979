package employee

import (
	"errors"

	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/shared/apperror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	switch apperror.UniqueConstraint(err) {
	case "uq_employee_code":
		return employeeerrors.ErrEmployeeCodeAlreadyExists
	case "uq_employee_email":
		return employeeerrors.ErrEmployeeAlreadyExists
	}

	return err
}
