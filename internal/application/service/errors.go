package service

import (
	"errors"

	"github.com/sangkips/scango-api/internal/domain/repository"
	"github.com/sangkips/scango-api/pkg/apperror"
)

// storeError maps receipt store errors onto application errors
func storeError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case apperror.IsAppError(err):
		return err
	case errors.Is(err, repository.ErrReceiptNotFound):
		return apperror.NewNotFoundError(resource)
	case errors.Is(err, repository.ErrInvalidStatus):
		return apperror.NewBadRequestError("Unknown payment status")
	case errors.Is(err, repository.ErrStatusRegression):
		return apperror.NewInvalidTransitionError(apperror.ReasonAlreadyPaid, "Payment status cannot move backwards")
	default:
		return apperror.NewPersistenceError("Receipt store unavailable, please retry", err)
	}
}
