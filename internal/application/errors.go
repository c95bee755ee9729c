package application

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/oksasatya/thinkel-blog-api/internal/domain/repository"
	"github.com/oksasatya/thinkel-blog-api/pkg/apperr"
)

var validate = validator.New()

// notFoundOr maps a repository miss to NotFound(msg) and anything else to an
// internal error that keeps op for the logs.
func notFoundOr(err error, op, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(msg)
	}
	return internal(op, err)
}

func internal(op string, err error) error {
	return apperr.Internal(MsgServerError, fmt.Errorf("%s: %w", op, err))
}

// validID reports whether id can address a row. Malformed ids are treated as
// missing rows rather than bad requests.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}
