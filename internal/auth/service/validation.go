package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/AlibekovAA/stride/internal/common/constants"
)

var credentialValidator = validator.New(validator.WithRequiredStructEnabled())

type registerFields struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type loginFields struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

func validateRegister(in RegisterInput) error {
	fields := registerFields{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
	}
	if err := translate(credentialValidator.Struct(fields)); err != nil {
		return err
	}

	switch {
	case utf8.RuneCountInString(fields.Name) > constants.NameMaxLength:
		return ErrValidation.WithMessage(fmt.Sprintf("name must be at most %d characters", constants.NameMaxLength))
	case len(fields.Email) > constants.EmailMaxLength:
		return ErrValidation.WithMessage(fmt.Sprintf("email must be at most %d characters", constants.EmailMaxLength))
	case len(fields.Password) < constants.PasswordMinLength:
		return ErrValidation.WithMessage(fmt.Sprintf("password must be at least %d characters", constants.PasswordMinLength))
	case len(fields.Password) > constants.PasswordMaxLength:
		// bcrypt ignores everything past 72 bytes.
		return ErrValidation.WithMessage(fmt.Sprintf("password must be at most %d bytes", constants.PasswordMaxLength))
	}
	return nil
}

func validateLogin(in LoginInput) error {
	return translate(credentialValidator.Struct(loginFields{
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
	}))
}

func translate(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return ErrValidation.WithCause(err)
	}

	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return ErrValidation.WithMessage(field + " is required")
	case "email":
		return ErrValidation.WithMessage("email is not valid")
	default:
		return ErrValidation.WithMessage(field + " is invalid")
	}
}
