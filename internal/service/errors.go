package service

import (
	"errors"
	"strings"

	"storefront/internal/domain"
)

var (
	ErrInvalidItem          = errors.New("invalid item")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrItemNotFound         = errors.New("item not in cart")
	ErrRegionLoadFailed     = errors.New("region load failed")
	ErrRequiredFieldMissing = errors.New("required field missing")
	ErrInvalidFormat        = errors.New("invalid format")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrValidationFailed     = errors.New("validation failed")
	ErrSubmissionFailed     = errors.New("submission failed")
	ErrSubmitInProgress     = errors.New("submission already in progress")
)

// FieldError ошибка конкретного поля формы
type FieldError struct {
	Field domain.Field
	Err   error
}

func (e *FieldError) Error() string { return string(e.Field) + ": " + e.Err.Error() }

func (e *FieldError) Unwrap() error { return e.Err }

// ValidationErrors накопленные ошибки проверки формы. nil если форма валидна.
type ValidationErrors []error

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() []error { return v }

// Has reports whether the set holds kind for field. An empty field matches
// form-level errors such as ErrEmptyCart.
func (v ValidationErrors) Has(field domain.Field, kind error) bool {
	for _, err := range v {
		var fe *FieldError
		if errors.As(err, &fe) {
			if fe.Field == field && errors.Is(fe.Err, kind) {
				return true
			}
			continue
		}
		if field == "" && errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// ValidationFailedError отказ в отправке заказа из-за невалидной формы
type ValidationFailedError struct {
	Errors ValidationErrors
}

func (e *ValidationFailedError) Error() string {
	return ErrValidationFailed.Error() + ": " + e.Errors.Error()
}

func (e *ValidationFailedError) Unwrap() []error {
	return append([]error{ErrValidationFailed}, e.Errors...)
}
