package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Machine-readable business error codes carried alongside error messages.
const (
	CodeInterviewNotAccepted   = "INTERVIEW_NOT_ACCEPTED"
	CodeAppointmentAlreadyUsed = "APPOINTMENT_ALREADY_USED"
	CodePhoneMismatch          = "PHONE_MISMATCH"
	CodeUsernameTaken          = "USERNAME_TAKEN"
	CodePhoneTaken             = "PHONE_TAKEN"
	CodeValidationError        = "VALIDATION_ERROR"
)

// BusinessError is a domain rule violation that maps to a 4xx response
// with a stable message and optional machine code.
type BusinessError struct {
	Status   int
	Message  string
	Code     string
	CanLogin bool
}

func (e *BusinessError) Error() string { return e.Message }

// NewBusinessError builds a 400 business error.
func NewBusinessError(message, code string) *BusinessError {
	return &BusinessError{Status: fiber.StatusBadRequest, Message: message, Code: code}
}

// NewForbiddenError builds a 403 business error.
func NewForbiddenError(message, code string) *BusinessError {
	return &BusinessError{Status: fiber.StatusForbidden, Message: message, Code: code}
}

// AsBusinessError unwraps a BusinessError from an error chain.
func AsBusinessError(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}

	return nil, false
}
