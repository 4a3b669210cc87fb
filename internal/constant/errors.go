// Package constant holds the reject-reason sentinels for the bulk-transfer
// intake pipeline, in the same sentinel style as common/constant/errors.go,
// plus the BusinessError type that carries the HTTP status/reason pair the
// HTTP layer renders into the wire error envelope.
package constant

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Reject reasons, one per intake validation step. The string
// value of each is also the wire "reason" tag returned in the error body.
var (
	ErrInvalidRequestID           = errors.New("invalid-request-id")
	ErrAlreadyProcessed           = errors.New("already-processed")
	ErrTooManyTransfers           = errors.New("too-many-transfers")
	ErrInvalidAmount              = errors.New("invalid-amount")
	ErrNegativeOrNullAmounts      = errors.New("negative-or-null-amounts")
	ErrUnknownAccount             = errors.New("unknown-account")
	ErrInsufficientAccountBalance = errors.New("insufficient-account-balance")
)

// MaxTransfersPerBulk is the hard cap on transfers carried by one bulk
// request.
const MaxTransfersPerBulk = 1000

// BusinessError is a rejection from the intake pipeline that already knows
// which HTTP status it renders as - the bulk transfer error envelope
// ({bulk_id, message, error:{reason, details}}) doesn't fit the generic
// common.ValidationError/common.EntityConflictError hierarchy, so the
// intake handler builds its response directly from this type instead of
// going through common/net/http.WithError.
type BusinessError struct {
	Status  int
	Reason  string
	Details string
}

// Error implements the error interface.
func (e BusinessError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Details)
}

// ValidateBusinessError maps one of this package's reject-reason sentinels
// to the BusinessError the HTTP layer understands. Any error not in this
// package's sentinel set is returned unchanged - the caller treats that as
// an internal/transient failure and answers with a generic 5xx.
func ValidateBusinessError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidRequestID):
		return BusinessError{
			Status:  fiber.StatusUnprocessableEntity,
			Reason:  "invalid-request-id",
			Details: "request_id must be a canonical lowercase UUID.",
		}
	case errors.Is(err, ErrAlreadyProcessed):
		return BusinessError{
			Status:  fiber.StatusUnprocessableEntity,
			Reason:  "already-processed",
			Details: "A bulk request with this request_id has already been accepted.",
		}
	case errors.Is(err, ErrTooManyTransfers):
		return BusinessError{
			Status:  fiber.StatusRequestEntityTooLarge,
			Reason:  "too-many-transfers",
			Details: fmt.Sprintf("A bulk request may carry at most %d transfers.", MaxTransfersPerBulk),
		}
	case errors.Is(err, ErrInvalidAmount):
		return BusinessError{
			Status:  fiber.StatusUnprocessableEntity,
			Reason:  "invalid-amount",
			Details: "Every transfer amount must be a decimal string with at most two fractional digits.",
		}
	case errors.Is(err, ErrNegativeOrNullAmounts):
		return BusinessError{
			Status:  fiber.StatusUnprocessableEntity,
			Reason:  "negative-or-null-amounts",
			Details: "Every transfer amount must be strictly greater than zero.",
		}
	case errors.Is(err, ErrUnknownAccount):
		return BusinessError{
			Status:  fiber.StatusNotFound,
			Reason:  "unknown-account",
			Details: "No bank account was found for the given bic/iban.",
		}
	case errors.Is(err, ErrInsufficientAccountBalance):
		return BusinessError{
			Status:  fiber.StatusUnprocessableEntity,
			Reason:  "insufficient-account-balance",
			Details: "The requested transfers would exceed the account's available balance.",
		}
	default:
		return err
	}
}
