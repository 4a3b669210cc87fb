// Package constant holds the numbered business-error sentinels shared by
// common.ValidateBusinessError. Domain-specific reject reasons for the
// bulk-transfer pipeline live in internal/constant instead.
package constant

import "errors"

var (
	ErrEntityNotFound                 = errors.New("0001")
	ErrBadRequest                     = errors.New("0002")
	ErrUnexpectedFieldsInTheRequest   = errors.New("0003")
	ErrInternalServer                 = errors.New("0004")
	ErrCurrencyCodeStandardCompliance = errors.New("0005")
	ErrInvalidPathParameter           = errors.New("0006")
)
