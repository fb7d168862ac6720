package domain

import "errors"

var (
	ErrSourceUnavailable = errors.New("statement source unavailable")
	ErrUnalignedPeriods  = errors.New("income and balance sheet periods are not aligned")
	ErrInteriorGap       = errors.New("fiscal years contain an interior gap")
	ErrPaddingMismatch   = errors.New("padded row does not match global fiscal years")
)
