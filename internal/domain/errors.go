package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBarcode         = errors.New("invalid barcode")
	ErrPromotionPrerequisite  = errors.New("promotion prerequisite not met")
	ErrUnsupportedServingUnit = errors.New("unsupported serving unit")
	ErrCacheRowNotFound       = errors.New("cache row not found")
)

// InvalidBarcodeError reports why a raw code could not be normalized.
type InvalidBarcodeError struct {
	Raw    string
	Reason string
}

func (e *InvalidBarcodeError) Error() string {
	return fmt.Sprintf("invalid barcode %q: %s", e.Raw, e.Reason)
}

func (e *InvalidBarcodeError) Unwrap() error {
	return ErrInvalidBarcode
}

// PromotionError is the failure side of a promotion.
type PromotionError struct {
	Reason string
	Err    error
}

func (e *PromotionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("promotion failed: %s: %v", e.Reason, e.Err)
	}
	return "promotion failed: " + e.Reason
}

func (e *PromotionError) Unwrap() error {
	return e.Err
}
