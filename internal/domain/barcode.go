package domain

import (
	"strings"
)

// BarcodeLength is the length of a normalized (EAN-13) barcode.
const BarcodeLength = 13

// Barcode is a normalized 13-digit EAN-13 code.
type Barcode string

func (b Barcode) String() string {
	return string(b)
}

// NormalizeBarcode validates a scanned or typed code and returns its EAN-13
// form. Spaces and hyphens are treated as separators. UPC-A, EAN-8 and
// GTIN-14 (with a leading zero) are widened or narrowed to 13 digits, so
// every encoding of one product yields the same value.
func NormalizeBarcode(raw string) (Barcode, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", &InvalidBarcodeError{Raw: raw, Reason: "empty input"}
	}

	digits := make([]byte, 0, len(trimmed))
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		switch {
		case c >= '0' && c <= '9':
			digits = append(digits, c)
		case c == ' ' || c == '-':
		default:
			return "", &InvalidBarcodeError{Raw: raw, Reason: "non-digit character"}
		}
	}

	var code string
	switch len(digits) {
	case 8:
		code = "00000" + string(digits)
	case 12:
		code = "0" + string(digits)
	case 13:
		code = string(digits)
	case 14:
		if digits[0] != '0' {
			return "", &InvalidBarcodeError{Raw: raw, Reason: "GTIN-14 with packaging indicator"}
		}
		code = string(digits[1:])
	default:
		return "", &InvalidBarcodeError{Raw: raw, Reason: "unsupported length"}
	}

	if checkDigit(code[:BarcodeLength-1]) != code[BarcodeLength-1] {
		return "", &InvalidBarcodeError{Raw: raw, Reason: "check digit mismatch"}
	}

	return Barcode(code), nil
}

// checkDigit computes the GS1 check digit for the 12 leading digits of an
// EAN-13 code.
func checkDigit(body string) byte {
	sum := 0
	for i := 0; i < len(body); i++ {
		d := int(body[i] - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return byte('0' + (10-sum%10)%10)
}
