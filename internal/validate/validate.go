package validate

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	MaxPINLen  = 16
	MaxDateLen = 32
)

var (
	ErrPINRequired  = errors.New("pin is required")
	ErrPINNotDigits = errors.New("pin must contain digits only")
	ErrPINTooLong   = errors.New("pin must be at most " + strconv.Itoa(MaxPINLen) + " digits")
	ErrDateTooLong  = errors.New("date must be at most " + strconv.Itoa(MaxDateLen) + " characters")
)

// PIN folds compatibility digits (full-width "１２３４" -> "1234") and checks
// the result is a non-empty run of ASCII digits. Length is not forced to 4
// or 6; the scorer degrades on other lengths.
func PIN(raw string) (string, error) {
	if raw == "" {
		return "", ErrPINRequired
	}
	p := norm.NFKC.String(raw)
	if utf8.RuneCountInString(p) > MaxPINLen {
		return "", ErrPINTooLong
	}
	for i := 0; i < len(p); i++ {
		if p[i] < '0' || p[i] > '9' {
			return "", ErrPINNotDigits
		}
	}
	return p, nil
}

// Date folds compatibility digits the same way PIN does, then bounds the
// length. Malformed dates are the scorer's business and simply never match.
func Date(raw string) (string, error) {
	d := norm.NFKC.String(raw)
	if utf8.RuneCountInString(d) > MaxDateLen {
		return "", ErrDateTooLong
	}
	return d, nil
}

// RequireBounded trims and ensures length bounds.
func RequireBounded(name, s string, min, max int) (string, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < min || utf8.RuneCountInString(s) > max {
		return "", errors.New(name + " must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max) + " characters")
	}
	return s, nil
}
