// Package validate holds the reusable field-level rules every request schema
// is built from: identifier format, text bounds, fixed-point decimal strings,
// absolute URLs and pagination bounds.
package validate

import (
	"errors"
	"fmt"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// Pagination bounds shared by every list operation.
const (
	LimitMin     = 1
	LimitMax     = 100
	DefaultLimit = 50

	// DefaultPopularLimit caps the popular-courses listing when the client
	// does not ask for a specific size.
	DefaultPopularLimit = 10
)

// DecimalString validates a fixed-point decimal string with at most maxFrac
// fractional digits. Monetary and rating values travel as strings end-to-end;
// they are never parsed into binary floats.
func DecimalString(maxFrac int32) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, err := stringValue(value)
		if err != nil || s == "" {
			return err
		}

		d, perr := decimal.NewFromString(s)
		if perr != nil {
			return errors.New("must be a decimal number")
		}
		if d.Exponent() < -maxFrac {
			return fmt.Errorf("must have at most %d decimal place(s)", maxFrac)
		}
		return nil
	})
}

// DecimalMin validates that a decimal string is >= min.
// Parse errors are left to DecimalString.
func DecimalMin(min string) validation.Rule {
	floor := decimal.RequireFromString(min)
	return validation.By(func(value interface{}) error {
		s, err := stringValue(value)
		if err != nil || s == "" {
			return err
		}

		d, perr := decimal.NewFromString(s)
		if perr != nil {
			return nil
		}
		if d.LessThan(floor) {
			return fmt.Errorf("must be at least %s", min)
		}
		return nil
	})
}

// DecimalRange validates that a decimal string falls in [min, max].
func DecimalRange(min, max string) validation.Rule {
	floor := decimal.RequireFromString(min)
	ceil := decimal.RequireFromString(max)
	return validation.By(func(value interface{}) error {
		s, err := stringValue(value)
		if err != nil || s == "" {
			return err
		}

		d, perr := decimal.NewFromString(s)
		if perr != nil {
			return nil
		}
		if d.LessThan(floor) || d.GreaterThan(ceil) {
			return fmt.Errorf("must be between %s and %s", min, max)
		}
		return nil
	})
}

// AbsoluteURL validates an absolute http(s) URL.
func AbsoluteURL() validation.Rule {
	return validation.By(func(value interface{}) error {
		s, err := stringValue(value)
		if err != nil || s == "" {
			return err
		}

		u, perr := url.ParseRequestURI(s)
		if perr != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return errors.New("must be an absolute http(s) URL")
		}
		return nil
	})
}

func stringValue(value interface{}) (string, error) {
	indirect, isNil := validation.Indirect(value)
	if isNil {
		return "", nil
	}
	s, ok := indirect.(string)
	if !ok {
		return "", errors.New("must be a string")
	}
	return s, nil
}
