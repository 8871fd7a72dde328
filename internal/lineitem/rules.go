package lineitem

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// checkExcludes fails when value contains anything matched by prohibited.
func checkExcludes(field string, prohibited *regexp.Regexp, value string) error {
	if prohibited.MatchString(value) {
		return newFieldError(field, RuleCharacterSet, "%s contains characters matching %s", field, prohibited.String())
	}
	return nil
}

// checkLength compares a character count against min and max. 0 leaves that side open.
func checkLength(field string, min int, max int, length int) error {
	if min > 0 && length < min {
		return newFieldError(field, RuleLength, "%s must be at least %d characters long", field, min)
	}
	if max > 0 && length > max {
		return newFieldError(field, RuleLength, "%s must be at most %d characters long", field, max)
	}
	return nil
}

func checkStringLength(field string, min int, max int, value string) error {
	return checkLength(field, min, max, utf8.RuneCountInString(value))
}

// checkDecimalLength counts the digits before and after the decimal point separately.
// 0 leaves the respective part unbounded.
func checkDecimalLength(field string, maxInteger int, maxFraction int, value decimal.Decimal) error {
	integerDigits, fractionDigits := digitCounts(value)

	if maxInteger > 0 && integerDigits > maxInteger {
		return newFieldError(field, RuleDecimal, "%s may have at most %d integer digits", field, maxInteger)
	}
	if maxFraction > 0 && fractionDigits > maxFraction {
		return newFieldError(field, RuleDecimal, "%s may have at most %d fractional digits", field, maxFraction)
	}
	return nil
}

func digitCounts(value decimal.Decimal) (int, int) {
	text := value.Abs().String()

	integerPart, fractionPart, _ := strings.Cut(text, ".")
	return len(integerPart), len(fractionPart)
}

func checkNonNegative(field string, value decimal.Decimal) error {
	if value.IsNegative() {
		return newFieldError(field, RuleSign, "%s must not be negative", field)
	}
	return nil
}

func checkNonPositive(field string, value decimal.Decimal) error {
	if value.IsPositive() {
		return newFieldError(field, RuleSign, "%s must not be positive", field)
	}
	return nil
}

func checkAllowed[T any](field string, allowed []T, equal func(a, b T) bool, value T) error {
	for _, candidate := range allowed {
		if equal(candidate, value) {
			return nil
		}
	}
	return newFieldError(field, RuleAllowed, "%s must be one of %v", field, allowed)
}
