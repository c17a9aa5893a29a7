package contracts

import (
	"fmt"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const maxSymbolLength = 10

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared struct validator with the "symbol" tag registered
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("symbol", func(fl validator.FieldLevel) bool {
			return IsValidSymbol(fl.Field().String())
		})
	})
	return validate
}

// IsValidSymbol accepts 1-10 characters of letters, digits, '.' and ':' (NYSE:AAPL, BRK.A)
func IsValidSymbol(symbol string) bool {
	if symbol == "" || len(symbol) > maxSymbolLength {
		return false
	}
	for _, r := range symbol {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != ':' {
			return false
		}
	}
	return true
}

// ValidateEntry checks a single score entry
func ValidateEntry(e ScoreEntry) error {
	if err := Validator().Struct(e); err != nil {
		return fmt.Errorf("invalid score entry %q: %w", e.Symbol, err)
	}
	return nil
}

// ValidateEntries checks every entry and rejects duplicate symbols
func ValidateEntries(entries []ScoreEntry) error {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if err := ValidateEntry(e); err != nil {
			return err
		}
		if _, dup := seen[e.Symbol]; dup {
			return fmt.Errorf("duplicate symbol %q in score file", e.Symbol)
		}
		seen[e.Symbol] = struct{}{}
	}
	return nil
}
