package config

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher is the pattern contract used by the Email and Password rules.
// *regexp.Regexp satisfies it directly.
type Matcher interface {
	MatchString(s string) bool
}

// AllOf matches when every expression matches. It stands in for lookahead
// assertions, which RE2 does not support.
type AllOf []*regexp.Regexp

// MatchString implements Matcher.
func (a AllOf) MatchString(s string) bool {
	if len(a) == 0 {
		return false
	}
	for _, re := range a {
		if re == nil || !re.MatchString(s) {
			return false
		}
	}
	return true
}

// String joins the expressions for diagnostics.
func (a AllOf) String() string {
	parts := make([]string, 0, len(a))
	for _, re := range a {
		if re != nil {
			parts = append(parts, re.String())
		}
	}
	return strings.Join(parts, " && ")
}

// MatchFunc adapts a plain function to Matcher.
type MatchFunc func(string) bool

// MatchString implements Matcher.
func (fn MatchFunc) MatchString(s string) bool {
	if fn == nil {
		return false
	}
	return fn(s)
}

const (
	// DefaultEmailExpr accepts local@domain.tld with a 2-4 letter TLD.
	DefaultEmailExpr = `^([A-Za-z0-9_\-\.])+@([A-Za-z0-9_\-\.])+\.([A-Za-z]{2,4})$`

	passwordCharsetExpr = `^[a-zA-Z0-9]{8,}$`
	passwordDigitExpr   = `[0-9]`
)

var (
	defaultEmailPattern    = regexp.MustCompile(DefaultEmailExpr)
	defaultPasswordPattern = AllOf{
		regexp.MustCompile(passwordCharsetExpr),
		regexp.MustCompile(passwordDigitExpr),
	}
)

// DefaultEmailPattern returns the default email matcher.
func DefaultEmailPattern() Matcher {
	return defaultEmailPattern
}

// DefaultPasswordPattern returns the default password matcher: at least 8
// alphanumeric characters with at least one digit.
func DefaultPasswordPattern() Matcher {
	return defaultPasswordPattern
}

// CompilePattern compiles one or more expressions into a Matcher. A single
// expression yields the compiled regexp; several yield an AllOf.
func CompilePattern(exprs ...string) (Matcher, error) {
	compiled := make(AllOf, 0, len(exprs))
	for _, expr := range exprs {
		trimmed := strings.TrimSpace(expr)
		if trimmed == "" {
			continue
		}
		re, err := regexp.Compile(trimmed)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, trimmed, err)
		}
		compiled = append(compiled, re)
	}
	switch len(compiled) {
	case 0:
		return nil, fmt.Errorf("%w: expression is empty", ErrInvalidPattern)
	case 1:
		return compiled[0], nil
	default:
		return compiled, nil
	}
}
