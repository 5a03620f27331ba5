package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	CodeMinLen = 3
	CodeMaxLen = 20

	defaultScheme = "https://"
)

// reservedCodes are path segments the router owns ahead of /:code.
var reservedCodes = map[string]struct{}{
	"api":     {},
	"ping":    {},
	"healthz": {},
}

var (
	codeRe        = regexp.MustCompile(`^[A-Za-z0-9_-]{3,20}$`)
	schemeRe      = regexp.MustCompile(`(?i)^https?://`)
	otherSchemeRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)
)

// NormalizeTargetURL trims s, prefixes https:// when no http(s) scheme is
// present and validates the result as an absolute http(s) URL.
func NormalizeTargetURL(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrInvalidURL
	}

	if !schemeRe.MatchString(s) {
		if otherSchemeRe.MatchString(s) {
			return "", ErrInvalidURL
		}

		s = defaultScheme + s
	}

	if err := ValidateTargetURL(s); err != nil {
		return "", err
	}

	return s, nil
}

func ValidateTargetURL(s string) error {
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return ErrInvalidURL
	}

	u, err := url.ParseRequestURI(s)
	if err != nil {
		return ErrInvalidURL
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return ErrInvalidURL
	}

	if u.Hostname() == "" {
		return ErrInvalidURL
	}

	return nil
}

// NormalizeCode trims and lower-cases a user supplied code after checking
// the format rule and the reserved names.
func NormalizeCode(s string) (string, error) {
	s = strings.TrimSpace(s)
	if err := ValidateCode(s); err != nil {
		return "", err
	}

	code := strings.ToLower(s)
	if IsReservedCode(code) {
		return "", fmt.Errorf("%w: %q", ErrReservedCode, code)
	}

	return code, nil
}

func IsReservedCode(code string) bool {
	_, ok := reservedCodes[strings.ToLower(code)]

	return ok
}

func ValidateCode(s string) error {
	if !codeRe.MatchString(s) {
		return ErrInvalidCode
	}

	return nil
}
