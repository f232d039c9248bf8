package services

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"dialog/internal/common"
)

const (
	loginHandleMinLen = 3
	loginHandleMaxLen = 30
	passwordMinLen    = 8
	passwordMaxLen    = 128
	contentMaxLen     = 5000
	queryMaxLen       = 50
)

var (
	loginHandleRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)
	displayNameRe = regexp.MustCompile(`^[\p{L}\p{N} ._'-]{3,30}$`)
)

func validateLoginHandle(handle string) error {
	if !loginHandleRe.MatchString(handle) {
		return common.NewValidationError(
			"login handle must be %d-%d characters of letters, digits and underscores",
			loginHandleMinLen, loginHandleMaxLen)
	}
	return nil
}

// validateDisplayName trims leading/trailing whitespace and checks the
// remaining name against the allowed character set. Returns the trimmed name.
func validateDisplayName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if !displayNameRe.MatchString(trimmed) {
		return "", common.NewValidationError(
			"display name must be 3-30 characters of letters, digits, spaces and ._'-")
	}
	return trimmed, nil
}

// validatePassword enforces the complexity policy: 8-128 characters with at
// least one uppercase letter, one lowercase letter, one digit and one symbol.
func validatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < passwordMinLen || n > passwordMaxLen {
		return common.NewValidationError("password must be %d-%d characters", passwordMinLen, passwordMaxLen)
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	if !upper || !lower || !digit || !symbol {
		return common.NewValidationError(
			"password must contain at least one uppercase letter, one lowercase letter, one digit and one symbol")
	}
	return nil
}

// validateContent trims the raw message body and enforces the length bounds.
// Returns the trimmed content.
func validateContent(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", common.NewValidationError("message content must not be empty")
	}
	if utf8.RuneCountInString(trimmed) > contentMaxLen {
		return "", common.NewValidationError("message content must not exceed %d characters", contentMaxLen)
	}
	return trimmed, nil
}

// validateSearchQuery trims the query and enforces the length bounds.
// Returns the trimmed query.
func validateSearchQuery(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", common.NewValidationError("search query must not be empty")
	}
	if utf8.RuneCountInString(trimmed) > queryMaxLen {
		return "", common.NewValidationError("search query must not exceed %d characters", queryMaxLen)
	}
	return trimmed, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLikePattern escapes ILIKE metacharacters so user input always
// matches literally, never as a wildcard.
func escapeLikePattern(q string) string {
	return likeEscaper.Replace(q)
}

// truncateRunes shortens s to at most max runes.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
