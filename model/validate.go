package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Field length limits, counted in characters.
const (
	AuthorNameMin       = 2
	AuthorNameMax       = 100
	MagazineNameMin     = 2
	MagazineNameMax     = 100
	MagazineCategoryMin = 1
	MagazineCategoryMax = 100
	ArticleTitleMin     = 5
	ArticleTitleMax     = 100
	ArticleContentMin   = 10
)

// checkLength validates value against [minLen, maxLen]. maxLen <= 0 means
// no upper bound. Whitespace-only values count as empty.
func checkLength(entity, field, value string, minLen, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Entity: entity, Field: field, Message: "must not be empty"}
	}
	n := utf8.RuneCountInString(value)
	if n < minLen {
		return &ValidationError{
			Entity: entity, Field: field,
			Message: fmt.Sprintf("must be at least %d characters, got %d", minLen, n),
		}
	}
	if maxLen > 0 && n > maxLen {
		return &ValidationError{
			Entity: entity, Field: field,
			Message: fmt.Sprintf("must be at most %d characters, got %d", maxLen, n),
		}
	}
	return nil
}
