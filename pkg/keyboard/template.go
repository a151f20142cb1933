package keyboard

import (
	"fmt"
	"strconv"
	"strings"
)

// Placeholder tokens recognized in callback patterns.
const (
	NumberPlaceholder = "{number}"
	LocalePlaceholder = "{locale}"
)

// CallbackTemplate is a callback-data pattern with exactly one named
// substitution point, validated at construction time. Rendering is a plain
// concatenation, so a template can be reused across many buttons without
// re-parsing.
type CallbackTemplate struct {
	raw    string
	prefix string
	suffix string
}

// NewCallbackTemplate parses a pagination pattern containing exactly one
// {number} placeholder. Zero or repeated occurrences fail with a
// PaginationError citing callback_pattern.
func NewCallbackTemplate(pattern string) (*CallbackTemplate, error) {
	t, err := splitPattern(pattern, NumberPlaceholder)
	if err != nil {
		return nil, &PaginationError{Param: "callback_pattern", Value: pattern, Reason: err.Error()}
	}
	return t, nil
}

// NewLocaleTemplate parses a locale-picker pattern containing exactly one
// {locale} placeholder.
func NewLocaleTemplate(pattern string) (*CallbackTemplate, error) {
	t, err := splitPattern(pattern, LocalePlaceholder)
	if err != nil {
		return nil, &LocaleError{Param: "callback_pattern", Value: pattern, Reason: err.Error()}
	}
	return t, nil
}

func splitPattern(pattern, token string) (*CallbackTemplate, error) {
	switch n := strings.Count(pattern, token); {
	case n == 0:
		return nil, fmt.Errorf("missing %s placeholder", token)
	case n > 1:
		return nil, fmt.Errorf("%s placeholder occurs %d times, want exactly 1", token, n)
	}
	i := strings.Index(pattern, token)
	return &CallbackTemplate{
		raw:    pattern,
		prefix: pattern[:i],
		suffix: pattern[i+len(token):],
	}, nil
}

// Pattern returns the original pattern string.
func (t *CallbackTemplate) Pattern() string { return t.raw }

// Render substitutes a page number into the placeholder.
func (t *CallbackTemplate) Render(page int) string {
	return t.prefix + strconv.Itoa(page) + t.suffix
}

// RenderString substitutes an arbitrary value (locale codes).
func (t *CallbackTemplate) RenderString(v string) string {
	return t.prefix + v + t.suffix
}
