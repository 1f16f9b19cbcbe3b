package slug

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Package slug derives stable, unique, URL-safe identifiers from mutable
// titles. Derivation only happens when a document is new or its title changed,
// so renaming unrelated fields never churns existing URLs. Collisions are
// disambiguated deterministically with a numeric suffix; a unique index at the
// storage layer remains the backstop for concurrent creators.

var (
	// ErrEmpty means the title had no alphanumeric content to derive from.
	ErrEmpty = errors.New("title has no characters usable in a slug")
	// ErrResolutionFailed means the disambiguation loop hit its attempt cap.
	// Only a pathological existence checker can trigger this.
	ErrResolutionFailed = errors.New("could not resolve a unique slug")
)

// maxAttempts bounds the disambiguation loop defensively.
const maxAttempts = 1000

// ExistsFunc reports whether a slug is already taken by another document in
// the same collection. Implementations must exclude the document being saved.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// asciiFold maps common accented Latin runes onto plain ASCII so "Crème" and
// "Creme" derive the same slug.
var asciiFold = map[rune]string{
	'à': "a", 'á': "a", 'â': "a", 'ã': "a", 'ä': "a", 'å': "a", 'æ': "ae",
	'ç': "c", 'è': "e", 'é': "e", 'ê': "e", 'ë': "e", 'ì': "i", 'í': "i",
	'î': "i", 'ï': "i", 'ñ': "n", 'ò': "o", 'ó': "o", 'ô': "o", 'õ': "o",
	'ö': "o", 'ø': "o", 'ù': "u", 'ú': "u", 'û': "u", 'ü': "u", 'ý': "y",
	'ÿ': "y", 'ß': "ss", 'œ': "oe", 'đ': "d", 'ł': "l", 'š': "s", 'ž': "z",
}

// Make derives the base slug: lower-case, ASCII letters and digits only, runs
// of everything else collapsed to single hyphens, no leading or trailing
// hyphen. Returns "" when nothing survives.
func Make(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		var part string
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			part = string(r)
		case unicode.IsLetter(r):
			part = asciiFold[r] // unknown non-ASCII letters are dropped
		}
		if part == "" {
			if b.Len() > 0 {
				pendingHyphen = true
			}
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteString(part)
	}
	return b.String()
}

// Resolve returns the slug a document should persist with.
//
// If the document is not new and the title is unchanged, the current slug is
// returned without touching the existence checker. Otherwise the base slug is
// derived from the title and suffixed -1, -2, ... until exists reports it free.
func Resolve(ctx context.Context, title, prevTitle, currentSlug string, isNew bool, exists ExistsFunc) (string, error) {
	if !isNew && title == prevTitle && currentSlug != "" {
		return currentSlug, nil
	}

	base := Make(title)
	if base == "" {
		return "", ErrEmpty
	}

	candidate := base
	for i := 1; i <= maxAttempts; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", ErrResolutionFailed
}
