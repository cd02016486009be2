package textutil

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// isDropped reports runes that are neither word characters (letters, digits,
// underscore) nor Unicode whitespace.
func isDropped(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '_' && !unicode.IsSpace(r)
}

// TokenSet is an unordered set of lowercase word tokens.
type TokenSet map[string]struct{}

// NewTokenSet builds a set from the supplied tokens. Duplicates collapse.
func NewTokenSet(tokens ...string) TokenSet {
	set := make(TokenSet, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}

// Len returns the number of distinct tokens.
func (s TokenSet) Len() int { return len(s) }

// Has reports whether token is in the set.
func (s TokenSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Sorted returns the tokens in lexical order.
func (s TokenSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for token := range s {
		out = append(out, token)
	}
	sort.Strings(out)
	return out
}

// String renders the set as space-separated sorted tokens.
func (s TokenSet) String() string {
	return strings.Join(s.Sorted(), " ")
}

// StripMarks decomposes value canonically (NFD) and removes combining marks,
// leaving base letters in place. The result is not recomposed.
func StripMarks(value string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, value)
	if err != nil {
		return value
	}
	return out
}

// Normalize maps a display string to its comparable token set: diacritics
// stripped, punctuation removed, lowercased and split on whitespace.
// The empty string yields an empty set.
func Normalize(value string) TokenSet {
	if value == "" {
		return TokenSet{}
	}
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(isDropped)),
	)
	stripped, _, err := transform.String(t, value)
	if err != nil {
		stripped = value
	}
	return NewTokenSet(strings.Fields(strings.ToLower(stripped))...)
}
