package analysis

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
)

// stoplist removed from analyzed text. Deliberately small: song titles and
// lyrics lean on words a general-purpose stoplist would throw away.
var stoplist = map[string]struct{}{
	"and": {}, "or": {}, "but": {},
}

// Token is a single analyzed term with its ordinal position in the field.
type Token struct {
	Term     string
	Position uint32
}

// Normalize lowercases s, collapses consecutive whitespace to single
// spaces, and trims. Normalize(Normalize(s)) == Normalize(s) for all s.
// Empty input yields an empty string.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Stem reduces word to its English root using the snowball algorithm.
// Words the stemmer cannot handle are returned unchanged.
func Stem(word string) string {
	stemmed, err := snowball.Stem(word, "english", true)
	if err != nil {
		return word
	}
	return stemmed
}

// Analyze lowercases s, splits it on non-alphanumeric boundaries, drops
// stoplist words, and stems what remains. Positions are assigned after
// stoplist removal, so index-time and query-time phrases line up.
func Analyze(s string) []Token {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]Token, 0, len(words))
	pos := uint32(0)
	for _, word := range words {
		if _, stop := stoplist[word]; stop {
			continue
		}
		term := Stem(word)
		if term == "" {
			continue
		}
		tokens = append(tokens, Token{Term: term, Position: pos})
		pos++
	}
	return tokens
}

// Terms returns only the stemmed terms of Analyze(s), in order.
func Terms(s string) []string {
	tokens := Analyze(s)
	terms := make([]string, len(tokens))
	for i, token := range tokens {
		terms[i] = token.Term
	}
	return terms
}
