package tfidf

import "strings"

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "a": {}, "an": {}, "of": {}, "to": {}, "in": {},
	"for": {}, "with": {}, "on": {}, "at": {}, "by": {}, "from": {}, "is": {},
	"are": {}, "be": {}, "this": {}, "that": {}, "your": {}, "you": {},
	"we": {}, "our": {}, "their": {}, "as": {}, "it": {}, "will": {},
	"can": {}, "if": {}, "but": {},
}

// Tokenize lower-cases the input, replaces everything outside [a-z0-9] with
// spaces, and drops stop words and tokens of length <= 2. Empty input yields
// an empty slice.
func Tokenize(text string) []string {

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	var tokens []string
	for _, token := range strings.Fields(b.String()) {
		if len(token) <= 2 {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}
