// Package textproc provides text normalization and tokenization for the
// job matching engine.
package textproc

import (
	"regexp"
	"strings"
)

var (
	// disallowedChars matches every character outside the normalized
	// alphabet. The allowed symbols preserve tech tokens such as
	// "c++", "c#", "node.js" and "full-stack".
	disallowedChars = regexp.MustCompile(`[^a-z0-9+.#/\-\s]`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
	tokenPattern    = regexp.MustCompile(`[a-z0-9+.#/\-]+`)
)

// Normalize lowercases text, replaces characters outside
// [a-z0-9+.#/\- and whitespace] with spaces, collapses whitespace runs
// and trims the result. It is pure and idempotent; garbage input yields
// an empty string.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = disallowedChars.ReplaceAllString(text, " ")
	text = whitespaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Analyzer tokenizes normalized text. The stopword set and the optional
// lemmatizer are injected at construction time; there is no hidden
// global state, so a single Analyzer is safe for concurrent use.
type Analyzer struct {
	stopwords map[string]struct{}
	lemmatize func(string) string
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithStopwords replaces the default English stopword set.
func WithStopwords(set map[string]struct{}) Option {
	return func(a *Analyzer) { a.stopwords = set }
}

// WithLemmatizer enables lemma reduction with the given function.
// Lemmatization is an explicit capability choice; an Analyzer built
// without this option never attempts it.
func WithLemmatizer(fn func(string) string) Option {
	return func(a *Analyzer) { a.lemmatize = fn }
}

// NewAnalyzer creates an Analyzer with the default English stopwords.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{stopwords: englishStopwords}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Tokenize lowercases text, finds maximal runs of allowed characters and
// drops stopwords. Token order is preserved for downstream n-gram
// construction. Empty input yields an empty slice.
func (a *Analyzer) Tokenize(text string) []string {
	matches := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(matches))
	for _, tok := range matches {
		if _, stop := a.stopwords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Lemmatize reduces each token to its lemma when the Analyzer was built
// with a lemmatizer; otherwise it returns the tokens unchanged.
func (a *Analyzer) Lemmatize(tokens []string) []string {
	if a.lemmatize == nil {
		return tokens
	}
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = a.lemmatize(tok)
	}
	return out
}
