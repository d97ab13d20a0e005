package textproc

import "strings"

// RuleLemmatizer folds common English plural and derivational suffixes.
// It is a lightweight substitute for a dictionary-backed lemmatizer and
// deliberately conservative: short tokens and tech tokens containing
// digits or symbols pass through unchanged.
func RuleLemmatizer(token string) string {
	if len(token) < 4 || strings.ContainsAny(token, "0123456789+.#/-") {
		return token
	}
	switch {
	case strings.HasSuffix(token, "ies"):
		return token[:len(token)-3] + "y"
	case strings.HasSuffix(token, "sses"):
		return token[:len(token)-2]
	case strings.HasSuffix(token, "xes"), strings.HasSuffix(token, "ches"), strings.HasSuffix(token, "shes"):
		return token[:len(token)-2]
	case strings.HasSuffix(token, "ss"):
		return token
	case strings.HasSuffix(token, "s"):
		return token[:len(token)-1]
	}
	return token
}
