// Package recommender implements the resume-to-job scoring engine:
// TF-IDF vectorization over a job corpus, cosine similarity ranking and
// fuzzy skills-overlap fusion.
package recommender

import (
	"fmt"
	"math"
	"sort"

	"github.com/jonathan/jobmatch/internal/textproc"
)

// Vectorizer defaults, matching the corpus-facing configuration used by
// every call path.
const (
	// DefaultMaxFeatures caps the vocabulary size; the most frequent
	// terms across the corpus are kept.
	DefaultMaxFeatures = 50000
	// DefaultMinDocFreq is the minimum number of corpus documents a
	// term must appear in. Kept at 1 because job corpora can be small
	// enough that singleton terms still carry signal.
	DefaultMinDocFreq = 1
)

// CorpusError indicates the vectorizer could not be built from the
// given corpus.
type CorpusError struct {
	Reason string
}

func (e *CorpusError) Error() string {
	return fmt.Sprintf("corpus error: %s", e.Reason)
}

// VectorizerConfig tunes vocabulary construction.
type VectorizerConfig struct {
	MaxFeatures int
	MinDocFreq  int
}

// DefaultVectorizerConfig returns the standard configuration.
func DefaultVectorizerConfig() VectorizerConfig {
	return VectorizerConfig{
		MaxFeatures: DefaultMaxFeatures,
		MinDocFreq:  DefaultMinDocFreq,
	}
}

// SparseVector is an L2-normalized term-weight vector keyed by
// vocabulary index.
type SparseVector map[int]float64

// Dot returns the dot product of two sparse vectors. For L2-normalized
// non-negative vectors this is the cosine similarity, bounded by [0,1].
func (v SparseVector) Dot(other SparseVector) float64 {
	if len(other) < len(v) {
		v, other = other, v
	}
	var sum float64
	for idx, w := range v {
		if ow, ok := other[idx]; ok {
			sum += w * ow
		}
	}
	return sum
}

// Vectorizer holds a TF-IDF vocabulary fitted against a fixed corpus.
// It is immutable after construction and safe for concurrent Transform
// calls; a corpus change requires building a new Vectorizer.
type Vectorizer struct {
	analyzer *textproc.Analyzer
	cfg      VectorizerConfig
	vocab    map[string]int
	idf      []float64
}

// NewVectorizer fits a TF-IDF vocabulary over the corpus documents using
// unigrams and bigrams of stopword-filtered tokens. Term weights are
// raw term frequency times smooth inverse document frequency
// (ln((1+n)/(1+df)) + 1), L2-normalized per document.
//
// Construction fails loudly with a *CorpusError on an empty corpus or a
// corpus that yields no vocabulary, rather than producing a degenerate
// model.
func NewVectorizer(docs []string, analyzer *textproc.Analyzer, cfg VectorizerConfig) (*Vectorizer, error) {
	if len(docs) == 0 {
		return nil, &CorpusError{Reason: "no documents to fit vocabulary against"}
	}
	if cfg.MaxFeatures <= 0 {
		cfg.MaxFeatures = DefaultMaxFeatures
	}
	if cfg.MinDocFreq <= 0 {
		cfg.MinDocFreq = DefaultMinDocFreq
	}

	df := make(map[string]int)
	totalCount := make(map[string]int)
	for _, doc := range docs {
		counts := termCounts(ngrams(analyzer.Tokenize(doc)))
		for term, count := range counts {
			df[term]++
			totalCount[term] += count
		}
	}

	terms := make([]string, 0, len(df))
	for term, freq := range df {
		if freq >= cfg.MinDocFreq {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return nil, &CorpusError{Reason: "empty vocabulary; corpus contains only stopwords or no tokens"}
	}

	// Keep the most frequent terms when over the feature cap; ties
	// break alphabetically for determinism.
	if len(terms) > cfg.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if totalCount[terms[i]] != totalCount[terms[j]] {
				return totalCount[terms[i]] > totalCount[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:cfg.MaxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(docs))
	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	for i, term := range terms {
		vocab[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	return &Vectorizer{
		analyzer: analyzer,
		cfg:      cfg,
		vocab:    vocab,
		idf:      idf,
	}, nil
}

// Transform projects text into the fitted vector space. Out-of-
// vocabulary terms contribute zero weight; text with no in-vocabulary
// terms yields an empty (zero) vector.
func (v *Vectorizer) Transform(text string) SparseVector {
	counts := termCounts(ngrams(v.analyzer.Tokenize(text)))
	vec := make(SparseVector, len(counts))
	var sumSquares float64
	for term, count := range counts {
		idx, ok := v.vocab[term]
		if !ok {
			continue
		}
		w := float64(count) * v.idf[idx]
		vec[idx] = w
		sumSquares += w * w
	}
	if sumSquares == 0 {
		return vec
	}
	norm := math.Sqrt(sumSquares)
	for idx, w := range vec {
		vec[idx] = w / norm
	}
	return vec
}

// VocabularySize returns the number of fitted terms.
func (v *Vectorizer) VocabularySize() int {
	return len(v.vocab)
}

// ngrams expands a token sequence into unigrams plus bigrams.
func ngrams(tokens []string) []string {
	terms := make([]string, 0, 2*len(tokens))
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

func termCounts(terms []string) map[string]int {
	counts := make(map[string]int, len(terms))
	for _, term := range terms {
		counts[term]++
	}
	return counts
}
