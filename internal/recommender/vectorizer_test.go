package recommender

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobmatch/internal/textproc"
)

func newTestVectorizer(t *testing.T, docs []string, cfg VectorizerConfig) *Vectorizer {
	t.Helper()
	v, err := NewVectorizer(docs, textproc.NewAnalyzer(), cfg)
	require.NoError(t, err)
	return v
}

func TestNewVectorizer_EmptyCorpusFails(t *testing.T) {
	_, err := NewVectorizer(nil, textproc.NewAnalyzer(), DefaultVectorizerConfig())
	require.Error(t, err)
	var corpusErr *CorpusError
	assert.ErrorAs(t, err, &corpusErr)
}

func TestNewVectorizer_StopwordOnlyCorpusFails(t *testing.T) {
	_, err := NewVectorizer([]string{"the of and", "a an"}, textproc.NewAnalyzer(), DefaultVectorizerConfig())
	require.Error(t, err)
	var corpusErr *CorpusError
	assert.ErrorAs(t, err, &corpusErr)
}

func TestVectorizer_IncludesBigrams(t *testing.T) {
	v := newTestVectorizer(t, []string{"machine learning engineer"}, DefaultVectorizerConfig())
	// unigrams: machine, learning, engineer; bigrams: "machine learning", "learning engineer"
	assert.Equal(t, 5, v.VocabularySize())
}

func TestVectorizer_TransformIsL2Normalized(t *testing.T) {
	docs := []string{
		"python backend services",
		"frontend react applications",
	}
	v := newTestVectorizer(t, docs, DefaultVectorizerConfig())

	vec := v.Transform("python backend")
	var sumSquares float64
	for _, w := range vec {
		assert.GreaterOrEqual(t, w, 0.0)
		sumSquares += w * w
	}
	assert.InDelta(t, 1.0, sumSquares, 1e-9)
	assert.InDelta(t, 1.0, vec.Dot(vec), 1e-9)
}

func TestVectorizer_OutOfVocabularyYieldsZeroVector(t *testing.T) {
	v := newTestVectorizer(t, []string{"python backend"}, DefaultVectorizerConfig())
	vec := v.Transform("haskell compilers")
	assert.Empty(t, vec)
	assert.Zero(t, vec.Dot(v.Transform("python backend")))
}

func TestVectorizer_CosineBounds(t *testing.T) {
	docs := []string{
		"python sql backend services",
		"javascript react frontend",
		"devops kubernetes docker pipelines",
	}
	v := newTestVectorizer(t, docs, DefaultVectorizerConfig())
	queries := []string{"python sql", "react", "", "embedded firmware"}
	for _, q := range queries {
		qv := v.Transform(q)
		for _, doc := range docs {
			cos := qv.Dot(v.Transform(doc))
			assert.GreaterOrEqual(t, cos, 0.0)
			assert.LessOrEqual(t, cos, 1.0+1e-9)
		}
	}
}

func TestVectorizer_RarerTermsWeighMore(t *testing.T) {
	// "python" appears in both docs, "rust" in one; idf(rust) > idf(python).
	docs := []string{"python rust", "python go"}
	v := newTestVectorizer(t, docs, DefaultVectorizerConfig())

	sim := v.Transform("rust").Dot(v.Transform(docs[0]))
	simCommon := v.Transform("python").Dot(v.Transform(docs[0]))
	assert.Greater(t, sim, simCommon)
}

func TestVectorizer_MaxFeaturesCapsVocabulary(t *testing.T) {
	docs := []string{"alpha beta gamma delta epsilon"}
	v := newTestVectorizer(t, docs, VectorizerConfig{MaxFeatures: 3, MinDocFreq: 1})
	assert.Equal(t, 3, v.VocabularySize())
}

func TestVectorizer_IdenticalDocumentsAreFullySimilar(t *testing.T) {
	docs := []string{"golang services", "data pipelines"}
	v := newTestVectorizer(t, docs, DefaultVectorizerConfig())
	cos := v.Transform("golang services").Dot(v.Transform("golang services"))
	assert.InDelta(t, 1.0, cos, 1e-9)
}

func TestSparseVector_DotIsSymmetric(t *testing.T) {
	v := newTestVectorizer(t, []string{"python sql", "go redis"}, DefaultVectorizerConfig())
	a := v.Transform("python go")
	b := v.Transform("sql go")
	assert.InDelta(t, a.Dot(b), b.Dot(a), 1e-12)
	assert.False(t, math.IsNaN(a.Dot(b)))
}
