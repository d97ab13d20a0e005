package recommender

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"runtime"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobmatch/internal/skills"
	"github.com/jonathan/jobmatch/internal/textproc"
	"github.com/jonathan/jobmatch/internal/types"
)

// Default fusion weights and result count for ranking requests.
const (
	DefaultWeightTFIDF  = 0.7
	DefaultWeightSkills = 0.3
	DefaultTopK         = 10
)

// snapshot is an immutable corpus view: job records, the vectorizer
// fitted against them and their precomputed document vectors. Engine
// swaps whole snapshots so in-flight ranking calls always see a
// consistent corpus.
type snapshot struct {
	jobs       []types.JobRecord
	vectorizer *Vectorizer
	jobVectors []SparseVector
	version    string
}

// Engine is the resume-to-job scoring engine. It is safe for concurrent
// use: ranking reads an atomically loaded snapshot and Reload builds a
// replacement snapshot before publishing it.
type Engine struct {
	snap        atomic.Pointer[snapshot]
	analyzer    *textproc.Analyzer
	skillMaster []string
	cfg         VectorizerConfig
}

// NewEngine builds an engine over the job corpus. The skill master list
// may be empty, which degrades the skills-overlap component to zero
// rather than failing. An empty corpus is a *CorpusError.
func NewEngine(jobs []types.JobRecord, skillMaster []string, cfg VectorizerConfig) (*Engine, error) {
	e := &Engine{
		analyzer:    textproc.NewAnalyzer(),
		skillMaster: skillMaster,
		cfg:         cfg,
	}
	if err := e.Reload(jobs); err != nil {
		return nil, err
	}
	return e, nil
}

// Reload fits a new vectorizer against the given corpus and atomically
// swaps it in. In-flight ranking calls finish against the previous
// snapshot; the old snapshot is kept on failure.
func (e *Engine) Reload(jobs []types.JobRecord) error {
	if len(jobs) == 0 {
		return &CorpusError{Reason: "no documents to fit vocabulary against"}
	}

	prepared := make([]types.JobRecord, len(jobs))
	docs := make([]string, len(jobs))
	hash := sha256.New()
	for i, job := range jobs {
		job.NormalizedDescription = textproc.Normalize(job.Description)
		prepared[i] = job
		docs[i] = job.NormalizedDescription
		hash.Write([]byte(job.JobID))
		hash.Write([]byte{0})
		hash.Write([]byte(job.Description))
		hash.Write([]byte{0})
		hash.Write([]byte(types.JoinSkills(job.Skills)))
		hash.Write([]byte{0})
	}

	vectorizer, err := NewVectorizer(docs, e.analyzer, e.cfg)
	if err != nil {
		return err
	}

	vectors := make([]SparseVector, len(prepared))
	for i, doc := range docs {
		vectors[i] = vectorizer.Transform(doc)
	}

	e.snap.Store(&snapshot{
		jobs:       prepared,
		vectorizer: vectorizer,
		jobVectors: vectors,
		version:    hex.EncodeToString(hash.Sum(nil))[:16],
	})
	return nil
}

// CorpusVersion returns a short digest of the current corpus snapshot,
// usable as a cache key component.
func (e *Engine) CorpusVersion() string {
	return e.snap.Load().version
}

// CorpusSize returns the number of jobs in the current snapshot.
func (e *Engine) CorpusSize() int {
	return len(e.snap.Load().jobs)
}

// VocabularySize returns the number of terms in the current snapshot's
// vocabulary.
func (e *Engine) VocabularySize() int {
	return e.snap.Load().vectorizer.VocabularySize()
}

// Recommend ranks every job in the corpus against the resume text and
// returns the topK jobs by fused score, descending. Ties keep corpus
// order. A non-positive topK yields an empty result; empty resume text
// is ranked normally and simply scores near zero everywhere.
func (e *Engine) Recommend(resumeText string, topK int, weightTFIDF, weightSkills float64) []types.ScoredJob {
	snap := e.snap.Load()
	if topK <= 0 || len(snap.jobs) == 0 {
		return nil
	}

	normalized := textproc.Normalize(resumeText)
	resumeVec := snap.vectorizer.Transform(normalized)
	resumeSkills := skills.Extract(normalized, e.skillMaster)

	scores := make([]float64, len(snap.jobs))
	matched := make([][]string, len(snap.jobs))

	// Jobs are scored independently; shard them across workers.
	var g errgroup.Group
	workers := runtime.GOMAXPROCS(0)
	chunk := (len(snap.jobs) + workers - 1) / workers
	for start := 0; start < len(snap.jobs); start += chunk {
		end := min(start+chunk, len(snap.jobs))
		g.Go(func() error {
			for i := start; i < end; i++ {
				cos := resumeVec.Dot(snap.jobVectors[i])
				overlap, hits := skillsOverlap(resumeSkills, snap.jobs[i].Skills)
				score := weightTFIDF*cos + weightSkills*overlap
				// A malformed document must never rank first on a
				// garbage score.
				if math.IsNaN(score) || math.IsInf(score, 0) {
					score = 0
				}
				scores[i] = score
				matched[i] = hits
			}
			return nil
		})
	}
	_ = g.Wait()

	order := make([]int, len(snap.jobs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	if topK < len(order) {
		order = order[:topK]
	}

	ranked := make([]types.ScoredJob, len(order))
	for i, idx := range order {
		ranked[i] = types.ScoredJob{
			Job:           snap.jobs[idx],
			Score:         scores[idx],
			MatchedSkills: matched[idx],
		}
	}
	return ranked
}

// skillsOverlap computes the fuzzy skills-overlap fraction between a
// resume skill set and a job's skill labels. Each resume skill counts at
// most once, on its first fuzzy match. The denominator is the union of
// the raw labels: the numerator is fuzzy while the denominator is not,
// so near-duplicate spellings inflate the union. This asymmetry is
// deliberate and kept for parity with established scoring behavior.
func skillsOverlap(resumeSkills, jobSkills []string) (float64, []string) {
	if len(resumeSkills) == 0 || len(jobSkills) == 0 {
		return 0, nil
	}

	var hits []string
	for _, rs := range resumeSkills {
		for _, js := range jobSkills {
			if skills.Matches(rs, js) {
				hits = append(hits, rs)
				break
			}
		}
	}

	union := make(map[string]struct{}, len(resumeSkills)+len(jobSkills))
	for _, s := range resumeSkills {
		union[s] = struct{}{}
	}
	for _, s := range jobSkills {
		union[s] = struct{}{}
	}

	sort.Strings(hits)
	return float64(len(hits)) / float64(max(1, len(union))), hits
}
