package recommender

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobmatch/internal/types"
)

func sampleCorpus() []types.JobRecord {
	return []types.JobRecord{
		{
			JobID:       "job1",
			Title:       "Python Developer",
			Company:     "Acme",
			Location:    "NYC",
			Description: "Build backend services in Python and SQL",
			Skills:      []string{"Python", "SQL"},
		},
		{
			JobID:       "job2",
			Title:       "Frontend Engineer",
			Company:     "Acme",
			Location:    "NYC",
			Description: "Build UIs with JavaScript and React",
			Skills:      []string{"JavaScript", "React"},
		},
	}
}

func sampleSkillMaster() []string {
	return []string{"Python", "SQL", "JavaScript", "React"}
}

func newTestEngine(t *testing.T, jobs []types.JobRecord, master []string) *Engine {
	t.Helper()
	e, err := NewEngine(jobs, master, DefaultVectorizerConfig())
	require.NoError(t, err)
	return e
}

func TestNewEngine_EmptyCorpusFails(t *testing.T) {
	_, err := NewEngine(nil, sampleSkillMaster(), DefaultVectorizerConfig())
	require.Error(t, err)
	var corpusErr *CorpusError
	assert.ErrorAs(t, err, &corpusErr)
}

func TestRecommend_EndToEndScenario(t *testing.T) {
	e := newTestEngine(t, sampleCorpus(), sampleSkillMaster())

	ranked := e.Recommend("Experienced Python and SQL engineer", 2, 0.7, 0.3)
	require.Len(t, ranked, 2)
	assert.Equal(t, "job1", ranked[0].Job.JobID)
	assert.Equal(t, "job2", ranked[1].Job.JobID)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
	assert.Subset(t, ranked[0].MatchedSkills, []string{"Python", "SQL"})
}

func TestRecommend_SortedDescending(t *testing.T) {
	e := newTestEngine(t, sampleCorpus(), sampleSkillMaster())
	ranked := e.Recommend("python sql javascript", 10, 0.7, 0.3)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestRecommend_TopKZeroIsEmpty(t *testing.T) {
	e := newTestEngine(t, sampleCorpus(), sampleSkillMaster())
	assert.Empty(t, e.Recommend("python", 0, 0.7, 0.3))
	assert.Empty(t, e.Recommend("python", -3, 0.7, 0.3))
}

func TestRecommend_TopKBeyondCorpusReturnsEveryJobOnce(t *testing.T) {
	e := newTestEngine(t, sampleCorpus(), sampleSkillMaster())
	ranked := e.Recommend("python", 50, 0.7, 0.3)
	require.Len(t, ranked, 2)
	seen := map[string]bool{}
	for _, r := range ranked {
		assert.False(t, seen[r.Job.JobID], "job %s returned twice", r.Job.JobID)
		seen[r.Job.JobID] = true
	}
}

func TestRecommend_EmptyResumeTextDoesNotFail(t *testing.T) {
	e := newTestEngine(t, sampleCorpus(), sampleSkillMaster())
	ranked := e.Recommend("", 10, 0.7, 0.3)
	require.Len(t, ranked, 2)
	for _, r := range ranked {
		assert.Zero(t, r.Score)
	}
	// Ties keep corpus order.
	assert.Equal(t, "job1", ranked[0].Job.JobID)
	assert.Equal(t, "job2", ranked[1].Job.JobID)
}

func TestRecommend_WeightNeutrality(t *testing.T) {
	// jobA wins on lexical similarity, jobB wins on skills overlap.
	jobs := []types.JobRecord{
		{JobID: "jobA", Description: "python backend python services", Skills: []string{"JavaScript"}},
		{JobID: "jobB", Description: "ruby on rails applications", Skills: []string{"Python"}},
	}
	e := newTestEngine(t, jobs, []string{"Python", "JavaScript"})

	byTFIDF := e.Recommend("Python developer", 2, 1, 0)
	require.Len(t, byTFIDF, 2)
	assert.Equal(t, "jobA", byTFIDF[0].Job.JobID)

	bySkills := e.Recommend("Python developer", 2, 0, 1)
	require.Len(t, bySkills, 2)
	assert.Equal(t, "jobB", bySkills[0].Job.JobID)
	assert.Equal(t, []string{"Python"}, bySkills[0].MatchedSkills)
}

func TestRecommend_NoSkillMasterDegradesToZeroOverlap(t *testing.T) {
	e := newTestEngine(t, sampleCorpus(), nil)
	ranked := e.Recommend("Experienced Python and SQL engineer", 2, 0, 1)
	require.Len(t, ranked, 2)
	assert.Zero(t, ranked[0].Score)
	assert.Zero(t, ranked[1].Score)
}

func TestReload_SwapsCorpus(t *testing.T) {
	e := newTestEngine(t, sampleCorpus(), sampleSkillMaster())
	before := e.CorpusVersion()

	jobs := append(sampleCorpus(), types.JobRecord{
		JobID:       "job3",
		Title:       "Data Engineer",
		Description: "Design SQL pipelines in Python",
		Skills:      []string{"Python", "SQL", "Airflow"},
	})
	require.NoError(t, e.Reload(jobs))
	assert.Equal(t, 3, e.CorpusSize())
	assert.NotEqual(t, before, e.CorpusVersion())
}

func TestReload_FailureKeepsOldSnapshot(t *testing.T) {
	e := newTestEngine(t, sampleCorpus(), sampleSkillMaster())
	version := e.CorpusVersion()

	err := e.Reload(nil)
	require.Error(t, err)
	assert.Equal(t, 2, e.CorpusSize())
	assert.Equal(t, version, e.CorpusVersion())
}

func TestSkillsOverlap_JaccardUnionDenominator(t *testing.T) {
	overlap, hits := skillsOverlap([]string{"Python", "SQL"}, []string{"Python", "SQL", "Docker", "Kubernetes"})
	// 2 matched over |{Python, SQL, Docker, Kubernetes}| = 4.
	assert.InDelta(t, 0.5, overlap, 1e-9)
	assert.Equal(t, []string{"Python", "SQL"}, hits)
}

func TestSkillsOverlap_FirstMatchWinsNoDoubleCounting(t *testing.T) {
	// "react js" fuzzily matches both job labels; it must count once.
	overlap, hits := skillsOverlap([]string{"react js"}, []string{"reactjs", "react-js"})
	assert.Equal(t, []string{"react js"}, hits)
	// union is {react js, reactjs, react-js} = 3 raw labels.
	assert.InDelta(t, 1.0/3.0, overlap, 1e-9)
}

func TestSkillsOverlap_EmptySetsAreZero(t *testing.T) {
	overlap, hits := skillsOverlap(nil, []string{"Python"})
	assert.Zero(t, overlap)
	assert.Empty(t, hits)

	overlap, hits = skillsOverlap([]string{"Python"}, nil)
	assert.Zero(t, overlap)
	assert.Empty(t, hits)
}
