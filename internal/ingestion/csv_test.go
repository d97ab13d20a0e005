package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `job_id,title,company,location,description,skills
job1,Python Developer,Acme,NYC,Build backend services in Python and SQL,Python;SQL
job2,Frontend Engineer,Acme,NYC,Build UIs with JavaScript and React,JavaScript;React
`

func TestReadJobsCSV_ParsesRecords(t *testing.T) {
	jobs, err := ReadJobsCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "job1", jobs[0].JobID)
	assert.Equal(t, "Python Developer", jobs[0].Title)
	assert.Equal(t, "Acme", jobs[0].Company)
	assert.Equal(t, "NYC", jobs[0].Location)
	assert.Equal(t, []string{"Python", "SQL"}, jobs[0].Skills)
	assert.Equal(t, []string{"JavaScript", "React"}, jobs[1].Skills)
}

func TestReadJobsCSV_MissingColumnsNamed(t *testing.T) {
	_, err := ReadJobsCSV(strings.NewReader("job_id,title\njob1,Dev\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "company")
	assert.Contains(t, err.Error(), "description")
	assert.Contains(t, err.Error(), "skills")
}

func TestReadJobsCSV_ExtraColumnsIgnored(t *testing.T) {
	csv := "job_id,title,company,location,description,skills,posted_at\n" +
		"job1,Dev,Acme,Remote,Write Go,Go,2024-01-01\n"
	jobs, err := ReadJobsCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, []string{"Go"}, jobs[0].Skills)
}

func TestReadJobsCSV_EmptySkillsField(t *testing.T) {
	csv := "job_id,title,company,location,description,skills\n" +
		"job1,Dev,Acme,Remote,Write Go,\n"
	jobs, err := ReadJobsCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Empty(t, jobs[0].Skills)
}

func TestLoadJobsCSV_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	jobs, err := LoadJobsCSV(path)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestLoadJobsCSV_MissingFile(t *testing.T) {
	_, err := LoadJobsCSV(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestDescriptionFromHTML_StripsMarkupAndNoise(t *testing.T) {
	html := `<html><head><style>p{color:red}</style></head><body>
		<nav>Menu</nav>
		<h1>Backend Engineer</h1>
		<p>Build services in <b>Go</b> and Python.</p>
		<ul><li>PostgreSQL</li><li>Redis</li></ul>
		<script>track()</script>
	</body></html>`

	text, err := DescriptionFromHTML(html)
	require.NoError(t, err)
	assert.NotContains(t, text, "Menu")
	assert.NotContains(t, text, "track()")
	assert.NotContains(t, text, "color:red")
	assert.Contains(t, text, "Backend Engineer")
	assert.Contains(t, text, "Build services in Go and Python.")
	assert.Contains(t, text, "PostgreSQL")
}
