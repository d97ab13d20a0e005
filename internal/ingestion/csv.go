// Package ingestion loads job records into the corpus from CSV files
// and cleans HTML job descriptions to plain text.
package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/jonathan/jobmatch/internal/types"
)

// requiredColumns are the CSV columns a jobs file must provide.
var requiredColumns = []string{"job_id", "title", "company", "location", "description", "skills"}

// ReadJobsCSV parses job records from CSV data. The first row is the
// header; missing required columns fail with an error naming them.
// Extra columns are ignored.
func ReadJobsCSV(r io.Reader) ([]types.JobRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("jobs CSV missing columns: %s", strings.Join(missing, ", "))
	}

	field := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var jobs []types.JobRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		jobs = append(jobs, types.JobRecord{
			JobID:       field(row, "job_id"),
			Title:       field(row, "title"),
			Company:     field(row, "company"),
			Location:    field(row, "location"),
			Description: field(row, "description"),
			Skills:      types.ParseSkills(field(row, "skills")),
		})
	}
	return jobs, nil
}

// LoadJobsCSV reads job records from a CSV file on disk.
func LoadJobsCSV(path string) ([]types.JobRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open jobs CSV %s: %w", path, err)
	}
	defer f.Close()

	jobs, err := ReadJobsCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse jobs CSV %s: %w", path, err)
	}
	return jobs, nil
}
