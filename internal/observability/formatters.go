// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/jobmatch/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxSkillsToShow is the default number of skills to display per job
	maxSkillsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCorpusSummary outputs a one-box overview of the loaded corpus.
func (p *Printer) PrintCorpusSummary(jobs []types.JobRecord, vocabularySize int) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Jobs:        %d\n", len(jobs)))
	sb.WriteString(fmt.Sprintf("Vocabulary:  %d terms", vocabularySize))

	p.printBox("Corpus", sb.String())
}

// PrintRanking outputs a human-readable table of scored jobs.
func (p *Printer) PrintRanking(ranked []types.ScoredJob) {
	if len(ranked) == 0 {
		p.printBox("Ranking", "No jobs matched")
		return
	}

	var sb strings.Builder
	for i, scored := range ranked {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%2d. %.4f  %s - %s\n", i+1, scored.Score, scored.Job.Title, scored.Job.Company))
		if scored.Job.Location != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", scored.Job.Location))
		}
		if len(scored.MatchedSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    matched: %s", joinLimited(scored.MatchedSkills, maxSkillsToShow)))
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("Top %d matches", len(ranked)), strings.TrimRight(sb.String(), "\n"))
}

// joinLimited joins up to limit items, appending a count of the rest.
func joinLimited(items []string, limit int) string {
	if len(items) <= limit {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s (+%d more)", strings.Join(items[:limit], ", "), len(items)-limit)
}
