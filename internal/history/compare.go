package history

import (
	"time"

	"github.com/nao1215/sitecheck/internal/model"
)

// Directions of a Comparison.
const (
	DirectionImproved  = "improved"
	DirectionWorsened  = "worsened"
	DirectionUnchanged = "unchanged"
)

// RunSummary holds the counters of one side of a comparison.
type RunSummary struct {
	ID           int64     `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	FilesChecked int       `json:"files_checked"`
	Errors       int       `json:"errors"`
	Warnings     int       `json:"warnings"`
}

// Comparison is the difference between two runs of the same site.
type Comparison struct {
	// Root is the site root both runs validated.
	Root string `json:"root"`

	// Previous and Current summarize the older and newer run.
	Previous RunSummary `json:"previous"`
	Current  RunSummary `json:"current"`

	// New holds findings of the current run absent from the previous one,
	// in the current run's order.
	New []model.Finding `json:"new"`

	// Resolved holds findings of the previous run absent from the current
	// one, in the previous run's order.
	Resolved []model.Finding `json:"resolved"`

	// Unchanged is the number of findings present in both runs.
	Unchanged int `json:"unchanged"`

	// ErrorDelta and WarningDelta are current minus previous counts.
	ErrorDelta   int `json:"error_delta"`
	WarningDelta int `json:"warning_delta"`

	// Direction is DirectionImproved, DirectionWorsened or DirectionUnchanged.
	Direction string `json:"direction"`
}

// Compare compares the previous run with the current one. Findings are
// matched by Finding.Key.
func Compare(previous, current Run) *Comparison {
	c := &Comparison{
		Root:     current.Root,
		Previous: summarize(previous),
		Current:  summarize(current),
		New:      make([]model.Finding, 0),
		Resolved: make([]model.Finding, 0),
	}

	prevKeys := keys(previous.Report)
	currKeys := keys(current.Report)

	for _, f := range findings(current.Report) {
		if _, ok := prevKeys[f.Key()]; ok {
			c.Unchanged++
			continue
		}
		c.New = append(c.New, f)
	}
	for _, f := range findings(previous.Report) {
		if _, ok := currKeys[f.Key()]; !ok {
			c.Resolved = append(c.Resolved, f)
		}
	}

	c.ErrorDelta = c.Current.Errors - c.Previous.Errors
	c.WarningDelta = c.Current.Warnings - c.Previous.Warnings
	c.Direction = direction(c.ErrorDelta, c.WarningDelta)

	return c
}

func summarize(run Run) RunSummary {
	return RunSummary{
		ID:           run.ID,
		Timestamp:    run.Timestamp,
		FilesChecked: run.FilesChecked,
		Errors:       run.Errors,
		Warnings:     run.Warnings,
	}
}

func findings(report *model.Report) []model.Finding {
	if report == nil {
		return nil
	}
	return report.Findings()
}

func keys(report *model.Report) map[string]struct{} {
	set := make(map[string]struct{})
	for _, f := range findings(report) {
		set[f.Key()] = struct{}{}
	}
	return set
}

// direction weighs errors above warnings: errors decide the direction and
// warnings only break a tie.
func direction(errorDelta, warningDelta int) string {
	switch {
	case errorDelta < 0:
		return DirectionImproved
	case errorDelta > 0:
		return DirectionWorsened
	case warningDelta < 0:
		return DirectionImproved
	case warningDelta > 0:
		return DirectionWorsened
	default:
		return DirectionUnchanged
	}
}
