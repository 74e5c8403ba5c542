package attendance

import (
	"fmt"
	"strconv"

	"bunkmate-backend/lib/projection"
)

// DefaultTarget is the percentage most universities enforce before
// barring a student from exams.
const DefaultTarget = 75.0

var ErrNoData = fmt.Errorf("No attendance data was extracted.")

type SubjectReport struct {
	// full subject name when the subjects page could be linked,
	// omitted otherwise
	Name string `json:"name,omitempty"`
	projection.Result
}

type Report struct {
	Results map[string]SubjectReport `json:"results"`
	Target  float64                  `json:"target"`
}

// BuildReport derives the projection record for every scraped subject.
// An empty raw mapping is a failed scrape, not a student with zero
// subjects, and is reported as ErrNoData instead of an empty report.
func BuildReport(raw map[string]projection.Record, target float64) (Report, error) {
	if len(raw) == 0 {
		return Report{}, ErrNoData
	}

	results := make(map[string]SubjectReport, len(raw))
	for subject, record := range raw {
		results[subject] = SubjectReport{
			Result: projection.Project(record, target),
		}
	}
	return Report{Results: results, Target: target}, nil
}

// EffectiveTarget resolves the target percentage from whatever the
// request carried. Missing or unparsable input falls back to the
// default, out-of-range values are clamped into [0, 100].
func EffectiveTarget(raw any) float64 {
	target := DefaultTarget
	switch v := raw.(type) {
	case nil:
	case float64:
		target = v
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err == nil {
			target = parsed
		}
	}

	if target > 100 {
		return 100
	}
	if target < 0 {
		return 0
	}
	return target
}
