package projection

import (
	"fmt"
	"math"
)

// Record is the attended/held class count for a single subject as
// extracted from the portal. Counts are never mutated after the scrape.
type Record struct {
	Attended int `json:"attended"`
	Total    int `json:"total"`
}

// Validate rejects records the portal should never produce. A scrape
// that yields negative counts or attended > total means the page layout
// changed underneath us, it should be surfaced instead of producing a
// nonsense percentage.
func (r Record) Validate() error {
	if r.Attended < 0 || r.Total < 0 {
		return fmt.Errorf("negative attendance counts: %d/%d", r.Attended, r.Total)
	}
	if r.Attended > r.Total {
		return fmt.Errorf("attended exceeds classes held: %d/%d", r.Attended, r.Total)
	}
	return nil
}

// Result bundles a subject's raw counts with the derived projections.
type Result struct {
	Attended       int     `json:"attended"`
	Total          int     `json:"total"`
	Percentage     float64 `json:"percentage"`
	Needed         int     `json:"needed"`
	BunksAvailable int     `json:"bunks_available"`
}

// Percentage returns the current attendance percentage, 0 when no
// classes have been held yet.
func Percentage(attended, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(attended) / float64(total)
}

func clampTarget(target float64) float64 {
	if target > 100 {
		return 100
	}
	if target < 0 {
		return 0
	}
	return target
}

// ClassesNeeded returns the smallest number of consecutive classes that
// must all be attended to bring the percentage up to target. Returns 0
// when the target is already met. Targets outside [0, 100] are clamped,
// a target above 100 can never be reached and would otherwise make the
// bound below meaningless.
func ClassesNeeded(attended, total int, target float64) int {
	target = clampTarget(target)
	if Percentage(attended, total) >= target {
		return 0
	}

	meets := func(k int) bool {
		return 100*float64(attended+k) >= target*float64(total+k)
	}

	if target == 100 {
		// nothing has been held yet, a single attended class is a
		// perfect record; once a class has been missed a perfect
		// record is unrecoverable and there is nothing to report
		if total == 0 {
			return 1
		}
		return 0
	}

	// closed form of 100(attended+k) >= target(total+k), then nudge to
	// keep the >= boundary exact despite float rounding
	k := int(math.Ceil((target*float64(total) - 100*float64(attended)) / (100 - target)))
	if k < 0 {
		k = 0
	}
	for k > 0 && meets(k-1) {
		k--
	}
	for !meets(k) {
		k++
	}
	return k
}

// ClassesBunkable returns the largest number of upcoming classes that
// can be missed in a row while the percentage after the miss still
// meets target. Returns 0 when the student is already below target, and
// 0 for degenerate thresholds (target <= 0 puts no bound on misses).
func ClassesBunkable(attended, total int, target float64) int {
	target = clampTarget(target)
	if target <= 0 {
		return 0
	}
	if Percentage(attended, total) < target {
		return 0
	}

	holds := func(b int) bool {
		return 100*float64(attended) >= target*float64(total+b+1)
	}
	if !holds(0) {
		return 0
	}

	b := int(math.Floor(100*float64(attended)/target - float64(total) - 1))
	if b < 0 {
		b = 0
	}
	for b > 0 && !holds(b) {
		b--
	}
	for holds(b + 1) {
		b++
	}
	return b
}

// Project computes the full derived record for one subject.
func Project(r Record, target float64) Result {
	return Result{
		Attended:       r.Attended,
		Total:          r.Total,
		Percentage:     Percentage(r.Attended, r.Total),
		Needed:         ClassesNeeded(r.Attended, r.Total, target),
		BunksAvailable: ClassesBunkable(r.Attended, r.Total, target),
	}
}
