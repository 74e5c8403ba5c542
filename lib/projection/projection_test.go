package projection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPercentage(t *testing.T) {
	require.Equal(t, 0.0, Percentage(0, 0))
	require.Equal(t, 75.0, Percentage(30, 40))
	require.Equal(t, 100.0, Percentage(12, 12))

	for attended := 0; attended <= 50; attended++ {
		for total := attended; total <= 50; total++ {
			p := Percentage(attended, total)
			require.GreaterOrEqual(t, p, 0.0)
			require.LessOrEqual(t, p, 100.0)
		}
	}
}

func TestClassesNeeded(t *testing.T) {
	// worked example: smallest k with 20+k >= 0.75(30+k) is k=10,
	// giving exactly 30/40 = 75%
	require.Equal(t, 10, ClassesNeeded(20, 30, 75))

	require.Equal(t, 0, ClassesNeeded(30, 40, 75))
	require.Equal(t, 0, ClassesNeeded(40, 40, 75))
	require.Equal(t, 0, ClassesNeeded(0, 0, 75))

	// already at/above target always reports zero
	for attended := 0; attended <= 40; attended++ {
		for total := attended; total <= 40; total++ {
			if Percentage(attended, total) >= 75 {
				require.Equal(t, 0, ClassesNeeded(attended, total, 75))
			}
		}
	}

	// the returned k is minimal and satisfies the >= boundary
	for attended := 0; attended <= 40; attended++ {
		for total := attended; total <= 40; total++ {
			k := ClassesNeeded(attended, total, 80)
			require.GreaterOrEqual(t, Percentage(attended+k, total+k), 80.0)
			if k > 0 {
				require.Less(t, Percentage(attended+k-1, total+k-1), 80.0)
			}
		}
	}
}

func TestClassesNeededDegenerateTargets(t *testing.T) {
	// targets above 100 are clamped instead of searching forever
	require.Equal(t, 0, ClassesNeeded(20, 30, 120))
	require.Equal(t, 0, ClassesNeeded(20, 30, -5))

	// no classes held yet: one attended class is a perfect record
	require.Equal(t, 1, ClassesNeeded(0, 0, 100))
	// a missed class makes a perfect record unrecoverable
	require.Equal(t, 0, ClassesNeeded(29, 30, 100))
	require.Equal(t, 0, ClassesNeeded(30, 30, 100))
}

func TestClassesBunkable(t *testing.T) {
	// worked example: largest b with 30/(35+b+1) >= 0.75 is b=4
	require.Equal(t, 4, ClassesBunkable(30, 35, 75))

	require.Equal(t, 0, ClassesBunkable(20, 30, 75))
	require.Equal(t, 0, ClassesBunkable(0, 0, 75))

	// below target always reports zero
	for attended := 0; attended <= 40; attended++ {
		for total := attended; total <= 40; total++ {
			if Percentage(attended, total) < 75 {
				require.Equal(t, 0, ClassesBunkable(attended, total, 75))
			}
		}
	}

	// the returned b is maximal and keeps the boundary after b+1 more
	// held classes
	for attended := 0; attended <= 40; attended++ {
		for total := attended; total <= 40; total++ {
			if Percentage(attended, total) < 80 {
				continue
			}
			b := ClassesBunkable(attended, total, 80)
			if b > 0 {
				require.GreaterOrEqual(t, Percentage(attended, total+b+1), 80.0)
				require.Less(t, Percentage(attended, total+b+2), 80.0)
			}
		}
	}
}

func TestRecordValidate(t *testing.T) {
	require.NoError(t, Record{Attended: 20, Total: 30}.Validate())
	require.NoError(t, Record{}.Validate())
	require.Error(t, Record{Attended: 31, Total: 30}.Validate())
	require.Error(t, Record{Attended: -1, Total: 30}.Validate())
	require.Error(t, Record{Attended: 0, Total: -2}.Validate())
}

func TestProject(t *testing.T) {
	res := Project(Record{Attended: 20, Total: 30}, 75)
	require.Equal(t, Result{
		Attended:       20,
		Total:          30,
		Percentage:     Percentage(20, 30),
		Needed:         10,
		BunksAvailable: 0,
	}, res)

	// repeated computation over identical inputs is identical
	require.Equal(t, res, Project(Record{Attended: 20, Total: 30}, 75))
}
