package attendance

import (
	"testing"

	"bunkmate-backend/lib/projection"

	"github.com/stretchr/testify/require"
)

func TestLinkSubjectNamesExact(t *testing.T) {
	names := map[string]string{
		"CS301": "Theory of Computation",
		"MA201": "Linear Algebra",
	}

	linked := LinkSubjectNames([]string{"CS301", "ma201"}, names)
	require.Equal(t, "Theory of Computation", linked["CS301"])
	require.Equal(t, "Linear Algebra", linked["ma201"])
}

func TestLinkSubjectNamesFuzzy(t *testing.T) {
	names := map[string]string{
		"CS301": "Theory of Computation",
	}

	// some deployments pad codes with whitespace variants
	linked := LinkSubjectNames([]string{"CS 301"}, names)
	require.Equal(t, "Theory of Computation", linked["CS 301"])
}

func TestLinkSubjectNamesNoMatch(t *testing.T) {
	names := map[string]string{
		"CS301": "Theory of Computation",
	}

	linked := LinkSubjectNames([]string{"ZZ999"}, names)
	_, ok := linked["ZZ999"]
	require.False(t, ok)
}

func TestAttachSubjectNames(t *testing.T) {
	report, err := BuildReport(map[string]projection.Record{
		"CS301": {Attended: 20, Total: 30},
		"ZZ999": {Attended: 5, Total: 10},
	}, 75)
	require.NoError(t, err)

	AttachSubjectNames(report, map[string]string{
		"CS301": "Theory of Computation",
	})

	require.Equal(t, "Theory of Computation", report.Results["CS301"].Name)
	require.Equal(t, "", report.Results["ZZ999"].Name)
}
