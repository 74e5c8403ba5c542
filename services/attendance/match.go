package attendance

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// attendance rows and the subjects page usually agree on codes exactly,
// the fuzzy fallback covers deployments that key one of the two by
// "CODE - Name" strings instead
const minNameSimilarity = 0.85

func normalizeSubject(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// LinkSubjectNames resolves the display name for every scraped subject
// key. Exact code matches win, then the closest JaroWinkler match above
// a similarity floor, then the raw key is kept as-is.
func LinkSubjectNames(subjects []string, names map[string]string) map[string]string {
	normalized := make(map[string]string, len(names))
	for code, name := range names {
		normalized[normalizeSubject(code)] = name
	}

	out := make(map[string]string, len(subjects))
	for _, subject := range subjects {
		if name, ok := normalized[normalizeSubject(subject)]; ok {
			out[subject] = name
			continue
		}

		var bestSimilarity float64
		var bestName string
		for code, name := range names {
			similarity := matchr.JaroWinkler(
				normalizeSubject(subject),
				normalizeSubject(code),
				false,
			)
			if similarity > bestSimilarity {
				bestSimilarity = similarity
				bestName = name
			}
		}

		if bestSimilarity >= minNameSimilarity {
			out[subject] = bestName
		}
	}
	return out
}

// AttachSubjectNames decorates a built report in place.
func AttachSubjectNames(report Report, names map[string]string) {
	if len(names) == 0 {
		return
	}

	subjects := make([]string, 0, len(report.Results))
	for subject := range report.Results {
		subjects = append(subjects, subject)
	}

	linked := LinkSubjectNames(subjects, names)
	for subject, name := range linked {
		entry := report.Results[subject]
		entry.Name = name
		report.Results[subject] = entry
	}
}
