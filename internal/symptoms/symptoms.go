package symptoms

import (
	"regexp"
	"strings"
)

// TagOther marks that the patient reported a symptom outside the fixed
// vocabulary. The free text itself is never stored, only the marker.
const TagOther = "other"

var vocabulary = map[string]struct{}{
	"fever":               {},
	"cough":               {},
	"fatigue":             {},
	"nausea":              {},
	"headache":            {},
	"sore_throat":         {},
	"shortness_of_breath": {},
	"chest_pain":          {},
	"congestion":          {},
	"vomiting":            {},
	"diarrhea":            {},
	TagOther:              {},
}

// Free text must stay within a conservative character allow-list so no
// unvalidated user content reaches the store or the prediction service.
var otherTextPattern = regexp.MustCompile(`^[A-Za-z0-9 ,.'-]{1,80}$`)

// Normalize filters the selected tags against the fixed vocabulary, dropping
// unknown tags and duplicates while preserving first-seen order. A non-empty
// otherText that passes the allow-list appends the "other" marker. Invalid
// input degrades to a smaller valid set; Normalize never fails.
func Normalize(selected []string, otherText string) []string {
	result := make([]string, 0, len(selected)+1)
	seen := make(map[string]struct{}, len(selected))
	for _, tag := range selected {
		if _, known := vocabulary[tag]; !known {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}

	if acceptsOtherText(otherText) {
		if _, dup := seen[TagOther]; !dup {
			result = append(result, TagOther)
		}
	}

	return result
}

func acceptsOtherText(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	return otherTextPattern.MatchString(trimmed)
}
