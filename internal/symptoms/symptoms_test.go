package symptoms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDropsUnknownTags(t *testing.T) {
	result := Normalize([]string{"fever", "dragon_pox", "cough"}, "")
	assert.Equal(t, []string{"fever", "cough"}, result)
}

func TestNormalizeDedupesPreservingOrder(t *testing.T) {
	result := Normalize([]string{"cough", "fever", "cough", "fever"}, "")
	assert.Equal(t, []string{"cough", "fever"}, result)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	once := Normalize([]string{"headache", "nausea", "bogus"}, "")
	twice := Normalize(once, "")
	assert.Equal(t, once, twice)
}

func TestNormalizeEmptyInput(t *testing.T) {
	assert.Empty(t, Normalize(nil, ""))
	assert.Empty(t, Normalize([]string{}, "   "))
}

func TestNormalizeWhitespaceOtherTextIgnored(t *testing.T) {
	result := Normalize([]string{"fever"}, "   \t ")
	assert.Equal(t, []string{"fever"}, result)
}

func TestNormalizeAcceptedOtherTextAppendsMarker(t *testing.T) {
	result := Normalize([]string{"fever", "cough"}, "mild rash")
	assert.Equal(t, []string{"fever", "cough", "other"}, result)
}

func TestNormalizeRejectsScriptInjection(t *testing.T) {
	result := Normalize([]string{"fever"}, "<script>alert(1)</script>")
	assert.Equal(t, []string{"fever"}, result)
}

func TestNormalizeOtherMarkerNotDuplicated(t *testing.T) {
	result := Normalize([]string{"other", "fever"}, "stiff neck")
	assert.Equal(t, []string{"other", "fever"}, result)
}

func TestNormalizeOtherTextLengthLimit(t *testing.T) {
	atLimit := strings.Repeat("a", 80)
	assert.Equal(t, []string{"other"}, Normalize(nil, atLimit))

	overLimit := strings.Repeat("a", 81)
	assert.Empty(t, Normalize(nil, overLimit))
}

func TestNormalizeOtherTextAllowedPunctuation(t *testing.T) {
	result := Normalize(nil, "can't sleep, dizzy - since Mon.")
	assert.Equal(t, []string{"other"}, result)
}
