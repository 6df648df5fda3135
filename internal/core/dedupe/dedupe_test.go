package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDuplicateIndices(t *testing.T) {
	keys := []string{
		Key("Hedda", ""),
		Key("Tesman", ""),
		Key(" Hedda ", ""),
		Key("Hedda", "1"),
		"",
		"",
	}

	dupes := DuplicateIndices(keys)

	assert.Len(t, dupes, 2)
	assert.True(t, dupes[0])
	assert.True(t, dupes[2])
	assert.False(t, dupes[3], "a differentiator makes the key distinct")
	assert.False(t, dupes[4], "empty keys are never duplicates")
}

func TestKey_NormalizesUnicode(t *testing.T) {
	composed := "Ros\u00e9"
	decomposed := "Rose\u0301"

	assert.Equal(t, Key(composed), Key(decomposed))
	assert.Equal(t, "", Key("", "  "))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "Ros\u00e9", Normalize("  Rose\u0301 "))
	assert.Equal(t, Key("Rose\u0301"), Normalize("Rose\u0301"))
}
