package severity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Severity
	}{
		{"critical", Critical},
		{"Critical", Critical},
		{"  IMPORTANT ", Important},
		{"high", Important},
		{"moderate", Moderate},
		{"medium", Moderate},
		{"low", Low},
		{"", Unknown},
		{"bogus", Unknown},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			assert.Equal(t, test.expected, Parse(test.input))
		})
	}
}

func TestHighest(t *testing.T) {
	tests := []struct {
		name     string
		values   []Severity
		expected Severity
	}{
		{
			name:     "critical wins",
			values:   []Severity{Low, Critical, Moderate},
			expected: Critical,
		},
		{
			name:     "unknown ignored",
			values:   []Severity{Unknown, Moderate},
			expected: Moderate,
		},
		{
			name:     "all unknown",
			values:   []Severity{Unknown, Unknown},
			expected: Unknown,
		},
		{
			name:     "empty",
			values:   nil,
			expected: Unknown,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Highest(test.values...))
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range All {
		if s == Unknown {
			continue
		}
		assert.Equal(t, s, Parse(s.String()))
	}
}
