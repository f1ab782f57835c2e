package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBetaCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"lo/gos", "λόγος"},
		{"LO/GOS", "λόγος"},
		{"*swkra/ths", "Σωκράτης"},
		{"*)aqhnai=oi", "Ἀθηναῖοι"},
		{"qeo/s1", "θεόσ"},
		{"kai/ ", "καί "},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, BetaCode(tt.in))
		})
	}
}

func TestBetaCode_SigmaShape(t *testing.T) {
	// medial when a letter follows, final before punctuation
	assert.Equal(t, "σο", BetaCode("so"))
	assert.Equal(t, "ος·", BetaCode("os:"))
}
