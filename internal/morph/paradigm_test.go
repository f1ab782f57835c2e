package morph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lascivaroma/lasla-apn-converter/internal/model"
)

func TestParadigm(t *testing.T) {
	rows := Paradigm(model.Compact)

	// 2 numbers, 9 moods, 9 tenses, 4 voices, 3 persons.
	require.Len(t, rows, 2*9*9*4*3)

	assert.Equal(t, "Numb=Sing|Mood=Ind|Tense=Pres|Voice=Act|Person=1", rows[0].Features)
	assert.Equal(t, "Singulier Indicatif Présent Actif 1re pers", rows[0].Readable)

	last := rows[len(rows)-1]
	assert.Equal(t, "Numb=Plur|Mood=SupUm|Tense=PeriFut|Voice=SemDep|Person=3", last.Features)

	for _, r := range rows {
		assert.NotContains(t, r.Features, ErrorMarker)
		assert.NotContains(t, r.Features, "Tense=_")
		assert.Len(t, strings.Split(r.Features, "|"), 5)
	}
}

func TestParadigm_MoodOrderFollowsVariant(t *testing.T) {
	perMood := 9 * 4 * 3

	compact := Paradigm(model.Compact)
	extended := Paradigm(model.Extended)
	require.Equal(t, len(compact), len(extended))

	assert.True(t, strings.Contains(compact[perMood].Features, "Mood=Imp"))
	assert.True(t, strings.Contains(extended[perMood].Features, "Mood=Sub"))
}
