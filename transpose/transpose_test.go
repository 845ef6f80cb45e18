package transpose

import (
	"testing"

	"github.com/TingluoHuang/music-player/keymap"
	"github.com/TingluoHuang/music-player/model"
	"github.com/stretchr/testify/assert"
)

func notesAt(pitches ...int) []model.RawNoteEvent {
	notes := make([]model.RawNoteEvent, len(pitches))
	for i, p := range pitches {
		notes[i] = model.RawNoteEvent{Pitch: p, Start: float64(i), Duration: 0.5}
	}
	return notes
}

func TestCandidateSetIsClosedAndOrdered(t *testing.T) {
	cands := candidates()

	assert := assert.New(t)
	assert.Equal(132, len(cands))

	// no duplicate shifts
	seen := make(map[int]bool)
	for _, c := range cands {
		assert.False(seen[c.shift])
		seen[c.shift] = true
	}

	// absolute shift never decreases
	for i := 1; i < len(cands); i++ {
		prev, curr := abs(cands[i-1].shift), abs(cands[i].shift)
		assert.LessOrEqual(prev, curr)
	}
	assert.Equal(0, cands[0].shift)
}

func TestInRangeNotesNeedNoShift(t *testing.T) {
	notes := notesAt(60, 64, 67, 72, 95)

	assert := assert.New(t)
	assert.Equal(0, BestShift(notes, 60, 95))
}

func TestOctaveBelowShiftsUp(t *testing.T) {
	notes := notesAt(36, 40, 43, 48)

	// an exact octave multiple fixes everything; the smallest winning
	// absolute shift is +24
	assert := assert.New(t)
	assert.Equal(24, BestShift(notes, 60, 95))
}

func TestAboveRangeShiftsDown(t *testing.T) {
	// -8 is the smallest absolute shift that fits all three notes
	notes := notesAt(96, 100, 103)

	assert := assert.New(t)
	assert.Equal(-8, BestShift(notes, 60, 95))
}

func TestClampDistanceBreaksCountTies(t *testing.T) {
	// span wider than the range: no shift fits everything, so the
	// winner minimizes how far the leftovers hang outside
	notes := notesAt(50, 60, 70, 80, 90, 100, 110)
	shift := BestShift(notes, 60, 95)

	count, dist := evaluate(notes, shift, 60, 95)
	bestCount, bestDist := -1, 0
	for _, c := range candidates() {
		n, d := evaluate(notes, c.shift, 60, 95)
		if n > bestCount || (n == bestCount && d < bestDist) {
			bestCount, bestDist = n, d
		}
	}

	assert := assert.New(t)
	assert.Equal(bestCount, count)
	assert.Equal(bestDist, dist)
}

func TestBestShiftIsDeterministic(t *testing.T) {
	notes := notesAt(55, 59, 62, 67, 71)

	assert := assert.New(t)
	first := BestShift(notes, 60, 95)
	for i := 0; i < 5; i++ {
		assert.Equal(first, BestShift(notes, 60, 95))
	}
}

func TestEmptyInput(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0, BestShift(nil, 60, 95))
}

func TestApplyMapsEverythingOntoTheKeymap(t *testing.T) {
	km := keymap.New(4)
	notes := notesAt(36, 61, 70, 120)
	mapped := Apply(km, notes, 0)

	assert := assert.New(t)
	assert.Equal(len(notes), len(mapped))
	for i, m := range mapped {
		assert.True(km.IsExactMatch(m.Pitch))
		key, ok := km.KeyOf(m.Pitch)
		assert.True(ok)
		assert.Equal(key, m.Key)
		assert.Equal(notes[i].Start, m.Start)
		assert.Equal(notes[i].Duration, m.Duration)
	}

	// in-set pitches pass through untouched
	assert.Equal(61, mapped[1].Pitch)
	assert.Equal(70, mapped[2].Pitch)
}
