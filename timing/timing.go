// Package timing snaps note times to a grid and rescales chord
// sequences the device can't keep up with.
package timing

import (
	"math"

	"github.com/TingluoHuang/music-player/model"
)

// Quantize snaps every start and duration to the grid. Durations
// never collapse below one grid step. A grid of 0 disables
// quantization; the input is copied either way.
func Quantize(notes []model.MappedNoteEvent, grid float64) []model.MappedNoteEvent {
	out := make([]model.MappedNoteEvent, len(notes))
	copy(out, notes)
	if grid <= 0 {
		return out
	}
	for i := range out {
		out[i].Start = math.Round(out[i].Start/grid) * grid
		out[i].Duration = math.Max(math.Round(out[i].Duration/grid)*grid, grid)
	}
	return out
}

// NormalizeSpeed stretches the whole timeline uniformly so the
// tightest positive gap between consecutive chord starts becomes
// minGap. Zero gaps (true chords sharing an onset) are ignored. A
// sequence that already satisfies the floor comes back unchanged.
func NormalizeSpeed(chords []model.Chord, minGap float64) []model.Chord {
	out := make([]model.Chord, len(chords))
	copy(out, chords)

	smallest := smallestGap(out)
	if smallest <= 0 || smallest >= minGap {
		return out
	}

	scale := minGap / smallest
	for i := range out {
		out[i].Start *= scale
		out[i].Duration *= scale
	}
	return out
}

func smallestGap(chords []model.Chord) float64 {
	smallest := 0.0
	for i := 1; i < len(chords); i++ {
		gap := chords[i].Start - chords[i-1].Start
		if gap <= 0 {
			continue
		}
		if smallest == 0 || gap < smallest {
			smallest = gap
		}
	}
	return smallest
}
