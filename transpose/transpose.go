// Package transpose searches for the single global semitone shift
// that lands the most notes inside the playable range.
package transpose

import (
	"sort"

	"github.com/TingluoHuang/music-player/keymap"
	"github.com/TingluoHuang/music-player/model"
)

// The candidate set: every semitone offset 0-11 combined with octave
// offsets -60..+60 in steps of 12. Each resulting shift is distinct.
const maxOctaveOffset = 60

type candidate struct {
	shift    int
	semitone int
}

// candidates returns the closed candidate set in evaluation order:
// smallest absolute shift first, then smallest semitone offset. The
// order is fixed so tie-breaks are reproducible.
func candidates() []candidate {
	var cands []candidate
	for oct := -maxOctaveOffset; oct <= maxOctaveOffset; oct += 12 {
		for st := 0; st < 12; st++ {
			cands = append(cands, candidate{shift: oct + st, semitone: st})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		ai, aj := abs(cands[i].shift), abs(cands[j].shift)
		if ai != aj {
			return ai < aj
		}
		return cands[i].semitone < cands[j].semitone
	})
	return cands
}

// BestShift evaluates every candidate against the note list and picks
// the one maximizing (in-range count, -total clamp distance)
// lexicographically. The first candidate in evaluation order wins
// ties. Notes are never mutated.
func BestShift(notes []model.RawNoteEvent, rangeMin, rangeMax int) int {
	if len(notes) == 0 {
		return 0
	}

	best := candidate{}
	bestCount := -1
	bestDist := 0
	for _, cand := range candidates() {
		count, dist := evaluate(notes, cand.shift, rangeMin, rangeMax)
		if count > bestCount || (count == bestCount && dist < bestDist) {
			best = cand
			bestCount = count
			bestDist = dist
		}
	}
	return best.shift
}

// evaluate counts the notes a shift puts in range and sums the clamp
// distance of those it leaves outside.
func evaluate(notes []model.RawNoteEvent, shift, rangeMin, rangeMax int) (int, int) {
	count := 0
	dist := 0
	for _, n := range notes {
		p := n.Pitch + shift
		switch {
		case p < rangeMin:
			dist += rangeMin - p
		case p > rangeMax:
			dist += p - rangeMax
		default:
			count++
		}
	}
	return count, dist
}

// Apply shifts every note and snaps the result onto the keymap,
// producing mapped events. Notes that still fail to map (unreachable
// while the keymap covers all pitch classes) are dropped rather than
// failing the conversion.
func Apply(km *keymap.KeyMap, notes []model.RawNoteEvent, shift int) []model.MappedNoteEvent {
	mapped := make([]model.MappedNoteEvent, 0, len(notes))
	for _, n := range notes {
		pitch := km.NearestValidPitch(n.Pitch + shift)
		key, ok := km.KeyOf(pitch)
		if !ok {
			continue
		}
		mapped = append(mapped, model.MappedNoteEvent{
			Pitch:    pitch,
			Key:      key,
			Start:    n.Start,
			Duration: n.Duration,
		})
	}
	return mapped
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
