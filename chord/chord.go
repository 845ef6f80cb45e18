// Package chord turns mapped note events into device-playable chords:
// near-simultaneous notes merge into one chord, then each chord is cut
// down to what the device can actually press.
package chord

import (
	"math"
	"sort"

	"github.com/TingluoHuang/music-player/keymap"
	"github.com/TingluoHuang/music-player/model"
)

// Merge groups notes whose onsets fall within tolerance of a group
// anchor. The anchor is the first ungrouped note's start time, not the
// previous member's, so a long smear of onsets can't chain into one
// giant chord. Duplicate keys inside a group collapse; the chord
// duration is the longest member's.
func Merge(notes []model.MappedNoteEvent, tolerance float64) []model.Chord {
	ordered := make([]model.MappedNoteEvent, len(notes))
	copy(ordered, notes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start < ordered[j].Start
	})

	var chords []model.Chord
	for i := 0; i < len(ordered); {
		anchor := ordered[i].Start
		var keys []model.Key
		seen := make(map[model.Key]bool)
		duration := 0.0

		j := i
		for ; j < len(ordered) && ordered[j].Start-anchor <= tolerance; j++ {
			if !seen[ordered[j].Key] {
				seen[ordered[j].Key] = true
				keys = append(keys, ordered[j].Key)
			}
			if ordered[j].Duration > duration {
				duration = ordered[j].Duration
			}
		}

		chords = append(chords, model.Chord{
			Start:    math.Round(anchor*1000) / 1000,
			Keys:     keys,
			Duration: duration,
		})
		i = j
	}
	return chords
}

// Simplify enforces the device limits on one chord: Shift and Ctrl
// can't be held together, and at most maxKeys keys fit under the
// hand. The result is never empty when the input isn't.
func Simplify(km *keymap.KeyMap, c model.Chord, maxKeys int) model.Chord {
	keys := resolveModifierConflict(c.Keys)
	c.Keys = limitSize(km, keys, maxKeys)
	return c
}

// resolveModifierConflict keeps all naturals plus whichever modifier
// class has more members. An exact tie keeps the Shift class.
func resolveModifierConflict(keys []model.Key) []model.Key {
	var shifts, ctrls int
	for _, k := range keys {
		switch k.Modifier {
		case model.ModifierShift:
			shifts++
		case model.ModifierCtrl:
			ctrls++
		}
	}
	if shifts == 0 || ctrls == 0 {
		return keys
	}

	drop := model.ModifierCtrl
	if ctrls > shifts {
		drop = model.ModifierShift
	}
	kept := make([]model.Key, 0, len(keys))
	for _, k := range keys {
		if k.Modifier != drop {
			kept = append(kept, k)
		}
	}
	return kept
}

// limitSize ranks keys by pitch and keeps at most maxKeys of them:
// always the highest (the melody), then the lowest distinct pitch if
// there's room, then the next-highest ones.
func limitSize(km *keymap.KeyMap, keys []model.Key, maxKeys int) []model.Key {
	if len(keys) <= maxKeys {
		return keys
	}

	byPitch := make([]model.Key, len(keys))
	copy(byPitch, keys)
	sort.SliceStable(byPitch, func(i, j int) bool {
		return pitchOf(km, byPitch[i]) > pitchOf(km, byPitch[j])
	})

	highest := byPitch[0]
	lowest := byPitch[len(byPitch)-1]

	kept := []model.Key{highest}
	if maxKeys >= 2 && pitchOf(km, lowest) != pitchOf(km, highest) {
		kept = append(kept, lowest)
	}
	for _, k := range byPitch[1:] {
		if len(kept) >= maxKeys {
			break
		}
		if k == highest || k == lowest {
			continue
		}
		kept = append(kept, k)
	}

	// present the chord highest pitch first
	sort.SliceStable(kept, func(i, j int) bool {
		return pitchOf(km, kept[i]) > pitchOf(km, kept[j])
	})
	return kept
}

func pitchOf(km *keymap.KeyMap, k model.Key) int {
	pitch, ok := km.PitchOf(k.String())
	if !ok {
		return -1
	}
	return pitch
}
