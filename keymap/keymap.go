package keymap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/TingluoHuang/music-player/model"
)

// naturalOffsets are the pitch-class offsets of the 7 natural keys of
// one row, in column order.
var naturalOffsets = [7]int{0, 2, 4, 5, 7, 9, 11}

// chromatics assigns the 5 chromatic pitch-class offsets to a
// canonical modifier+column, plus the enharmonic alias spelling on the
// adjacent natural.
var chromatics = []struct {
	offset   int
	col      int
	modifier model.Modifier
	aliasCol int
	aliasMod model.Modifier
}{
	{1, 0, model.ModifierShift, 1, model.ModifierCtrl},  // C# / Db
	{3, 2, model.ModifierCtrl, 1, model.ModifierShift},  // Eb / D#
	{6, 3, model.ModifierShift, 4, model.ModifierCtrl},  // F# / Gb
	{8, 4, model.ModifierShift, 5, model.ModifierCtrl},  // G# / Ab
	{10, 6, model.ModifierCtrl, 5, model.ModifierShift}, // Bb / A#
}

var noteNames = [12]string{"C", "C#", "D", "Eb", "E", "F", "F#", "G", "G#", "A", "Bb", "B"}

// KeyMap is the bidirectional pitch <-> key table for one base
// octave. All tables are baked at construction; a KeyMap is immutable
// and safe for concurrent reads.
type KeyMap struct {
	baseOctave int
	basePitch  int
	pitchToKey map[int]model.Key
	keyToPitch map[string]int
	pitches    []int
}

// New builds the table for 3 rows starting at the given base octave.
func New(baseOctave int) *KeyMap {
	km := &KeyMap{
		baseOctave: baseOctave,
		basePitch:  (baseOctave + 1) * 12,
		pitchToKey: make(map[int]model.Key),
		keyToPitch: make(map[string]int),
	}
	for row := 0; row < 3; row++ {
		rowPitch := km.basePitch + row*12
		for col, offset := range naturalOffsets {
			key := model.Key{Row: row, Col: col}
			km.register(rowPitch+offset, key)
		}
		for _, ch := range chromatics {
			key := model.Key{Row: row, Col: ch.col, Modifier: ch.modifier}
			km.register(rowPitch+ch.offset, key)

			alias := model.Key{Row: row, Col: ch.aliasCol, Modifier: ch.aliasMod}
			km.registerAlias(rowPitch+ch.offset, alias)
		}
	}
	km.pitches = make([]int, 0, len(km.pitchToKey))
	for p := range km.pitchToKey {
		km.pitches = append(km.pitches, p)
	}
	sort.Ints(km.pitches)
	return km
}

func (km *KeyMap) register(pitch int, key model.Key) {
	km.pitchToKey[pitch] = key
	km.keyToPitch[strings.ToLower(key.String())] = pitch
}

// registerAlias adds a lookup-only spelling, unless some canonical
// assignment already claimed the string.
func (km *KeyMap) registerAlias(pitch int, key model.Key) {
	name := strings.ToLower(key.String())
	if _, taken := km.keyToPitch[name]; taken {
		return
	}
	km.keyToPitch[name] = pitch
}

// KeyOf returns the canonical key for a pitch, if the pitch is in the
// valid set.
func (km *KeyMap) KeyOf(pitch int) (model.Key, bool) {
	key, ok := km.pitchToKey[pitch]
	return key, ok
}

// PitchOf resolves a key string, canonical or alias, case-insensitive.
func (km *KeyMap) PitchOf(keyStr string) (int, bool) {
	pitch, ok := km.keyToPitch[strings.ToLower(keyStr)]
	return pitch, ok
}

func (km *KeyMap) IsExactMatch(pitch int) bool {
	_, ok := km.pitchToKey[pitch]
	return ok
}

// NearestValidPitch snaps any pitch to the closest member of the
// valid set, preferring the same pitch class in the closest row. Ties
// go to the lowest row. It is total and idempotent.
func (km *KeyMap) NearestValidPitch(pitch int) int {
	if km.IsExactMatch(pitch) {
		return pitch
	}

	class := ((pitch % 12) + 12) % 12
	best := -1
	bestDist := 0
	for row := 0; row < 3; row++ {
		candidate := km.basePitch + row*12 + class
		if !km.IsExactMatch(candidate) {
			continue
		}
		dist := abs(pitch - candidate)
		if best < 0 || dist < bestDist {
			best = candidate
			bestDist = dist
		}
	}
	if best >= 0 {
		return best
	}

	// Unreachable while all 12 classes are covered, but stay total.
	best = km.pitches[0]
	bestDist = abs(pitch - best)
	for _, p := range km.pitches[1:] {
		if d := abs(pitch - p); d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best
}

// NameOf is the canonical note name, independent of the keyboard
// assignment.
func (km *KeyMap) NameOf(pitch int) string {
	class := ((pitch % 12) + 12) % 12
	octave := pitch/12 - 1
	if pitch < 0 && pitch%12 != 0 {
		octave--
	}
	return fmt.Sprintf("%s%d", noteNames[class], octave)
}

// Pitches returns the valid set in ascending order. Callers must not
// mutate the returned slice.
func (km *KeyMap) Pitches() []int {
	return km.pitches
}

// DisplayTable dumps the mapping grouped by row, for diagnostics.
func (km *KeyMap) DisplayTable() string {
	var b strings.Builder
	for row := 0; row < 3; row++ {
		fmt.Fprintf(&b, "Row %v (octave %v):\n", row, km.baseOctave+row)
		rowPitch := km.basePitch + row*12
		for offset := 0; offset < 12; offset++ {
			pitch := rowPitch + offset
			key := km.pitchToKey[pitch]
			fmt.Fprintf(&b, "  %-4s %3d  %s\n", km.NameOf(pitch), pitch, key)
		}
	}
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
