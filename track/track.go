// Package track picks the most melody-like track out of a decoded
// source by a deterministic point system.
package track

import (
	"sort"
	"strings"

	"github.com/TingluoHuang/music-player/model"
)

const percussionChannel = 9

// The melodic band is the playable window itself: pitches that need
// no transposition at the default base octave.
const (
	melodicBandLow  = 60
	melodicBandHigh = 95
)

var melodyKeywords = []string{"melody", "lead", "vocal", "voice", "solo"}
var percussionKeywords = []string{"drum", "perc", "percussion", "beat", "kick"}

// Score is one track's rank in the selection.
type Score struct {
	Index  int
	Name   string
	Points int
}

// Rank scores every track that has notes and returns them best first.
// Ties keep the original track order.
func Rank(tracks []model.RawTrack) []Score {
	var scores []Score
	for i, t := range tracks {
		if len(t.Notes) == 0 {
			continue
		}
		scores = append(scores, Score{Index: i, Name: t.Name, Points: score(t)})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Points > scores[j].Points
	})
	return scores
}

// Select returns the index of the best track, or false when no track
// has any notes. A single note-bearing track is selected without
// scoring.
func Select(tracks []model.RawTrack) (int, bool) {
	withNotes := -1
	count := 0
	for i, t := range tracks {
		if len(t.Notes) > 0 {
			withNotes = i
			count++
		}
	}
	switch count {
	case 0:
		return -1, false
	case 1:
		return withNotes, true
	}
	return Rank(tracks)[0].Index, true
}

func score(t model.RawTrack) int {
	points := 0
	name := strings.ToLower(t.Name)

	for _, kw := range melodyKeywords {
		if strings.Contains(name, kw) {
			points += 500
			break
		}
	}
	for _, kw := range percussionKeywords {
		if strings.Contains(name, kw) {
			points -= 500
			break
		}
	}

	if allOnChannel(t.Notes, percussionChannel) {
		points -= 1000
	}

	inBand := 0
	distinct := make(map[int]bool)
	for _, n := range t.Notes {
		if n.Pitch >= melodicBandLow && n.Pitch <= melodicBandHigh {
			inBand++
		}
		distinct[n.Pitch] = true
	}
	points += int(200 * float64(inBand) / float64(len(t.Notes)))
	points += int(150 * monophonyRatio(t.Notes))

	switch n := len(t.Notes); {
	case n < 10:
		points -= 200
	case n >= 20 && n <= 1000:
		points += 100
	case n > 1000:
		points += 50
	}

	if len(distinct) >= 8 && len(distinct) <= 32 {
		points += 80
	}

	return points
}

func allOnChannel(notes []model.RawNoteEvent, channel int) bool {
	for _, n := range notes {
		if n.Channel != channel {
			return false
		}
	}
	return true
}

// monophonyRatio is the fraction of notes whose onset is not covered
// by the immediately preceding note's sounding interval. A pure
// melody line scores 1.
func monophonyRatio(notes []model.RawNoteEvent) float64 {
	ordered := make([]model.RawNoteEvent, len(notes))
	copy(ordered, notes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start < ordered[j].Start
	})

	mono := 1
	for i := 1; i < len(ordered); i++ {
		prev := ordered[i-1]
		start := ordered[i].Start
		if start < prev.Start || start >= prev.Start+prev.Duration {
			mono++
		}
	}
	return float64(mono) / float64(len(ordered))
}
