// Package midi is the boundary to the source format: it decodes
// Standard MIDI Files into the normalized track/note lists the
// pipeline consumes. Nothing downstream of this package touches SMF.
package midi

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/TingluoHuang/music-player/model"
)

const defaultBPM = 120

// ReadFile parses an SMF file.
func ReadFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading midi file: %w", err)
	}
	return Parse(dat)
}

// Parse decodes raw SMF bytes.
func Parse(dat []byte) (s *smf.SMF, e error) {
	// the smf parser panics on some malformed files
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("error parsing midi file: %w", err)
	}
	return res, nil
}

// ExtractTracks walks every track once, pairs note-ons with their
// note-offs and returns normalized tracks with times in seconds,
// plus the song tempo (the first tempo event, or 120 when none).
func ExtractTracks(s *smf.SMF) ([]model.RawTrack, int) {
	tracks := make([]model.RawTrack, 0, len(s.Tracks))
	bpm := 0

	for _, events := range s.Tracks {
		var t model.RawTrack
		open := make(map[[2]uint8]model.RawNoteEvent)
		var absTicks int64
		var lastTime float64

		for _, event := range events {
			absTicks += int64(event.Delta)
			seconds := float64(s.TimeAt(absTicks)) / 1e6
			if seconds > lastTime {
				lastTime = seconds
			}

			var trackName string
			var tempo float64
			var channel, key, velocity uint8
			switch {
			case event.Message.GetMetaTrackName(&trackName):
				if t.Name == "" {
					t.Name = trackName
				}
			case event.Message.GetMetaTempo(&tempo):
				if bpm == 0 && tempo > 0 {
					bpm = int(math.Round(tempo))
				}
			case event.Message.GetNoteStart(&channel, &key, &velocity):
				open[[2]uint8{channel, key}] = model.RawNoteEvent{
					Pitch:   int(key),
					Channel: int(channel),
					Start:   seconds,
				}
			case event.Message.GetNoteEnd(&channel, &key):
				id := [2]uint8{channel, key}
				note, ok := open[id]
				if !ok {
					continue
				}
				delete(open, id)
				note.Duration = seconds - note.Start
				if note.Duration <= 0 {
					continue
				}
				t.Notes = append(t.Notes, note)
			}
		}

		// close anything left hanging at the end of the track
		for _, note := range open {
			note.Duration = lastTime - note.Start
			if note.Duration <= 0 {
				continue
			}
			t.Notes = append(t.Notes, note)
		}

		sort.SliceStable(t.Notes, func(i, j int) bool {
			return t.Notes[i].Start < t.Notes[j].Start
		})
		tracks = append(tracks, t)
	}

	if bpm == 0 {
		bpm = defaultBPM
	}
	return tracks, bpm
}
