// Package song persists conversion results. The on-disk form is the
// JSON record consumed by the playback side; save then load is an
// exact round trip.
package song

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/TingluoHuang/music-player/model"
)

// Encode writes a song as JSON.
func Encode(w io.Writer, s model.Song) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// Decode reads a song back and validates the record.
func Decode(r io.Reader) (model.Song, error) {
	var s model.Song
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return model.Song{}, fmt.Errorf("could not decode song: %w", err)
	}
	if err := Validate(s); err != nil {
		return model.Song{}, err
	}
	return s, nil
}

func Save(path string, s model.Song) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create song file: %w", err)
	}
	defer f.Close()
	return Encode(f, s)
}

func Load(path string) (model.Song, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Song{}, fmt.Errorf("could not open song file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Validate checks the persisted-record invariants: times non-negative
// and non-decreasing, key lists non-empty and duplicate-free,
// durations positive. Key-string parsing is already enforced by the
// Key text unmarshaler.
func Validate(s model.Song) error {
	prev := 0.0
	for i, c := range s.Chords {
		if c.Start < 0 {
			return fmt.Errorf("chord %v starts at negative time %v", i, c.Start)
		}
		if c.Start < prev {
			return fmt.Errorf("chord %v at %v starts before chord %v at %v", i, c.Start, i-1, prev)
		}
		prev = c.Start
		if c.Duration <= 0 {
			return fmt.Errorf("chord %v has non-positive duration %v", i, c.Duration)
		}
		if len(c.Keys) == 0 {
			return fmt.Errorf("chord %v has no keys", i)
		}
		seen := make(map[model.Key]bool)
		for _, k := range c.Keys {
			if seen[k] {
				return fmt.Errorf("chord %v repeats key %v", i, k)
			}
			seen[k] = true
		}
	}
	return nil
}
