package config

import (
	"fmt"
	"os"
)

// Config carries every knob of the conversion pipeline. There is no
// ambient state: callers construct one explicitly (usually from
// Default) and pass it down.
type Config struct {
	// BaseOctave is the octave of the lowest key row.
	BaseOctave int

	// MaxSimultaneousKeys is the most keys the device can actuate at
	// once.
	MaxSimultaneousKeys int

	// QuantizationGrid is the timing grid in seconds. 0 disables
	// quantization.
	QuantizationGrid float64

	// MergeTolerance is how far (seconds) a note onset may trail a
	// chord anchor and still join that chord.
	MergeTolerance float64

	// MinNoteGap is the smallest gap (seconds) the device can honor
	// between consecutive chords.
	MinNoteGap float64

	// RangeMin and RangeMax bound the playable pitch window the
	// transposition search optimizes for.
	RangeMin int
	RangeMax int
}

func Default() Config {
	return Config{
		BaseOctave:          4,
		MaxSimultaneousKeys: 2,
		QuantizationGrid:    0.05,
		MergeTolerance:      0.010,
		MinNoteGap:          0.100,
		RangeMin:            60,
		RangeMax:            95,
	}
}

// Validate rejects an unusable configuration before any processing
// happens. Nothing is ever silently clamped.
func (c Config) Validate() error {
	if c.BaseOctave < 0 || c.BaseOctave > 7 {
		return fmt.Errorf("base octave %v is outside 0-7", c.BaseOctave)
	}
	if c.MaxSimultaneousKeys < 1 {
		return fmt.Errorf("max simultaneous keys must be at least 1, got %v", c.MaxSimultaneousKeys)
	}
	if c.QuantizationGrid < 0 {
		return fmt.Errorf("quantization grid cannot be negative, got %v", c.QuantizationGrid)
	}
	if c.MergeTolerance < 0 {
		return fmt.Errorf("merge tolerance cannot be negative, got %v", c.MergeTolerance)
	}
	if c.MinNoteGap < 0 {
		return fmt.Errorf("min note gap cannot be negative, got %v", c.MinNoteGap)
	}
	if c.RangeMin > c.RangeMax {
		return fmt.Errorf("pitch range [%v, %v] is inverted", c.RangeMin, c.RangeMax)
	}
	return nil
}

// GetSongDir is where the serve command keeps converted songs.
func GetSongDir() string {
	path := os.Getenv("SONG_PATH")
	if path != "" {
		return path
	}
	return "./songs"
}
