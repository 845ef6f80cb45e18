// Package pipeline runs the whole conversion: track selection,
// transposition, quantization, chord formation, simplification and
// speed normalization. Every stage is a pure function over the
// previous stage's output, so conversions are deterministic and
// independent songs can run concurrently.
package pipeline

import (
	"sort"

	"github.com/TingluoHuang/music-player/chord"
	"github.com/TingluoHuang/music-player/config"
	"github.com/TingluoHuang/music-player/keymap"
	"github.com/TingluoHuang/music-player/model"
	"github.com/TingluoHuang/music-player/timing"
	"github.com/TingluoHuang/music-player/track"
	"github.com/TingluoHuang/music-player/transpose"
)

// Options carries the per-song inputs around the Config.
type Options struct {
	Title string
	BPM   int

	// TrackIndex forces a source track. Negative means pick the most
	// melody-like track automatically.
	TrackIndex int
}

// Convert runs the full pipeline over decoded tracks. A selection
// with no notes is not an error: the song comes back with its title
// and bpm and an empty chord list.
func Convert(tracks []model.RawTrack, opts Options, cfg config.Config) (model.Song, error) {
	if err := cfg.Validate(); err != nil {
		return model.Song{}, err
	}

	song := model.Song{Title: opts.Title, BPM: opts.BPM}

	idx := opts.TrackIndex
	if idx < 0 {
		selected, ok := track.Select(tracks)
		if !ok {
			return song, nil
		}
		idx = selected
	}
	if idx >= len(tracks) || len(tracks[idx].Notes) == 0 {
		return song, nil
	}
	notes := tracks[idx].Notes

	km := keymap.New(cfg.BaseOctave)
	shift := transpose.BestShift(notes, cfg.RangeMin, cfg.RangeMax)
	mapped := transpose.Apply(km, notes, shift)
	mapped = timing.Quantize(mapped, cfg.QuantizationGrid)

	chords := chord.Merge(mapped, cfg.MergeTolerance)
	for i := range chords {
		chords[i] = chord.Simplify(km, chords[i], cfg.MaxSimultaneousKeys)
	}
	chords = timing.NormalizeSpeed(chords, cfg.MinNoteGap)

	sort.SliceStable(chords, func(i, j int) bool {
		return chords[i].Start < chords[j].Start
	})
	song.Chords = chords
	return song, nil
}
