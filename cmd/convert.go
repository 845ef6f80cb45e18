package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TingluoHuang/music-player/config"
	"github.com/TingluoHuang/music-player/midi"
	"github.com/TingluoHuang/music-player/pipeline"
	"github.com/TingluoHuang/music-player/song"
	"github.com/TingluoHuang/music-player/util"
)

var convertFlags struct {
	title      string
	trackIndex int
	baseOctave int
	maxKeys    int
	grid       float64
	tolerance  float64
	minGap     float64
	rangeMin   int
	rangeMax   int
}

func init() {
	f := convertCmd.Flags()
	f.StringVar(&convertFlags.title, "title", "", "song title (defaults to the file name)")
	f.IntVar(&convertFlags.trackIndex, "track", -1, "source track index, -1 picks automatically")
	f.IntVar(&convertFlags.baseOctave, "base-octave", 4, "octave of the lowest key row")
	f.IntVar(&convertFlags.maxKeys, "max-keys", 2, "max simultaneous keys")
	f.Float64Var(&convertFlags.grid, "grid", 0.05, "quantization grid in seconds, 0 disables")
	f.Float64Var(&convertFlags.tolerance, "merge-tolerance", 0.010, "chord merge tolerance in seconds")
	f.Float64Var(&convertFlags.minGap, "min-gap", 0.100, "minimum gap between chords in seconds")
	f.IntVar(&convertFlags.rangeMin, "range-min", 60, "lowest pitch of the playable range")
	f.IntVar(&convertFlags.rangeMax, "range-max", 95, "highest pitch of the playable range")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <in.mid|dir> <out.json|dir>",
	Short: "Converts midi into a playable song file",
	Long: `Converts midi into a playable song file. With a directory as input,
every midi file under it is converted into the output directory.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(args[0], args[1])
	},
}

func convertConfig() config.Config {
	cfg := config.Default()
	cfg.BaseOctave = convertFlags.baseOctave
	cfg.MaxSimultaneousKeys = convertFlags.maxKeys
	cfg.QuantizationGrid = convertFlags.grid
	cfg.MergeTolerance = convertFlags.tolerance
	cfg.MinNoteGap = convertFlags.minGap
	cfg.RangeMin = convertFlags.rangeMin
	cfg.RangeMax = convertFlags.rangeMax
	return cfg
}

func runConvert(in, out string) error {
	cfg := convertConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	paths := util.GatherAllMidiPaths(in, 0)
	if len(paths) == 0 {
		return fmt.Errorf("no midi files found at %v", in)
	}

	for i, path := range paths {
		target := out
		if len(paths) > 1 {
			target = filepath.Join(out, songFilename(path))
		}
		fmt.Printf("Converting %v of %v: %v\n", i+1, len(paths), path)
		if err := convertOne(path, target, cfg); err != nil {
			return err
		}
		fmt.Printf("Wrote %v\n", target)
	}
	return nil
}

func convertOne(in, out string, cfg config.Config) error {
	parsed, err := midi.ReadFile(in)
	if err != nil {
		return err
	}
	tracks, bpm := midi.ExtractTracks(parsed)

	title := convertFlags.title
	if title == "" {
		title = songTitle(in)
	}
	opts := pipeline.Options{Title: title, BPM: bpm, TrackIndex: convertFlags.trackIndex}

	s, err := pipeline.Convert(tracks, opts, cfg)
	if err != nil {
		return err
	}
	if len(s.Chords) == 0 {
		fmt.Printf("Warning: %v produced no playable notes\n", in)
	}
	return song.Save(out, s)
}

func songTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(strings.TrimSuffix(base, ".midi"), ".mid")
}

func songFilename(path string) string {
	return songTitle(path) + ".json"
}
