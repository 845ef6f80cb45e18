package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver

	"github.com/TingluoHuang/music-player/keymap"
)

var liveFlags struct {
	port       int
	baseOctave int
	debug      bool
}

func init() {
	liveCmd.Flags().IntVar(&liveFlags.port, "port", 0, "midi input port number")
	liveCmd.Flags().IntVar(&liveFlags.baseOctave, "base-octave", 4, "octave of the lowest key row")
	liveCmd.Flags().BoolVar(&liveFlags.debug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(liveCmd)
}

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Shows which keys incoming midi notes land on",
	Long: `Attaches to a midi input port and prints the key identifiers every
incoming note maps to, grouping near-simultaneous notes into one
chord. A mapping preview only; nothing is pressed anywhere.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return live()
	},
}

func live() error {
	initLogger(liveFlags.debug)
	defer gomidi.CloseDriver()

	in, err := gomidi.InPort(liveFlags.port)
	if err != nil {
		return fmt.Errorf("can't find midi input port %v: %w", liveFlags.port, err)
	}

	km := keymap.New(liveFlags.baseOctave)

	// notes arriving within the merge window collapse into one printed
	// chord, the same grouping the converter applies
	var mu sync.Mutex
	var pending []int
	deb := debounce.New(10 * time.Millisecond)

	flush := func() {
		mu.Lock()
		pitches := pending
		pending = nil
		mu.Unlock()
		if len(pitches) == 0 {
			return
		}

		sort.Sort(sort.Reverse(sort.IntSlice(pitches)))
		parts := make([]string, 0, len(pitches))
		for _, p := range pitches {
			snapped := km.NearestValidPitch(p)
			key, ok := km.KeyOf(snapped)
			if !ok {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s(%s)", key, km.NameOf(snapped)))
		}
		fmt.Println(strings.Join(parts, " "))
	}

	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		var channel, key, velocity uint8
		if msg.GetNoteStart(&channel, &key, &velocity) {
			slog.Debug("note on", "pitch", key, "channel", channel, "velocity", velocity)
			mu.Lock()
			pending = append(pending, int(key))
			mu.Unlock()
			deb(flush)
		}
	})
	if err != nil {
		return fmt.Errorf("could not listen to midi port: %w", err)
	}
	defer stop()

	slog.Info("listening for midi input", "port", in.String())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig
	slog.Info("shutting down")
	return nil
}
