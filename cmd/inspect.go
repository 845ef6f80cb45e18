package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/TingluoHuang/music-player/song"
	"github.com/TingluoHuang/music-player/util"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <song.json>",
	Short: "Inspects a converted song file",
	Long:  `Inspects a converted song file`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(args[0])
	},
}

func inspect(path string) error {
	s, err := song.Load(path)
	if err != nil {
		return err
	}

	fmt.Printf("title: %v\n", s.Title)
	fmt.Printf("bpm: %v\n", s.BPM)
	fmt.Printf("chords: %v\n", len(s.Chords))
	if len(s.Chords) == 0 {
		return nil
	}

	last := s.Chords[len(s.Chords)-1]
	fmt.Printf("length: %.3fs\n", last.Start+last.Duration)

	counts := make(map[string]int)
	maxSize := 0
	for _, c := range s.Chords {
		if len(c.Keys) > maxSize {
			maxSize = len(c.Keys)
		}
		for _, k := range c.Keys {
			counts[k.String()]++
		}
	}
	fmt.Printf("largest chord: %v keys\n", maxSize)
	fmt.Println("key usage:")
	for _, k := range sortedByCount(counts) {
		fmt.Printf("  %-8s %v\n", k, counts[k])
	}
	return nil
}

func sortedByCount(counts map[string]int) []string {
	keys := util.GetKeys(counts)
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
