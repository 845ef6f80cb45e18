package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TingluoHuang/music-player/keymap"
)

var keysBaseOctave int

func init() {
	keysCmd.Flags().IntVar(&keysBaseOctave, "base-octave", 4, "octave of the lowest key row")
	rootCmd.AddCommand(keysCmd)
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Prints the pitch-to-key table",
	Long:  `Prints the pitch-to-key table`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(keymap.New(keysBaseOctave).DisplayTable())
	},
}
