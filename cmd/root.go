package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "music-player",
	Short: "Converts midi files into 36-key keyboard songs",
	Long: `Converts arbitrary midi files into chord sequences playable on a
36-key, 3-row keyboard with Shift/Ctrl accidentals.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
