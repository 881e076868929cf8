package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"audio-api/cmd/audio-api/cmd/serve"
	"audio-api/cmd/audio-api/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "audio-api",
	Short: "HTTP service that transcribes audio and converts media to MP3",
	Long: `HTTP service that transcribes audio and converts media to MP3.

- POST /transcrever returns the recognized text of an uploaded audio file
- POST /converter returns the uploaded media re-encoded as MP3
- Running without a subcommand starts the server`,
	SilenceUsage: true,
	RunE:         serve.Cmd.RunE,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().StringVarP(&serve.ConfigFile, "config", "c", "", "config file (default is $CONFIG_FILE or ./config.yaml)")
}
