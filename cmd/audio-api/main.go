// @title Audio API
// @version 1.0
// @description Speech transcription and MP3 conversion over HTTP.
// @license.name MIT
// @BasePath /
package main

import (
	"fmt"
	"os"

	"audio-api/cmd/audio-api/cmd"
	"audio-api/internal/config"
)

func main() {
	// A missing .env is fine; a broken one is worth a warning.
	if _, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration warning: %v\n", err)
	}

	cmd.Execute()
}
