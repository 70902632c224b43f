package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the recording downloader
var rootCmd = &cobra.Command{
	Use:   "zoom-recording-downloader",
	Short: "Downloads Zoom cloud recordings to local storage",
	Long: `zoom-recording-downloader pulls cloud meeting recordings from the Zoom
API and saves them to a local directory.

It keeps a manifest of completed downloads next to the output files, so
repeated runs only fetch recordings that are not on disk yet. A run that is
interrupted can simply be started again; at most the file that was in
flight is re-downloaded.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "zoom-recording-downloader version %s\n" .Version}}`)

	// If no subcommand is provided, run the download command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "download")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newDownloadCmd())
}
