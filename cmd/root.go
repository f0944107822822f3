package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-hfsplus/internal/volume"
)

var (
	// Global flags
	verbose      bool
	volumeOffset int64
)

var rootCmd = &cobra.Command{
	Use:   "hfsdump",
	Short: "Inspect the contents of an HFS+ volume",
	Long: `hfsdump is a read-only command-line tool for inspecting HFS+
(Mac OS Extended) volumes directly from a block device or image file,
without mounting.

Commands:
  info    Dump the volume header
  stat    Show catalog record fields for a path or CNID
  read    Stream file contents or list a folder`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().Int64Var(&volumeOffset, "offset", 0, "byte offset of the volume within the device")
}

// openVolume opens the device at path using the loaded configuration and
// the global flags. Log output goes to stderr so read can stream file
// contents cleanly on stdout.
func openVolume(path string) (*volume.Volume, error) {
	cfg, err := volume.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	return volume.Open(path, volumeOffset, cfg, log)
}
