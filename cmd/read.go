package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-hfsplus/internal/names"
	"github.com/deploymenttheory/go-hfsplus/internal/types"
	"github.com/deploymenttheory/go-hfsplus/internal/volume"
)

// readChunkSize is the unit in which file contents are streamed to stdout.
const readChunkSize = 4096

var readCmd = &cobra.Command{
	Use:   "read <device> <path|cnid>",
	Short: "Stream file contents or list a folder",
	Long: `For a file, stream the fork contents to stdout; append /rsrc to the
path to read the resource fork. For a folder, print the names of its
entries one per line in POSIX display form.

Examples:
  hfsdump read /dev/sdb2 /Users/me/notes.txt > notes.txt
  hfsdump read /dev/sdb2 /Applications/App/Icon$'\r'/rsrc > icon.rsrc
  hfsdump read /dev/sdb2 /Users`,

	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRead(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
}

func runRead(devicePath, target string) error {
	vol, err := openVolume(devicePath)
	if err != nil {
		return err
	}
	defer vol.Close()

	record, _, fork, err := lookupTarget(vol, target)
	if err != nil {
		return err
	}

	if record.IsFolder() {
		return listFolder(vol, record.Folder.CNID)
	}
	return streamFile(vol, record.File, fork)
}

func listFolder(vol *volume.Volume, cnid types.CNID) error {
	entries, err := vol.Engine().ListFolder(cnid)
	if err != nil {
		return fmt.Errorf("listing folder %d: %w", cnid, err)
	}
	for i := range entries {
		name, err := names.ToPosixSegment(entries[i].Name)
		if err != nil {
			return fmt.Errorf("decoding entry name in folder %d: %w", cnid, err)
		}
		fmt.Println(name)
	}
	return nil
}

func streamFile(vol *volume.Volume, file types.FileRecord, fork types.ForkType) error {
	extents, err := vol.Engine().FileExtents(file.CNID, fork)
	if err != nil {
		return fmt.Errorf("reading extents for CNID %d: %w", file.CNID, err)
	}

	size := file.DataFork.LogicalSize
	if fork == types.ResourceFork {
		size = file.ResourceFork.LogicalSize
	}

	buf := make([]byte, readChunkSize)
	for offset := uint64(0); offset < size; {
		n, err := vol.Engine().ReadWithExtents(buf, offset, extents)
		if err != nil {
			return fmt.Errorf("reading CNID %d at offset %d: %w", file.CNID, offset, err)
		}
		if n == 0 {
			return fmt.Errorf("reading CNID %d at offset %d: short read", file.CNID, offset)
		}
		if remain := size - offset; uint64(n) > remain {
			n = int(remain)
		}
		if _, err := os.Stdout.Write(buf[:n]); err != nil {
			return err
		}
		offset += uint64(n)
	}
	return nil
}
