package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-hfsplus/internal/types"
)

var infoCmd = &cobra.Command{
	Use:   "info <device>",
	Short: "Dump the volume header",
	Long: `Print the volume name, journal and lock state, and every field of
the HFS+ volume header.

Examples:
  # Inspect a raw device
  hfsdump info /dev/sdb2

  # Inspect a volume embedded in an image at a byte offset
  hfsdump info --offset 209735680 disk.img`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInfo(args[0])
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

// fourCC renders a packed big-endian four-character code like 'H+' or
// '10.0' the way Finder and fsck print them.
func fourCC(v uint32) string {
	return string([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

func hfsDate(t uint32) string {
	return types.TimeFromHFS(t).Format(time.ANSIC)
}

func attrBit(vh types.VolumeHeader, bit uint) int {
	if vh.AttributeSet(bit) {
		return 1
	}
	return 0
}

func runInfo(devicePath string) error {
	vol, err := openVolume(devicePath)
	if err != nil {
		return err
	}
	defer vol.Close()

	name, err := vol.Name()
	if err != nil {
		return fmt.Errorf("decoding volume name: %w", err)
	}

	vh := vol.Header()
	fmt.Printf("Volume name: %s\n", name)
	fmt.Printf("Journaled? %t\n", vol.Journaled())
	fmt.Printf("Readonly? %t\n", vol.ReadOnly())
	fmt.Printf("Offset: %d\n", vol.Offset())

	fmt.Println("volume header:")
	fmt.Printf("signature: %c%c\n", vh.Signature>>8, vh.Signature&0xFF)
	fmt.Printf("version: %d\n", vh.Version)
	fmt.Printf("attributes: hwlock %d unmounted %d badblocks %d nocache %d dirty %d cnids recycled %d journaled %d swlock %d\n",
		attrBit(vh, types.VolHardwareLockBit), attrBit(vh, types.VolUnmountedBit),
		attrBit(vh, types.VolBadBlocksBit), attrBit(vh, types.VolNoCacheBit),
		attrBit(vh, types.VolDirtyBit), attrBit(vh, types.VolCNIDsRecycledBit),
		attrBit(vh, types.VolJournaledBit), attrBit(vh, types.VolSoftwareLockBit))
	fmt.Printf("last_mounting_version: %s\n", fourCC(vh.LastMountedVersion))
	fmt.Printf("journal_info_block: %d\n", vh.JournalInfoBlock)
	fmt.Printf("date_created: %s\n", hfsDate(vh.DateCreated))
	fmt.Printf("date_modified: %s\n", hfsDate(vh.DateModified))
	fmt.Printf("date_backedup: %s\n", hfsDate(vh.DateBackedUp))
	fmt.Printf("date_checked: %s\n", hfsDate(vh.DateChecked))
	fmt.Printf("file_count: %d\n", vh.FileCount)
	fmt.Printf("folder_count: %d\n", vh.FolderCount)
	fmt.Printf("block_size: %d\n", vh.BlockSize)
	fmt.Printf("total_blocks: %d\n", vh.TotalBlocks)
	fmt.Printf("free_blocks: %d\n", vh.FreeBlocks)
	fmt.Printf("next_alloc_block: %d\n", vh.NextAllocation)
	fmt.Printf("rsrc_clump_size: %d\n", vh.RsrcClumpSize)
	fmt.Printf("data_clump_size: %d\n", vh.DataClumpSize)
	fmt.Printf("next_cnid: %d\n", vh.NextCNID)
	fmt.Printf("write_count: %d\n", vh.WriteCount)
	fmt.Printf("encodings: %d\n", vh.EncodingsBitmap)
	fmt.Println("finderinfo:")
	fmt.Printf("\tBoot directory ID: %d\n", vh.FinderInfo[0])
	fmt.Printf("\tStartup parent directory ID: %d\n", vh.FinderInfo[1])
	fmt.Printf("\tDisplay directory ID: %d\n", vh.FinderInfo[2])
	fmt.Printf("\tOS classic system directory ID: %d\n", vh.FinderInfo[3])
	fmt.Printf("\tOS X system directory ID: %d\n", vh.FinderInfo[5])
	fmt.Printf("\tVolume unique ID: %x\n", vh.UniqueID())

	return nil
}
