package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leiradel/fdc765/disk"
)

var infoMediaType string

var infoCmd = &cobra.Command{
	Use:                   "info FILE",
	Short:                 "Display a DSK/EDSK image's header",
	Long:                  `Reads a DSK or EDSK disk image and prints its Disc Information Block, normalizing EDSK images first.`,
	Args:                  cobra.ExactArgs(1),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		filename := args[0]

		dskType := mediaType(infoMediaType, filename)
		if dskType != "dsk" && dskType != "edsk" {
			fmt.Printf("Unsupported media type: '%s'\n", dskType)
			return
		}

		raw, err := os.ReadFile(filename)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		img, err := disk.Load(raw, false)
		if err != nil {
			fmt.Println("Image read error!")
			fmt.Println(err)
			os.Exit(1)
		}

		fmt.Print(img.Info.String())
		if img.EDSKSource {
			fmt.Println("Source:     EDSK (normalized, write-protected)")
		} else {
			fmt.Println("Source:     DSK")
		}
	},
}

func init() {
	infoCmd.Flags().StringVarP(&infoMediaType, "media", "m", "", `Media type, default: file extension`)
	rootCmd.AddCommand(infoCmd)
}
