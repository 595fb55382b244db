package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leiradel/fdc765/fdc"
)

var (
	insertUnit         int
	insertWriteProtect bool
)

var insertCmd = &cobra.Command{
	Use:                   "insert FILE",
	Short:                 "Insert a disk image and report the controller's resulting state",
	Long:                  `Initializes an emulated controller, inserts FILE into a drive unit, and prints the Sense Drive Status/FDC state that results, useful for sanity-checking an image without writing a full host integration.`,
	Args:                  cobra.ExactArgs(1),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		filename := args[0]

		raw, err := os.ReadFile(filename)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		var c fdc.Controller
		c.Initialise()

		if err := c.InsertDisk(raw, insertWriteProtect, insertUnit); err != nil {
			fmt.Println("Insert failed!")
			fmt.Println(err)
			os.Exit(1)
		}

		st := c.GetFDCState()
		fmt.Printf("unit:          %d\n", insertUnit)
		fmt.Printf("inserted:      %t\n", c.DiskInserted(insertUnit))
		fmt.Printf("write protect: %t\n", c.WriteProtected(insertUnit))
		fmt.Printf("MSR:           0x%02X\n", st.MSR)
		fmt.Printf("ST3:           0x%02X\n", st.ST3)
	},
}

func init() {
	insertCmd.Flags().IntVarP(&insertUnit, "unit", "u", 0, `Drive unit, 0 or 1`)
	insertCmd.Flags().BoolVarP(&insertWriteProtect, "write-protect", "w", false, `Force write protect (EDSK sources are always write-protected regardless)`)
	rootCmd.AddCommand(insertCmd)
}
