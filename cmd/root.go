package cmd

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fdc765ctl",
	Short: "Inspect and drive a NEC µPD765A floppy controller emulation",
	Long: `fdc765ctl loads Amstrad/Spectrum+3 DSK and EDSK disk images and
drives an emulated floppy disk controller against them, either to report
on an image's contents or to replay a recorded sequence of port
operations.`,
}

// Execute runs the root command; main calls this and exits non-zero on
// error.
func Execute() error {
	return rootCmd.Execute()
}

// mediaType returns the forced media type if the caller set one via flag,
// otherwise the lowercased file extension, matching the teacher CLI's
// convention of inferring format from filename when not told otherwise.
func mediaType(flagValue, filename string) string {
	if flagValue != "" {
		return strings.ToLower(flagValue)
	}
	ext := filepath.Ext(filename)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
