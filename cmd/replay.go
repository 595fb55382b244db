package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/leiradel/fdc765/fdc"
)

// replayOp is one step of a replay script: a single port operation or a
// disk-insert setup step. This is the Go-idiomatic replacement for
// original_source/test/replay.c's hard-coded Windows DLL call sequence —
// here the sequence is data, not a recompiled program.
type replayOp struct {
	Op           string `json:"op"`
	Value        *int   `json:"value,omitempty"`
	File         string `json:"file,omitempty"`
	Unit         int    `json:"unit,omitempty"`
	WriteProtect bool   `json:"writeProtect,omitempty"`
}

var replayCmd = &cobra.Command{
	Use:                   "replay SCRIPT",
	Short:                 "Replay a JSON-scripted sequence of FDC port operations",
	Long: `Reads a JSON array of port operations from SCRIPT and applies each one in
order to a freshly-initialized controller, printing the byte returned by
every read operation. Supported "op" values: insert, motor, status_read,
data_read, data_write.`,
	Args:                  cobra.ExactArgs(1),
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrap(err, "error reading replay script")
		}

		var ops []replayOp
		if err := json.Unmarshal(raw, &ops); err != nil {
			return errors.Wrap(err, "error parsing replay script")
		}

		var c fdc.Controller
		c.Initialise()

		for i, op := range ops {
			if err := applyReplayOp(&c, op); err != nil {
				return errors.Wrapf(err, "step %d (%s)", i, op.Op)
			}
		}
		return nil
	},
}

func applyReplayOp(c *fdc.Controller, op replayOp) error {
	switch op.Op {
	case "insert":
		raw, err := os.ReadFile(op.File)
		if err != nil {
			return err
		}
		return c.InsertDisk(raw, op.WriteProtect, op.Unit)

	case "motor":
		c.SetMotorState(byte(intValue(op.Value)))

	case "status_read":
		fmt.Printf("status_read -> 0x%02X\n", c.StatusPortRead())

	case "data_read":
		fmt.Printf("data_read   -> 0x%02X\n", c.DataPortRead())

	case "data_write":
		c.DataPortWrite(byte(intValue(op.Value)))
		fmt.Printf("data_write  <- 0x%02X\n", byte(intValue(op.Value)))

	default:
		return errors.Errorf("unknown op %q", op.Op)
	}
	return nil
}

func intValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
