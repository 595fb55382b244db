package fdc

// commandSpec describes one of the 16 recognized low-5-bits command codes
// (any other code is handled by execInvalid): how many
// parameter bytes precede execution, and the function that runs once they
// have all arrived (or immediately, for zero-parameter commands).
type commandSpec struct {
	numParams int
	exec      func(c *Controller)
}

// low5 command codes, spec.md §4.4's dispatch table.
const (
	cmdReadTrack            = 2
	cmdSpecify              = 3
	cmdSenseDriveStatus     = 4
	cmdWriteData            = 5
	cmdReadData             = 6
	cmdRecalibrate          = 7
	cmdSenseInterruptStatus = 8
	cmdWriteDeletedData     = 9
	cmdReadSectorID         = 10
	cmdReadDeletedData      = 12
	cmdFormatTrack          = 13
	cmdSeek                 = 15
	cmdVersion              = 16
	cmdScanEqual            = 17
	cmdScanLow              = 25
	cmdScanHigh             = 29
)

// skBit is bit 5 of the command byte: "skip" behavior on a DAM mismatch,
// spec.md §4.5 step 7.
const skBit = 0x20

var commandTable map[byte]commandSpec

func init() {
	commandTable = map[byte]commandSpec{
		cmdReadTrack:            {8, execReadData},
		cmdSpecify:              {2, execSpecify},
		cmdSenseDriveStatus:     {1, execSenseDriveStatus},
		cmdWriteData:            {8, execWriteData},
		cmdReadData:             {8, execReadData},
		cmdRecalibrate:          {1, execRecalibrate},
		cmdSenseInterruptStatus: {0, execSenseInterruptStatus},
		cmdWriteDeletedData:     {8, execWriteData},
		cmdReadSectorID:         {1, execReadSectorID},
		cmdReadDeletedData:      {8, execReadData},
		cmdFormatTrack:          {5, execFormatTrack},
		cmdSeek:                 {2, execSeek},
		cmdVersion:              {0, execVersion},
		cmdScanEqual:            {8, execScan},
		cmdScanLow:              {8, execScan},
		cmdScanHigh:             {8, execScan},
	}
}

// beginCommand decodes a freshly-latched command byte and either starts
// the parameter-receive phase or, for zero-parameter commands, executes
// immediately, spec.md §4.4.
func (c *Controller) beginCommand(cmdByte byte) {
	c.CmdByte = cmdByte
	c.LastCmd = cmdByte
	c.fireCommandCallback(cmdByte, 1)

	spec, ok := commandTable[cmdByte&0x1F]
	if !ok {
		execInvalid(c)
		return
	}

	c.NumParams = spec.numParams
	if spec.numParams == 0 {
		spec.exec(c)
		return
	}

	c.MainStatus = msrCB | (c.MainStatus & msrDB)
	exec := spec.exec
	c.enterReceive(c.Params[:spec.numParams], func(c *Controller) {
		c.fireCommandCallback(c.CmdByte, 1+c.NumParams)
		exec(c)
	})
}

// selectedUnit returns the unit number (0-3) encoded in the low two bits of
// a head-and-unit parameter byte, spec.md §4.5's P0 ("head_unit");
// Controller.drive maps it onto the two drives by its low bit.
func selectedUnit(headUnit byte) int {
	return int(headUnit & 0x03)
}

// selectedHead returns the head bit of a head-and-unit parameter byte.
func selectedHead(headUnit byte) int {
	return int((headUnit >> 2) & 1)
}
