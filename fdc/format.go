package fdc

// execFormatTrack implements Format Track, spec.md §4.4's "others" row and
// SPEC_FULL §11's Open Question decision: recognized but stubbed. It
// consumes the documented parameter bytes (head/unit, N, SC, GPL, filler)
// and returns a success-shaped result without touching the medium — this
// emulator is driven from pre-built DSK/EDSK images, never from a blank
// one, so there is nothing a real format pass would need to lay down.
func execFormatTrack(c *Controller) {
	unit := selectedUnit(c.Params[0])
	head := selectedHead(c.Params[0])
	if c.trapStandardErrors(unit, head) {
		return
	}

	c.ST0 = byte(head<<2) | byte(unit)
	c.ST1 = 0
	c.ST2 = 0

	c.Results[0] = c.ST0
	c.Results[1] = c.ST1
	c.Results[2] = c.ST2
	c.Results[3] = c.Params[1]
	c.Results[4] = byte(head)
	c.Results[5] = c.Params[2]
	c.Results[6] = c.Params[1]
	c.enterSendResults(7)
}

// execScan implements the Scan Equal/Low/High family, same stub decision
// as execFormatTrack: the parameter bytes are consumed and a non-matching
// (SN clear) success result is returned, since there is no CPU-supplied
// comparison buffer wired into this emulator's port interface.
func execScan(c *Controller) {
	unit := selectedUnit(c.Params[0])
	head := selectedHead(c.Params[0])
	if c.trapStandardErrors(unit, head) {
		return
	}

	c.ST0 = byte(head<<2) | byte(unit)
	c.ST1 = 0
	c.ST2 = st2BC

	c.Results[0] = c.ST0
	c.Results[1] = c.ST1
	c.Results[2] = c.ST2
	c.Results[3] = c.Params[1]
	c.Results[4] = byte(head)
	c.Results[5] = c.Params[2]
	c.Results[6] = c.Params[5]
	c.enterSendResults(7)
}

// execInvalid reports an invalid-command condition for any command byte
// whose low 5 bits don't match a recognized command, spec.md §4.4.
func execInvalid(c *Controller) {
	c.Results[0] = st0ICIC
	c.enterSendResults(1)
}
