package fdc

// execSenseDriveStatus implements Sense Drive Status, spec.md §4.11: a
// single ST3 snapshot for the addressed unit/head, no medium access.
func execSenseDriveStatus(c *Controller) {
	unit := selectedUnit(c.Params[0])
	head := selectedHead(c.Params[0])
	d := c.drive(unit)

	st3 := byte(unit) | byte(head<<2)
	if d.numSides() == 2 {
		st3 |= st3TS
	}
	if d.CTK == 0 {
		st3 |= st3T0
	}
	if d.Inserted && c.MotorState {
		st3 |= st3RY
	}
	if d.WriteProtect {
		st3 |= st3WP
	}

	c.Results[0] = st3
	c.enterSendResults(1)
}

// execSpecify implements Specify, spec.md §4.11: latches SRT/HUT/HLT/ND
// timing parameters. This emulator has no seek/head-load timing to apply
// them to, so the bytes are accepted and discarded.
func execSpecify(c *Controller) {
	c.enterAwaitCommand()
}

// execVersion implements Version, spec.md §4.11: reports the µPD765A
// enhanced-controller signature byte.
func execVersion(c *Controller) {
	c.Results[0] = 0x80
	c.enterSendResults(1)
}
