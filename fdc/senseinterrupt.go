package fdc

// execSenseInterruptStatus implements Sense Interrupt Status, spec.md §4.9.
// A pending Seek/Recalibrate result takes priority over a pending
// drive-state change, which in turn takes priority over the "nothing
// happened" default.
func execSenseInterruptStatus(c *Controller) {
	for u := 0; u < 2; u++ {
		d := &c.Drives[u]
		if d.SeekDone {
			d.SeekDone = false
			c.Results[0] = d.SeekST0
			c.Results[1] = byte(d.CTK)
			d.RetCSR0 = 9
			c.enterSendResults(2)
			return
		}
	}

	for u := 0; u < 2; u++ {
		d := &c.Drives[u]
		if d.DriveStateChanged {
			d.DriveStateChanged = false
			c.Results[0] = st0ICReady | byte(u)
			c.enterSendResults(1)
			return
		}
	}

	c.Results[0] = st0ICIC | byte(c.SelectedUnit)
	c.enterSendResults(1)
}
