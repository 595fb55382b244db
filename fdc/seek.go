package fdc

// execSeek implements the Seek command, spec.md §4.8. Completion is
// synchronous: the head is repositioned immediately and the result is
// latched on the drive for a later Sense Interrupt Status to collect. Seek
// itself returns no result bytes.
//
// A requested cylinder at or beyond the inserted disk's NumTracks is an
// abnormal seek: the head still parks at the final cylinder (NumTracks-1,
// wrapping to 0xFF with no disk inserted) but ST0 carries AT alongside SE.
func execSeek(c *Controller) {
	unit := selectedUnit(c.Params[0])
	d := c.drive(unit)
	c.SeekUnit = d
	c.SelectedUnit = unit

	target := int(c.Params[1])
	limit := d.numTracks()
	abnormal := target >= limit
	if abnormal {
		target = int(byte(limit - 1))
	}
	d.CTK = target
	d.CHead = selectedHead(c.Params[0])

	d.SeekDone = true
	d.SeekST0 = st0SE | byte(d.CHead<<2) | byte(unit)
	if abnormal {
		d.SeekST0 |= st0ICAT
	}
	d.loadTrack()

	c.enterAwaitCommand()
}

// execRecalibrate implements the Recalibrate command, spec.md §4.8: drive
// the head straight back to cylinder 0. Real hardware steps once per
// command and may need several Recalibrates to reach track 0 from a far
// cylinder; this emulator completes the seek in one step since the medium
// has no seek-time side effects worth modeling.
func execRecalibrate(c *Controller) {
	unit := selectedUnit(c.Params[0])
	d := c.drive(unit)
	c.SeekUnit = d
	c.SelectedUnit = unit

	d.CTK = 0
	d.SeekDone = true
	d.SeekST0 = st0SE | byte(unit)
	if !d.Inserted {
		d.SeekST0 = st0ICAT | st0EC | byte(unit)
	}
	d.loadTrack()

	c.enterAwaitCommand()
}
