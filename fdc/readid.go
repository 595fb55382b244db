package fdc

// execReadSectorID implements Read Sector ID, spec.md §4.10: report the
// CHRN of "the next sector to pass under the head" without transferring
// any data. Immediately after a Seek/Recalibrate, RetCSR0 forces this to
// report the track's first sector for a settle window, matching a real
// drive's index-synchronized ID read.
func execReadSectorID(c *Controller) {
	unit := selectedUnit(c.Params[0])
	head := selectedHead(c.Params[0])
	if c.trapStandardErrors(unit, head) {
		return
	}

	d := c.drive(unit)
	d.CHead = head
	d.loadTrack()

	if !d.Track.Valid || len(d.Track.Sectors) == 0 {
		c.ST0 = st0ICAT | byte(head<<2) | byte(unit)
		c.ST1 = st1MA
		c.Results[0] = c.ST0
		c.Results[1] = c.ST1
		c.Results[2] = 0
		for i := 3; i < 7; i++ {
			c.Results[i] = 0
		}
		c.enterSendResults(7)
		return
	}

	if d.RetCSR0 > 0 {
		d.CSR = 0
	}

	sec := d.Track.Sectors[d.CSR]

	c.ST0 = byte(head<<2) | byte(unit)
	c.ST1 = sec.ST1 & st1ErrorMask
	c.ST2 = sec.ST2 & st2ErrorMask

	c.Results[0] = c.ST0
	c.Results[1] = c.ST1
	c.Results[2] = c.ST2
	c.Results[3] = sec.Track
	c.Results[4] = sec.Side
	c.Results[5] = sec.ID
	c.Results[6] = sec.Size

	if d.RetCSR0 > 0 {
		d.RetCSR0--
	}
	d.CSR = (d.CSR + 1) % len(d.Track.Sectors)

	c.enterSendResults(7)
}
