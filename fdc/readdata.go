package fdc

// execReadData implements Read Data, Read Deleted Data and Read Track,
// spec.md §4.5. All three share one continuation-driven loop: locate the
// next sector, check it against the requested DAM mode, hand its payload
// to the CPU, then decide whether another sector follows in this command.
//
// The MT (multi-track, automatic head-1-after-head-0) bit is accepted but
// not acted on: every image this emulator loads already carries both
// heads' tracks addressable directly by CHead, so a command never needs
// the controller to flip heads on its own mid-transfer.
func execReadData(c *Controller) {
	unit := selectedUnit(c.Params[0])
	head := selectedHead(c.Params[0])
	if c.trapStandardErrors(unit, head) {
		return
	}

	switch c.CmdByte & 0x1F {
	case cmdReadTrack:
		c.ReadMode = ReadModeTrack
	case cmdReadDeletedData:
		c.ReadMode = ReadModeDeletedData
	default:
		c.ReadMode = ReadModeData
	}

	d := c.drive(unit)
	d.CHead = head
	d.loadTrack()

	c.SectorsTransferred = 0

	c.readStep(d, unit, head)
}

// readStep locates the next sector to transfer and either starts its
// data-out phase or terminates the command in the result phase.
func (c *Controller) readStep(d *Drive, unit, head int) {
	if !d.Track.Valid || len(d.Track.Sectors) == 0 {
		st2Extra := byte(0)
		if d.CTK != int(c.Params[1]) {
			st2Extra = st2WC
			if d.CTK == 0xFF {
				st2Extra = st2BC
			}
		}
		c.finishRead(unit, head, st1MA, st2Extra)
		return
	}

	var idx int
	if c.ReadMode == ReadModeTrack {
		idx = c.SectorsTransferred
		if idx >= len(d.Track.Sectors) || idx >= int(c.Params[5]) {
			c.finishRead(unit, head, 0, 0)
			return
		}
	} else {
		idx = -1
		for i := range d.Track.Sectors {
			s := &d.Track.Sectors[i]
			if s.Track == c.Params[1] && s.Side == c.Params[2] && s.ID == c.Params[3] && s.Size == c.Params[4] {
				idx = i
				break
			}
		}
		if idx < 0 {
			c.finishRead(unit, head, st1ND, 0)
			return
		}
	}

	sec := &d.Track.Sectors[idx]

	if c.ReadMode != ReadModeTrack {
		isDeleted := sec.ST2&st2CM != 0
		wantDeleted := c.ReadMode == ReadModeDeletedData
		if isDeleted != wantDeleted {
			if c.CmdByte&skBit != 0 {
				c.SectorsTransferred++
				c.Params[3] = sec.ID + 1
				c.readStep(d, unit, head)
				return
			}
			c.st2DAMBit = st2CM
		} else {
			c.st2DAMBit = 0
		}
	}

	if sec.ST1&st1ErrorMask != 0 || sec.ST2&st2ErrorMask != 0 {
		c.readThenTerminate(d, unit, head, idx, sec.ST1&st1ErrorMask, sec.ST2&st2ErrorMask)
		return
	}
	if c.st2DAMBit != 0 {
		c.readThenTerminate(d, unit, head, idx, 0, st2CM)
		return
	}

	payload := c.sectorPayload(d, idx)
	c.notifyActive()

	lastR := sec.ID
	c.enterSendData(payload, func(c *Controller) {
		if c.MainStatus&msrEXM == 0 {
			// raiseOverrun cleared EXM: end the command here.
			c.finishRead(unit, head, st1OR, 0)
			return
		}
		c.SectorsTransferred++
		c.fireCommandCallback(c.CmdByte, c.SectorsTransferred)
		c.Params[3] = lastR + 1
		if c.ReadMode != ReadModeTrack && lastR == c.Params[5] {
			c.finishRead(unit, head, 0, 0)
			return
		}
		c.readStep(d, unit, head)
	})
}

// readThenTerminate transfers a sector's data even though it's already
// known to end the command in error, matching a real FDC handing the CPU
// whatever was on the medium before reporting the failure.
func (c *Controller) readThenTerminate(d *Drive, unit, head, idx int, st1Extra, st2Extra byte) {
	payload := c.sectorPayload(d, idx)
	c.notifyActive()
	c.enterSendData(payload, func(c *Controller) {
		if c.MainStatus&msrEXM == 0 {
			st1Extra |= st1OR
		}
		c.finishRead(unit, head, st1Extra, st2Extra)
	})
}

// finishRead assembles the 7-byte result phase, spec.md §4.5's terminal
// step.
func (c *Controller) finishRead(unit, head int, st1Extra, st2Extra byte) {
	ic := byte(0)
	if st1Extra != 0 || st2Extra != 0 {
		ic = st0ICAT
	}
	c.ST0 = ic | byte(head<<2) | byte(unit)
	c.ST1 = st1Extra
	c.ST2 = st2Extra

	c.Results[0] = c.ST0
	c.Results[1] = c.ST1
	c.Results[2] = c.ST2
	c.Results[3] = c.Params[1]
	c.Results[4] = byte(head)
	c.Results[5] = c.Params[3]
	c.Results[6] = c.Params[4]
	c.enterSendResults(7)
}
