package fdc

import "github.com/leiradel/fdc765/disk"

// execWriteData implements Write Data and Write Deleted Data, spec.md
// §4.7: locate each requested sector in turn and receive its payload
// straight into the image's backing bytes, so the payload needs no
// write-back — the Drive's Image.Bytes slice already owns the storage
// TrackInformation.SectorData aliases into. Only the sector's ST2 byte
// (the deleted-data mark) is stored back into the image separately.
func execWriteData(c *Controller) {
	unit := selectedUnit(c.Params[0])
	head := selectedHead(c.Params[0])
	if c.trapStandardErrors(unit, head) {
		return
	}

	d := c.drive(unit)
	if d.WriteProtect {
		c.ST0 = st0ICAT | byte(head<<2) | byte(unit)
		c.ST1 = st1NW
		c.Results[0] = c.ST0
		c.Results[1] = c.ST1
		c.Results[2] = 0
		c.Results[3] = c.Params[1]
		c.Results[4] = byte(head)
		c.Results[5] = c.Params[3]
		c.Results[6] = c.Params[4]
		c.enterSendResults(7)
		return
	}

	d.CHead = head
	d.loadTrack()
	c.SectorsTransferred = 0
	c.writeStep(d, unit, head)
}

func (c *Controller) writeStep(d *Drive, unit, head int) {
	if !d.Track.Valid || len(d.Track.Sectors) == 0 {
		st2Extra := byte(0)
		if d.CTK != int(c.Params[1]) {
			st2Extra = st2WC
			if d.CTK == 0xFF {
				st2Extra = st2BC
			}
		}
		c.finishWrite(unit, head, st1MA, st2Extra)
		return
	}

	idx := -1
	for i := range d.Track.Sectors {
		s := &d.Track.Sectors[i]
		if s.Track == c.Params[1] && s.Side == c.Params[2] && s.ID == c.Params[3] && s.Size == c.Params[4] {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.finishWrite(unit, head, st1ND, 0)
		return
	}

	sec := &d.Track.Sectors[idx]
	size := disk.PhysicalSize(sec.Size)
	dest := d.Track.SectorData[idx]
	if len(dest) < size {
		size = len(dest)
	}

	c.notifyActive()
	lastR := sec.ID
	isDeleted := c.CmdByte&0x1F == cmdWriteDeletedData

	c.enterReceiveData(dest[:size], func(c *Controller) {
		d.ContentsChanged = true
		if isDeleted {
			d.Track.Sectors[idx].ST2 |= st2CM
		} else {
			d.Track.Sectors[idx].ST2 &^= st2CM
		}
		// Sectors is a parsed copy; store the ST2 byte (offset 5 of the
		// sector's 8-byte SectorInfoList entry at 0x18) back into the image.
		infoOff := disk.TrackOffset(d.CTK, d.CHead, int(d.Image.Info.Sides), int(d.Image.Info.TrackSize))
		d.Image.Bytes[infoOff+0x18+idx*8+5] = d.Track.Sectors[idx].ST2
		c.SectorsTransferred++
		c.fireCommandCallback(c.CmdByte, c.SectorsTransferred)
		c.Params[3] = lastR + 1
		if lastR == c.Params[5] {
			c.finishWrite(unit, head, 0, 0)
			return
		}
		c.writeStep(d, unit, head)
	})
}

func (c *Controller) finishWrite(unit, head int, st1Extra, st2Extra byte) {
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
