package fdc

import "github.com/leiradel/fdc765/disk"

// sectorPayload returns the bytes to hand the CPU for sector idx of
// drive's current track, synthesizing padding for any EDSK sector whose
// recorded DataLength doesn't cover a full physical sector, spec.md §4.6.
func (c *Controller) sectorPayload(d *Drive, idx int) []byte {
	sec := &d.Track.Sectors[idx]
	size := disk.PhysicalSize(sec.Size)
	raw := d.Track.SectorData[idx]

	if !d.EDSKSource {
		return padOrTrim(raw, size)
	}

	dataLen := int(sec.DataLength)

	switch {
	case dataLen <= 0:
		buf := make([]byte, size)
		c.fillRandom(buf, 0)
		return buf

	case dataLen == size:
		return padOrTrim(raw, size)

	case dataLen > size && dataLen%size == 0 && len(raw) >= dataLen:
		// Weak sector recorded as several candidate copies back to back;
		// cycle through them on successive reads the way a real drive's
		// read head picks up different noise each revolution.
		copies := dataLen / size
		pick := int(c.MultipleSectorPick % uint32(copies))
		c.MultipleSectorPick++
		off := pick * size
		return raw[off : off+size]

	default:
		// Overdumped/truncated: genuine bytes followed by synthesized
		// padding for the unreadable remainder.
		buf := make([]byte, size)
		n := dataLen
		if n > len(raw) {
			n = len(raw)
		}
		if n > size {
			n = size
		}
		copy(buf, raw[:n])
		if n < size {
			c.fillRandom(buf, n)
		}
		return buf
	}
}

func padOrTrim(raw []byte, size int) []byte {
	if len(raw) >= size {
		return raw[:size]
	}
	buf := make([]byte, size)
	copy(buf, raw)
	return buf
}
