package fdc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leiradel/fdc765/fdc"
)

// buildDSK constructs a minimal, uniform-track plain DSK image with
// distinguishable per-sector fill bytes, mirroring the disk package's own
// test helper but kept package-local since that one is unexported.
func buildDSK(numTracks, numSides, sectorsPerTrack int, sectorSize uint8) []byte {
	physSize := 128 << sectorSize
	trackSize := 0x100 + sectorsPerTrack*physSize

	image := make([]byte, 256+numTracks*numSides*trackSize)
	copy(image, "MV - CPCEMU Disk-File\r\nDisk-Info\r\n")
	image[0x30] = byte(numTracks)
	image[0x31] = byte(numSides)
	image[0x32] = byte(trackSize & 0xff)
	image[0x33] = byte(trackSize >> 8)

	off := 256
	for track := 0; track < numTracks; track++ {
		for side := 0; side < numSides; side++ {
			copy(image[off:], "Track-Info\r\n")
			image[off+0x10] = byte(track)
			image[off+0x11] = byte(side)
			image[off+0x14] = sectorSize
			image[off+0x15] = byte(sectorsPerTrack)

			dataOff := off + 0x100
			for s := 0; s < sectorsPerTrack; s++ {
				infoOff := off + 0x18 + s*8
				image[infoOff+0] = byte(track)
				image[infoOff+1] = byte(side)
				image[infoOff+2] = byte(s + 1)
				image[infoOff+3] = sectorSize

				fill := byte(track*100 + s)
				for i := 0; i < physSize; i++ {
					image[dataOff+i] = fill
				}
				dataOff += physSize
			}

			off += trackSize
		}
	}

	return image
}

func TestInitialiseReportsReadyForCommand(t *testing.T) {
	var c fdc.Controller
	c.Initialise()

	st := c.GetFDCState()
	assert.Equal(t, byte(0x80), st.MSR&0x80, "RQM must be set so the host can write a command byte")
	assert.Equal(t, byte(0), st.MSR&0x60, "idle controller must not report busy or in-transfer")
}

func TestInsertEDSKIsAlwaysWriteProtected(t *testing.T) {
	raw := make([]byte, 0x100+4)
	copy(raw, "EXTENDED CPC DSK File\r\nDisk-Info\r\n")
	raw[0x30] = 1
	raw[0x31] = 1
	raw[0x34] = 0 // one zero-size track: normalizer still produces a valid (empty) image

	var c fdc.Controller
	c.Initialise()

	require.NoError(t, c.InsertDisk(raw, false, 0))
	assert.True(t, c.WriteProtected(0))
}

func TestSeekThenReadSectorIDSettlesOnFirstSector(t *testing.T) {
	raw := buildDSK(4, 1, 9, 2)

	var c fdc.Controller
	c.Initialise()
	require.NoError(t, c.InsertDisk(raw, false, 0))
	c.SetMotorState(0x08)

	sendCommand(&c, 0x0F, 0x00, 0x02) // Seek: unit 0 head 0, to cylinder 2
	sendCommand(&c, 0x08)             // Sense Interrupt Status
	readResults(&c, 2)

	for i := 0; i < 9; i++ {
		sendCommand(&c, 0x0A, 0x00) // Read Sector ID, unit 0 head 0
		results := readResults(&c, 7)
		assert.EqualValues(t, 1, results[5], "settle window must keep reporting the track's first sector")
	}
}

func TestReadDataRoundTrip(t *testing.T) {
	raw := buildDSK(4, 1, 9, 2)

	var c fdc.Controller
	c.Initialise()
	require.NoError(t, c.InsertDisk(raw, false, 0))
	c.SetMotorState(0x08)

	sendCommand(&c, 0x0F, 0x00, 0x02) // Seek: unit 0 head 0, to cylinder 2
	sendCommand(&c, 0x08)             // Sense Interrupt Status
	readResults(&c, 2)

	sendCommand(&c, 0x46, // Read Data, MF set
		0x00, // head/unit
		0x02, // C
		0x00, // H
		0x01, // R
		0x02, // N
		0x01, // EOT: single sector
		0x1B, // GPL, unused
		0xFF, // DTL, unused
	)

	physSize := 128 << 2
	data := make([]byte, physSize)
	for i := range data {
		data[i] = c.DataPortRead()
	}
	for _, b := range data {
		assert.EqualValues(t, 200, b) // track 2, sector index 0 -> fill byte 2*100+0
	}

	results := readResults(&c, 7)
	assert.EqualValues(t, 0, results[0]&0xC0, "successful transfer must not report abnormal termination")
	assert.EqualValues(t, 2, results[3])
	assert.EqualValues(t, 2, results[5])

	st := c.GetFDCState()
	assert.Equal(t, byte(0x80), st.MSR, "controller must return to idle after the last result byte")
}

// sendCommand writes a command byte followed by its parameters through the
// data port, as a host CPU would.
func sendCommand(c *fdc.Controller, cmdByte byte, params ...byte) {
	c.DataPortWrite(cmdByte)
	for _, p := range params {
		c.DataPortWrite(p)
	}
}

// readResults drains n bytes from the data port (the result phase) and
// returns them.
func readResults(c *fdc.Controller, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = c.DataPortRead()
	}
	return out
}
