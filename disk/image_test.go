package disk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leiradel/fdc765/disk"
)

// buildDSK constructs a minimal, uniform-track DSK image in memory: every
// track has the same sector layout, which is the DSK format's defining
// property (unlike EDSK's variable-length tracks).
func buildDSK(numTracks, numSides, sectorsPerTrack int, sectorSize uint8) []byte {
	physSize := disk.PhysicalSize(sectorSize)
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

			for s := 0; s < sectorsPerTrack; s++ {
				infoOff := off + 0x18 + s*8
				image[infoOff+0] = byte(track)
				image[infoOff+1] = byte(side)
				image[infoOff+2] = byte(s + 1)
				image[infoOff+3] = sectorSize
			}

			off += trackSize
		}
	}

	return image
}

func TestLoadPlainDSK(t *testing.T) {
	raw := buildDSK(40, 1, 9, 2)

	img, err := disk.Load(raw, false)
	require.NoError(t, err)
	assert.False(t, img.EDSKSource)
	assert.False(t, img.WriteProtect)
	assert.EqualValues(t, 40, img.Info.Tracks)

	track := img.Track(5, 0)
	require.True(t, track.Valid)
	assert.EqualValues(t, 5, track.TrackNum)
	assert.Len(t, track.Sectors, 9)
	assert.EqualValues(t, 1, track.Sectors[0].ID)
}

func TestLoadRejectsUnrecognisedSignature(t *testing.T) {
	raw := make([]byte, 512)
	copy(raw, "not a disk image at all")

	_, err := disk.Load(raw, false)
	assert.Error(t, err)
}

func TestLoadWriteProtectPassthrough(t *testing.T) {
	raw := buildDSK(40, 1, 9, 2)

	img, err := disk.Load(raw, true)
	require.NoError(t, err)
	assert.True(t, img.WriteProtect)
}
