package disk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leiradel/fdc765/disk"
)

func buildEDSK(t *testing.T, numTracks, numSides int, sectorsPerTrack int, sectorSize uint8) []byte {
	t.Helper()

	physSize := disk.PhysicalSize(sectorSize)
	trackBytes := 0x100 + sectorsPerTrack*physSize
	trackBlocks := (trackBytes + 255) / 256

	image := make([]byte, 256+numTracks*numSides*trackBlocks*256)
	copy(image, "EXTENDED CPC DSK File\r\nDisk-Info\r\n")
	image[0x30] = byte(numTracks)
	image[0x31] = byte(numSides)

	for i := 0; i < numTracks*numSides; i++ {
		image[0x34+i] = byte(trackBlocks)
	}

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
				image[infoOff+6] = byte(physSize & 0xff)
				image[infoOff+7] = byte(physSize >> 8)
			}

			dataOff := off + 0x100
			for s := 0; s < sectorsPerTrack; s++ {
				fill := byte(track*16 + side*8 + s)
				for b := 0; b < physSize; b++ {
					image[dataOff+b] = fill
				}
				dataOff += physSize
			}

			off += trackBlocks * 256
		}
	}

	return image
}

func TestIsEDSK(t *testing.T) {
	assert.True(t, disk.IsEDSK([]byte("EXTENDED CPC DSK File")))
	assert.False(t, disk.IsEDSK([]byte("MV - CPCEMU Disk-File")))
	assert.False(t, disk.IsEDSK(nil))
}

func TestNormalizeRoundTrip(t *testing.T) {
	raw := buildEDSK(t, 2, 1, 9, 2)

	normalized := disk.Normalize(raw)
	require.NotNil(t, normalized)

	img, err := disk.Load(raw, false)
	require.NoError(t, err)
	assert.True(t, img.WriteProtect, "normalized EDSK images must come back write-protected")

	assert.EqualValues(t, 2, img.Info.Tracks)
	assert.EqualValues(t, 1, img.Info.Sides)

	for track := 0; track < 2; track++ {
		tb := img.Track(track, 0)
		require.True(t, tb.Valid, "track %d should be valid", track)
		require.Len(t, tb.Sectors, 9)

		for s, si := range tb.Sectors {
			assert.EqualValues(t, track, si.Track)
			assert.EqualValues(t, s+1, si.ID)

			expected := byte(track*16 + s)
			assert.Equal(t, expected, tb.SectorData[s][0])
		}
	}
}

func TestNormalizeDegenerateAllZeroTracks(t *testing.T) {
	raw := make([]byte, 512)
	copy(raw, "EXTENDED CPC DSK File\r\nDisk-Info\r\n")
	raw[0x30] = 4
	raw[0x31] = 1

	normalized := disk.Normalize(raw)
	require.NotNil(t, normalized)
	assert.EqualValues(t, 0, normalized[0x32])
	assert.EqualValues(t, 0, normalized[0x33])
}

func TestTrackOffsetSingleSided(t *testing.T) {
	assert.Equal(t, 256, disk.TrackOffset(0, 0, 1, 4096))
	assert.Equal(t, 256+4096, disk.TrackOffset(1, 0, 1, 4096))
}

func TestTrackOffsetDoubleSided(t *testing.T) {
	assert.Equal(t, 256, disk.TrackOffset(0, 0, 2, 4096))
	assert.Equal(t, 256+4096, disk.TrackOffset(0, 1, 2, 4096))
	assert.Equal(t, 256+2*4096, disk.TrackOffset(1, 0, 2, 4096))
}
