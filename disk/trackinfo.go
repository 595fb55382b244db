package disk

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/leiradel/fdc765/storage"
)

// trackSignature is the fixed 12-byte magic every TrackInformation block
// must begin with. The controller's track locator treats anything else as
// an unformatted track.
const trackSignature = "Track-Info\r\n"

// maxSectorsPerTrack bounds the SectorInfoList: 232 bytes / 8 bytes per
// entry, matching the original TrackInfoBlock layout.
const maxSectorsPerTrack = 29

// sectorDataStartAddress is the byte offset of SectorData within a track
// block, i.e. the size of the header plus the full SectorInfoList area.
const sectorDataStartAddress = 0x100

// SectorInformation is one 8-byte entry of a track's SectorInfoList: the
// sector's CHRN plus the FDC status bytes recorded when the sector was
// originally written, and (EDSK only) its actual on-disk data length.
type SectorInformation struct {
	Track      uint8 // C
	Side       uint8 // H
	ID         uint8 // R
	Size       uint8 // N; physical size is 128 << N
	ST1        uint8 // FDC status register 1 at format/write time
	ST2        uint8 // FDC status register 2 at format/write time
	DataLength uint16
}

// sectorSizeMap maps the N field of a SectorInformation to the sector's
// physical byte length, clamped the way the original FDC clamps N, see
// spec.md "§3 Invariants": 128<<N, capped at 6144 once the naive
// computation would reach 8192 or more.
var sectorSizeMap = map[uint8]int{
	0: 128,
	1: 256,
	2: 512,
	3: 1024,
	4: 2048,
	5: 4096,
	6: 6144, // 128<<6 == 8192, clamped
	7: 6144,
	8: 6144,
}

// PhysicalSize returns the sector's expected physical byte length for N.
func PhysicalSize(n uint8) int {
	if size, ok := sectorSizeMap[n]; ok {
		return size
	}
	return 6144
}

// TrackInformation is the 24-byte header plus sector metadata and payload
// for a single (cylinder, head). Only one of these is live at a time in a
// Drive's scratch Track field — the controller reloads it on every seek.
type TrackInformation struct {
	Signature  [13]byte
	TrackNum   uint8
	SideNum    uint8
	SectorSize uint8
	NumSectors uint8
	GapLength  uint8
	FillerByte uint8

	Sectors    []SectorInformation
	SectorData [][]byte // raw bytes for each sector, length NumSectors

	Valid bool // false when Signature doesn't match trackSignature
}

// trackHeaderWire is the exact on-disk layout of the fixed-size portion of
// a TrackInformation block, used with encoding/binary.
type trackHeaderWire struct {
	Signature  [13]byte
	_          [3]byte
	TrackNum   uint8
	SideNum    uint8
	_          [2]byte
	SectorSize uint8
	NumSectors uint8
	GapLength  uint8
	FillerByte uint8
}

// ReadFromOffset loads the TrackInformation block found at byte offset off
// within image. It never returns an error for a missing/zero-filled track:
// spec.md's track locator marks Valid=false and leaves the rest zeroed so
// callers can report a "missing address mark" condition instead.
func (t *TrackInformation) ReadFromOffset(image []byte, off int) error {
	*t = TrackInformation{}

	if off < 0 || off+sectorDataStartAddress > len(image) {
		return nil
	}

	r := storage.NewReaderFromBytes(image[off : off+sectorDataStartAddress])

	var wire trackHeaderWire
	if err := binary.Read(r, binary.LittleEndian, &wire); err != nil {
		return errors.Wrap(err, "error reading track header")
	}

	t.Signature = wire.Signature
	t.TrackNum = wire.TrackNum
	t.SideNum = wire.SideNum
	t.SectorSize = wire.SectorSize
	t.NumSectors = wire.NumSectors
	t.GapLength = wire.GapLength
	t.FillerByte = wire.FillerByte
	t.Valid = bytes.Equal(t.Signature[:10], []byte(trackSignature[:10]))

	if !t.Valid {
		return nil
	}

	n := int(t.NumSectors)
	if n > maxSectorsPerTrack {
		n = maxSectorsPerTrack
	}

	t.Sectors = make([]SectorInformation, n)
	for i := 0; i < n; i++ {
		if err := binary.Read(r, binary.LittleEndian, &t.Sectors[i]); err != nil {
			return errors.Wrapf(err, "error reading sector info %d", i)
		}
	}

	t.SectorData = make([][]byte, n)
	dataOff := off + sectorDataStartAddress
	for i := 0; i < n; i++ {
		// A recorded DataLength (EDSK's actual stored byte count, which can
		// differ from the nominal N-based size for weak/overdumped sectors)
		// always takes priority over the nominal size, since that's what
		// Normalize actually packed the data at; plain DSK images carry
		// DataLength==0, so they fall back to the nominal size unchanged.
		stride := int(t.Sectors[i].DataLength)
		if stride == 0 {
			stride = PhysicalSize(t.Sectors[i].Size)
		}
		if dataOff+stride > len(image) {
			break
		}
		t.SectorData[i] = image[dataOff : dataOff+stride]
		dataOff += stride
	}

	return nil
}
