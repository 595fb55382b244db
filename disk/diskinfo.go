// Package disk implements the in-memory DSK image model that the fdc
// package's Controller borrows track data from: the 256-byte disk
// information block, per-track TrackInformation blocks, and the EDSK
// normalizer that copies a variable-sized EDSK image into the DSK package's
// fixed-track-length layout.
//
// Reference: http://www.seasip.info/Cpm/amsform.html
package disk

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/leiradel/fdc765/storage"
)

// infoBlockSize is the fixed size of the DiskInformation header at offset 0
// in any DSK or normalized-EDSK image.
const infoBlockSize = 256

// DiskInformation is the "Disc Information Block", always at offset 0 of a
// DSK (or normalized EDSK) image.
//
//   - Identifier must start with "MV - CPC" (plain DSK) or "EXTENDED" (EDSK).
//   - All tracks in a DSK image are the same size; TrackSize is that size
//     including the 0x100-byte TrackInformation header.
type DiskInformation struct {
	Identifier [34]byte  // "MV - CPCEMU Disk-File\r\nDisk-Info\r\n" or "EXTENDED CPC DSK File\r\nDisk-Info\r\n"
	Creator    [14]byte  // name of creator
	Tracks     uint8     // number of tracks
	Sides      uint8     // number of sides
	TrackSize  uint16    // size of a track, little-endian (DSK only; ignored for EDSK source images)
	Padding    [204]byte // unused padding, up to the first TrackInformation block at offset 0x100
}

// Read parses the disk information header from r.
func (d *DiskInformation) Read(r *storage.Reader) error {
	return binary.Read(r, binary.LittleEndian, d)
}

// IsExtended reports whether the identifier marks this as an EDSK image.
// Per spec, the detection is a single leading byte ('E'), not the full
// identifier string — some tools write non-standard creator strings.
func (d *DiskInformation) IsExtended() bool {
	return len(d.Identifier) > 0 && d.Identifier[0] == 'E'
}

func (d DiskInformation) String() string {
	var b strings.Builder
	b.WriteString("Identifier: ")
	b.WriteString(reformatIdentifier(d.Identifier[:]))
	b.WriteByte('\n')
	b.WriteString("Tracks:     ")
	b.WriteString(strconv.Itoa(int(d.Tracks)))
	b.WriteByte('\n')
	b.WriteString("Sides:      ")
	b.WriteString(strconv.Itoa(int(d.Sides)))
	b.WriteByte('\n')
	b.WriteString("Track Size: ")
	b.WriteString(strconv.Itoa(int(d.TrackSize)))
	b.WriteByte('\n')
	return b.String()
}

func reformatIdentifier(identifier []byte) string {
	var idBytes []byte
	for _, b := range identifier {
		if b > 0 {
			idBytes = append(idBytes, b)
		}
	}

	id := strings.Trim(string(idBytes), "\r\n")
	parts := strings.Split(id, "\r\n")

	return strings.Join(parts, ", ")
}

// validateHeader returns an error if the identifier is neither a DSK nor an
// EDSK signature.
func validateHeader(d *DiskInformation) error {
	id := string(d.Identifier[:8])
	if id != "MV - CPC" && !d.IsExtended() {
		return errors.Errorf("unrecognised disk image signature: %q", id)
	}
	return nil
}
