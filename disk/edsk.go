package disk

import "encoding/binary"

// Offsets into the un-parsed EDSK header needed by the normalizer, ahead of
// having parsed a DiskInformation struct from it (the normalizer works on
// raw bytes since source and destination track geometries differ).
const (
	edskNumTracksOffset    = 0x30
	edskNumSidesOffset     = 0x31
	edskTrackSizeTableBase = 0x34
	edskHeaderCopyFrom     = 0x22
	edskHeaderCopyLen      = 14 // 0x22..0x2f inclusive
	edskTrackSizeUnit      = 256
	edskSafetyMargin       = 100000
	edskSectorInfoOffset   = 0x18
	edskNumSectorsOffset   = 0x15
	edskDataLengthOffset   = 0x06 // within one 8-byte SectorInfo entry
)

// dskIdentifier is the plain-DSK signature a normalized image's Disc
// Information Block carries, truncated to the 34-byte Identifier field.
var dskIdentifier = []byte("MV - CPCEMU Disk-File\r\nDisk-Info\r\n")

// IsEDSK reports whether the raw image buffer begins with the EDSK marker
// byte. Detection is deliberately just the leading 'E' per spec.md §3.
func IsEDSK(image []byte) bool {
	return len(image) > 0 && image[0] == 'E'
}

// Normalize converts an EDSK-format image (variable-length tracks) into a
// freshly allocated DSK-format image (uniform TrackSize across every
// track), following spec.md §4.1's algorithm. The original image is left
// untouched; callers replace their own buffer with the result and must
// treat it as write-protected (normalized EDSK images are read-only).
//
// A degenerate source (every track size byte zero) still produces a
// structurally valid, content-free DSK buffer rather than an error —
// this mirrors the original EDsk2Dsk routine, which has no failure path
// for that case, only for allocation failure.
func Normalize(image []byte) []byte {
	if len(image) <= edskTrackSizeTableBase {
		return nil
	}

	numTracks := int(image[edskNumTracksOffset])
	numSides := int(image[edskNumSidesOffset])
	totalTracks := numTracks * numSides

	maxTrackLen := 0
	for i := 0; i < totalTracks; i++ {
		off := edskTrackSizeTableBase + i
		if off >= len(image) {
			break
		}
		if blocks := int(image[off]); blocks > maxTrackLen {
			maxTrackLen = blocks
		}
	}
	maxTrackLen *= edskTrackSizeUnit

	destLen := totalTracks*maxTrackLen + infoBlockSize + edskSafetyMargin
	dest := make([]byte, destLen)

	// A normalized image is a plain DSK, not an EDSK: it carries the plain
	// DSK signature, with only the creator name preserved from the source.
	copy(dest[:edskHeaderCopyFrom], dskIdentifier)
	copy(dest[edskHeaderCopyFrom:edskHeaderCopyFrom+edskHeaderCopyLen],
		image[edskHeaderCopyFrom:edskHeaderCopyFrom+edskHeaderCopyLen])
	dest[edskNumTracksOffset] = byte(numTracks)
	dest[edskNumSidesOffset] = byte(numSides)
	binary.LittleEndian.PutUint16(dest[edskNumSidesOffset+1:], uint16(maxTrackLen))

	srcOff := infoBlockSize
	for i := 0; i < totalTracks; i++ {
		blockOff := edskTrackSizeTableBase + i
		if blockOff >= len(image) || image[blockOff] == 0 {
			continue
		}

		dstOff := infoBlockSize + i*maxTrackLen

		if srcOff+edskSectorInfoOffset > len(image) {
			break
		}
		numSectors := int(image[srcOff+edskNumSectorsOffset])

		headerLen := edskSectorInfoOffset + numSectors*8
		if srcOff+headerLen <= len(image) && dstOff+headerLen <= len(dest) {
			copy(dest[dstOff:dstOff+headerLen], image[srcOff:srcOff+headerLen])
		}

		srcDataOff := srcOff + sectorDataStartAddress
		dstDataOff := dstOff + sectorDataStartAddress

		for s := 0; s < numSectors; s++ {
			infoOff := srcOff + edskSectorInfoOffset + s*8
			if infoOff+8 > len(image) {
				break
			}
			sectorLen := int(binary.LittleEndian.Uint16(image[infoOff+edskDataLengthOffset:]))
			if sectorLen == 0 {
				continue
			}
			if srcDataOff+sectorLen <= len(image) && dstDataOff+sectorLen <= len(dest) {
				copy(dest[dstDataOff:dstDataOff+sectorLen], image[srcDataOff:srcDataOff+sectorLen])
			}
			srcDataOff += sectorLen
			dstDataOff += sectorLen
		}

		srcOff += int(image[blockOff]) * edskTrackSizeUnit
	}

	return dest
}

// TrackOffset computes the byte offset of the (cylinder, head) track block
// within a normalized image, per spec.md §4.2.
func TrackOffset(ctk, chead, numSides, trackSize int) int {
	if numSides == 2 {
		off := infoBlockSize + ctk*2*trackSize
		if chead == 1 {
			off += trackSize
		}
		return off
	}
	return infoBlockSize + ctk*trackSize
}
