package disk

import (
	"github.com/pkg/errors"

	"github.com/leiradel/fdc765/storage"
)

// Image is a loaded, normalized-if-necessary disk image together with its
// parsed DiskInformation header. It is the unit fdc.Controller.InsertDisk
// works with; fdc never touches raw file bytes itself.
type Image struct {
	Bytes        []byte
	Info         DiskInformation
	WriteProtect bool // forced true when EDSKSource
	EDSKSource   bool
}

// Load parses raw image bytes (already read from wherever the host keeps
// disk images) into an Image, running the EDSK normalizer first when the
// source looks like an EDSK file.
func Load(raw []byte, writeProtect bool) (*Image, error) {
	if len(raw) < infoBlockSize {
		return nil, errors.New("image too small to contain a disk information block")
	}

	img := &Image{WriteProtect: writeProtect}

	if IsEDSK(raw) {
		normalized := Normalize(raw)
		if normalized == nil {
			return nil, errors.New("EDSK normalization failed: image too small")
		}
		img.Bytes = normalized
		img.EDSKSource = true
		img.WriteProtect = true
	} else {
		img.Bytes = raw
	}

	r := storage.NewReaderFromBytes(img.Bytes[:infoBlockSize])
	if err := img.Info.Read(r); err != nil {
		return nil, errors.Wrap(err, "error reading the disk information block")
	}
	if err := validateHeader(&img.Info); err != nil {
		return nil, err
	}

	return img, nil
}

// Track loads the TrackInformation block for (ctk, chead) out of the
// image, per the offset math in spec.md §4.2. SectorData entries alias
// directly into img.Bytes, so writing through them (as the Write Data path
// does) persists immediately without a separate write-back step.
func (img *Image) Track(ctk, chead int) TrackInformation {
	off := TrackOffset(ctk, chead, int(img.Info.Sides), int(img.Info.TrackSize))

	var t TrackInformation
	_ = t.ReadFromOffset(img.Bytes, off)
	return t
}
