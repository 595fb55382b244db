package fdc

import "github.com/leiradel/fdc765/disk"

// Drive holds the per-unit state described in spec.md §3: the physical
// head position, the scratch copy of the track currently under the head,
// and the disk image it's reading from.
type Drive struct {
	Image        *disk.Image
	Inserted     bool
	WriteProtect bool
	ContentsChanged bool
	EDSKSource   bool

	DriveStateChanged bool

	CTK   int // current physical cylinder
	CHead int // current head for the last command
	CSR   int // current sector index within the current track's sector list

	SeekDone bool
	SeekST0  byte // ST0 to report for this drive's pending seek/recalibrate
	RetCSR0  int  // remaining post-seek Read-Sector-ID settle count, spec.md §4.9

	Track disk.TrackInformation // scratch block for the current (CTK, CHead)
}

// reset clears transient state on insert/eject/re-init without touching
// the image pointer — callers assign/clear Image around calling reset.
func (d *Drive) reset() {
	d.CTK = 0
	d.CHead = 0
	d.CSR = 0
	d.SeekDone = false
	d.RetCSR0 = 0
	d.Track = disk.TrackInformation{}
}

// numSides returns the drive's side count, defaulting to 1 when no image
// is inserted (so head-validity checks still have a sane denominator).
func (d *Drive) numSides() int {
	if d.Image == nil {
		return 1
	}
	n := int(d.Image.Info.Sides)
	if n == 0 {
		return 1
	}
	return n
}

// numTracks returns the drive's cylinder count, defaulting to 0 when no
// image is inserted.
func (d *Drive) numTracks() int {
	if d.Image == nil {
		return 0
	}
	return int(d.Image.Info.Tracks)
}

// loadTrack refreshes the scratch Track block for (d.CTK, d.CHead) from
// the inserted image, spec.md §4.2.
func (d *Drive) loadTrack() {
	if d.Image == nil {
		d.Track = disk.TrackInformation{}
		return
	}
	d.Track = d.Image.Track(d.CTK, d.CHead)
}

// trackSize returns the uniform TrackSize field from the inserted image's
// header, or 0 if nothing is inserted.
func (d *Drive) trackSize() int {
	if d.Image == nil {
		return 0
	}
	return int(d.Image.Info.TrackSize)
}
