package fdc

// Main Status Register bits, spec.md §6.2.
const (
	msrRQM byte = 0x80 // ready for a byte
	msrDIO byte = 0x40 // 1 = FDC -> CPU
	msrEXM byte = 0x20 // execution phase
	msrCB  byte = 0x10 // FDC busy
	msrDB  byte = 0x0F // drive-busy flags, bits 3..0
)

// ST0 bits, spec.md §6.3.
const (
	st0ICMask  byte = 0xC0 // interrupt code, bits 7-6
	st0ICAT    byte = 0x40 // abnormal termination
	st0ICIC    byte = 0x80 // invalid command
	st0ICReady byte = 0xC0 // ready-line state changed
	st0SE      byte = 0x20 // seek end
	st0EC      byte = 0x10 // equipment check
	st0NR      byte = 0x08 // not ready
	st0HD      byte = 0x04
	st0USMask  byte = 0x03
)

// ST1 bits.
const (
	st1EN byte = 0x80 // end of cylinder
	st1DE byte = 0x20 // data error
	st1OR byte = 0x10 // overrun
	st1ND byte = 0x04 // no data
	st1NW byte = 0x02 // not writable
	st1MA byte = 0x01 // missing address mark
)

// ST2 bits.
const (
	st2CM byte = 0x40 // control mark
	st2DD byte = 0x20 // data-field data error
	st2WC byte = 0x10 // wrong cylinder
	st2BC byte = 0x02 // bad cylinder
	st2MD byte = 0x01 // missing DAM
)

// ST3 bits.
const (
	st3WP byte = 0x40
	st3RY byte = 0x20
	st3T0 byte = 0x10
	st3TS byte = 0x08
	st3HD byte = 0x04
	st3US byte = 0x03
)

// st1ErrorMask / st2ErrorMask are the bits of a sector's recorded ST1/ST2
// (from its SectorInfoList entry) that the read path treats as hard
// errors requiring abnormal termination, per spec.md §4.5 step 6/8: "DE,
// ND, MA in ST1" (0x25 = DE|ND|MA... note spec spells this mask 0x25,
// which is DE(0x20)|ND(0x04)|MA(0x01)) and "DD, MD in ST2" (0x21 =
// DD(0x20)|MD(0x01)).
const (
	st1ErrorMask byte = 0x25
	st2ErrorMask byte = 0x21
)

// State is a snapshot returned by Controller.GetFDCState, spec.md §6.1.
type State struct {
	MSR, ST0, ST1, ST2, ST3 byte
	Unit0CTK, Unit0CHead, Unit0CSR byte
	Unit1CTK, Unit1CHead, Unit1CSR byte
}
