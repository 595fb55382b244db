package fdc

import "encoding/binary"

// Known weak/random-sector fingerprints: the first 8 bytes of an assembled
// sector buffer for a handful of commercial Amstrad titles' copy-protection
// tracks, used to pick the auto-sense poke style instead of the unmatched
// default. Values are the original fdc765 author's recorded fingerprints
// (original_source/src/fdc765.c).
const (
	fingerprintDixonDisk1Lo uint32 = 0x1CE2AE94
	fingerprintDixonDisk1Hi uint32 = 0x80A40824
	fingerprintDixonDisk2Lo uint32 = 0xAAC6F5B5
	fingerprintDixonDisk2Hi uint32 = 0x2A041840
	fingerprintHoppingMadLo uint32 = 0x92831270
	fingerprintHoppingMadHi uint32 = 0x09134D31
)

// fillRandom synthesizes the unreadable tail of buf (indices [n:), the
// bytes beyond the sector's recorded data) and, for every method but
// ZeroFill, additionally pokes exactly one more byte of the whole buffer
// with one further step of the seed. buf[:n] already holds the sector's
// genuine recorded bytes; the poke can land on either one of them (first
// byte) or on the synthesized tail (last byte), matching
// case_SDTC_NormalRandom: the padding is never filled with a single
// repeated byte, only the stepping counter or zero.
func (c *Controller) fillRandom(buf []byte, n int) {
	if n < 0 {
		n = 0
	}
	if n > len(buf) {
		n = len(buf)
	}
	pad := buf[n:]

	if c.RandomMethod == RandomMethodZeroFill {
		for i := range pad {
			pad[i] = 0
		}
		c.RandomSeed = 0
		return
	}

	seed := c.RandomSeed
	for i := range pad {
		pad[i] = seed
		seed += 3
	}
	c.RandomSeed = seed

	if len(buf) == 0 {
		return
	}

	seed += 3
	c.RandomSeed = seed

	method := c.RandomMethod
	if method == RandomMethodAuto {
		method = RandomMethodFinalByte
		if fingerprintMatches(buf) {
			method = RandomMethodFirstByte
		}
	}

	if method == RandomMethodFinalByte {
		buf[len(buf)-1] = seed
	} else {
		buf[0] = seed
	}
}

// fingerprintMatches reports whether buf's first 8 bytes match one of the
// recorded weak-sector fingerprints. Every match steers auto-sense to the
// same poke style (first byte); only the absence of a match falls back to
// the final-byte default.
func fingerprintMatches(buf []byte) bool {
	if len(buf) < 8 {
		return false
	}
	lo := binary.BigEndian.Uint32(buf[0:4])
	hi := binary.BigEndian.Uint32(buf[4:8])

	switch {
	case lo == fingerprintDixonDisk1Lo && hi == fingerprintDixonDisk1Hi:
		return true
	case lo == fingerprintDixonDisk2Lo && hi == fingerprintDixonDisk2Hi:
		return true
	case lo == fingerprintHoppingMadLo && hi == fingerprintHoppingMadHi:
		return true
	}
	return false
}
