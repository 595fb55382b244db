// Package fdc implements the command engine of a NEC µPD765A-class floppy
// disk controller: a multi-phase (command, execution, result) state
// machine driven byte-at-a-time through three I/O registers by a host CPU
// emulator. The package never opens files or schedules itself — callers
// supply disk image bytes (see the sibling disk package) and drive
// execution entirely through StatusPortRead, DataPortRead and
// DataPortWrite.
package fdc

// Phase names the continuation the controller will run the next time a
// byte is exchanged with the host. It is the tagged continuation
// identifier described in spec.md's design notes, dispatched through
// advance()'s switch rather than through nested goroutine calls.
type Phase int

const (
	// PhaseAwaitCommand is the idle phase: the next data port write is
	// taken as a new command byte.
	PhaseAwaitCommand Phase = iota
	// PhaseReceive is mid-command: the controller is accumulating bytes
	// the host is writing (parameters or sector data).
	PhaseReceive
	// PhaseSend is mid-command: the controller is staging bytes for the
	// host to read (sector data or result bytes).
	PhaseSend
)

// ReadMode selects which family of sector data a Read-class command is
// fetching.
type ReadMode int

const (
	ReadModeData ReadMode = iota
	ReadModeDeletedData
	ReadModeTrack
)

// RandomMethod controls how Sector-Data-To-CPU pads an overdumped or
// undersized sector, see spec.md §4.6 and §6.1's set_random_method.
type RandomMethod uint8

const (
	RandomMethodAuto      RandomMethod = 0
	RandomMethodFinalByte RandomMethod = 1
	RandomMethodFirstByte RandomMethod = 2
	RandomMethodZeroFill  RandomMethod = 0xFF
)

// continuation is a callback that receives the Controller it runs on; using
// closures instead of a flat label table keeps Receive/Send sub-phases
// (spec.md's one permitted level of nesting: buffer_return beneath
// return_after_transfer) expressible as ordinary Go function values
// instead of a second enum.
type continuation func(c *Controller)
