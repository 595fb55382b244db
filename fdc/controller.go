package fdc

import (
	"github.com/leiradel/fdc765/disk"
)

// Controller is one emulated µPD765A-class FDC with two attached drives.
// The zero value is not ready for use; call Initialise first.
type Controller struct {
	MainStatus             byte
	ST0, ST1, ST2, ST3     byte
	Byte3FFD               byte
	Phase                  Phase
	CmdByte                byte
	Params                 [32]byte
	Results                [32]byte
	NumParams, NumResults  int
	LastCmd                byte
	SectorsTransferred     int

	ReadMode ReadMode

	MotorState, NewMotorState bool
	MotorOffTimer             int

	OverrunTest    bool
	OverrunCounter byte
	OverrunError   bool

	SelectedUnit int
	SeekUnit     *Drive
	ActiveUnit   *Drive

	RandomSeed         byte
	RandomMethod       RandomMethod
	MultipleSectorPick uint32

	ActiveCallback  func()
	CommandCallback func(cmd []byte, n int)

	Drives [2]Drive

	// phase engine cursors, spec.md §3/§4.3
	recvDest []byte
	recvIdx  int
	sendSrc  []byte
	sendIdx  int

	onTransferDone continuation // return_after_transfer

	// st2DAMBit tracks the transient "DAM didn't match but SK=0" bit the
	// read path ORs into ST2 for the current sector, spec.md §4.5 step 7.
	st2DAMBit byte
}

// Initialise clears controller state and runs the low-level
// initialization sequence, spec.md §6.1. The reallocator parameter the
// original C API exposed has no Go equivalent (Go's allocator needs no
// caller-supplied hook) and is intentionally not part of this signature;
// EDSK normalization here simply allocates a new Go slice.
func (c *Controller) Initialise() {
	*c = Controller{}
	c.RandomMethod = RandomMethodAuto
	c.lowLevelInitialise()
}

func (c *Controller) lowLevelInitialise() {
	c.MotorState = false
	c.Phase = PhaseAwaitCommand
	c.MainStatus = 0x80
	c.Drives[0].SeekDone = false
	c.Drives[1].SeekDone = false
	c.Drives[0].CTK = 0
	c.Drives[1].CTK = 0
	c.Drives[0].CHead = 0
	c.Drives[1].CHead = 0
	c.ST3 |= st3RY
	c.RandomSeed = 0
	c.fireCommandCallback(0, 1)
}

// Shutdown ejects both drives.
func (c *Controller) Shutdown() {
	c.EjectDisk(0)
	c.EjectDisk(1)
}

// ResetDevice reinitializes the controller without ejecting any disks,
// spec.md §6.1.
func (c *Controller) ResetDevice() {
	c.lowLevelInitialise()
}

// drive returns the drive for unit (masked to 0 or 1), spec.md's
// GetUnitPtr.
func (c *Controller) drive(unit int) *Drive {
	return &c.Drives[unit&1]
}

// InsertDisk loads raw image bytes into unit, running the EDSK normalizer
// first if the image looks like an EDSK file. writeProtect is ignored
// (forced true) when the source is EDSK, matching spec.md §3's lifecycle
// rule.
func (c *Controller) InsertDisk(raw []byte, writeProtect bool, unit int) error {
	c.EjectDisk(unit)

	d := c.drive(unit)

	img, err := disk.Load(raw, writeProtect)
	if err != nil {
		return err
	}

	d.Image = img
	d.Inserted = true
	d.WriteProtect = img.WriteProtect
	d.EDSKSource = img.EDSKSource
	d.ContentsChanged = false
	d.DriveStateChanged = true
	d.reset()

	c.ResetDevice()
	return nil
}

// EjectDisk clears unit's image pointer, spec.md §6.1.
func (c *Controller) EjectDisk(unit int) {
	d := c.drive(unit)
	d.Image = nil
	d.Inserted = false
	d.DriveStateChanged = false
	d.reset()
	c.ResetDevice()
}

// DiskInserted reports whether unit has a disk loaded.
func (c *Controller) DiskInserted(unit int) bool { return c.drive(unit).Inserted }

// WriteProtected reports whether unit's medium is write-protected.
func (c *Controller) WriteProtected(unit int) bool { return c.drive(unit).WriteProtect }

// ContentsChanged reports whether unit has been written to since insert.
func (c *Controller) ContentsChanged(unit int) bool { return c.drive(unit).ContentsChanged }

// GetMotorState reports the current motor state: the last value applied
// via SetMotorState, or off after Initialise, ResetDevice, InsertDisk or
// EjectDisk.
func (c *Controller) GetMotorState() bool { return c.MotorState }

// SetMotorState applies a raw motor control byte, spec.md §4.12: bit 3
// selects the drive motor line.
func (c *Controller) SetMotorState(value byte) {
	c.NewMotorState = (value>>3)&1 != 0
	if c.MotorState && !c.NewMotorState {
		c.MotorOffTimer = 3
	}
	c.MotorState = c.NewMotorState
}

// SetActiveCallback installs the callback invoked when the FDC becomes
// active servicing Read Data / Write Data / Read Sector ID.
func (c *Controller) SetActiveCallback(cb func()) { c.ActiveCallback = cb }

// SetCommandCallback installs the callback invoked with the command byte
// buffer and count at the documented points, spec.md §6.1 / SPEC_FULL §6.
func (c *Controller) SetCommandCallback(cb func(cmd []byte, n int)) { c.CommandCallback = cb }

// SetRandomMethod selects the bad-sector padding strategy, spec.md §6.1.
// Values outside {0, 1, 2, 0xFF} are ignored.
func (c *Controller) SetRandomMethod(m byte) {
	switch m {
	case 0, 1, 2, 0xFF:
		c.RandomMethod = RandomMethod(m)
	}
}

// GetFDCState snapshots MSR, ST0-3 and per-drive CTK/CHEAD/CSR.
func (c *Controller) GetFDCState() State {
	return State{
		MSR: c.MainStatus, ST0: c.ST0, ST1: c.ST1, ST2: c.ST2, ST3: c.ST3,
		Unit0CTK: byte(c.Drives[0].CTK), Unit0CHead: byte(c.Drives[0].CHead), Unit0CSR: byte(c.Drives[0].CSR),
		Unit1CTK: byte(c.Drives[1].CTK), Unit1CHead: byte(c.Drives[1].CHead), Unit1CSR: byte(c.Drives[1].CSR),
	}
}

// fireCommandCallback invokes CommandCallback with the command byte
// buffer (cmdByte followed by the latched parameters) and n bytes, per
// SPEC_FULL §6's supplemented call sites: command-byte decode (n=1),
// full parameter receipt (n=1+NumParams), one call per sector
// transferred in a multi-sector command, and the idle/reset signal
// (cmdByte=0, n=1).
func (c *Controller) fireCommandCallback(cmdByte byte, n int) {
	if c.CommandCallback == nil {
		return
	}
	buf := make([]byte, n)
	if n > 0 {
		buf[0] = cmdByte
		copy(buf[1:], c.Params[:])
	}
	c.CommandCallback(buf, n)
}

// notifyActive invokes ActiveCallback, spec.md §6.1's set_active_callback.
func (c *Controller) notifyActive() {
	if c.ActiveCallback != nil {
		c.ActiveCallback()
	}
}
