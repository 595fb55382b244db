package fdc

// overrunArmCount is the watchdog window: the host gets this many status
// port polls to consume a byte before the controller declares an overrun,
// spec.md §4.3 / §9 (documented as intentionally per-byte, not scaled to
// transfer size).
const overrunArmCount = 64

// StatusPortRead returns the Main Status Register. While a send is
// in-flight and the overrun watchdog is armed, each status read burns one
// tick off the counter; hitting zero forces an overrun termination,
// spec.md §4.3.
func (c *Controller) StatusPortRead() byte {
	if c.MainStatus&(msrRQM|msrDIO) == (msrRQM | msrDIO) {
		if c.OverrunTest {
			c.OverrunCounter--
			if c.OverrunCounter == 0 {
				c.raiseOverrun()
			}
		}
	}
	return c.MainStatus
}

// DataPortRead advances the phase engine when the FDC is ready to hand the
// CPU a byte, then returns the (possibly freshly staged) latched byte,
// spec.md §4.3.
func (c *Controller) DataPortRead() byte {
	if c.MainStatus&(msrRQM|msrDIO) == (msrRQM | msrDIO) {
		c.advance()
	}
	return c.Byte3FFD
}

// DataPortWrite latches byte and, if the FDC is ready to accept one from
// the CPU, advances the phase engine, spec.md §4.3.
func (c *Controller) DataPortWrite(b byte) {
	c.Byte3FFD = b
	if c.MainStatus&(msrRQM|msrDIO) == msrRQM {
		c.advance()
	}
}

// advance runs the continuation named by c.Phase.
func (c *Controller) advance() {
	switch c.Phase {
	case PhaseAwaitCommand:
		c.beginCommand(c.Byte3FFD)
	case PhaseReceive:
		c.receiveByte()
	case PhaseSend:
		c.sendByte()
	}
}

// receiveByte implements spec.md §4.3's Receive-bytes continuation.
func (c *Controller) receiveByte() {
	if c.recvIdx < len(c.recvDest) {
		c.recvDest[c.recvIdx] = c.Byte3FFD
		c.recvIdx++
	}
	if c.recvIdx >= len(c.recvDest) {
		done := c.onTransferDone
		c.onTransferDone = nil
		if done != nil {
			done(c)
		}
	}
}

// sendByte implements spec.md §4.3's Send-bytes continuation: stage the
// next byte, then (if more remain) re-arm the overrun watchdog.
func (c *Controller) sendByte() {
	if c.sendIdx < len(c.sendSrc) {
		c.Byte3FFD = c.sendSrc[c.sendIdx]
		c.sendIdx++
	}
	if c.sendIdx >= len(c.sendSrc) {
		done := c.onTransferDone
		c.onTransferDone = nil
		if done != nil {
			done(c)
		}
		return
	}
	c.OverrunTest = true
	c.OverrunCounter = overrunArmCount
}

// raiseOverrun forces the current transfer to the result phase with ST0
// abnormal-termination and ST1 overrun set, spec.md §4.3/§7.
func (c *Controller) raiseOverrun() {
	c.OverrunTest = false
	c.OverrunError = true
	c.ST0 = (c.ST0 &^ st0ICMask) | st0ICAT
	c.ST1 |= st1OR
	c.MainStatus &^= msrEXM
	done := c.onTransferDone
	c.onTransferDone = nil
	if done != nil {
		done(c)
	}
}

// enterAwaitCommand returns the controller to the idle phase: ready for a
// new command byte, busy/execution bits clear. Drive-busy bits (MSR
// 3..0) are preserved; this emulator completes seeks synchronously (see
// execSeek) so they are never observably set, but the mask is kept so
// the bit layout stays correct if a host inspects it mid-command.
func (c *Controller) enterAwaitCommand() {
	c.Phase = PhaseAwaitCommand
	c.MainStatus = msrRQM | (c.MainStatus & msrDB)
	c.CmdByte = 0
	c.fireCommandCallback(0, 1)
}

// enterReceive transitions to accumulating count bytes from the CPU into
// dest, calling done once the last byte lands.
func (c *Controller) enterReceive(dest []byte, done continuation) {
	c.Phase = PhaseReceive
	c.recvDest = dest
	c.recvIdx = 0
	c.onTransferDone = done
	c.MainStatus = msrRQM | msrCB | (c.MainStatus & msrDB)
}

// enterReceiveData is enterReceive with EXM set, used for the data-in
// half of Write Data/Write Deleted Data.
func (c *Controller) enterReceiveData(dest []byte, done continuation) {
	c.enterReceive(dest, done)
	c.MainStatus |= msrEXM
}

// enterSend transitions to staging count bytes for the CPU to read from
// src, calling done once the last byte has been staged.
func (c *Controller) enterSend(src []byte, done continuation) {
	c.Phase = PhaseSend
	c.sendSrc = src
	c.sendIdx = 0
	c.onTransferDone = done
	c.MainStatus = msrRQM | msrDIO | msrCB | (c.MainStatus & msrDB)
}

// enterSendData is enterSend with EXM set, used for the data-out half of
// Read Data/Read Deleted Data/Read Track.
func (c *Controller) enterSendData(src []byte, done continuation) {
	c.enterSend(src, done)
	c.MainStatus |= msrEXM
}

// enterSendResults stages n result bytes and returns to await-command
// once the last one is read, spec.md §4.4's "return-results" step.
func (c *Controller) enterSendResults(n int) {
	c.NumResults = n
	c.enterSend(c.Results[:n], func(c *Controller) {
		c.enterAwaitCommand()
	})
}
