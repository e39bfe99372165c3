/*
nandprog - NAND programmer command engine

Copyright (c) 2026, NAND Programmer Engine Contributors

Permission is hereby granted, free of charge, to any person obtaining a
copy of this software and associated documentation files (the "Software"),
to deal in the Software without restriction, including without limitation
the rights to use, copy, modify, merge, publish, distribute, sublicense,
and/or sell copies of the Software, and to permit persons to whom the
Software is furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*/

package engine

import (
	"github.com/nandprog/engine/errcode"
	"github.com/nandprog/engine/protocol"
)

// handleWriteStart implements spec.md 4.6 WRITE_START. The length
// misalignment code here is ADDR_NOT_ALIGN rather than LEN_NOT_ALIGN,
// matching the firmware's write-start validation exactly (spec.md 9,
// open question 1) even though ERASE and READ use LEN_NOT_ALIGN for
// the identical condition -- preserved for host wire compatibility,
// not "corrected".
func (e *Engine) handleWriteStart(payload []byte) error {
	req, err := protocol.DecodeAddrLen(payload)
	if err != nil {
		return errcode.New(errcode.CmdInvalid)
	}
	if verr := e.validateRange(req.Addr, req.Len, e.chipInfo.PageSize, errcode.AddrNotAlign); verr != nil {
		return verr
	}

	e.write = writeSession{
		addr:      req.Addr,
		length:    req.Len,
		addrIsSet: true,
		page:      req.Addr / e.chipInfo.PageSize,
	}
	return e.sendOK()
}

// handleWriteData implements spec.md 4.6 WRITE_DATA.
func (e *Engine) handleWriteData(payload []byte) error {
	if !e.write.addrIsSet {
		return errcode.New(errcode.AddrInvalid)
	}
	if len(payload)+1 > protocol.PacketBufSize {
		return errcode.New(errcode.CmdDataSize)
	}
	req, err := protocol.DecodeWriteData(payload)
	if err != nil {
		return errcode.New(errcode.CmdDataSize)
	}

	remaining := req.Data
	pageSize := e.chipInfo.PageSize
	for len(remaining) > 0 {
		space := pageSize - e.write.offset
		n := uint32(len(remaining))
		if n > space {
			n = space
		}
		copy(e.write.pageBuf[e.write.offset:e.write.offset+n], remaining[:n])
		e.write.offset += n
		remaining = remaining[n:]

		if e.write.offset == pageSize {
			if err := e.drainInFlightWrite(); err != nil {
				return err
			}
			if err := e.nandCtl.WritePageAsync(e.write.page*pageSize, e.write.pageBuf[:pageSize]); err != nil {
				return errcode.New(errcode.NANDWr)
			}
			e.write.nandWrInProgress = true
			e.write.nandTimeout = 0
			e.write.addr += pageSize
			e.write.page++
			e.write.offset = 0
		}
	}

	e.write.bytesWritten += uint32(len(req.Data))
	if e.write.bytesWritten-e.write.bytesAck >= pageSize || e.write.bytesWritten == e.write.length {
		if err := e.sendWriteAck(e.write.bytesWritten); err != nil {
			return err
		}
		e.write.bytesAck = e.write.bytesWritten
	}
	if e.write.bytesWritten > e.write.length {
		return errcode.New(errcode.LenExceeded)
	}
	return e.sendOK()
}

// handleWriteEnd implements spec.md 4.6 WRITE_END: the host
// under-delivering a partial page is NAND_WR, not silently accepted.
func (e *Engine) handleWriteEnd(_ []byte) error {
	e.write.addrIsSet = false
	if e.write.offset != 0 {
		return errcode.New(errcode.NANDWr)
	}
	return e.sendOK()
}

// drainInFlightWrite busy-polls C3 until the previous async program
// completes, per spec.md 4.6's concurrency contract: at most one
// program may be in flight, so a new page cannot start until the last
// one is observed done.
func (e *Engine) drainInFlightWrite() error {
	for e.write.nandWrInProgress {
		switch e.adaptWriteStatus(e.nandCtl.ReadStatus()) {
		case outcomeDone:
			return nil
		case outcomeBadBlock:
			return nil
		case outcomeBusyPoll:
			continue
		default:
			return errcode.New(errcode.NANDWr)
		}
	}
	return nil
}

// pollInFlightWrite is the event loop's post-drain poll (spec.md 4.8):
// a single status check per tick so a program completes even if the
// host briefly stops sending. It is the only thing that can advance
// Programming -> Idle when the host pauses (spec.md 9).
func (e *Engine) pollInFlightWrite() error {
	if !e.write.nandWrInProgress {
		return nil
	}
	switch e.adaptWriteStatus(e.nandCtl.ReadStatus()) {
	case outcomeDone, outcomeBadBlock, outcomeBusyPoll:
		return nil
	default:
		return e.sendError(errcode.NANDWr)
	}
}
