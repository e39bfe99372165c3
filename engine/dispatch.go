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

// handler is one dispatch-table entry. It returns an error to be
// turned into a STATUS ERROR frame, nil if it already sent its own
// terminal response (DATA or OK), or the *errcode.TransportErr of a
// failed send, which is passed on without being re-reported.
type handler func(e *Engine, payload []byte) error

// dispatchTable maps command code to handler, a small constant table
// rather than any form of inheritance (spec.md 9), mirroring the
// teacher's chanDev.devTab indexing by device number.
var dispatchTable = [protocol.CmdLast]handler{
	protocol.CmdReadID: (*Engine).handleReadID,
	protocol.CmdErase:  (*Engine).handleErase,
	protocol.CmdRead:   (*Engine).handleRead,
	protocol.CmdWriteS: (*Engine).handleWriteStart,
	protocol.CmdWriteD: (*Engine).handleWriteData,
	protocol.CmdWriteE: (*Engine).handleWriteEnd,
	protocol.CmdSelect: (*Engine).handleSelect,
	protocol.CmdReadBB: (*Engine).handleReadBB,
}

// dispatch decodes the command byte from pkt and runs its handler,
// enforcing the "chip selected" precondition spec.md 4.8 requires for
// every command but SELECT. It never returns an error for a frame
// already answered on the wire; transport failures propagate via
// errcode.TransportErr so the caller can stop retrying sends.
func (e *Engine) dispatch(pkt []byte) error {
	if len(pkt) == 0 {
		return e.sendError(errcode.CmdInvalid)
	}
	cmd := protocol.Command(pkt[0])
	if !cmd.Valid() {
		return e.sendError(errcode.CmdInvalid)
	}
	if cmd != protocol.CmdSelect && !e.Selected() {
		return e.sendError(errcode.ChipNotSel)
	}

	e.rxBuf = pkt[1:]
	h := dispatchTable[cmd]
	if h == nil {
		return e.sendError(errcode.CmdInvalid)
	}

	err := h(e, e.rxBuf)
	if err == nil {
		return nil
	}
	if _, ok := err.(*errcode.TransportErr); ok {
		return err
	}
	var ec errcode.Code
	if ce, ok := err.(*errcode.Err); ok {
		ec = ce.Code
	} else {
		ec = errcode.Internal
	}
	return e.sendError(ec)
}

// sendError writes a STATUS ERROR frame. A send failure here becomes
// errcode.TransportErr, which the dispatcher's caller (the event
// loop's drain step) must not re-report.
func (e *Engine) sendError(code errcode.Code) error {
	if sendErr := e.transport.Send(protocol.EncodeError(uint8(code))); sendErr != nil {
		return &errcode.TransportErr{Cause: sendErr}
	}
	return nil
}

func (e *Engine) sendOK() error {
	if err := e.transport.Send(protocol.EncodeOK()); err != nil {
		return &errcode.TransportErr{Cause: err}
	}
	return nil
}

// sendBadBlock and sendWriteAck propagate transport failures just
// like sendOK/sendError above. The source treats these four send
// helpers inconsistently (spec.md 9, open question 3); this engine
// picks one policy throughout -- always surface a send failure as
// errcode.TransportErr -- rather than carrying the inconsistency
// forward.
func (e *Engine) sendBadBlock(addr uint32) error {
	if err := e.transport.Send(protocol.EncodeBadBlock(addr)); err != nil {
		return &errcode.TransportErr{Cause: err}
	}
	return nil
}

func (e *Engine) sendWriteAck(n uint32) error {
	if err := e.transport.Send(protocol.EncodeWriteAck(n)); err != nil {
		return &errcode.TransportErr{Cause: err}
	}
	return nil
}

func (e *Engine) sendData(payload []byte) error {
	frame, err := protocol.EncodeData(payload)
	if err != nil {
		return err
	}
	if err := e.transport.Send(frame); err != nil {
		return &errcode.TransportErr{Cause: err}
	}
	return nil
}
