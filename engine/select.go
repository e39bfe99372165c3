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

// handleSelect implements spec.md 4.9: look the chip up, and on
// success reset the bad-block table and the write session and publish
// chipInfo; on failure clear chipInfo and report CHIP_NOT_FOUND. The
// NAND controller is not initialized here: nand.Controller has no
// initialization call.
func (e *Engine) handleSelect(payload []byte) error {
	req, err := protocol.DecodeSelect(payload)
	if err != nil {
		return errcode.New(errcode.CmdInvalid)
	}
	info, ok := e.chipDB.Lookup(req.ChipNum)
	if !ok {
		e.chipInfo = nil
		return errcode.New(errcode.ChipNotFound)
	}
	e.badTable.Init()
	e.chipInfo = &info
	e.write = writeSession{}
	return e.sendOK()
}

// handleReadID implements spec.md 4.10: a DATA frame containing the
// raw, opaque NAND ID bytes from the controller.
func (e *Engine) handleReadID(_ []byte) error {
	id, err := e.nandCtl.ReadID()
	if err != nil {
		return errcode.New(errcode.Internal)
	}
	return e.sendData(id)
}
