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

// handleErase implements spec.md 4.7. Length bookkeeping has the
// spec's deliberate asymmetry: len only decrements for a good block,
// or unconditionally when the original request already covered the
// whole chip. A full-chip erase therefore always visits every block;
// a partial erase insists on len worth of *good* blocks, skipping bad
// ones without consuming the budget.
func (e *Engine) handleErase(payload []byte) error {
	req, err := protocol.DecodeAddrLen(payload)
	if err != nil {
		return errcode.New(errcode.CmdInvalid)
	}
	if verr := e.validateRange(req.Addr, req.Len, e.chipInfo.BlockSize, errcode.LenNotAlign); verr != nil {
		return verr
	}

	fullChip := uint64(req.Len) == e.chipInfo.Size
	addr := req.Addr
	remaining := req.Len

	for remaining > 0 {
		if e.badTable.Lookup(addr) {
			if err := e.sendBadBlock(addr); err != nil {
				return err
			}
			if fullChip {
				remaining -= e.chipInfo.BlockSize
			}
			addr += e.chipInfo.BlockSize
			continue
		}

		switch e.adaptReadOrErase(e.nandCtl.EraseBlock(addr)) {
		case outcomeBadBlock:
			e.badTable.Add(addr)
			if err := e.sendBadBlock(addr); err != nil {
				return err
			}
			if fullChip {
				remaining -= e.chipInfo.BlockSize
			}
		case outcomeDone:
			remaining -= e.chipInfo.BlockSize
		default:
			return errcode.New(errcode.NANDErase)
		}
		addr += e.chipInfo.BlockSize
	}
	return e.sendOK()
}
