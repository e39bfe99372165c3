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

import "github.com/nandprog/engine/errcode"

// validateRange checks addr/len against align (block_size for erase,
// page_size for read/write) and the chip's total size, in the order
// spec.md 4.2 specifies: fail fast on the first violation.
//
// lenMisalignCode lets callers preserve the source's inconsistency
// (spec.md 9, open question 1): WRITE_START reports ADDR_NOT_ALIGN for
// a misaligned length, while ERASE and READ report LEN_NOT_ALIGN. Each
// call site passes its own wire-compatible code rather than this
// package silently "fixing" the asymmetry.
func (e *Engine) validateRange(addr, length, align uint32, lenMisalignCode errcode.Code) error {
	if addr%align != 0 {
		return errcode.New(errcode.AddrNotAlign)
	}
	if length == 0 {
		return errcode.New(errcode.LenInvalid)
	}
	if length%align != 0 {
		return errcode.New(lenMisalignCode)
	}
	if uint64(addr)+uint64(length) > e.chipInfo.Size {
		return errcode.New(errcode.AddrExceeded)
	}
	return nil
}
