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

// Package nand defines the narrow controller surface the engine drives;
// spec.md treats the real driver as an out-of-scope collaborator, so
// this package only names the interface and the status codes it
// returns. Concrete controllers (nandsim, or a real hardware driver)
// live in their own packages.
package nand

// Status is the raw completion code a controller operation reports.
type Status uint8

const (
	StatusReady   Status = iota // operation completed successfully
	StatusError                 // device reported a hard error
	StatusTimeout               // controller gave up waiting on the device
	StatusBusy                  // still running, poll again
)

// Controller is the narrow interface to the NAND controller driver.
// Addresses are absolute NAND byte addresses; page/block math is the
// caller's job (engine/geometry), not the controller's.
type Controller interface {
	// ReadID returns the raw, opaque NAND ID structure reported by
	// the selected chip.
	ReadID() ([]byte, error)

	// EraseBlock starts an erase of the block containing addr and
	// blocks until it completes, returning the raw status.
	EraseBlock(addr uint32) Status

	// WritePageAsync kicks off an asynchronous page program at addr
	// with the given page-sized payload. The caller must poll
	// ReadStatus until it stops returning StatusBusy.
	WritePageAsync(addr uint32, page []byte) error

	// ReadStatus polls the controller for the outcome of the most
	// recent asynchronous program.
	ReadStatus() Status

	// ReadPage reads one full page at addr into buf, which must be
	// at least page-size bytes.
	ReadPage(addr uint32, buf []byte) Status

	// ReadData reads n bytes starting at byte offset addr without the
	// page-boundary semantics of ReadPage; used by the bad-block
	// scanner to read a single spare-area marker byte.
	ReadData(addr uint32, n int) ([]byte, Status)
}
