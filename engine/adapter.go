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
	"github.com/nandprog/engine/nand"
)

// outcome is the engine-facing result of translating a raw controller
// status, per spec.md 4.3.
type outcome int

const (
	outcomeDone outcome = iota
	outcomeBadBlock
	outcomeFatal
)

// adaptReadOrErase maps a raw status from a read or erase operation to
// an engine outcome. TIMEOUT on read/erase is logged and treated as
// done: the page/block is abandoned without a BAD_BLOCK report. This
// mirrors the firmware's np_nand_read/erase_status_get behavior,
// preserved verbatim here (spec.md 9, open question 2) rather than
// "fixed" to fail fatally.
func (e *Engine) adaptReadOrErase(st nand.Status) outcome {
	switch st {
	case nand.StatusReady:
		return outcomeDone
	case nand.StatusError:
		return outcomeBadBlock
	case nand.StatusTimeout:
		e.log.Warn("nand timeout on read/erase, treating as done")
		return outcomeDone
	default:
		return outcomeFatal
	}
}

// adaptWriteStatus maps a raw status observed while polling an
// in-flight program for completion. Both StatusReady and StatusError
// clear nandWrInProgress -- the source's switch statement falls
// through ERROR into READY with no break, and both are "write no
// longer in progress" (spec.md 9, open question 4). StatusTimeout and
// StatusBusy increment the poll counter and only become fatal once it
// reaches NANDTimeout iterations.
func (e *Engine) adaptWriteStatus(st nand.Status) outcome {
	switch st {
	case nand.StatusReady:
		e.write.nandWrInProgress = false
		return outcomeDone
	case nand.StatusError:
		e.write.nandWrInProgress = false
		return outcomeBadBlock
	case nand.StatusTimeout, nand.StatusBusy:
		e.write.nandTimeout++
		if e.write.nandTimeout >= timeoutCeiling {
			return outcomeFatal
		}
		return outcomeBusyPoll
	default:
		return outcomeFatal
	}
}

// outcomeBusyPoll is a fourth, write-only outcome: still waiting, try
// again next tick. It is distinct from outcomeDone/outcomeBadBlock
// because the caller must not advance past the program until one of
// those two is observed.
const outcomeBusyPoll outcome = 3

const timeoutCeiling = 0x1000000
