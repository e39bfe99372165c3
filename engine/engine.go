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

// Package engine is the protocol/state core of the NAND programmer:
// command dispatch, the streaming write state machine, the paged read
// streamer, the bad-block scanner, and the error taxonomy on the
// wire. It is a plain Go object rather than the firmware's static
// singleton (spec.md 9's "lift it into an owned object" guidance), so
// tests can run several engines side by side.
package engine

import (
	"log/slog"

	"github.com/nandprog/engine/badblock"
	"github.com/nandprog/engine/chip"
	"github.com/nandprog/engine/nand"
	"github.com/nandprog/engine/protocol"
	"github.com/nandprog/engine/transport"
)

// writeSession is valid while a WRITE_S/WRITE_D*/WRITE_E sequence is
// in progress, per spec.md 3.
type writeSession struct {
	addr       uint32
	length     uint32
	addrIsSet  bool
	pageBuf    [protocol.MaxPageSize]byte
	page       uint32
	offset     uint32
	bytesWritten uint32
	bytesAck     uint32

	nandWrInProgress bool
	nandTimeout      int
}

// Engine holds all per-session state described in spec.md 3: the
// transport handle, the selected chip geometry, and the write
// session. rxBuf is only valid for the duration of one dispatch call.
type Engine struct {
	transport transport.Transport
	chipInfo  *chip.Info
	chipDB    chip.Database
	nandCtl   nand.Controller
	badTable  badblock.Table
	log       *slog.Logger

	rxBuf []byte
	write writeSession
}

// Config bundles the collaborators an Engine needs. All fields but
// Logger are required; a nil Logger falls back to slog.Default().
type Config struct {
	Transport transport.Transport
	ChipDB    chip.Database
	NAND      nand.Controller
	BadTable  badblock.Table
	Logger    *slog.Logger
}

// New builds an Engine with its collaborators wired in, zeroed
// exactly like the firmware's state block on first entry to the event
// loop.
func New(cfg Config) *Engine {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		transport: cfg.Transport,
		chipDB:    cfg.ChipDB,
		nandCtl:   cfg.NAND,
		badTable:  cfg.BadTable,
		log:       log,
	}
}

// Selected reports whether a chip has been selected, the precondition
// every command but SELECT requires.
func (e *Engine) Selected() bool {
	return e.chipInfo != nil
}
