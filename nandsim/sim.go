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

// Package nandsim is an in-memory NAND array implementing nand.Controller,
// for the demo process, the host console, and tests -- standing in
// for the real controller driver spec.md treats as out of scope.
package nandsim

import (
	"fmt"

	"github.com/nandprog/engine/chip"
	"github.com/nandprog/engine/nand"
)

// Sim is a simulated NAND chip backed by a flat byte array, with a
// discrete-event clock modelling asynchronous program latency.
type Sim struct {
	info chip.Info
	id   []byte

	pages     [][]byte // one slice per page, len == info.PageSize
	badMarker map[int]bool

	sched   scheduler
	pending nand.Status // result waiting to be observed by ReadStatus
	busy    bool

	// programTicks is how many ticks a WritePageAsync takes to
	// complete; tests set it to 0 for synchronous behavior or >0 to
	// exercise the engine's busy-drain path.
	programTicks int

	// injectTimeout, when >0, makes ReadStatus return StatusTimeout
	// this many times before ever completing -- used to exercise the
	// NANDTimeout ceiling in engine/adapter.go.
	injectTimeout int
}

// New creates a simulator for the given geometry with every page
// erased (0xFF-filled) and no bad blocks.
func New(info chip.Info, id []byte) *Sim {
	s := &Sim{
		info:      info,
		id:        append([]byte(nil), id...),
		badMarker: make(map[int]bool),
	}
	numPages := int(info.Size / uint64(info.PageSize))
	s.pages = make([][]byte, numPages)
	for i := range s.pages {
		p := make([]byte, info.PageSize)
		for j := range p {
			p[j] = 0xFF
		}
		s.pages[i] = p
	}
	return s
}

// SetProgramLatency configures how many Tick calls a WritePageAsync
// takes to complete. Zero (the default) completes on the first
// ReadStatus call.
func (s *Sim) SetProgramLatency(ticks int) {
	s.programTicks = ticks
}

// InjectTimeouts makes the next n ReadStatus polls report
// StatusTimeout before the program is allowed to complete.
func (s *Sim) InjectTimeouts(n int) {
	s.injectTimeout = n
}

// MarkBad marks the block containing addr as factory-bad: the marker
// byte at the spare-area offset of its first page reads non-0xFF.
func (s *Sim) MarkBad(addr uint32) {
	page := int(addr / s.info.PageSize)
	block := page / int(s.info.PagesPerBlock())
	firstPage := block * int(s.info.PagesPerBlock())
	s.badMarker[firstPage] = true
}

// Tick advances the simulator's internal clock by one unit; the demo
// process and tests call this once per engine event-loop iteration so
// in-flight programs eventually complete.
func (s *Sim) Tick() {
	s.sched.advance()
}

func (s *Sim) ReadID() ([]byte, error) {
	return append([]byte(nil), s.id...), nil
}

func (s *Sim) EraseBlock(addr uint32) nand.Status {
	block := int(addr / s.info.BlockSize)
	firstPage := block * int(s.info.PagesPerBlock())
	if s.badMarker[firstPage] {
		return nand.StatusError
	}
	for i := 0; i < int(s.info.PagesPerBlock()); i++ {
		p := s.pages[firstPage+i]
		for j := range p {
			p[j] = 0xFF
		}
	}
	return nand.StatusReady
}

func (s *Sim) WritePageAsync(addr uint32, page []byte) error {
	if s.busy {
		return fmt.Errorf("nandsim: program already in flight")
	}
	pageIdx := int(addr / s.info.PageSize)
	if pageIdx < 0 || pageIdx >= len(s.pages) {
		return fmt.Errorf("nandsim: page index %d out of range", pageIdx)
	}
	buf := append([]byte(nil), page...)
	s.busy = true
	s.pending = nand.StatusBusy
	s.sched.schedule(s.programTicks, func() {
		copy(s.pages[pageIdx], buf)
		s.busy = false
		s.pending = nand.StatusReady
	})
	return nil
}

func (s *Sim) ReadStatus() nand.Status {
	if s.injectTimeout > 0 {
		s.injectTimeout--
		return nand.StatusTimeout
	}
	return s.pending
}

func (s *Sim) ReadPage(addr uint32, buf []byte) nand.Status {
	pageIdx := int(addr / s.info.PageSize)
	if pageIdx < 0 || pageIdx >= len(s.pages) {
		return nand.StatusError
	}
	copy(buf, s.pages[pageIdx])
	return nand.StatusReady
}

func (s *Sim) ReadData(addr uint32, n int) ([]byte, nand.Status) {
	pageIdx := int(addr / s.info.PageSize)
	offset := int(addr % s.info.PageSize)
	if pageIdx < 0 || pageIdx >= len(s.pages) || offset+n > len(s.pages[pageIdx]) {
		return nil, nand.StatusError
	}
	if s.badMarker[pageIdx] {
		out := make([]byte, n)
		for i := range out {
			out[i] = 0xA5
		}
		return out, nand.StatusReady
	}
	return append([]byte(nil), s.pages[pageIdx][offset:offset+n]...), nand.StatusReady
}
