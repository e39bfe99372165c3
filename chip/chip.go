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

// Package chip is the chip database collaborator: selection by
// numeric index into geometry. spec.md lists chip_select and
// chip_info_selected_get as out-of-scope collaborators; this package
// supplies a default, in-memory Database plus a manifest loader so the
// engine is runnable without a real chip-ID table.
package chip

import "fmt"

// Info is the geometry of a selected chip, per spec.md 3.
type Info struct {
	Name      string
	PageSize  uint32
	BlockSize uint32
	Size      uint64
}

// Blocks returns the number of blocks on the chip.
func (i Info) Blocks() uint64 {
	return i.Size / uint64(i.BlockSize)
}

// PagesPerBlock returns how many pages make up one block.
func (i Info) PagesPerBlock() uint32 {
	return i.BlockSize / i.PageSize
}

// Database looks chips up by the numeric index the host sends in a
// SELECT request.
type Database interface {
	Lookup(chipNum uint32) (Info, bool)
}

// StaticDatabase is a fixed, in-memory Database built from a slice of
// entries indexed by position, mirroring the firmware's flat chip
// table indexed by chip_num.
type StaticDatabase struct {
	chips []Info
}

func NewStaticDatabase(chips ...Info) *StaticDatabase {
	return &StaticDatabase{chips: append([]Info(nil), chips...)}
}

func (d *StaticDatabase) Lookup(chipNum uint32) (Info, bool) {
	if int(chipNum) < 0 || int(chipNum) >= len(d.chips) {
		return Info{}, false
	}
	return d.chips[chipNum], true
}

// Add appends a chip entry, returning its new chip_num.
func (d *StaticDatabase) Add(info Info) uint32 {
	d.chips = append(d.chips, info)
	return uint32(len(d.chips) - 1)
}

// DefaultDatabase returns a small set of representative geometries,
// including the 128 MiB part used in spec.md 8's concrete scenarios.
func DefaultDatabase() *StaticDatabase {
	return NewStaticDatabase(
		Info{Name: "generic-128M", PageSize: 2048, BlockSize: 131072, Size: 128 << 20},
		Info{Name: "generic-256M", PageSize: 2048, BlockSize: 131072, Size: 256 << 20},
		Info{Name: "generic-512M-large-page", PageSize: 4096, BlockSize: 262144, Size: 512 << 20},
	)
}

func (i Info) String() string {
	return fmt.Sprintf("%s (page=%d block=%d size=%d)", i.Name, i.PageSize, i.BlockSize, i.Size)
}
