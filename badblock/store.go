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

// Package badblock is the bad-block table storage collaborator:
// nand_bad_block_table_init/_lookup/_add in spec.md's terms. The
// engine never iterates the table itself; it only looks blocks up and
// inserts newly discovered ones.
package badblock

// Table records which block addresses are known bad.
type Table interface {
	// Init clears the table, called on a successful SELECT.
	Init()
	// Lookup reports whether the block at addr is known bad.
	Lookup(addr uint32) bool
	// Add records addr as bad. Adding an already-bad address is a
	// harmless no-op.
	Add(addr uint32)
}

// MapTable is the default in-memory Table.
type MapTable struct {
	bad map[uint32]struct{}
}

func NewMapTable() *MapTable {
	return &MapTable{bad: make(map[uint32]struct{})}
}

func (t *MapTable) Init() {
	t.bad = make(map[uint32]struct{})
}

func (t *MapTable) Lookup(addr uint32) bool {
	_, ok := t.bad[addr]
	return ok
}

func (t *MapTable) Add(addr uint32) {
	t.bad[addr] = struct{}{}
}

// Count returns the number of recorded bad blocks, for tests and
// diagnostics.
func (t *MapTable) Count() int {
	return len(t.bad)
}
