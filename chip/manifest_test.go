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

package chip

import (
	"strings"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	input := `# representative chips
name=W25N01 page=2048 block=131072 size=134217728

name=MT29F4G page=4096 block=262144 size=536870912 # trailing comment
`
	db := NewStaticDatabase()
	if err := LoadManifest(strings.NewReader(input), db); err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}

	got, ok := db.Lookup(0)
	if !ok || got.Name != "W25N01" || got.PageSize != 2048 || got.BlockSize != 131072 || got.Size != 134217728 {
		t.Errorf("chip 0 = %+v", got)
	}
	got, ok = db.Lookup(1)
	if !ok || got.Name != "MT29F4G" || got.Size != 536870912 {
		t.Errorf("chip 1 = %+v", got)
	}
	if _, ok := db.Lookup(2); ok {
		t.Error("chip 2 should not exist")
	}
}

func TestLoadManifestBadField(t *testing.T) {
	db := NewStaticDatabase()
	err := LoadManifest(strings.NewReader("name=X page=bogus block=1 size=1\n"), db)
	if err == nil {
		t.Fatal("expected error on malformed page field")
	}
}

func TestLoadManifestIncomplete(t *testing.T) {
	db := NewStaticDatabase()
	err := LoadManifest(strings.NewReader("name=X page=2048\n"), db)
	if err == nil {
		t.Fatal("expected error on incomplete entry")
	}
}

func TestDefaultDatabase(t *testing.T) {
	db := DefaultDatabase()
	info, ok := db.Lookup(0)
	if !ok {
		t.Fatal("expected chip 0 in default database")
	}
	if info.Blocks() != info.Size/uint64(info.BlockSize) {
		t.Errorf("Blocks() mismatch")
	}
	if info.PagesPerBlock() != info.BlockSize/info.PageSize {
		t.Errorf("PagesPerBlock() mismatch")
	}
}
