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

// handleReadBB implements spec.md 4.4: for each block, read the
// marker byte of page 0 (the page's last byte, see scanPageMarker); if
// it reads good, check page 1 too before concluding the block is good.
func (e *Engine) handleReadBB(_ []byte) error {
	pagesPerBlock := e.chipInfo.BlockSize / e.chipInfo.PageSize
	numBlocks := e.chipInfo.Size / uint64(e.chipInfo.BlockSize)

	for block := uint64(0); block < numBlocks; block++ {
		addr := uint32(block) * e.chipInfo.BlockSize
		firstPage := uint32(block) * pagesPerBlock

		bad, err := e.scanPageMarker(firstPage)
		if err != nil {
			return err
		}
		if !bad && pagesPerBlock > 1 {
			bad, err = e.scanPageMarker(firstPage + 1)
			if err != nil {
				return err
			}
		}
		if bad {
			e.badTable.Add(addr)
			if serr := e.sendBadBlock(addr); serr != nil {
				return serr
			}
		}
	}
	return e.sendOK()
}

// scanPageMarker reads the one marker byte at the spare-area offset of
// page (its last byte, since nand.Controller models a page as one
// flat buffer with no separate spare region) and reports whether it
// reads non-good (0xFF).
func (e *Engine) scanPageMarker(page uint32) (bool, error) {
	addr := page*e.chipInfo.PageSize + (e.chipInfo.PageSize - 1)
	data, status := e.nandCtl.ReadData(addr, 1)
	switch e.adaptReadOrErase(status) {
	case outcomeDone:
		return data[0] != 0xFF, nil
	case outcomeBadBlock:
		// A hardware error reading the marker itself is not the
		// same as a marker that reads bad; spec.md 4.3 only makes
		// read ERROR fatal for the scan via NAND_RD below, same as
		// any other fatal read outcome.
		return false, errcode.New(errcode.NANDRd)
	default:
		return false, errcode.New(errcode.NANDRd)
	}
}
