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

// handleRead implements spec.md 4.5: page-by-page read, chunked to
// the transport MTU. Completion is implicit -- the host has received
// len bytes -- so no STATUS frame terminates a successful read.
func (e *Engine) handleRead(payload []byte) error {
	req, err := protocol.DecodeAddrLen(payload)
	if err != nil {
		return errcode.New(errcode.CmdInvalid)
	}
	if verr := e.validateRange(req.Addr, req.Len, e.chipInfo.PageSize, errcode.LenNotAlign); verr != nil {
		return verr
	}

	pageSize := e.chipInfo.PageSize
	page := req.Addr / pageSize
	remaining := req.Len
	pageBuf := make([]byte, pageSize)

	for remaining > 0 {
		pageAddr := page * pageSize
		switch e.adaptReadOrErase(e.nandCtl.ReadPage(pageAddr, pageBuf)) {
		case outcomeBadBlock:
			blockAddr := (pageAddr / e.chipInfo.BlockSize) * e.chipInfo.BlockSize
			e.badTable.Add(blockAddr)
			if err := e.sendBadBlock(blockAddr); err != nil {
				return err
			}
		case outcomeFatal:
			return errcode.New(errcode.NANDRd)
		}

		offset := uint32(0)
		for offset < pageSize && remaining > 0 {
			chunk := pageSize - offset
			if chunk > protocol.MaxDataChunk {
				chunk = protocol.MaxDataChunk
			}
			if chunk > remaining {
				chunk = remaining
			}
			for !e.transport.SendReady() {
			}
			if err := e.sendData(pageBuf[offset : offset+chunk]); err != nil {
				return err
			}
			offset += chunk
			remaining -= chunk
		}

		if remaining > 0 {
			page++
			if uint64(page)*uint64(pageSize) >= e.chipInfo.Size {
				return errcode.New(errcode.AddrExceeded)
			}
		}
	}
	return nil
}
