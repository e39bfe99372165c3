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

// Package protocol describes the packed, little-endian wire frames
// exchanged between the host tool and the programmer engine, and the
// command codes that select a handler in the dispatcher.
package protocol

// Command is the one-byte request code that opens every request frame.
type Command uint8

// Request command codes. CmdLast delimits the valid range: codes in
// [0, CmdLast) dispatch to a handler, anything else is CmdInvalid.
const (
	CmdReadID  Command = 0x00
	CmdErase   Command = 0x01
	CmdRead    Command = 0x02
	CmdWriteS  Command = 0x03
	CmdWriteD  Command = 0x04
	CmdWriteE  Command = 0x05
	CmdSelect  Command = 0x06
	CmdReadBB  Command = 0x07
	CmdLast    Command = 0x08
)

// Valid reports whether c is a dispatchable command code.
func (c Command) Valid() bool {
	return c < CmdLast
}

func (c Command) String() string {
	switch c {
	case CmdReadID:
		return "READ_ID"
	case CmdErase:
		return "ERASE"
	case CmdRead:
		return "READ"
	case CmdWriteS:
		return "WRITE_S"
	case CmdWriteD:
		return "WRITE_D"
	case CmdWriteE:
		return "WRITE_E"
	case CmdSelect:
		return "SELECT"
	case CmdReadBB:
		return "READ_BB"
	default:
		return "UNKNOWN"
	}
}

const (
	// PacketBufSize is the transport MTU: every frame, request or
	// response, fits in one packet of this size.
	PacketBufSize = 64

	// MaxPageSize is the largest page buffer the engine allocates.
	MaxPageSize = 0x800

	// NANDTimeout is the busy-poll ceiling for write-status polling.
	NANDTimeout = 0x1000000

	// GoodBlockMark is the factory marker value for a good block.
	GoodBlockMark = 0xFF

	// responseHeaderSize is kind+info, common to every response frame.
	responseHeaderSize = 2

	// WriteDataMax is the largest payload a single WRITE_D frame may
	// carry: len+2 (code, len byte) must not exceed PacketBufSize.
	WriteDataMax = PacketBufSize - 2 // header(code+len) is 2 bytes on the request side
)

// MaxDataChunk is the largest payload a DATA response frame may carry
// without exceeding PacketBufSize.
const MaxDataChunk = PacketBufSize - responseHeaderSize
