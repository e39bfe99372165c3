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

// Package errcode is the engine's error taxonomy: the positive codes
// sent on the wire inside a STATUS ERROR frame, and a Go error type
// that carries one.
package errcode

import "fmt"

// Code is a positive wire error code, as sent inside a STATUS ERROR frame.
type Code uint8

const (
	Internal      Code = 1
	AddrExceeded  Code = 100
	AddrInvalid   Code = 101
	AddrNotAlign  Code = 102
	NANDWr        Code = 103
	NANDRd        Code = 104
	NANDErase     Code = 105
	ChipNotSel    Code = 106
	ChipNotFound  Code = 107
	CmdDataSize   Code = 108
	CmdInvalid    Code = 109
	BufOverflow   Code = 110
	LenNotAlign   Code = 111
	LenExceeded   Code = 112
	LenInvalid    Code = 113
)

var names = map[Code]string{
	Internal:     "INTERNAL",
	AddrExceeded: "ADDR_EXCEEDED",
	AddrInvalid:  "ADDR_INVALID",
	AddrNotAlign: "ADDR_NOT_ALIGN",
	NANDWr:       "NAND_WR",
	NANDRd:       "NAND_RD",
	NANDErase:    "NAND_ERASE",
	ChipNotSel:   "CHIP_NOT_SEL",
	ChipNotFound: "CHIP_NOT_FOUND",
	CmdDataSize:  "CMD_DATA_SIZE",
	CmdInvalid:   "CMD_INVALID",
	BufOverflow:  "BUF_OVERFLOW",
	LenNotAlign:  "LEN_NOT_ALIGN",
	LenExceeded:  "LEN_EXCEEDED",
	LenInvalid:   "LEN_INVALID",
}

func (c Code) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return fmt.Sprintf("ERR_%d", uint8(c))
}

// Err wraps a Code as a Go error, for internal propagation. Handlers
// return (*Err) rather than the bare Code so they compose with the
// standard error interfaces; the dispatcher unwraps it back to a wire
// code with a type assertion.
type Err struct {
	Code Code
}

func New(c Code) *Err {
	return &Err{Code: c}
}

func (e *Err) Error() string {
	return fmt.Sprintf("%s (%d)", e.Code, uint8(e.Code))
}

// TransportErr marks a failure in the send path itself. The
// dispatcher never re-reports it as a STATUS ERROR frame (sending on
// a broken transport would just fail again); it only stops processing
// the current packet.
type TransportErr struct {
	Cause error
}

func (e *TransportErr) Error() string {
	return fmt.Sprintf("protocol: transport send failed: %v", e.Cause)
}

func (e *TransportErr) Unwrap() error {
	return e.Cause
}
