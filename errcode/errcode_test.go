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

package errcode

import "testing"

func TestCodeString(t *testing.T) {
	cases := []struct {
		code Code
		want string
	}{
		{Internal, "INTERNAL"},
		{AddrExceeded, "ADDR_EXCEEDED"},
		{ChipNotSel, "CHIP_NOT_SEL"},
		{LenInvalid, "LEN_INVALID"},
		{Code(250), "ERR_250"},
	}
	for _, tc := range cases {
		if got := tc.code.String(); got != tc.want {
			t.Errorf("Code(%d).String() = %q, want %q", uint8(tc.code), got, tc.want)
		}
	}
}

func TestErr(t *testing.T) {
	e := New(NANDWr)
	if e.Code != NANDWr {
		t.Errorf("got code %v, want NANDWr", e.Code)
	}
	if e.Error() == "" {
		t.Error("Error() should not be empty")
	}
}

func TestTransportErrUnwrap(t *testing.T) {
	cause := New(Internal)
	te := &TransportErr{Cause: cause}
	if te.Unwrap() != cause {
		t.Error("Unwrap should return the wrapped cause")
	}
	if te.Error() == "" {
		t.Error("Error() should not be empty")
	}
}
