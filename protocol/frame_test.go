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

package protocol

import (
	"bytes"
	"testing"
)

func TestDecodeAddrLen(t *testing.T) {
	req := EncodeErase(0x10000, 0x20000)
	got, err := DecodeAddrLen(req[1:])
	if err != nil {
		t.Fatalf("DecodeAddrLen: %v", err)
	}
	if got.Addr != 0x10000 || got.Len != 0x20000 {
		t.Errorf("got %+v", got)
	}
}

func TestDecodeAddrLenShort(t *testing.T) {
	if _, err := DecodeAddrLen([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error on short payload")
	}
}

func TestDecodeSelect(t *testing.T) {
	req := EncodeSelect(7)
	got, err := DecodeSelect(req[1:])
	if err != nil {
		t.Fatalf("DecodeSelect: %v", err)
	}
	if got.ChipNum != 7 {
		t.Errorf("got %d, want 7", got.ChipNum)
	}
}

func TestDecodeWriteData(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5}
	req, err := EncodeWriteData(payload)
	if err != nil {
		t.Fatalf("EncodeWriteData: %v", err)
	}
	got, err := DecodeWriteData(req[1:])
	if err != nil {
		t.Fatalf("DecodeWriteData: %v", err)
	}
	if !bytes.Equal(got.Data, payload) {
		t.Errorf("got %v, want %v", got.Data, payload)
	}
}

func TestDecodeWriteDataTruncated(t *testing.T) {
	if _, err := DecodeWriteData([]byte{5, 1, 2}); err == nil {
		t.Fatal("expected error on truncated payload")
	}
}

func TestEncodeDataMaxChunk(t *testing.T) {
	payload := make([]byte, MaxDataChunk+1)
	if _, err := EncodeData(payload); err == nil {
		t.Fatal("expected error for oversized chunk")
	}
}

func TestResponseRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		frame []byte
		want  Response
	}{
		{"ok", EncodeOK(), Response{Kind: RespStatus, Info: StatusOK}},
		{"error", EncodeError(103), Response{Kind: RespStatus, Info: StatusError, ErrCode: 103}},
		{"bad_block", EncodeBadBlock(0x40000), Response{Kind: RespStatus, Info: StatusBadBlock, BlockAddr: 0x40000}},
		{"write_ack", EncodeWriteAck(2048), Response{Kind: RespStatus, Info: StatusWriteAck, BytesAck: 2048}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeResponse(tc.frame)
			if err != nil {
				t.Fatalf("DecodeResponse: %v", err)
			}
			if got.Kind != tc.want.Kind || got.Info != tc.want.Info ||
				got.ErrCode != tc.want.ErrCode || got.BlockAddr != tc.want.BlockAddr ||
				got.BytesAck != tc.want.BytesAck {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestResponseData(t *testing.T) {
	frame, err := EncodeData([]byte("hello"))
	if err != nil {
		t.Fatalf("EncodeData: %v", err)
	}
	got, err := DecodeResponse(frame)
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	if got.Kind != RespData || !bytes.Equal(got.Data, []byte("hello")) {
		t.Errorf("got %+v", got)
	}
}

func TestCommandValid(t *testing.T) {
	if !CmdSelect.Valid() {
		t.Error("CmdSelect should be valid")
	}
	if Command(0x7F).Valid() {
		t.Error("0x7F should not be valid")
	}
}
