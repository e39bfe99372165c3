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
	"encoding/binary"
	"fmt"
)

// ResponseKind is the first byte of every response frame.
type ResponseKind uint8

const (
	RespData   ResponseKind = 0x00
	RespStatus ResponseKind = 0x01
)

// StatusInfo is the second byte of a STATUS response.
type StatusInfo uint8

const (
	StatusOK        StatusInfo = 0x00
	StatusError     StatusInfo = 0x01
	StatusBadBlock  StatusInfo = 0x02
	StatusWriteAck  StatusInfo = 0x03
)

// AddrLenRequest is the shared layout of ERASE, READ and WRITE_S:
// u8 code | u32 addr | u32 len.
type AddrLenRequest struct {
	Addr uint32
	Len  uint32
}

// DecodeAddrLen parses the 8-byte payload following the command byte.
func DecodeAddrLen(payload []byte) (AddrLenRequest, error) {
	if len(payload) < 8 {
		return AddrLenRequest{}, fmt.Errorf("protocol: addr/len payload too short: %d bytes", len(payload))
	}
	return AddrLenRequest{
		Addr: binary.LittleEndian.Uint32(payload[0:4]),
		Len:  binary.LittleEndian.Uint32(payload[4:8]),
	}, nil
}

// SelectRequest is SELECT's payload: u8 code | u32 chip_num.
type SelectRequest struct {
	ChipNum uint32
}

func DecodeSelect(payload []byte) (SelectRequest, error) {
	if len(payload) < 4 {
		return SelectRequest{}, fmt.Errorf("protocol: select payload too short: %d bytes", len(payload))
	}
	return SelectRequest{ChipNum: binary.LittleEndian.Uint32(payload[0:4])}, nil
}

// WriteDataRequest is WRITE_D's payload: u8 len | u8 data[len].
type WriteDataRequest struct {
	Data []byte
}

func DecodeWriteData(payload []byte) (WriteDataRequest, error) {
	if len(payload) < 1 {
		return WriteDataRequest{}, fmt.Errorf("protocol: write data payload empty")
	}
	n := int(payload[0])
	if len(payload) < 1+n {
		return WriteDataRequest{}, fmt.Errorf("protocol: write data payload truncated: want %d have %d", n, len(payload)-1)
	}
	return WriteDataRequest{Data: payload[1 : 1+n]}, nil
}

// EncodeOK builds a STATUS OK frame.
func EncodeOK() []byte {
	return []byte{byte(RespStatus), byte(StatusOK)}
}

// EncodeError builds a STATUS ERROR frame carrying the positive wire
// error code.
func EncodeError(code uint8) []byte {
	return []byte{byte(RespStatus), byte(StatusError), code}
}

// EncodeBadBlock builds a STATUS BAD_BLOCK frame.
func EncodeBadBlock(addr uint32) []byte {
	buf := make([]byte, 2+4)
	buf[0] = byte(RespStatus)
	buf[1] = byte(StatusBadBlock)
	binary.LittleEndian.PutUint32(buf[2:], addr)
	return buf
}

// EncodeWriteAck builds a STATUS WRITE_ACK frame.
func EncodeWriteAck(bytesAck uint32) []byte {
	buf := make([]byte, 2+4)
	buf[0] = byte(RespStatus)
	buf[1] = byte(StatusWriteAck)
	binary.LittleEndian.PutUint32(buf[2:], bytesAck)
	return buf
}

// EncodeData builds a DATA frame. payload must be <= MaxDataChunk
// bytes; callers are responsible for chunking larger transfers.
func EncodeData(payload []byte) ([]byte, error) {
	if len(payload) > MaxDataChunk {
		return nil, fmt.Errorf("protocol: data chunk %d exceeds max %d", len(payload), MaxDataChunk)
	}
	buf := make([]byte, responseHeaderSize+len(payload))
	buf[0] = byte(RespData)
	buf[1] = byte(len(payload))
	copy(buf[responseHeaderSize:], payload)
	return buf, nil
}
