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

// The request builders and Response decoder below are the host side
// of the same wire codec the engine decodes/encodes in frame.go: the
// cmd/nandctl console and the engine tests are the callers, but the
// layout is shared so it lives in this package rather than being
// duplicated there.

func EncodeReadID() []byte {
	return []byte{byte(CmdReadID)}
}

func EncodeReadBB() []byte {
	return []byte{byte(CmdReadBB)}
}

func EncodeSelect(chipNum uint32) []byte {
	buf := make([]byte, 1+4)
	buf[0] = byte(CmdSelect)
	binary.LittleEndian.PutUint32(buf[1:], chipNum)
	return buf
}

func encodeAddrLen(cmd Command, addr, length uint32) []byte {
	buf := make([]byte, 1+8)
	buf[0] = byte(cmd)
	binary.LittleEndian.PutUint32(buf[1:5], addr)
	binary.LittleEndian.PutUint32(buf[5:9], length)
	return buf
}

func EncodeErase(addr, length uint32) []byte {
	return encodeAddrLen(CmdErase, addr, length)
}

func EncodeRead(addr, length uint32) []byte {
	return encodeAddrLen(CmdRead, addr, length)
}

func EncodeWriteStart(addr, length uint32) []byte {
	return encodeAddrLen(CmdWriteS, addr, length)
}

// EncodeWriteData builds a WRITE_D request. data must fit within
// WriteDataMax bytes.
func EncodeWriteData(data []byte) ([]byte, error) {
	if len(data) > WriteDataMax {
		return nil, fmt.Errorf("protocol: write data chunk %d exceeds max %d", len(data), WriteDataMax)
	}
	buf := make([]byte, 2+len(data))
	buf[0] = byte(CmdWriteD)
	buf[1] = byte(len(data))
	copy(buf[2:], data)
	return buf, nil
}

func EncodeWriteEnd() []byte {
	return []byte{byte(CmdWriteE)}
}

// Response is a decoded response frame, as seen by the host console.
type Response struct {
	Kind       ResponseKind
	Info       StatusInfo // valid when Kind == RespStatus
	ErrCode    uint8      // valid when Info == StatusError
	BlockAddr  uint32     // valid when Info == StatusBadBlock
	BytesAck   uint32     // valid when Info == StatusWriteAck
	Data       []byte     // valid when Kind == RespData
}

// DecodeResponse parses one response frame as emitted by
// EncodeOK/EncodeError/EncodeBadBlock/EncodeWriteAck/EncodeData.
func DecodeResponse(frame []byte) (Response, error) {
	if len(frame) < 2 {
		return Response{}, fmt.Errorf("protocol: response frame too short: %d bytes", len(frame))
	}
	kind := ResponseKind(frame[0])
	switch kind {
	case RespData:
		n := int(frame[1])
		if len(frame) < responseHeaderSize+n {
			return Response{}, fmt.Errorf("protocol: data response truncated: want %d have %d", n, len(frame)-responseHeaderSize)
		}
		return Response{Kind: RespData, Data: frame[responseHeaderSize : responseHeaderSize+n]}, nil
	case RespStatus:
		info := StatusInfo(frame[1])
		resp := Response{Kind: RespStatus, Info: info}
		switch info {
		case StatusOK:
		case StatusError:
			if len(frame) < 3 {
				return Response{}, fmt.Errorf("protocol: error response missing code byte")
			}
			resp.ErrCode = frame[2]
		case StatusBadBlock:
			if len(frame) < 6 {
				return Response{}, fmt.Errorf("protocol: bad_block response truncated")
			}
			resp.BlockAddr = binary.LittleEndian.Uint32(frame[2:6])
		case StatusWriteAck:
			if len(frame) < 6 {
				return Response{}, fmt.Errorf("protocol: write_ack response truncated")
			}
			resp.BytesAck = binary.LittleEndian.Uint32(frame[2:6])
		default:
			return Response{}, fmt.Errorf("protocol: unknown status info %d", info)
		}
		return resp, nil
	default:
		return Response{}, fmt.Errorf("protocol: unknown response kind %d", kind)
	}
}
