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

package main

import (
	"fmt"
	"time"

	"github.com/nandprog/engine/protocol"
	"github.com/nandprog/engine/transport"
)

// client is the host-side half of the wire protocol: it sends one
// request frame and reads back whatever frames follow, since several
// commands (ERASE, READ_BB, WRITE_D) emit more than one response
// before the terminating STATUS frame, and READ answers with DATA
// frames only.
type client struct {
	t transport.Transport
}

// recv blocks until the next response frame arrives.
func (c *client) recv() (protocol.Response, error) {
	for {
		frame, err := c.t.Peek()
		if err != nil {
			return protocol.Response{}, err
		}
		if frame == nil {
			time.Sleep(time.Millisecond)
			continue
		}
		resp, err := protocol.DecodeResponse(frame)
		if cerr := c.t.Consume(); cerr != nil {
			return protocol.Response{}, cerr
		}
		return resp, err
	}
}

// doStatus sends req and reads frames until a terminal STATUS frame
// arrives, printing any BAD_BLOCK notifications as they interleave.
func (c *client) doStatus(req []byte) error {
	if err := c.t.Send(req); err != nil {
		return err
	}
	for {
		resp, err := c.recv()
		if err != nil {
			return err
		}
		if resp.Kind != protocol.RespStatus {
			return fmt.Errorf("unexpected %v response mid-command", resp.Kind)
		}
		switch resp.Info {
		case protocol.StatusOK:
			return nil
		case protocol.StatusError:
			return fmt.Errorf("ERROR(%d)", resp.ErrCode)
		case protocol.StatusBadBlock:
			fmt.Printf("bad block at 0x%x\n", resp.BlockAddr)
		case protocol.StatusWriteAck:
			fmt.Printf("write ack: %d bytes\n", resp.BytesAck)
		}
	}
}

// doRead issues READ and collects exactly length bytes of DATA
// frames; a successful READ has no terminating STATUS frame
// (spec.md 4.5), so completion is measured by byte count, not by a
// final response.
func (c *client) doRead(addr, length uint32) ([]byte, error) {
	if err := c.t.Send(protocol.EncodeRead(addr, length)); err != nil {
		return nil, err
	}
	out := make([]byte, 0, length)
	for uint32(len(out)) < length {
		resp, err := c.recv()
		if err != nil {
			return nil, err
		}
		if resp.Kind == protocol.RespStatus && resp.Info == protocol.StatusError {
			return nil, fmt.Errorf("ERROR(%d)", resp.ErrCode)
		}
		if resp.Kind != protocol.RespData {
			return nil, fmt.Errorf("unexpected %v response during read", resp.Kind)
		}
		out = append(out, resp.Data...)
	}
	return out, nil
}

// doWriteFile drives a full WRITE_S/WRITE_D*/WRITE_E sequence for
// data, chunking to protocol.WriteDataMax per WRITE_D frame.
func (c *client) doWriteFile(addr uint32, data []byte) error {
	if err := c.doStatus(protocol.EncodeWriteStart(addr, uint32(len(data)))); err != nil {
		return err
	}
	for len(data) > 0 {
		n := len(data)
		if n > protocol.WriteDataMax {
			n = protocol.WriteDataMax
		}
		chunk, err := protocol.EncodeWriteData(data[:n])
		if err != nil {
			return err
		}
		if err := c.doStatus(chunk); err != nil {
			return err
		}
		data = data[n:]
	}
	return c.doStatus(protocol.EncodeWriteEnd())
}
