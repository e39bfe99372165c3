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

// Package serial binds transport.Transport to a real USB-CDC serial
// port using github.com/daedaluz/goserial, for driving actual
// programmer hardware rather than the loopback simulator. The wire
// framing (one length byte, then payload) is identical to the
// loopback transport; only the byte source changes.
package serial

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	goserial "github.com/daedaluz/goserial"

	"github.com/nandprog/engine/protocol"
)

// Transport drives a real serial port opened by goserial. It shares
// the loopback transport's length-prefixed framing and queue/peek
// model; only port acquisition differs, so the two implementations
// stay drop-in compatible with transport.Transport.
type Transport struct {
	port io.ReadWriteCloser

	mu      sync.Mutex
	queue   [][]byte
	readErr error
}

// Open opens device at the given baud rate (8N1, no flow control --
// the framing in this package carries its own length prefix, so
// hardware flow control is unnecessary for correctness, only for
// throughput under loss, which USB-CDC links do not exhibit).
func Open(device string, baud int) (*Transport, error) {
	port, err := goserial.Open(device, goserial.Config{Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", device, err)
	}
	t := &Transport{port: port}
	go t.readLoop()
	return t, nil
}

func (t *Transport) readLoop() {
	r := bufio.NewReader(t.port)
	for {
		lenByte, err := r.ReadByte()
		if err != nil {
			t.mu.Lock()
			t.readErr = err
			t.mu.Unlock()
			return
		}
		buf := make([]byte, lenByte)
		if lenByte > 0 {
			if _, err := io.ReadFull(r, buf); err != nil {
				t.mu.Lock()
				t.readErr = err
				t.mu.Unlock()
				return
			}
		}
		t.mu.Lock()
		t.queue = append(t.queue, buf)
		t.mu.Unlock()
	}
}

func (t *Transport) Peek() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.queue) > 0 {
		return t.queue[0], nil
	}
	if t.readErr != nil && t.readErr != io.EOF {
		return nil, t.readErr
	}
	return nil, nil
}

func (t *Transport) Consume() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.queue) == 0 {
		return nil
	}
	t.queue = t.queue[1:]
	return nil
}

func (t *Transport) Send(buf []byte) error {
	if len(buf) > protocol.PacketBufSize {
		return fmt.Errorf("serial: frame of %d bytes exceeds packet buffer", len(buf))
	}
	out := make([]byte, 1+len(buf))
	out[0] = byte(len(buf))
	copy(out[1:], buf)
	_, err := t.port.Write(out)
	return err
}

func (t *Transport) SendReady() bool {
	return true
}

func (t *Transport) Close() error {
	return t.port.Close()
}
