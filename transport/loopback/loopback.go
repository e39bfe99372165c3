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

// Package loopback is a packet-buffered transport.Transport over an
// in-process pipe or a TCP connection, grounded on the teacher's
// telnet server: a listener goroutine hands off net.Conn values, and
// each connection gets its own buffered packet queue read by a
// background goroutine so Peek/Consume never block on I/O.
package loopback

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"

	"github.com/nandprog/engine/protocol"
)

// Transport is a bidirectional, length-prefixed packet stream over an
// io.ReadWriteCloser. Each packet on the wire is one byte of length
// followed by that many payload bytes, capped at PacketBufSize -- the
// length prefix is purely a framing detail of this transport binding,
// not part of the protocol.Command frames it carries.
type Transport struct {
	conn io.ReadWriteCloser

	mu      sync.Mutex
	queue   [][]byte
	current []byte
	readErr error
	closed  bool
}

// New wraps an already-connected stream (a net.Conn, or an in-process
// pipe from NewPair) as a Transport.
func New(conn io.ReadWriteCloser) *Transport {
	t := &Transport{conn: conn}
	go t.readLoop()
	return t
}

// NewPair returns two Transports connected back to back, for tests
// and for exercising a host/engine pair within one process.
func NewPair() (host, engine *Transport) {
	a, b := net.Pipe()
	return New(a), New(b)
}

func (t *Transport) readLoop() {
	r := bufio.NewReader(t.conn)
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

// Peek returns the next queued packet without removing it.
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

// Consume drops the packet most recently returned by Peek.
func (t *Transport) Consume() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.queue) == 0 {
		return nil
	}
	t.queue = t.queue[1:]
	return nil
}

// Send writes one length-prefixed packet. buf must not exceed
// protocol.PacketBufSize bytes.
func (t *Transport) Send(buf []byte) error {
	if len(buf) > protocol.PacketBufSize {
		return fmt.Errorf("loopback: frame of %d bytes exceeds packet buffer", len(buf))
	}
	out := make([]byte, 1+len(buf))
	out[0] = byte(len(buf))
	copy(out[1:], buf)
	_, err := t.conn.Write(out)
	return err
}

// SendReady is always true: writes on a net.Conn/net.Pipe block
// internally rather than requiring the caller to poll first.
func (t *Transport) SendReady() bool {
	return true
}

func (t *Transport) Close() error {
	return t.conn.Close()
}

// ListenAndServe accepts one connection on addr and returns a
// Transport for it, mirroring the teacher's single-purpose
// newServer/acceptConnections split but blocking instead of looping
// forever, since the engine host process only ever talks to one
// programmer link at a time.
func ListenAndServe(addr string) (*Transport, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("loopback: listen %s: %w", addr, err)
	}
	defer ln.Close()
	slog.Info("loopback transport listening", "addr", ln.Addr().String())
	conn, err := ln.Accept()
	if err != nil {
		return nil, fmt.Errorf("loopback: accept: %w", err)
	}
	return New(conn), nil
}

// Dial connects to a listening engine at addr, for the host console.
func Dial(addr string) (*Transport, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("loopback: dial %s: %w", addr, err)
	}
	return New(conn), nil
}
