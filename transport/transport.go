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

// Package transport is the byte-oriented collaborator spec.md 6
// describes: peek/consume/send/send_ready over whatever physical link
// carries the protocol. The engine package only depends on this
// interface; transport/loopback and transport/serial supply the two
// concrete bindings this repo ships.
package transport

// Transport is the narrow surface the engine drives. Peek exposes the
// next inbound packet without consuming it; the returned slice is only
// valid until the following Consume call. A nil slice with no error
// means no packet is currently available.
type Transport interface {
	Peek() ([]byte, error)
	Consume() error
	Send(buf []byte) error
	SendReady() bool
}
