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

package engine

import (
	"errors"

	"github.com/nandprog/engine/errcode"
)

// Tick runs one pass of the event loop (spec.md 4.8): drain every
// packet currently queued on the transport, dispatching each in turn,
// then -- once the drain is empty -- poll an in-flight NAND write
// once so it advances even if the host pauses between packets. Tick
// never blocks; it is meant to be called repeatedly from an outer
// loop (the demo process's main loop, or a test driving the engine
// directly).
func (e *Engine) Tick() error {
	for {
		pkt, err := e.transport.Peek()
		if err != nil {
			return err
		}
		if pkt == nil {
			break
		}
		if err := e.dispatch(pkt); err != nil {
			var terr *errcode.TransportErr
			if !errors.As(err, &terr) {
				// dispatch already turned every non-transport error
				// into a STATUS ERROR frame; a non-nil, non-transport
				// error here would be a programming mistake.
				return err
			}
			// A -1 (transport send failure) is not re-reported, per
			// spec.md 4.8 -- reentrant send on a broken transport
			// would just fail again.
		}
		if err := e.transport.Consume(); err != nil {
			return err
		}
	}
	return e.pollInFlightWrite()
}
