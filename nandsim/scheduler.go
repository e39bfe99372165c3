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

package nandsim

// event is one scheduled completion, ordered into a relative-delay
// chain: each event's ticks field is the delay since the *previous*
// event in the list, not since t=0. Advance subtracts elapsed ticks
// from the head and fires every event whose delay reaches zero. This
// is the same relative-delay linked-list scheme as the teacher's
// emu/event scheduler, pared down to what a NAND simulator needs: no
// cancellation, no device back-pointer, just "fire this callback in N
// ticks."
type event struct {
	ticks int
	fire  func()
	next  *event
}

// scheduler is a minimal discrete-event clock driving the simulator's
// asynchronous completions (WritePageAsync) so ReadStatus observes
// Busy for a configurable number of ticks before Ready/Error.
type scheduler struct {
	head *event
}

func (s *scheduler) schedule(ticks int, fire func()) {
	if ticks <= 0 {
		fire()
		return
	}
	ev := &event{ticks: ticks, fire: fire}
	if s.head == nil {
		s.head = ev
		return
	}
	prev := (*event)(nil)
	cur := s.head
	for cur != nil {
		if ev.ticks <= cur.ticks {
			cur.ticks -= ev.ticks
			ev.next = cur
			if prev == nil {
				s.head = ev
			} else {
				prev.next = ev
			}
			return
		}
		ev.ticks -= cur.ticks
		prev = cur
		cur = cur.next
	}
	prev.next = ev
}

// advance moves the clock forward by one tick, firing every event
// whose delay has elapsed.
func (s *scheduler) advance() {
	if s.head == nil {
		return
	}
	s.head.ticks--
	for s.head != nil && s.head.ticks <= 0 {
		ev := s.head
		s.head = ev.next
		ev.fire()
	}
}

// pending reports whether any event is still outstanding.
func (s *scheduler) pending() bool {
	return s.head != nil
}
