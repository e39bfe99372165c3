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

// Package engine_test drives the engine end to end over a loopback
// transport pair, the way the host console and the real firmware's
// test harness both would: requests go in one side, responses come
// out the other, and a background goroutine runs Engine.Tick the same
// way the host process's main loop does.
package engine_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/nandprog/engine/badblock"
	"github.com/nandprog/engine/chip"
	"github.com/nandprog/engine/engine"
	"github.com/nandprog/engine/errcode"
	"github.com/nandprog/engine/nandsim"
	"github.com/nandprog/engine/protocol"
	"github.com/nandprog/engine/transport/loopback"
)

const (
	testPageSize  = 2048
	testBlockSize = 131072
	testChipSize  = 128 << 20
)

func testChip() chip.Info {
	return chip.Info{Name: "test-128M", PageSize: testPageSize, BlockSize: testBlockSize, Size: testChipSize}
}

type harness struct {
	t    *testing.T
	host *loopback.Transport
	sim  *nandsim.Sim
	tbl  *badblock.MapTable
	stop chan struct{}
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	host, engSide := loopback.NewPair()
	db := chip.NewStaticDatabase(testChip())
	sim := nandsim.New(testChip(), []byte{0xEC, 0xD3, 0x51, 0x95})
	tbl := badblock.NewMapTable()

	eng := engine.New(engine.Config{
		Transport: engSide,
		ChipDB:    db,
		NAND:      sim,
		BadTable:  tbl,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	h := &harness{t: t, host: host, sim: sim, tbl: tbl, stop: make(chan struct{})}
	go func() {
		for {
			select {
			case <-h.stop:
				return
			default:
			}
			sim.Tick()
			if err := eng.Tick(); err != nil {
				return
			}
			time.Sleep(100 * time.Microsecond)
		}
	}()
	t.Cleanup(func() { close(h.stop) })
	return h
}

// recv polls for the next response frame, failing the test after a
// generous timeout rather than hanging forever on a missing frame.
func (h *harness) recv() protocol.Response {
	h.t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		frame, err := h.host.Peek()
		if err != nil {
			h.t.Fatalf("Peek: %v", err)
		}
		if frame != nil {
			resp, err := protocol.DecodeResponse(frame)
			if err != nil {
				h.t.Fatalf("DecodeResponse: %v", err)
			}
			if cerr := h.host.Consume(); cerr != nil {
				h.t.Fatalf("Consume: %v", cerr)
			}
			return resp
		}
		time.Sleep(100 * time.Microsecond)
	}
	h.t.Fatal("timed out waiting for response")
	return protocol.Response{}
}

func (h *harness) selectChip(chipNum uint32) {
	h.t.Helper()
	if err := h.host.Send(protocol.EncodeSelect(chipNum)); err != nil {
		h.t.Fatalf("Send SELECT: %v", err)
	}
	resp := h.recv()
	if resp.Kind != protocol.RespStatus || resp.Info != protocol.StatusOK {
		h.t.Fatalf("SELECT: got %+v, want OK", resp)
	}
}

func TestSelectThenReadID(t *testing.T) {
	h := newHarness(t)
	h.selectChip(0)

	if err := h.host.Send(protocol.EncodeReadID()); err != nil {
		t.Fatalf("Send READ_ID: %v", err)
	}
	resp := h.recv()
	if resp.Kind != protocol.RespData {
		t.Fatalf("READ_ID: got %+v, want DATA", resp)
	}
	if len(resp.Data) != 4 {
		t.Errorf("READ_ID data length = %d, want 4", len(resp.Data))
	}
}

func TestCommandBeforeSelectIsChipNotSel(t *testing.T) {
	h := newHarness(t)
	if err := h.host.Send(protocol.EncodeReadID()); err != nil {
		t.Fatalf("Send: %v", err)
	}
	resp := h.recv()
	if resp.Kind != protocol.RespStatus || resp.Info != protocol.StatusError || resp.ErrCode != uint8(errcode.ChipNotSel) {
		t.Fatalf("got %+v, want ERROR(CHIP_NOT_SEL)", resp)
	}
}

func TestUnalignedEraseIsAddrNotAlign(t *testing.T) {
	h := newHarness(t)
	h.selectChip(0)

	if err := h.host.Send(protocol.EncodeErase(0x100, testBlockSize)); err != nil {
		t.Fatalf("Send ERASE: %v", err)
	}
	resp := h.recv()
	if resp.Kind != protocol.RespStatus || resp.Info != protocol.StatusError || resp.ErrCode != uint8(errcode.AddrNotAlign) {
		t.Fatalf("got %+v, want ERROR(ADDR_NOT_ALIGN)", resp)
	}
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t)
	h.selectChip(0)

	if err := h.host.Send([]byte{0x7F}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	resp := h.recv()
	if resp.Kind != protocol.RespStatus || resp.Info != protocol.StatusError || resp.ErrCode != uint8(errcode.CmdInvalid) {
		t.Fatalf("got %+v, want ERROR(CMD_INVALID)", resp)
	}
}

func TestWriteWithinOnePage(t *testing.T) {
	h := newHarness(t)
	h.selectChip(0)

	const length = 2048
	if err := h.host.Send(protocol.EncodeWriteStart(0, length)); err != nil {
		t.Fatalf("Send WRITE_S: %v", err)
	}
	if resp := h.recv(); resp.Kind != protocol.RespStatus || resp.Info != protocol.StatusOK {
		t.Fatalf("WRITE_S: got %+v, want OK", resp)
	}

	data := make([]byte, length)
	for i := range data {
		data[i] = byte(i)
	}

	sent := 0
	var lastAck uint32
	var acks []uint32
	for sent < length {
		n := 59
		if sent+n > length {
			n = length - sent
		}
		chunk, err := protocol.EncodeWriteData(data[sent : sent+n])
		if err != nil {
			t.Fatalf("EncodeWriteData: %v", err)
		}
		if err := h.host.Send(chunk); err != nil {
			t.Fatalf("Send WRITE_D: %v", err)
		}
		sent += n

		resp := h.recv()
		if resp.Kind != protocol.RespStatus {
			t.Fatalf("WRITE_D: got %+v", resp)
		}
		switch resp.Info {
		case protocol.StatusWriteAck:
			acks = append(acks, resp.BytesAck)
			if resp.BytesAck <= lastAck {
				t.Fatalf("WRITE_ACK values must strictly increase: %d after %d", resp.BytesAck, lastAck)
			}
			lastAck = resp.BytesAck
			if next := h.recv(); next.Kind != protocol.RespStatus || next.Info != protocol.StatusOK {
				t.Fatalf("WRITE_D after ack: got %+v, want OK", next)
			}
		case protocol.StatusOK:
		default:
			t.Fatalf("WRITE_D: unexpected %+v", resp)
		}
	}
	if len(acks) != 1 || acks[0] != length {
		t.Fatalf("expected a single WRITE_ACK(%d), got %v", length, acks)
	}

	if err := h.host.Send(protocol.EncodeWriteEnd()); err != nil {
		t.Fatalf("Send WRITE_E: %v", err)
	}
	if resp := h.recv(); resp.Kind != protocol.RespStatus || resp.Info != protocol.StatusOK {
		t.Fatalf("WRITE_E: got %+v, want OK", resp)
	}

	readBack, err := readRange(h, 0, length)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	for i := range data {
		if readBack[i] != data[i] {
			t.Fatalf("byte %d: got %#x, want %#x", i, readBack[i], data[i])
		}
	}
}

func TestWriteCrossingPageBoundary(t *testing.T) {
	h := newHarness(t)
	h.selectChip(0)

	const length = 4096
	if err := h.host.Send(protocol.EncodeWriteStart(0, length)); err != nil {
		t.Fatalf("Send WRITE_S: %v", err)
	}
	if resp := h.recv(); resp.Kind != protocol.RespStatus || resp.Info != protocol.StatusOK {
		t.Fatalf("WRITE_S: got %+v, want OK", resp)
	}

	data := make([]byte, length)
	for i := range data {
		data[i] = byte(i % 251)
	}

	var acks []uint32
	sent := 0
	for sent < length {
		n := 59
		if sent+n > length {
			n = length - sent
		}
		chunk, err := protocol.EncodeWriteData(data[sent : sent+n])
		if err != nil {
			t.Fatalf("EncodeWriteData: %v", err)
		}
		if err := h.host.Send(chunk); err != nil {
			t.Fatalf("Send WRITE_D: %v", err)
		}
		sent += n

		resp := h.recv()
		if resp.Kind != protocol.RespStatus {
			t.Fatalf("WRITE_D: got %+v", resp)
		}
		if resp.Info == protocol.StatusWriteAck {
			acks = append(acks, resp.BytesAck)
			if next := h.recv(); next.Kind != protocol.RespStatus || next.Info != protocol.StatusOK {
				t.Fatalf("WRITE_D after ack: got %+v, want OK", next)
			}
		} else if resp.Info != protocol.StatusOK {
			t.Fatalf("WRITE_D: unexpected %+v", resp)
		}
	}
	if len(acks) != 2 || acks[0] != 2048 || acks[1] != 4096 {
		t.Fatalf("expected WRITE_ACK(2048), WRITE_ACK(4096), got %v", acks)
	}

	if err := h.host.Send(protocol.EncodeWriteEnd()); err != nil {
		t.Fatalf("Send WRITE_E: %v", err)
	}
	if resp := h.recv(); resp.Kind != protocol.RespStatus || resp.Info != protocol.StatusOK {
		t.Fatalf("WRITE_E: got %+v, want OK", resp)
	}
}

func TestBadBlockDuringErase(t *testing.T) {
	h := newHarness(t)
	h.selectChip(0)
	h.tbl.Add(0x20000)

	if err := h.host.Send(protocol.EncodeErase(0, 0x60000)); err != nil {
		t.Fatalf("Send ERASE: %v", err)
	}

	var badAddrs []uint32
	for {
		resp := h.recv()
		if resp.Kind != protocol.RespStatus {
			t.Fatalf("ERASE: unexpected %+v", resp)
		}
		if resp.Info == protocol.StatusBadBlock {
			badAddrs = append(badAddrs, resp.BlockAddr)
			continue
		}
		if resp.Info == protocol.StatusOK {
			break
		}
		t.Fatalf("ERASE: unexpected status %+v", resp)
	}
	if len(badAddrs) != 1 || badAddrs[0] != 0x20000 {
		t.Fatalf("expected one BAD_BLOCK(0x20000), got %v", badAddrs)
	}
}

func TestReadBBFindsMarkedBlocks(t *testing.T) {
	h := newHarness(t)
	h.selectChip(0)
	h.sim.MarkBad(testBlockSize * 3)

	if err := h.host.Send(protocol.EncodeReadBB()); err != nil {
		t.Fatalf("Send READ_BB: %v", err)
	}

	var badAddrs []uint32
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp := h.recv()
		if resp.Info == protocol.StatusBadBlock {
			badAddrs = append(badAddrs, resp.BlockAddr)
			continue
		}
		if resp.Info == protocol.StatusOK {
			break
		}
	}
	if len(badAddrs) != 1 || badAddrs[0] != testBlockSize*3 {
		t.Fatalf("expected one bad block at %#x, got %v", testBlockSize*3, badAddrs)
	}
	if !h.tbl.Lookup(testBlockSize * 3) {
		t.Error("bad block should be recorded in the table")
	}
}

// readRange issues a READ for length bytes starting at addr and
// collects the DATA frames, which carry no terminating STATUS frame
// on success.
func readRange(h *harness, addr, length uint32) ([]byte, error) {
	if err := h.host.Send(protocol.EncodeRead(addr, length)); err != nil {
		return nil, err
	}
	out := make([]byte, 0, length)
	for uint32(len(out)) < length {
		resp := h.recv()
		if resp.Kind != protocol.RespData {
			h.t.Fatalf("READ: unexpected %+v", resp)
		}
		out = append(out, resp.Data...)
	}
	return out, nil
}
