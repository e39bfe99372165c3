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
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nandprog/engine/protocol"
)

// cmdSpec is one console command: name, minimum unambiguous prefix
// length, and the handler. Mirrors the teacher's command table --
// name/min/process triples matched by unique prefix -- cut down to
// this console's smaller command set.
type cmdSpec struct {
	name string
	min  int
	run  func(c *client, args []string) error
}

var cmdTable = []cmdSpec{
	{name: "select", min: 3, run: cmdSelect},
	{name: "readid", min: 5, run: cmdReadID},
	{name: "erase", min: 2, run: cmdErase},
	{name: "read", min: 2, run: cmdRead},
	{name: "write", min: 2, run: cmdWrite},
	{name: "scan", min: 2, run: cmdScan},
	{name: "help", min: 1, run: cmdHelp},
	{name: "quit", min: 1, run: nil},
}

// execute parses one console line and runs the matching command.
// Returns quit=true when the session should end.
func execute(c *client, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	var match *cmdSpec
	for i := range cmdTable {
		spec := &cmdTable[i]
		if len(name) < spec.min || !strings.HasPrefix(spec.name, name) {
			continue
		}
		if match != nil {
			return false, fmt.Errorf("ambiguous command %q", name)
		}
		match = spec
	}
	if match == nil {
		return false, fmt.Errorf("unknown command %q (try help)", name)
	}
	if match.name == "quit" {
		return true, nil
	}
	return false, match.run(c, args)
}

func cmdSelect(c *client, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: select <chip-num>")
	}
	n, err := strconv.ParseUint(args[0], 0, 32)
	if err != nil {
		return err
	}
	return c.doStatus(protocol.EncodeSelect(uint32(n)))
}

func cmdReadID(c *client, _ []string) error {
	if err := c.t.Send(protocol.EncodeReadID()); err != nil {
		return err
	}
	resp, err := c.recv()
	if err != nil {
		return err
	}
	if resp.Kind != protocol.RespData {
		return fmt.Errorf("unexpected %v response to READ_ID", resp.Kind)
	}
	fmt.Printf("id: %s\n", hex.EncodeToString(resp.Data))
	return nil
}

func cmdErase(c *client, args []string) error {
	addr, length, err := parseAddrLen(args)
	if err != nil {
		return err
	}
	return c.doStatus(protocol.EncodeErase(addr, length))
}

func cmdScan(c *client, _ []string) error {
	return c.doStatus(protocol.EncodeReadBB())
}

func cmdRead(c *client, args []string) error {
	if len(args) != 3 {
		return errors.New("usage: read <addr> <len> <outfile>")
	}
	addr, length, err := parseAddrLen(args[:2])
	if err != nil {
		return err
	}
	data, err := c.doRead(addr, length)
	if err != nil {
		return err
	}
	return os.WriteFile(args[2], data, 0o644)
}

func cmdWrite(c *client, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: write <addr> <infile>")
	}
	addr64, err := strconv.ParseUint(args[0], 0, 32)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}
	return c.doWriteFile(uint32(addr64), data)
}

func cmdHelp(_ *client, _ []string) error {
	fmt.Println(`commands:
  select <chip-num>
  readid
  erase <addr> <len>
  read <addr> <len> <outfile>
  write <addr> <infile>
  scan
  quit`)
	return nil
}

func parseAddrLen(args []string) (addr, length uint32, err error) {
	if len(args) != 2 {
		return 0, 0, errors.New("usage: <addr> <len>")
	}
	a, err := strconv.ParseUint(args[0], 0, 32)
	if err != nil {
		return 0, 0, err
	}
	l, err := strconv.ParseUint(args[1], 0, 32)
	if err != nil {
		return 0, 0, err
	}
	return uint32(a), uint32(l), nil
}
