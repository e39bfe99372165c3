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

// Command nandctl is the host-side console: it dials the engine over
// loopback/TCP or a real serial port and drives it with a small line
// command language, one frame round trip per command, using
// peterh/liner for line editing the same way the teacher's console
// reader does.
package main

import (
	"errors"
	"fmt"
	"os"

	getopt "github.com/pborman/getopt/v2"
	"github.com/peterh/liner"

	"github.com/nandprog/engine/transport"
	"github.com/nandprog/engine/transport/loopback"
	"github.com/nandprog/engine/transport/serial"
)

func main() {
	optAddr := getopt.StringLong("connect", 'a', "", "Dial engine at host:port (loopback transport)")
	optDevice := getopt.StringLong("device", 'd', "", "Dial engine over a serial device")
	optBaud := getopt.IntLong("baud", 'b', 115200, "Serial baud rate, with -d")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var t transport.Transport
	var err error
	switch {
	case *optDevice != "":
		t, err = serial.Open(*optDevice, *optBaud)
	case *optAddr != "":
		t, err = loopback.Dial(*optAddr)
	default:
		fmt.Fprintln(os.Stderr, "specify -a host:port or -d /dev/ttyX")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect:", err)
		os.Exit(1)
	}

	c := &client{t: t}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt("nandctl> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			fmt.Fprintln(os.Stderr, "error reading line:", err)
			return
		}
		line.AppendHistory(input)

		quit, err := execute(c, input)
		if err != nil {
			fmt.Println("error:", err)
		}
		if quit {
			return
		}
	}
}
