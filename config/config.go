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

// Package config parses the engine host process's command line flags
// with getopt, the same library and one-flag-per-option style the
// emulator's own main package uses.
package config

import (
	getopt "github.com/pborman/getopt/v2"
)

// Transport selects which transport/loopback implementation the host
// process listens on.
type Transport string

const (
	TransportSerial Transport = "serial"
	TransportTCP    Transport = "tcp"
)

// Flags holds the parsed command line for the engine host process.
type Flags struct {
	Manifest  string // chip manifest path
	Transport Transport
	Device    string // serial device path, when Transport == serial
	Baud      int    // serial baud rate, when Transport == serial
	Addr      string // listen address, when Transport == tcp
	LogFile   string
	Debug     bool
	Help      bool
}

// Parse reads os.Args (via getopt's default flag set) into Flags.
func Parse() *Flags {
	f := &Flags{}

	optManifest := getopt.StringLong("manifest", 'm', "chips.conf", "Chip manifest file")
	optTransport := getopt.StringLong("transport", 't', "tcp", "Transport: tcp or serial")
	optDevice := getopt.StringLong("device", 'd', "/dev/ttyUSB0", "Serial device, when -t serial")
	optBaud := getopt.IntLong("baud", 'b', 115200, "Serial baud rate, when -t serial")
	optAddr := getopt.StringLong("listen", 'a', ":9123", "Listen address, when -t tcp")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'v', "Echo log records to stderr regardless of level")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	f.Manifest = *optManifest
	f.Transport = Transport(*optTransport)
	f.Device = *optDevice
	f.Baud = *optBaud
	f.Addr = *optAddr
	f.LogFile = *optLogFile
	f.Debug = *optDebug
	f.Help = *optHelp
	return f
}
