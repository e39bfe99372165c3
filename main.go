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

// Command nandprog-engine is the engine host process: it loads the
// chip manifest, opens a transport (loopback/TCP or serial), wires an
// in-memory NAND simulator behind the engine's nand.Controller
// interface, and drives the event loop on a fixed tick until the
// process receives a termination signal.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	getopt "github.com/pborman/getopt/v2"

	"github.com/nandprog/engine/badblock"
	"github.com/nandprog/engine/chip"
	"github.com/nandprog/engine/config"
	"github.com/nandprog/engine/engine"
	"github.com/nandprog/engine/nandsim"
	"github.com/nandprog/engine/transport"
	"github.com/nandprog/engine/transport/loopback"
	"github.com/nandprog/engine/transport/serial"
	"github.com/nandprog/engine/util/logger"
)

var Logger *slog.Logger

func main() {
	flags := config.Parse()
	if flags.Help {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if flags.LogFile != "" {
		var err error
		file, err = os.Create(flags.LogFile)
		if err != nil {
			slog.Error("create log file", "error", err)
			os.Exit(1)
		}
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger = slog.New(logger.New(file, programLevel, flags.Debug))
	slog.SetDefault(Logger)

	Logger.Info("nandprog engine starting")

	db := chip.DefaultDatabase()
	if f, err := os.Open(flags.Manifest); err == nil {
		if err := chip.LoadManifest(f, db); err != nil {
			Logger.Error("load manifest", "path", flags.Manifest, "error", err)
		}
		f.Close()
	} else {
		Logger.Info("no chip manifest loaded, using built-in geometries", "path", flags.Manifest)
	}

	info, _ := db.Lookup(0)
	sim := nandsim.New(info, []byte{0xEC, 0xD3, 0x51, 0x95})

	var t transport.Transport
	var err error
	switch flags.Transport {
	case config.TransportSerial:
		t, err = serial.Open(flags.Device, flags.Baud)
	default:
		t, err = loopback.ListenAndServe(flags.Addr)
	}
	if err != nil {
		Logger.Error("open transport", "error", err)
		os.Exit(1)
	}

	eng := engine.New(engine.Config{
		Transport: t,
		ChipDB:    db,
		NAND:      sim,
		BadTable:  badblock.NewMapTable(),
		Logger:    Logger,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				sim.Tick()
				if err := eng.Tick(); err != nil {
					Logger.Error("engine tick", "error", err)
					close(done)
					return
				}
			}
		}
	}()

	<-sigChan
	Logger.Info("shutting down")
	close(done)
}
