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

package chip

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LoadManifest reads additional chip entries into db from a
// line-oriented manifest:
//
//	# comment
//	name=W25N01 page=2048 block=131072 size=134217728
//
// One chip per line, fields separated by whitespace, '#' starts a
// comment that runs to end of line. This keeps the teacher's
// configparser line/option grammar (name=value pairs, '#' comments,
// one entry per line) without its multi-device registry machinery,
// which this single-shape manifest has no use for.
func LoadManifest(r io.Reader, db *StaticDatabase) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := stripComment(scanner.Text())
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		info, err := parseManifestLine(line)
		if err != nil {
			return fmt.Errorf("chip: manifest line %d: %w", lineNum, err)
		}
		db.Add(info)
	}
	return scanner.Err()
}

func stripComment(line string) string {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		return line[:idx]
	}
	return line
}

func parseManifestLine(line string) (Info, error) {
	var info Info
	for _, field := range strings.Fields(line) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return Info{}, fmt.Errorf("expected key=value, got %q", field)
		}
		switch strings.ToLower(key) {
		case "name":
			info.Name = value
		case "page":
			n, err := strconv.ParseUint(value, 0, 32)
			if err != nil {
				return Info{}, fmt.Errorf("page=%q: %w", value, err)
			}
			info.PageSize = uint32(n)
		case "block":
			n, err := strconv.ParseUint(value, 0, 32)
			if err != nil {
				return Info{}, fmt.Errorf("block=%q: %w", value, err)
			}
			info.BlockSize = uint32(n)
		case "size":
			n, err := strconv.ParseUint(value, 0, 64)
			if err != nil {
				return Info{}, fmt.Errorf("size=%q: %w", value, err)
			}
			info.Size = n
		default:
			return Info{}, fmt.Errorf("unknown field %q", key)
		}
	}
	if info.Name == "" || info.PageSize == 0 || info.BlockSize == 0 || info.Size == 0 {
		return Info{}, fmt.Errorf("incomplete chip entry: %q", line)
	}
	return info, nil
}
