// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package githelper implements the C7 Git credential helper line protocol:
// reading key=value requests from stdin and writing key=value responses to
// stdout for the get/store/erase commands (spec §4.7/§6).
package githelper

import (
	"bufio"
	"fmt"
	"io"

	"github.com/archmagece/warden/internal/parser"
)

// ReadRequest reads "key=value" lines from r until a blank line or EOF,
// returning them as a map. This is the credential helper's input format
// for all three commands (spec §6).
func ReadRequest(r io.Reader) (map[string]string, error) {
	fields := map[string]string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if parser.IsEmptyLine(line) {
			break
		}
		key, value, err := parser.ParseKeyValue(line, "=")
		if err != nil {
			return nil, fmt.Errorf("githelper: malformed input line %q: %w", line, err)
		}
		fields[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("githelper: reading request: %w", err)
	}
	return fields, nil
}

// WriteResponse writes fields as "key=value" lines followed by a blank
// line, the credential helper's output format for `get` (spec §6). An
// empty fields map writes nothing, matching Git's "helper declined" case.
func WriteResponse(w io.Writer, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	bw := bufio.NewWriter(w)
	for _, key := range []string{"protocol", "host", "username", "password"} {
		value, ok := fields[key]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(bw, "%s=%s\n", key, value); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("\n"); err != nil {
		return err
	}
	return bw.Flush()
}
