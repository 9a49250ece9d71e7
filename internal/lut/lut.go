// Package lut loads the CSV mapping file and resolves decoded signatures
// to output key codes.
//
// The file format is comma-separated, one mapping per line:
//
//	ir_protocol,ir_address,ir_command,hid_command,ir_key_comment,hid_key_comment
//	NECext,0x7F00,0xA758,0x80,remote vol+,KEY_MEDIA_VOLUME_UP
//
// Only the first four columns are consumed; anything after them is a
// free-form comment. The first non-empty line is a header and is always
// skipped. Malformed lines are skipped individually so a partially bad
// file still yields a usable table.
package lut

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/SaturnOperator/ir2hid/internal/ir"
	"github.com/SaturnOperator/ir2hid/internal/protocol"
)

// MaxFileSize is the largest mapping file accepted, in bytes. Files
// outside (0, MaxFileSize] are rejected and yield an empty table.
const MaxFileSize = 8192

var (
	// ErrNotFound reports a missing mapping file. Surfaced to the user via
	// the status display.
	ErrNotFound = errors.New("mapping file not found")

	// ErrFileSize reports a zero-length or oversized mapping file.
	ErrFileSize = fmt.Errorf("mapping file empty or larger than %d bytes", MaxFileSize)
)

// Entry associates one signature with an output key code.
type Entry struct {
	Sig  ir.Signature
	Code uint8
}

// Table is an immutable set of mapping entries. Lookups are a linear scan:
// tables in this domain hold tens of entries and are rebuilt only at
// startup, so scan order (and therefore first-match-wins for duplicate
// signatures) is load order.
type Table struct {
	entries []Entry
}

// Load reads and parses the mapping file at path. All failure modes
// return a usable empty table alongside the error.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Table{}, ErrNotFound
		}
		return &Table{}, fmt.Errorf("read mapping file: %w", err)
	}
	if len(data) == 0 || len(data) > MaxFileSize {
		return &Table{}, ErrFileSize
	}
	return Parse(string(data)), nil
}

// Parse builds a table from raw mapping file content. The header line is
// skipped; invalid records are dropped and parsing continues.
func Parse(content string) *Table {
	t := &Table{}
	header := true

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if header {
			header = false
			continue
		}

		entry, ok := parseRecord(line)
		if !ok {
			continue
		}
		if _, dup := t.Find(entry.Sig); dup {
			log.Printf("lut: duplicate signature %s addr=0x%X cmd=0x%X, keeping first",
				entry.Sig.Protocol.Name(), entry.Sig.Address, entry.Sig.Command)
		}
		t.entries = append(t.entries, entry)
	}
	return t
}

// parseRecord parses one data line. It reports ok=false for any malformed
// record: fewer than four fields, an unknown protocol name, a non-hex
// numeral, or an output code that does not fit in 8 bits.
func parseRecord(line string) (Entry, bool) {
	fields := strings.SplitN(line, ",", 5)
	if len(fields) < 4 {
		return Entry{}, false
	}

	proto, ok := protocol.ByName(strings.TrimSpace(fields[0]))
	if !ok {
		return Entry{}, false
	}

	addr, ok := parseHex32(fields[1])
	if !ok {
		return Entry{}, false
	}
	cmd, ok := parseHex32(fields[2])
	if !ok {
		return Entry{}, false
	}
	code, ok := parseHex32(fields[3])
	if !ok || code > 0xFF {
		return Entry{}, false
	}

	return Entry{
		Sig:  ir.Signature{Protocol: proto, Address: addr, Command: cmd},
		Code: uint8(code),
	}, true
}

// parseHex32 parses a hexadecimal numeral with an optional 0x/0X prefix.
func parseHex32(s string) (uint32, bool) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

// Find returns the output code mapped to sig. The first entry in load
// order wins when duplicates exist.
func (t *Table) Find(sig ir.Signature) (uint8, bool) {
	for _, e := range t.entries {
		if e.Sig == sig {
			return e.Code, true
		}
	}
	return 0, false
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}
