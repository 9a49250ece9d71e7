// Package protocol defines infrared protocol identifiers and their names.
// Identifiers match the protocols emitted by the receiver's decoder; the
// name table is what the mapping file's first column is resolved against.
package protocol

// Protocol identifies an infrared protocol.
type Protocol int

const (
	Unknown Protocol = iota
	NEC
	NECext
	NEC42
	NEC42ext
	Samsung32
	RC5
	RC5X
	RC6
	SIRC
	SIRC15
	SIRC20
	Kaseikyo
	RCA
)

var names = map[Protocol]string{
	NEC:       "NEC",
	NECext:    "NECext",
	NEC42:     "NEC42",
	NEC42ext:  "NEC42ext",
	Samsung32: "Samsung32",
	RC5:       "RC5",
	RC5X:      "RC5X",
	RC6:       "RC6",
	SIRC:      "SIRC",
	SIRC15:    "SIRC15",
	SIRC20:    "SIRC20",
	Kaseikyo:  "Kaseikyo",
	RCA:       "RCA",
}

var byName = func() map[string]Protocol {
	m := make(map[string]Protocol, len(names))
	for p, n := range names {
		m[n] = p
	}
	return m
}()

// Name returns the display name of p, or "Unknown" for any identifier
// outside the known set.
func (p Protocol) Name() string {
	if n, ok := names[p]; ok {
		return n
	}
	return "Unknown"
}

// Valid reports whether p is a known protocol.
func (p Protocol) Valid() bool {
	_, ok := names[p]
	return ok
}

// ByName resolves a protocol name as it appears in the mapping file.
// Names are case-sensitive. Returns (Unknown, false) for unrecognized names.
func ByName(name string) (Protocol, bool) {
	p, ok := byName[name]
	return p, ok
}
