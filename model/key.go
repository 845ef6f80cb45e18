package model

import (
	"fmt"
	"strings"
)

// Modifier is one of the two exclusive modifier classes a key can
// carry. A key is either natural, raised (Shift) or lowered (Ctrl),
// never both.
type Modifier uint8

const (
	ModifierNone Modifier = iota
	ModifierShift
	ModifierCtrl
)

func (m Modifier) String() string {
	switch m {
	case ModifierShift:
		return "Shift"
	case ModifierCtrl:
		return "Ctrl"
	}
	return ""
}

// keyRows is the fixed physical layout: 3 octave rows of 7 natural
// keys each, lowest row first.
var keyRows = [3][7]string{
	{"Z", "X", "C", "V", "B", "N", "M"},
	{"A", "S", "D", "F", "G", "H", "J"},
	{"Q", "W", "E", "R", "T", "Y", "U"},
}

// Key identifies one playable key on the device: a natural key
// position plus an optional modifier class.
type Key struct {
	Row      int
	Col      int
	Modifier Modifier
}

// String renders the canonical key string: the bare letter for
// naturals, "<Modifier>+<Letter>" for chromatic keys.
func (k Key) String() string {
	letter := keyRows[k.Row][k.Col]
	if k.Modifier == ModifierNone {
		return letter
	}
	return k.Modifier.String() + "+" + letter
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKey parses a key string, case-insensitively, accepting both
// natural ("q") and modified ("shift+c") forms.
func ParseKey(s string) (Key, error) {
	var k Key
	letter := s
	if i := strings.IndexByte(s, '+'); i >= 0 {
		switch strings.ToLower(s[:i]) {
		case "shift":
			k.Modifier = ModifierShift
		case "ctrl":
			k.Modifier = ModifierCtrl
		default:
			return k, fmt.Errorf("unknown modifier %q in key %q", s[:i], s)
		}
		letter = s[i+1:]
	}
	upper := strings.ToUpper(letter)
	for row := range keyRows {
		for col := range keyRows[row] {
			if keyRows[row][col] == upper {
				k.Row = row
				k.Col = col
				return k, nil
			}
		}
	}
	return k, fmt.Errorf("unknown key letter %q in key %q", letter, s)
}

// RowLetters returns the natural key letters of one row, lowest
// column first.
func RowLetters(row int) [7]string {
	return keyRows[row]
}
