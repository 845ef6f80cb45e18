package model

// RawNoteEvent is one untransformed note as the decoder produced it.
// Times are in seconds.
type RawNoteEvent struct {
	Pitch    int
	Channel  int
	Start    float64
	Duration float64
}

// RawTrack is one source track: a name plus its unordered notes.
type RawTrack struct {
	Name  string
	Notes []RawNoteEvent
}

// MappedNoteEvent is a note after transposition and snapping: its
// pitch is a member of the keymap's valid set and Key is that pitch's
// canonical key.
type MappedNoteEvent struct {
	Pitch    int
	Key      Key
	Start    float64
	Duration float64
}

// Chord is a set of distinct keys pressed together.
type Chord struct {
	Start    float64 `json:"time"`
	Keys     []Key   `json:"keys"`
	Duration float64 `json:"duration"`
}

// Song is the terminal artifact of a conversion, persisted as-is.
// Chords are ordered by non-decreasing start time.
type Song struct {
	Title  string  `json:"title"`
	BPM    int     `json:"bpm"`
	Chords []Chord `json:"notes"`
}
