package song

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TingluoHuang/music-player/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSong() model.Song {
	return model.Song{
		Title: "Scale",
		BPM:   96,
		Chords: []model.Chord{
			{Start: 0, Keys: []model.Key{{Row: 0, Col: 0}}, Duration: 0.5},
			{Start: 0.5, Keys: []model.Key{
				{Row: 2, Col: 0},
				{Row: 0, Col: 2, Modifier: model.ModifierCtrl},
			}, Duration: 0.25},
			{Start: 1.023456789, Keys: []model.Key{
				{Row: 1, Col: 0, Modifier: model.ModifierShift},
			}, Duration: 0.123456789},
		},
	}
}

func TestRoundTripThroughFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.json")
	original := sampleSong()

	require.NoError(t, Save(path, original))
	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, original, loaded)
}

func TestEncodedForm(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleSong()))
	out := buf.String()

	assert := assert.New(t)
	assert.Contains(out, `"title": "Scale"`)
	assert.Contains(out, `"bpm": 96`)
	assert.Contains(out, `"Ctrl+C"`)
	assert.Contains(out, `"Shift+A"`)
	assert.Contains(out, `"Q"`)
}

func TestDecodeAcceptsCaseInsensitiveKeys(t *testing.T) {
	in := `{"title":"x","bpm":120,"notes":[{"time":0,"keys":["q","shift+c","CTRL+M"],"duration":0.5}]}`
	s, err := Decode(strings.NewReader(in))
	require.NoError(t, err)

	assert := assert.New(t)
	require.Equal(t, 1, len(s.Chords))
	// canonical case on write
	assert.Equal("Q", s.Chords[0].Keys[0].String())
	assert.Equal("Shift+C", s.Chords[0].Keys[1].String())
	assert.Equal("Ctrl+M", s.Chords[0].Keys[2].String())
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	in := `{"title":"x","bpm":120,"notes":[{"time":0,"keys":["Alt+Q"],"duration":0.5}]}`
	_, err := Decode(strings.NewReader(in))
	assert.Error(t, err)
}

func TestDecodeRejectsBrokenRecords(t *testing.T) {
	cases := map[string]string{
		"negative time":  `{"title":"x","bpm":1,"notes":[{"time":-1,"keys":["Q"],"duration":0.5}]}`,
		"out of order":   `{"title":"x","bpm":1,"notes":[{"time":2,"keys":["Q"],"duration":0.5},{"time":1,"keys":["Q"],"duration":0.5}]}`,
		"zero duration":  `{"title":"x","bpm":1,"notes":[{"time":0,"keys":["Q"],"duration":0}]}`,
		"empty keys":     `{"title":"x","bpm":1,"notes":[{"time":0,"keys":[],"duration":0.5}]}`,
		"duplicate keys": `{"title":"x","bpm":1,"notes":[{"time":0,"keys":["Q","q"],"duration":0.5}]}`,
		"not json":       `nope`,
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
