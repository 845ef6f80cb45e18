package midi

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// buildSMF assembles an in-memory single-track file: a named melody
// at 120 BPM with two sequential quarter notes.
func buildSMF(t *testing.T) []byte {
	s := smf.NewSMF1()
	s.TimeFormat = smf.MetricTicks(480)

	var tr smf.Track
	tr = append(tr, smf.Event{Delta: 0, Message: smf.Message(smf.MetaTrackSequenceName("Melody"))})
	tr = append(tr, smf.Event{Delta: 0, Message: smf.Message(smf.MetaTempo(120))})
	tr = append(tr, smf.Event{Delta: 0, Message: smf.Message(gomidi.NoteOn(0, 60, 100))})
	tr = append(tr, smf.Event{Delta: 480, Message: smf.Message(gomidi.NoteOff(0, 60))})
	tr = append(tr, smf.Event{Delta: 0, Message: smf.Message(gomidi.NoteOn(0, 64, 100))})
	tr = append(tr, smf.Event{Delta: 480, Message: smf.Message(gomidi.NoteOff(0, 64))})
	tr.Close(0)
	s.Add(tr)

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("this is not a midi file"))
	assert.Error(t, err)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile("does-not-exist.mid")
	assert.Error(t, err)
}

func TestExtractTracks(t *testing.T) {
	s, err := Parse(buildSMF(t))
	require.NoError(t, err)

	tracks, bpm := ExtractTracks(s)

	assert := assert.New(t)
	assert.Equal(120, bpm)
	require.Equal(t, 1, len(tracks))

	tr := tracks[0]
	assert.Equal("Melody", tr.Name)
	require.Equal(t, 2, len(tr.Notes))

	assert.Equal(60, tr.Notes[0].Pitch)
	assert.InDelta(0.0, tr.Notes[0].Start, 1e-3)
	assert.InDelta(0.5, tr.Notes[0].Duration, 1e-3)

	assert.Equal(64, tr.Notes[1].Pitch)
	assert.InDelta(0.5, tr.Notes[1].Start, 1e-3)
	assert.InDelta(0.5, tr.Notes[1].Duration, 1e-3)
}

func TestExtractTracksClosesHangingNotes(t *testing.T) {
	s := smf.NewSMF1()
	s.TimeFormat = smf.MetricTicks(480)

	var tr smf.Track
	tr = append(tr, smf.Event{Delta: 0, Message: smf.Message(smf.MetaTempo(120))})
	tr = append(tr, smf.Event{Delta: 0, Message: smf.Message(gomidi.NoteOn(0, 60, 100))})
	tr = append(tr, smf.Event{Delta: 480, Message: smf.Message(gomidi.NoteOn(0, 62, 100))})
	tr = append(tr, smf.Event{Delta: 480, Message: smf.Message(gomidi.NoteOff(0, 62))})
	tr.Close(0)
	s.Add(tr)

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)

	parsed, err := Parse(buf.Bytes())
	require.NoError(t, err)
	tracks, _ := ExtractTracks(parsed)

	require.Equal(t, 1, len(tracks))
	require.Equal(t, 2, len(tracks[0].Notes))

	assert := assert.New(t)
	// the never-released note runs to the end of the track
	assert.Equal(60, tracks[0].Notes[0].Pitch)
	assert.InDelta(1.0, tracks[0].Notes[0].Duration, 1e-3)
}

func TestExtractTracksDefaultTempo(t *testing.T) {
	s := smf.NewSMF1()
	s.TimeFormat = smf.MetricTicks(480)

	var tr smf.Track
	tr = append(tr, smf.Event{Delta: 0, Message: smf.Message(gomidi.NoteOn(0, 60, 100))})
	tr = append(tr, smf.Event{Delta: 480, Message: smf.Message(gomidi.NoteOff(0, 60))})
	tr.Close(0)
	s.Add(tr)

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)

	parsed, err := Parse(buf.Bytes())
	require.NoError(t, err)
	_, bpm := ExtractTracks(parsed)

	assert.Equal(t, 120, bpm)
}
