package services

import (
	"geoport-delivery/internal/domain"
	"time"
)

// Tone is one note of an audio cue, scheduled relative to the cue start.
// The audio collaborator plays sequences at its own pace.
type Tone struct {
	Offset      time.Duration
	FrequencyHz float64
	Length      time.Duration
	Waveform    string
	Volume      float64
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

var cueSequences = map[domain.Cue][]Tone{
	domain.CueClick: {
		{Offset: 0, FrequencyHz: 1200, Length: ms(50), Waveform: "sine", Volume: 0.12},
	},
	domain.CueSelect: {
		{Offset: 0, FrequencyHz: 600, Length: ms(120), Waveform: "sine", Volume: 0.18},
		{Offset: ms(60), FrequencyHz: 800, Length: ms(100), Waveform: "sine", Volume: 0.2},
	},
	domain.CueRoutePick: {
		{Offset: 0, FrequencyHz: 900, Length: ms(80), Waveform: "sine", Volume: 0.15},
		{Offset: ms(40), FrequencyHz: 1100, Length: ms(60), Waveform: "sine", Volume: 0.12},
	},
	domain.CueConfirm: {
		{Offset: 0, FrequencyHz: 700, Length: ms(100), Waveform: "sine", Volume: 0.2},
		{Offset: ms(60), FrequencyHz: 900, Length: ms(120), Waveform: "sine", Volume: 0.22},
	},
	domain.CueDeliveryStart: {
		{Offset: 0, FrequencyHz: 200, Length: ms(200), Waveform: "triangle", Volume: 0.15},
		{Offset: ms(100), FrequencyHz: 250, Length: ms(150), Waveform: "triangle", Volume: 0.18},
		{Offset: ms(200), FrequencyHz: 300, Length: ms(120), Waveform: "triangle", Volume: 0.15},
	},
	domain.CueSuccess: {
		{Offset: 0, FrequencyHz: 523.25, Length: ms(200), Waveform: "sine", Volume: 0.25},
		{Offset: ms(100), FrequencyHz: 659.25, Length: ms(200), Waveform: "sine", Volume: 0.25},
		{Offset: ms(200), FrequencyHz: 783.99, Length: ms(200), Waveform: "sine", Volume: 0.25},
		{Offset: ms(300), FrequencyHz: 1046.50, Length: ms(250), Waveform: "sine", Volume: 0.3},
	},
	domain.CueError: {
		{Offset: 0, FrequencyHz: 400, Length: ms(150), Waveform: "triangle", Volume: 0.25},
		{Offset: ms(80), FrequencyHz: 300, Length: ms(180), Waveform: "triangle", Volume: 0.28},
	},
	domain.CueLevelUp: {
		{Offset: 0, FrequencyHz: 523.25, Length: ms(180), Waveform: "sine", Volume: 0.3},
		{Offset: ms(80), FrequencyHz: 659.25, Length: ms(180), Waveform: "sine", Volume: 0.3},
		{Offset: ms(160), FrequencyHz: 783.99, Length: ms(180), Waveform: "sine", Volume: 0.3},
		{Offset: ms(240), FrequencyHz: 1046.50, Length: ms(180), Waveform: "sine", Volume: 0.3},
		{Offset: ms(320), FrequencyHz: 1318.51, Length: ms(180), Waveform: "sine", Volume: 0.3},
	},
}

// CueSequence returns the tone schedule for a cue, or nil for an unknown cue.
func CueSequence(cue domain.Cue) []Tone {
	seq, ok := cueSequences[cue]
	if !ok {
		return nil
	}
	out := make([]Tone, len(seq))
	copy(out, seq)
	return out
}
