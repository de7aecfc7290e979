package dto

import (
	"geoport-delivery/internal/domain"
	"geoport-delivery/internal/services"
)

type ToneResponse struct {
	OffsetMs    int64   `json:"offset_ms"`
	FrequencyHz float64 `json:"frequency_hz"`
	LengthMs    int64   `json:"length_ms"`
	Waveform    string  `json:"waveform"`
	Volume      float64 `json:"volume"`
}

type CueResponse struct {
	Cue   string         `json:"cue"`
	Tones []ToneResponse `json:"tones"`
}

func NewCueResponse(cue domain.Cue, tones []services.Tone) CueResponse {
	res := CueResponse{Cue: string(cue), Tones: make([]ToneResponse, 0, len(tones))}
	for _, t := range tones {
		res.Tones = append(res.Tones, ToneResponse{
			OffsetMs:    t.Offset.Milliseconds(),
			FrequencyHz: t.FrequencyHz,
			LengthMs:    t.Length.Milliseconds(),
			Waveform:    t.Waveform,
			Volume:      t.Volume,
		})
	}
	return res
}
