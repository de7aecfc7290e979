package handlers

import (
	"geoport-delivery/internal/api/dto"
	"geoport-delivery/internal/domain"
	"geoport-delivery/internal/services"
	"net/http"

	"github.com/gorilla/mux"
)

// Cue returns the tone schedule of one audio cue.
func Cue(w http.ResponseWriter, r *http.Request) {
	cue := domain.Cue(mux.Vars(r)["cue"])

	tones := services.CueSequence(cue)
	if tones == nil {
		writeError(w, r, http.StatusNotFound, "unknown cue")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewCueResponse(cue, tones))
}
