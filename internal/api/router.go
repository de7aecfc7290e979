package api

import (
	"geoport-delivery/internal/api/handlers"
	"geoport-delivery/internal/services"
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// hub may be nil, in which case /ws is not served.
func NewRouter(session *services.GameSession, hub *Hub) http.Handler {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware, loggingMiddleware)

	sessionHandler := &handlers.SessionHandler{Session: session}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.HandleFunc("/cues/{cue}", handlers.Cue).Methods(http.MethodGet)

	s := r.PathPrefix("/session").Subrouter()
	s.HandleFunc("", sessionHandler.Get).Methods(http.MethodGet)
	s.HandleFunc("/shop", sessionHandler.SelectShop).Methods(http.MethodPost)
	s.HandleFunc("/order", sessionHandler.SelectOrder).Methods(http.MethodPost)
	s.HandleFunc("/route", sessionHandler.SelectRoute).Methods(http.MethodPost)
	s.HandleFunc("/route/confirm", sessionHandler.ConfirmRoute).Methods(http.MethodPost)
	s.HandleFunc("/result/ack", sessionHandler.Acknowledge).Methods(http.MethodPost)
	s.HandleFunc("/abort", sessionHandler.Abort).Methods(http.MethodPost)

	if hub != nil {
		r.HandleFunc("/ws", hub.ServeWs).Methods(http.MethodGet)
	}

	return r
}
