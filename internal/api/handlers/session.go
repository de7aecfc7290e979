package handlers

import (
	"geoport-delivery/internal/api/dto"
	"geoport-delivery/internal/services"
	"net/http"
)

// SessionHandler exposes the game session's turn inputs.
// Inputs that do not fit the current state answer 200 with applied=false.
type SessionHandler struct {
	Session *services.GameSession
}

func NewSessionResponse(snap services.SessionSnapshot) dto.SessionResponse {
	phase := ""
	if snap.State == services.StateMoving || snap.State == services.StateResult {
		phase = services.Phase(snap.Turn.Progress)
	}

	return dto.SessionResponse{
		SessionID:           snap.SessionID,
		State:               string(snap.State),
		Money:               snap.Progress.Money,
		DeliveriesCompleted: snap.Progress.DeliveriesCompleted,
		Tier:                dto.NewTierResponse(snap.Tier),
		Shops:               snap.Shops,
		Turn:                dto.NewTurnResponse(snap.Turn, phase),
	}
}

func (h *SessionHandler) writeAction(w http.ResponseWriter, r *http.Request, applied bool) {
	writeJSON(w, r, http.StatusOK, dto.ActionResponse{
		Applied: applied,
		Session: NewSessionResponse(h.Session.Snapshot()),
	})
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, NewSessionResponse(h.Session.Snapshot()))
}

func (h *SessionHandler) SelectShop(w http.ResponseWriter, r *http.Request) {
	var req dto.ShopRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.ShopIndex == nil {
		writeError(w, r, http.StatusBadRequest, "shop_index is required")
		return
	}

	h.writeAction(w, r, h.Session.SelectShop(*req.ShopIndex))
}

// SelectOrder blocks until the route candidates are built.
func (h *SessionHandler) SelectOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.OrderSlot == nil {
		writeError(w, r, http.StatusBadRequest, "order_slot is required")
		return
	}

	h.writeAction(w, r, h.Session.SelectOrder(r.Context(), *req.OrderSlot))
}

func (h *SessionHandler) SelectRoute(w http.ResponseWriter, r *http.Request) {
	var req dto.RouteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.RouteIndex == nil {
		writeError(w, r, http.StatusBadRequest, "route_index is required")
		return
	}

	h.writeAction(w, r, h.Session.SelectRoute(*req.RouteIndex))
}

func (h *SessionHandler) ConfirmRoute(w http.ResponseWriter, r *http.Request) {
	h.writeAction(w, r, h.Session.ConfirmRoute())
}

func (h *SessionHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	h.writeAction(w, r, h.Session.Acknowledge())
}

func (h *SessionHandler) Abort(w http.ResponseWriter, r *http.Request) {
	h.writeAction(w, r, h.Session.Abort())
}
