package rates

import (
	"context"
	"encoding/json"
	"net/http"

	"transdom/schemas"
	"transdom/utils"
)

// CreateOne upserts a rate card keyed by zone and answers with the stored card.
func (h *Handlers) CreateOne(w http.ResponseWriter, r *http.Request) {
	req := schemas.RateCardRequest{}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil, 0)
		return
	}

	card, err := NewRateCard(req)
	if err != nil {
		utils.SendError(w, r, err, 0)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	stored, err := h.Store.UpsertRate(ctx, card)
	if err != nil {
		utils.SendError(w, r, err, utils.CANNOT_UPSERT_RATE_IN_MONGODB)
		return
	}

	view := ToView(*stored)
	// Broadcast before responding so subscribers see upserts in commit order.
	if h.Hub != nil {
		h.Hub.Broadcast(schemas.RateChange{Action: "upsert", Zone: view.Zone, Card: view})
	}

	utils.SendResponse(w, http.StatusCreated, "", view, 0)
}
