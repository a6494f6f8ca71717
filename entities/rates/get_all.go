package rates

import (
	"context"
	"net/http"
	"strings"

	"transdom/utils"
)

// GetAll lists rate cards, optionally filtered by the zone query parameter.
func (h *Handlers) GetAll(w http.ResponseWriter, r *http.Request) {
	zone := strings.TrimSpace(r.URL.Query().Get("zone"))

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	cards, err := h.Store.GetRates(ctx, zone)
	if err != nil {
		utils.SendError(w, r, err, utils.CANNOT_FIND_RATES_IN_MONGODB)
		return
	}

	if zone != "" && len(cards) == 0 {
		utils.SendResponse(w, http.StatusNotFound, "No shipping rates found for zone '"+zone+"'", nil, 0)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", ToViews(cards), 0)
}
