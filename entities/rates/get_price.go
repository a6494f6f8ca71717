package rates

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"transdom/utils"
)

// GetPrice answers GET /api/rates/{zone}/price?weight=N.
func (h *Handlers) GetPrice(w http.ResponseWriter, r *http.Request) {
	zone := chi.URLParam(r, "zone")

	weightStr := strings.TrimSpace(r.URL.Query().Get("weight"))
	if weightStr == "" {
		utils.SendResponse(w, http.StatusBadRequest, "Query parameter 'weight' is required", nil, 0)
		return
	}
	weight, err := strconv.ParseFloat(weightStr, 64)
	if err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "Query parameter 'weight' must be a number", nil, 0)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	quote, err := LookupPrice(ctx, h.Store, zone, weight)
	if err != nil {
		utils.SendError(w, r, err, utils.CANNOT_FIND_ZONE_PRICE_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", quote, 0)
}
