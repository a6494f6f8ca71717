package rates

import (
	"context"
	"net/http"

	"transdom/utils"
)

func (h *Handlers) GetZones(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	zones, err := h.Store.ListZones(ctx)
	if err != nil {
		utils.SendError(w, r, err, utils.CANNOT_LIST_ZONES_IN_MONGODB)
		return
	}

	if zones == nil {
		zones = []string{}
	}

	utils.SendResponse(w, http.StatusOK, "", zones, 0)
}
