package httpapi

import "net/http"

type offerItem struct {
	ID             uint64 `json:"id"`
	Creator        string `json:"creator"`
	Collection     string `json:"collection"`
	Token          string `json:"token"`
	Price          string `json:"price"`
	AvailableCount uint32 `json:"available_count"`
}

func (h *Handler) ListOffers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOffers")
	defer span.End()

	offers, err := h.marketService.ListOffers(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list offers failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]offerItem, 0, len(offers))
	for _, offer := range offers {
		items = append(items, offerItem{
			ID:             offer.ID,
			Creator:        offer.Creator,
			Collection:     offer.Collection,
			Token:          offer.Token,
			Price:          offer.Price.String(),
			AvailableCount: offer.AvailableCount,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
