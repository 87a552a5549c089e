package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/patient-api/internal/api/shared"
	"github.com/phrazzld/patient-api/internal/domain"
	"github.com/phrazzld/patient-api/internal/platform/logger"
	"github.com/phrazzld/patient-api/internal/store"
)

// ItemDetails is the read view of an inventory item. Brand is echoed from
// the query string and Category is hidden when show_category is false.
type ItemDetails struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Brand    string `json:"brand,omitempty"`
	Category string `json:"category,omitempty"`
}

// ItemHandler serves the inventory endpoints. Everything except the single
// item read is the plain record handler.
type ItemHandler struct {
	*RecordHandler[domain.Item, domain.ItemPatch]
}

// NewItemHandler creates an ItemHandler for s.
func NewItemHandler(s store.ItemStore, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		RecordHandler: NewRecordHandler[domain.Item, domain.ItemPatch](s, "Item", logger),
	}
}

// Routes mounts the handler's endpoints on r.
func (h *ItemHandler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{"+IDParam+"}", h.GetDetails)
	r.Put("/{"+IDParam+"}", h.Update)
	r.Patch("/{"+IDParam+"}", h.Update)
	r.Delete("/{"+IDParam+"}", h.Delete)
}

// GetDetails handles GET /api/items/{id}?brand=&show_category=.
func (h *ItemHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	showCategory := true
	if raw := query.Get("show_category"); raw != "" {
		v, err := parseQueryBool(raw)
		if err != nil {
			log.Debug("invalid show_category", slog.String("value", raw))
			HandleAPIError(w, r, err, "")
			return
		}
		showCategory = v
	}

	item, err := h.store.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get Item")
		return
	}

	details := ItemDetails{
		ID:    item.ID,
		Name:  item.Name,
		Brand: query.Get("brand"),
	}
	if showCategory {
		details.Category = item.Category
	}
	shared.RespondWithJSON(w, r, http.StatusOK, details)
}

// parseQueryBool accepts the usual spellings of a boolean query flag.
func parseQueryBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q is not a boolean", ErrBadRequest, raw)
	}
}
