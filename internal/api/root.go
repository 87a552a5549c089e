package api

import (
	"net/http"

	"github.com/phrazzld/patient-api/internal/api/shared"
)

// WelcomeResponse is served at the API root.
type WelcomeResponse struct {
	Message      string `json:"message"`
	Instructions string `json:"instructions"`
}

// Welcome handles GET / with a short usage hint.
func Welcome(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, WelcomeResponse{
		Message:      "Welcome to the patient records API!",
		Instructions: "Try /api/patients, /api/books or /api/items/{id}?brand=&show_category=false.",
	})
}
