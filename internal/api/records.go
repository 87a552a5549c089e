package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/patient-api/internal/api/shared"
	"github.com/phrazzld/patient-api/internal/domain"
	"github.com/phrazzld/patient-api/internal/platform/logger"
	"github.com/phrazzld/patient-api/internal/redact"
	"github.com/phrazzld/patient-api/internal/store"
)

// IDParam is the chi URL parameter holding a record ID.
const IDParam = "id"

// DeleteResponse is returned by a successful delete.
type DeleteResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// RecordHandler serves CRUD requests for one record store. R is the record
// type and P its partial payload type.
type RecordHandler[R any, P store.Patch[R]] struct {
	store  store.RecordStore[R]
	label  string
	logger *slog.Logger
}

// NewRecordHandler creates a handler for s. label is the capitalised entity
// name used in response messages, e.g. "Patient".
func NewRecordHandler[R any, P store.Patch[R]](
	s store.RecordStore[R],
	label string,
	logger *slog.Logger,
) *RecordHandler[R, P] {
	if s == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("store cannot be nil for RecordHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordHandler[R, P]{
		store:  s,
		label:  label,
		logger: logger.With(slog.String("component", "record_handler"), slog.String("entity", label)),
	}
}

// Routes mounts the handler's endpoints on r.
func (h *RecordHandler[R, P]) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{"+IDParam+"}", h.Get)
	r.Put("/{"+IDParam+"}", h.Update)
	r.Patch("/{"+IDParam+"}", h.Update)
	r.Delete("/{"+IDParam+"}", h.Delete)
}

// Create handles POST requests. The body is a complete record.
func (h *RecordHandler[R, P]) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var record R
	if err := decodeBody(w, r, &record); err != nil {
		log.Debug("invalid create request", slog.String("error", redact.Error(err)))
		HandleAPIError(w, r, err, "")
		return
	}

	created, err := h.store.Create(r.Context(), record)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create "+h.label)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, created)
}

// List handles GET requests for the whole collection.
func (h *RecordHandler[R, P]) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list records")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, records)
}

// Get handles GET requests for a single record.
func (h *RecordHandler[R, P]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	record, err := h.store.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get "+h.label)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, record)
}

// Update handles PUT and PATCH requests. Only fields present in the body are
// changed; an id in the body is ignored.
func (h *RecordHandler[R, P]) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var patch P
	if err := decodeBody(w, r, &patch); err != nil {
		log.Debug("invalid update request",
			slog.Int("id", id),
			slog.String("error", redact.Error(err)))
		HandleAPIError(w, r, err, "")
		return
	}

	updated, err := h.store.Update(r.Context(), id, patch)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update "+h.label)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, updated)
}

// Delete handles DELETE requests.
func (h *RecordHandler[R, P]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete "+h.label)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteResponse{
		Status:  "success",
		Message: fmt.Sprintf("%s with ID %d has been deleted.", h.label, id),
	})
}

// pathID extracts the record ID from the URL path. It writes a 400 response
// and returns false when the ID is missing or not an integer.
func (h *RecordHandler[R, P]) pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := parsePathID(r)
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("invalid path id",
			slog.String("value", chi.URLParam(r, IDParam)))
		HandleAPIError(w, r, err, "")
		return 0, false
	}
	return id, true
}

func parsePathID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, IDParam)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", ErrBadRequest, IDParam)
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrBadRequest, IDParam, raw)
	}
	return id, nil
}

// decodeBody decodes the JSON body into v. Type mismatches come back as a
// *domain.ValidationError; any other failure wraps ErrBadRequest.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	err := shared.DecodeJSON(w, r, v)
	if err == nil {
		return nil
	}
	if verr, ok := domain.FromDecodeError(err); ok {
		return verr
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: body exceeds %d bytes", ErrBadRequest, maxErr.Limit)
	}
	return fmt.Errorf("%w: %w", ErrBadRequest, err)
}

// PatientHandler serves /api/patients.
type PatientHandler = RecordHandler[domain.Patient, domain.PatientPatch]

// NewPatientHandler creates a PatientHandler for s.
func NewPatientHandler(s store.PatientStore, logger *slog.Logger) *PatientHandler {
	return NewRecordHandler[domain.Patient, domain.PatientPatch](s, "Patient", logger)
}

// BookHandler serves /api/books.
type BookHandler = RecordHandler[domain.Book, domain.BookPatch]

// NewBookHandler creates a BookHandler for s.
func NewBookHandler(s store.BookStore, logger *slog.Logger) *BookHandler {
	return NewRecordHandler[domain.Book, domain.BookPatch](s, "Book", logger)
}
