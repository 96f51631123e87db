package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aditi/profilecore/internal/service"
)

// APIHandlers exposes HTTP handlers for the REST API. The handlers are a
// thin boundary: identifier validation happens here, everything below treats
// unknown identifiers as a valid empty-footprint state.
type APIHandlers struct {
	logger    zerolog.Logger
	assembler *service.Assembler
	bulk      *service.BulkBuilder
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger zerolog.Logger, assembler *service.Assembler, bulk *service.BulkBuilder) *APIHandlers {
	return &APIHandlers{
		logger:    logger,
		assembler: assembler,
		bulk:      bulk,
	}
}

type profileRequest struct {
	PartnerID string `json:"partner_id"`
}

type profileResponse struct {
	PartnerID   string         `json:"partner_id"`
	Profile     map[string]any `json:"profile"`
	ProfileText string         `json:"profile_text"`
	Status      string         `json:"status"`
}

type profilesRequest struct {
	PartnerIDs []string `json:"partner_ids"`
}

type profilesResponse struct {
	Profiles []map[string]any `json:"profiles"`
	Count    int              `json:"count"`
	Status   string           `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *APIHandlers) handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var payload profileRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	partnerID := strings.TrimSpace(payload.PartnerID)
	if partnerID == "" {
		writeError(w, http.StatusBadRequest, "partner_id is required")
		return
	}

	profile := h.assembler.Build(partnerID)
	respondJSON(w, http.StatusOK, profileResponse{
		PartnerID:   partnerID,
		Profile:     profile.Document(),
		ProfileText: profile.Text(),
		Status:      "success",
	})
}

func (h *APIHandlers) handleProfiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var payload profilesRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(payload.PartnerIDs) == 0 {
		writeError(w, http.StatusBadRequest, "partner_ids is required")
		return
	}

	profiles, err := h.bulk.BuildAll(r.Context(), payload.PartnerIDs)
	if err != nil {
		var taskErr *service.TaskError
		if errors.As(err, &taskErr) {
			writeError(w, http.StatusBadRequest, taskErr.Error())
			return
		}
		h.logger.Error().Err(err).Msg("batch profile build failed")
		writeError(w, http.StatusInternalServerError, "batch profile build failed")
		return
	}

	docs := make([]map[string]any, 0, len(profiles))
	for _, profile := range profiles {
		docs = append(docs, profile.Document())
	}
	respondJSON(w, http.StatusOK, profilesResponse{
		Profiles: docs,
		Count:    len(docs),
		Status:   "success",
	})
}

func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("invalid JSON payload: %w", err)
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
