package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/server/middleware"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/types"
)

// handleExtractCV downloads the caller's uploaded CV and returns the fields
// extracted by their AI provider.
func (s *Server) handleExtractCV(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.ExtractCVRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, validationError(err))
		return
	}

	result, err := s.extractor.Run(r.Context(), userID, req)
	if err != nil {
		log.Printf("[cv] extraction for user %s failed: %v", userID, err)
		s.writeError(w, err)
		return
	}

	resp := types.Envelope{Success: true, Data: result.Data}
	if req.Debug {
		resp.Debug = result.Job
	}
	s.jsonResponse(w, http.StatusOK, resp)
}
