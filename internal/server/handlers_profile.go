package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"mime"
	"net/http"

	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/profile"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/server/middleware"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/types"
)

// handleExtractProfile builds a résumé document from a profile record. The
// record is the JSON body, a rendered profile page when the body is HTML, or
// the caller's stored profile when the body is empty. ?format=text returns
// the ATS plain-text rendering.
func (s *Server) handleExtractProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	format := profile.FormatJSON
	switch r.URL.Query().Get("format") {
	case "", "json":
	case "text":
		format = profile.FormatText
	default:
		s.writeError(w, &ErrValidation{Field: "format", Message: "must be json or text"})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var (
		record types.Profile
		source string
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch {
	case len(bytes.TrimSpace(body)) == 0:
		if s.profiles == nil {
			s.writeError(w, &ErrValidation{Message: "request body is required"})
			return
		}
		record, err = s.profiles.GetProfile(r.Context(), userID)
		if err != nil {
			log.Printf("[profile] loading profile for user %s failed: %v", userID, err)
			s.errorResponse(w, http.StatusInternalServerError, "Failed to load profile")
			return
		}
		if record == nil {
			s.writeError(w, &ErrNotFound{Resource: "profile"})
			return
		}
		source = "stored-profile"
	case mediaType == "text/html":
		record, err = profile.ParsePage(string(body))
		if err != nil {
			s.writeError(w, err)
			return
		}
		source = "profile-page"
	default:
		if err := json.Unmarshal(body, &record); err != nil || record == nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		source = "request"
	}

	result := profile.Extract(record, profile.Options{Format: format, Source: source})
	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	s.jsonResponse(w, status, result)
}
