package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/outreach-drafter/internal/normalize"
	"github.com/jonathan/outreach-drafter/internal/scrape"
	"github.com/jonathan/outreach-drafter/internal/store"
	"github.com/jonathan/outreach-drafter/internal/types"
)

// GenerateRequest represents the request body for /generate. The sender
// profile is optional when one is stored or configured on disk; the target
// may be given inline or as a URL to scrape.
type GenerateRequest struct {
	MyProfile     *types.SenderProfile `json:"my_profile,omitempty"`
	TargetProfile *types.TargetProfile `json:"target_profile,omitempty"`
	TargetURL     string               `json:"target_url,omitempty"`
	Hooks         []string             `json:"hooks,omitempty"`
	Cycle         int                  `json:"cycle,omitempty"`
}

// GenerateResponse represents the response for /generate.
type GenerateResponse struct {
	DraftID     string                   `json:"draft_id,omitempty"`
	Variants    []types.Variant          `json:"variants"`
	Validations []types.ValidationResult `json:"validations,omitempty"`
}

// ScrapeRequest represents the request body for /scrape.
type ScrapeRequest struct {
	URL string `json:"url"`
}

// handleGenerate plans and generates three message variants.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.TargetProfile == nil && req.TargetURL == "" {
		s.errorResponse(w, http.StatusBadRequest, "Either target_profile or target_url is required")
		return
	}

	var (
		sender *types.SenderProfile
		target *types.TargetProfile
	)

	// The stored sender profile and the target scrape are independent
	// lookups, so run them concurrently.
	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		if req.MyProfile != nil {
			sender = req.MyProfile
			return nil
		}
		loaded, err := s.loadSenderProfile(r)
		if err != nil {
			return err
		}
		sender = loaded
		return nil
	})

	g.Go(func() error {
		if req.TargetProfile != nil {
			target = req.TargetProfile
			return nil
		}
		profile, err := scrape.FetchProfile(ctx, req.TargetURL, s.scrapeOptions(), s.verbose)
		if err != nil {
			return err
		}
		target = &profile
		return nil
	})

	if err := g.Wait(); err != nil {
		status := http.StatusBadGateway
		var validationErr *ErrValidation
		if errors.As(err, &validationErr) {
			status = http.StatusBadRequest
		}
		s.errorResponse(w, status, err.Error())
		return
	}

	resp, err := s.svc.Generate(r.Context(), types.GenerateRequest{
		MyProfile:     *sender,
		TargetProfile: *target,
		Hooks:         req.Hooks,
		Cycle:         req.Cycle,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	out := GenerateResponse{
		Variants:    resp.Variants,
		Validations: resp.Validations,
	}

	if s.store != nil {
		if id, err := s.store.SaveDraft(r.Context(), target.Name, resp.Variants, resp.Validations); err == nil {
			out.DraftID = id.String()
		}
		// A failed history write never fails the request.
	}

	s.jsonResponse(w, http.StatusOK, out)
}

// handleScrape fetches and parses a public profile page without generating.
func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		s.errorResponse(w, http.StatusBadRequest, "url is required")
		return
	}

	profile, err := scrape.FetchProfile(r.Context(), req.URL, s.scrapeOptions(), s.verbose)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, normalize.TargetProfile(profile))
}

// handleGetProfile returns the stored sender profile.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Profile storage is not configured")
		return
	}

	profile, err := s.store.GetSenderProfile(r.Context(), store.DefaultProfileID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "No sender profile saved")
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// handlePutProfile stores the sender profile, normalized.
func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Profile storage is not configured")
		return
	}

	var profile types.SenderProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(profile.Headline) == "" {
		s.errorResponse(w, http.StatusBadRequest, "headline is required")
		return
	}

	normalized := normalize.SenderProfile(profile)
	if err := s.store.SaveSenderProfile(r.Context(), store.DefaultProfileID, normalized); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, normalized)
}

// handleListDrafts returns recent generation outcomes.
func (s *Server) handleListDrafts(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Draft storage is not configured")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	drafts, err := s.store.ListDrafts(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"drafts": drafts})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// scrapeOptions builds fetch options from server config.
func (s *Server) scrapeOptions() *scrape.Options {
	opts := scrape.DefaultOptions()
	opts.ForceBrowser = s.useBrowser
	return opts
}

// loadSenderProfile resolves the sender profile from the store or from
// the configured profile file.
func (s *Server) loadSenderProfile(r *http.Request) (*types.SenderProfile, error) {
	if s.store != nil {
		profile, err := s.store.GetSenderProfile(r.Context(), store.DefaultProfileID)
		if err != nil {
			return nil, err
		}
		if profile != nil {
			return profile, nil
		}
	}

	if s.senderPath != "" {
		data, err := os.ReadFile(s.senderPath)
		if err != nil {
			return nil, &ErrValidation{Field: "my_profile", Message: "sender profile file could not be read"}
		}
		var profile types.SenderProfile
		if err := json.Unmarshal(data, &profile); err != nil {
			return nil, &ErrValidation{Field: "my_profile", Message: "sender profile file is not valid JSON"}
		}
		return &profile, nil
	}

	return nil, &ErrValidation{Field: "my_profile", Message: "no sender profile in request, store, or config"}
}
