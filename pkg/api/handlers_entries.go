package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-ai/inkwell/pkg/journal"
	"github.com/inkwell-ai/inkwell/pkg/logging"
	"github.com/inkwell-ai/inkwell/pkg/orchestrator"
	"github.com/inkwell-ai/inkwell/pkg/prompts"

	"github.com/go-chi/chi/v5"
)

const (
	loginURL  = "/login/?save_after_login=true&next=/dashboard/"
	signupURL = "/signup/?feature=journal&next=/dashboard/"
)

type generateEntryRequest struct {
	Note         string `json:"note"`
	Personalized bool   `json:"personalized"`
	HasPhoto     bool   `json:"has_photo"`
}

func (s *Server) handleGenerateEntry(w http.ResponseWriter, r *http.Request) {
	var req generateEntryRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Note == "" {
		writeError(w, http.StatusBadRequest, "missing note")
		return
	}

	entryReq := orchestrator.EntryRequest{
		Note:     req.Note,
		HasPhoto: req.HasPhoto,
	}
	if claims := claimsFrom(r); claims != nil {
		entryReq.OwnerID = claims.UserID
		if req.Personalized {
			prefs, err := s.store.GetPreferences(r.Context(), claims.UserID)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "failed to load preferences")
				return
			}
			entryReq.Preferences = &prefs
		}
	}

	result := s.orch.GenerateEntry(r.Context(), entryReq)
	writeJSON(w, http.StatusOK, result)
}

type saveEntryRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Mood          string   `json:"mood"`
	Tags          []string `json:"tags"`
	WalletAddress string   `json:"wallet_address"`
	ChainID       int64    `json:"chain_id"`
	Encrypted     bool     `json:"encrypted"`
	HadPhoto      bool     `json:"had_photo"`
}

type anonymousDraft struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Mood          string   `json:"mood"`
	Tags          []string `json:"tags"`
	WalletAddress string   `json:"wallet_address,omitempty"`
	ChainID       int64    `json:"chain_id,omitempty"`
	CreatedAt     string   `json:"created_at"`
	IsEncrypted   bool     `json:"is_encrypted"`
	HadPhoto      bool     `json:"had_photo"`
}

func (s *Server) handleSaveEntry(w http.ResponseWriter, r *http.Request) {
	var req saveEntryRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Title == "" || req.Content == "" {
		writeError(w, http.StatusBadRequest, "missing title or content")
		return
	}

	claims := claimsFrom(r)

	// A wallet address on an unauthenticated save provisions the
	// account on the spot, so the entry lands in permanent storage.
	if claims == nil && req.WalletAddress != "" {
		provisioned, err := s.provisionWalletUser(r, req.WalletAddress, req.ChainID)
		if err == nil && provisioned != nil {
			claims = provisioned
		}
	}

	if claims != nil {
		s.saveAuthenticatedEntry(w, r, claims.UserID, req)
		return
	}
	s.saveAnonymousEntry(w, r, req)
}

func (s *Server) saveAuthenticatedEntry(w http.ResponseWriter, r *http.Request, ownerID int64, req saveEntryRequest) {
	tags := req.Tags
	if len(tags) == 0 {
		tags = journal.AutoTags(req.Content, req.Mood)
	}

	entry := &journal.Entry{
		OwnerID:   ownerID,
		Title:     req.Title,
		Content:   req.Content,
		Mood:      req.Mood,
		Tags:      tags,
		Encrypted: req.Encrypted,
	}
	if err := s.store.CreateEntry(r.Context(), entry); err != nil {
		s.logger.Error(logging.CategoryGateway, "entry_save_failed", err.Error(), nil)
		writeError(w, http.StatusInternalServerError, "failed to save entry")
		return
	}

	hasWallet := req.WalletAddress != ""
	rewards := journal.Rewards(req.Content, hasWallet)
	if hasWallet && rewards > 0 {
		if err := s.store.CreditWallet(r.Context(), ownerID, int64(rewards)); err != nil {
			s.logger.Warn(logging.CategoryGateway, "wallet_credit_failed", err.Error(), map[string]any{
				"owner_id": ownerID,
			})
		}
	}

	// Drafts parked before login are superseded by the real save
	if sessionID := sessionIDFrom(r); sessionID != "" {
		if err := s.store.DeleteAnonymousSession(r.Context(), sessionID); err != nil {
			s.logger.Warn(logging.CategoryGateway, "session_cleanup_failed", err.Error(), nil)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"entry_id":         entry.ID,
		"rewards":          rewards,
		"redirect_url":     "/dashboard/?entry_saved=true",
		"message":          "Entry saved successfully!",
		"is_authenticated": true,
		"wallet_connected": hasWallet,
	})
}

func (s *Server) saveAnonymousEntry(w http.ResponseWriter, r *http.Request, req saveEntryRequest) {
	draftID := uuid.NewString()
	draft := anonymousDraft{
		ID:            draftID,
		Title:         req.Title,
		Content:       req.Content,
		Mood:          req.Mood,
		Tags:          req.Tags,
		WalletAddress: req.WalletAddress,
		ChainID:       req.ChainID,
		CreatedAt:     s.now().UTC().Format(time.RFC3339),
		IsEncrypted:   req.Encrypted,
		HadPhoto:      req.HadPhoto,
	}

	payload, err := json.Marshal(draft)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save entry")
		return
	}
	if err := s.store.SaveAnonymousEntry(r.Context(), sessionIDFrom(r), draftID, payload); err != nil {
		s.logger.Error(logging.CategoryGateway, "anonymous_save_failed", err.Error(), nil)
		writeError(w, http.StatusInternalServerError, "failed to save entry")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":               true,
		"entry_id":              draftID,
		"rewards":               journal.Rewards(req.Content, req.WalletAddress != ""),
		"is_anonymous":          true,
		"message":               "Entry saved temporarily. Connect your wallet to save permanently and earn real rewards!",
		"redirect_url":          nil,
		"auth_required":         true,
		"login_url":             loginURL,
		"signup_url":            signupURL,
		"wallet_connect_prompt": true,
	})
}

func (s *Server) handleRecentEntries(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	entries, err := s.store.RecentEntries(r.Context(), claims.UserID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load entries")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "entries": entries})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	stats, err := s.store.UserStats(r.Context(), claims.UserID, s.now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "stats": stats})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	entryID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	entry, err := s.store.GetEntry(r.Context(), claims.UserID, entryID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load entry")
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "entry not found")
		return
	}

	summary, err := s.orch.SummarizeEntry(r.Context(), entry)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to summarize entry")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "summary": summary})
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	prefs, err := s.store.GetPreferences(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load preferences")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "preferences": prefs})
}

func (s *Server) handleSavePreferences(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	var prefs prompts.Preferences
	if err := readJSON(r, &prefs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := s.store.SavePreferences(r.Context(), claims.UserID, prefs); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save preferences")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "preferences": prefs})
}
