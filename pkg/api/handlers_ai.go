package api

import (
	"net/http"
	"time"

	"github.com/inkwell-ai/inkwell/pkg/chat"
	"github.com/inkwell-ai/inkwell/pkg/compiler"
	inkerr "github.com/inkwell-ai/inkwell/pkg/errors"
	"github.com/inkwell-ai/inkwell/pkg/journal"
	"github.com/inkwell-ai/inkwell/pkg/logging"
	"github.com/inkwell-ai/inkwell/pkg/storage"
)

type chatRequest struct {
	Message string         `json:"message"`
	History []chat.Message `json:"conversation_history"`
	Mode    string         `json:"chat_mode"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "missing message")
		return
	}

	result := s.orch.ChatTurn(req.History, req.Message, req.Mode)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	insights, err := s.orch.GenerateInsights(r.Context(), claims.UserID)
	if err != nil {
		s.logger.Error(logging.CategoryGateway, "insights_failed", err.Error(), nil)
		writeError(w, http.StatusInternalServerError, "failed to generate insights")
		return
	}

	// A nil batch means the model response was unusable or the owner
	// has no entries; nothing was replaced and the response is empty.
	if insights == nil {
		insights = []journal.Insight{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "insights": insights})
}

type biographyRequest struct {
	Chapter            string `json:"chapter"`
	ChapterDescription string `json:"chapter_description"`
	PeriodStart        string `json:"period_start"`
	PeriodEnd          string `json:"period_end"`
}

func (s *Server) handleBiography(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	var req biographyRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	// A date range selects the period narrative; otherwise the full
	// life story (or a single chapter of it) is regenerated.
	if req.PeriodStart != "" && req.PeriodEnd != "" {
		start, err := time.Parse("2006-01-02", req.PeriodStart)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid period_start")
			return
		}
		end, err := time.Parse("2006-01-02", req.PeriodEnd)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid period_end")
			return
		}

		bio, err := s.orch.GeneratePeriodBiography(r.Context(), claims.UserID, start, end)
		if err != nil {
			if inkerr.IsCode(err, inkerr.ErrCodeInvalidInput) {
				writeError(w, http.StatusBadRequest, "no entries in the selected period")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to generate biography")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "biography": bio})
		return
	}

	content, err := s.orch.GenerateLifeStory(r.Context(), claims.UserID, req.Chapter, req.ChapterDescription)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate biography")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "content": content})
}

type compileRequest struct {
	Title       string   `json:"title"`
	EntryIDs    []int64  `json:"entry_ids"`
	Method      string   `json:"compilation_method"`
	JournalType string   `json:"journal_type"`
	Enhance     []string `json:"ai_enhancements"`
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	var req compileRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if len(req.EntryIDs) == 0 {
		writeError(w, http.StatusBadRequest, "missing entry_ids")
		return
	}
	if req.Method == "" {
		req.Method = "ai"
	}
	if req.JournalType == "" {
		req.JournalType = "growth"
	}

	entries, err := s.store.EntriesByIDs(r.Context(), claims.UserID, req.EntryIDs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load entries")
		return
	}
	if len(entries) == 0 {
		writeError(w, http.StatusBadRequest, "no matching entries")
		return
	}

	result := s.orch.CompileJournal(r.Context(), entries, req.Method, req.JournalType)
	if len(req.Enhance) > 0 {
		s.orch.ApplyEnhancements(r.Context(), &result.Structure, req.Enhance)
		// Enhancements feed the price, so finalize again
		compiler.Finalize(&result.Structure, entries, result.Analysis.Quality)
	}

	title := req.Title
	if title == "" {
		title = result.Structure.Title
	}
	compiled := &storage.CompiledJournal{
		OwnerID:        claims.UserID,
		Title:          title,
		Method:         req.Method,
		JournalType:    req.JournalType,
		Structure:      result.Structure,
		SuggestedPrice: result.Structure.SuggestedPrice,
	}
	if err := s.store.SaveCompiledJournal(r.Context(), compiled); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save compiled journal")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"journal_id":      compiled.ID,
		"analysis":        result.Analysis,
		"recommendations": compiler.Recommend(result.Analysis),
		"structure":       result.Structure,
		"suggested_price": result.Structure.SuggestedPrice,
	})
}
