package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/inkwell-ai/inkwell/pkg/auth"
	"github.com/inkwell-ai/inkwell/pkg/cache"
	"github.com/inkwell-ai/inkwell/pkg/config"
	"github.com/inkwell-ai/inkwell/pkg/journal"
	"github.com/inkwell-ai/inkwell/pkg/logging"
	"github.com/inkwell-ai/inkwell/pkg/model"
	"github.com/inkwell-ai/inkwell/pkg/orchestrator"
	"github.com/inkwell-ai/inkwell/pkg/storage"
)

type fakeCompleter struct {
	responses map[model.Task]string
	calls     int
}

func (f *fakeCompleter) Complete(ctx context.Context, req model.Request) (*model.Result, error) {
	f.calls++
	content, ok := f.responses[req.Task]
	if !ok {
		content = "generated text"
	}
	return &model.Result{Content: content, RequestID: int64(f.calls)}, nil
}

type testServer struct {
	server    *Server
	store     *storage.Store
	completer *fakeCompleter
	tokens    *auth.TokenManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := storage.New(filepath.Join(t.TempDir(), "inkwell.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := logging.NewWriterLogger(io.Discard)
	cfg := config.DefaultConfig()
	responseCache, err := cache.NewStore(time.Hour, logger)
	if err != nil {
		t.Fatalf("cache: %v", err)
	}

	completer := &fakeCompleter{responses: map[model.Task]string{}}
	orch := orchestrator.New(completer, responseCache, store, cfg, logger)
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	server := NewServer(ServerConfig{
		Config:       cfg,
		Store:        store,
		Orchestrator: orch,
		Tokens:       tokens,
		Logger:       logger,
	})
	return &testServer{server: server, store: store, completer: completer, tokens: tokens}
}

func (ts *testServer) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return body
}

func (ts *testServer) seedUser(t *testing.T) (int64, string) {
	t.Helper()
	user, err := ts.store.CreateUser(context.Background(), "writer", "")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := ts.tokens.GenerateToken(user.ID, "")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return user.ID, token
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.request(t, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAnonymousSaveParksDraft(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/entries", "", map[string]any{
		"title":   "A Quiet Morning",
		"content": strings.Repeat("word ", 50),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["is_anonymous"] != true {
		t.Error("expected anonymous save")
	}
	if body["auth_required"] != true {
		t.Error("expected auth_required flag")
	}
	if body["login_url"] != "/login/?save_after_login=true&next=/dashboard/" {
		t.Errorf("login_url = %v", body["login_url"])
	}
	if body["signup_url"] != "/signup/?feature=journal&next=/dashboard/" {
		t.Errorf("signup_url = %v", body["signup_url"])
	}
	draftID, _ := body["entry_id"].(string)
	if draftID == "" {
		t.Fatal("missing draft id")
	}

	// The draft must be parked under the session cookie
	var sessionID string
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookie {
			sessionID = cookie.Value
		}
	}
	if sessionID == "" {
		t.Fatal("session cookie not set")
	}
	drafts, err := ts.store.AnonymousEntries(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("drafts: %v", err)
	}
	if _, ok := drafts[draftID]; !ok {
		t.Errorf("draft %s not in session store", draftID)
	}
}

func TestSaveEntryMissingFields(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.request(t, http.MethodPost, "/api/entries", "", map[string]any{"title": "only a title"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAuthenticatedSaveCreatesEntry(t *testing.T) {
	ts := newTestServer(t)
	userID, token := ts.seedUser(t)

	content := "I spent the evening reading about my work project and felt grateful for my family."
	rec := ts.request(t, http.MethodPost, "/api/entries", token, map[string]any{
		"title":   "Evening Reading",
		"content": content,
		"mood":    "content",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["is_authenticated"] != true {
		t.Error("expected authenticated save")
	}
	wantRewards := float64(journal.Rewards(content, false))
	if body["rewards"] != wantRewards {
		t.Errorf("rewards = %v, want %v", body["rewards"], wantRewards)
	}

	entries, err := ts.store.RecentEntries(context.Background(), userID, 10)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	// Tags were auto-generated from the content
	if len(entries[0].Tags) == 0 {
		t.Error("expected auto-generated tags")
	}
}

func TestWalletSaveProvisionsUser(t *testing.T) {
	ts := newTestServer(t)
	wallet := "0xabcdef1234567890abcdef1234567890abcdef12"

	content := strings.Repeat("steady progress on the garden today ", 10)
	rec := ts.request(t, http.MethodPost, "/api/entries", "", map[string]any{
		"title":          "Garden Notes",
		"content":        content,
		"wallet_address": wallet,
		"chain_id":       10,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["is_authenticated"] != true {
		t.Error("wallet save should authenticate")
	}
	if body["wallet_connected"] != true {
		t.Error("expected wallet_connected")
	}

	user, err := ts.store.GetUserByWallet(context.Background(), wallet)
	if err != nil || user == nil {
		t.Fatalf("user not provisioned: %v", err)
	}
	if user.Username != "user_abcdef12" {
		t.Errorf("username = %q, want user_abcdef12", user.Username)
	}

	// Wallet rewards were credited
	w, err := ts.store.GetWallet(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("wallet: %v", err)
	}
	if w == nil || w.Balance != int64(journal.Rewards(content, true)) {
		t.Errorf("balance = %+v, want %d", w, journal.Rewards(content, true))
	}
	if w != nil && w.ChainID != 10 {
		t.Errorf("chain_id = %d, want the chain from the save request", w.ChainID)
	}
}

func TestGenerateEntryEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.completer.responses[model.TaskEntry] = "Today was a long walk through the park."
	ts.completer.responses[model.TaskTitle] = "Morning Walk"

	rec := ts.request(t, http.MethodPost, "/api/generate-entry", "", map[string]any{
		"note": "walked in the park",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	title, _ := body["title"].(string)
	if !strings.HasPrefix(title, "Morning Walk - ") {
		t.Errorf("title = %q", title)
	}
	if body["entry"] != "Today was a long walk through the park." {
		t.Errorf("entry = %v", body["entry"])
	}
}

func TestGenerateEntryMissingNote(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.request(t, http.MethodPost, "/api/generate-entry", "", map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestChatEndpoint(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/chat", "", map[string]any{
		"message":   "I want to talk about my day",
		"chat_mode": "daily_reflection",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["should_switch_to_form"] != false {
		t.Error("first turn must continue the conversation")
	}
	if body["ai_message"] == "" {
		t.Error("missing AI message")
	}
}

func TestStatsRequiresAuth(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.request(t, http.MethodGet, "/api/stats", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	userID, token := ts.seedUser(t)

	entry := &journal.Entry{OwnerID: userID, Content: "short note", Mood: "happy"}
	if err := ts.store.CreateEntry(context.Background(), entry); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	rec := ts.request(t, http.MethodGet, "/api/stats", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	stats, _ := body["stats"].(map[string]any)
	if stats["total_entries"] != float64(1) {
		t.Errorf("total_entries = %v", stats["total_entries"])
	}
}

func TestNonceLoginFlow(t *testing.T) {
	ts := newTestServer(t)
	wallet := "0x1111111111111111111111111111111111111111"

	rec := ts.request(t, http.MethodGet, "/api/web3/nonce?wallet_address="+wallet, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("nonce status = %d: %s", rec.Code, rec.Body.String())
	}
	nonce, _ := decodeBody(t, rec)["nonce"].(string)
	if nonce == "" {
		t.Fatal("missing nonce")
	}

	rec = ts.request(t, http.MethodPost, "/api/web3/login", "", map[string]any{
		"wallet_address": wallet,
		"signature":      "0xsigned",
		"nonce":          nonce,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rec.Code, rec.Body.String())
	}
	token, _ := decodeBody(t, rec)["token"].(string)
	if token == "" {
		t.Fatal("missing token")
	}

	// The issued token grants access to protected routes
	rec = ts.request(t, http.MethodGet, "/api/stats", token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("stats with token = %d", rec.Code)
	}

	// Logins without a chain_id link the wallet on the default chain
	user, err := ts.store.GetUserByWallet(context.Background(), wallet)
	if err != nil || user == nil {
		t.Fatalf("user not provisioned: %v", err)
	}
	w, err := ts.store.GetWallet(context.Background(), user.ID)
	if err != nil || w == nil {
		t.Fatalf("wallet: %v", err)
	}
	if w.ChainID != storage.DefaultChainID {
		t.Errorf("chain_id = %d, want %d", w.ChainID, storage.DefaultChainID)
	}

	// Replaying the nonce fails
	rec = ts.request(t, http.MethodPost, "/api/web3/login", "", map[string]any{
		"wallet_address": wallet,
		"signature":      "0xsigned",
		"nonce":          nonce,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("replayed login = %d, want 400", rec.Code)
	}
}

func TestLoginRejectsBadNonce(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.request(t, http.MethodPost, "/api/web3/login", "", map[string]any{
		"wallet_address": "0x2222222222222222222222222222222222222222",
		"signature":      "0xsigned",
		"nonce":          "never-issued",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSummarizeEndpoint(t *testing.T) {
	ts := newTestServer(t)
	userID, token := ts.seedUser(t)
	ts.completer.responses[model.TaskSummary] = "A reflective day centered on patience."

	entry := &journal.Entry{OwnerID: userID, Title: "Patience", Content: "I waited all day."}
	if err := ts.store.CreateEntry(context.Background(), entry); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	rec := ts.request(t, http.MethodPost, fmt.Sprintf("/api/entries/%d/summary", entry.ID), token, map[string]any{})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["summary"] != "A reflective day centered on patience." {
		t.Errorf("summary = %v", body["summary"])
	}
}

func TestSummarizeUnknownEntry(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.seedUser(t)

	rec := ts.request(t, http.MethodPost, "/api/entries/999/summary", token, map[string]any{})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCompileEndpointThematic(t *testing.T) {
	ts := newTestServer(t)
	userID, token := ts.seedUser(t)

	ctx := context.Background()
	base := time.Date(2025, 1, 6, 19, 0, 0, 0, time.UTC)
	var ids []int64
	for i := 0; i < 6; i++ {
		tag := "work"
		if i%2 == 1 {
			tag = "health"
		}
		entry := &journal.Entry{
			OwnerID:   userID,
			Title:     fmt.Sprintf("Entry %d", i),
			Content:   strings.Repeat("reflection on the week and what it taught me ", 20),
			Mood:      "calm",
			Tags:      []string{tag},
			CreatedAt: base.AddDate(0, 0, i*3),
		}
		if err := ts.store.CreateEntry(ctx, entry); err != nil {
			t.Fatalf("seed entry: %v", err)
		}
		ids = append(ids, entry.ID)
	}

	rec := ts.request(t, http.MethodPost, "/api/journal/compile", token, map[string]any{
		"entry_ids":          ids,
		"compilation_method": "thematic",
		"journal_type":       "growth",
		"title":              "My Growth Year",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["journal_id"] == nil {
		t.Fatal("missing journal_id")
	}
	structure, _ := body["structure"].(map[string]any)
	if structure["fallback"] == true {
		t.Error("directly requested thematic structure is not a fallback")
	}

	journalID := int64(body["journal_id"].(float64))
	saved, err := ts.store.GetCompiledJournal(ctx, userID, journalID)
	if err != nil || saved == nil {
		t.Fatalf("compiled journal not saved: %v", err)
	}
	if saved.Title != "My Growth Year" {
		t.Errorf("title = %q", saved.Title)
	}
}

func TestCompileWithEnhancements(t *testing.T) {
	ts := newTestServer(t)
	userID, token := ts.seedUser(t)
	ts.completer.responses[model.TaskCompile] = "An engaging piece of supporting text."

	ctx := context.Background()
	var ids []int64
	for i := 0; i < 4; i++ {
		entry := &journal.Entry{
			OwnerID:   userID,
			Content:   strings.Repeat("words about the journey ", 30),
			CreatedAt: time.Date(2025, 2, 1+i, 12, 0, 0, 0, time.UTC),
		}
		if err := ts.store.CreateEntry(ctx, entry); err != nil {
			t.Fatalf("seed entry: %v", err)
		}
		ids = append(ids, entry.ID)
	}

	rec := ts.request(t, http.MethodPost, "/api/journal/compile", token, map[string]any{
		"entry_ids":          ids,
		"compilation_method": "chronological",
		"ai_enhancements":    []string{"readers_guide", "marketing_copy"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	structure, _ := body["structure"].(map[string]any)
	if structure["readers_guide"] != "An engaging piece of supporting text." {
		t.Errorf("readers_guide = %v", structure["readers_guide"])
	}
	if structure["marketing_copy"] != "An engaging piece of supporting text." {
		t.Errorf("marketing_copy = %v", structure["marketing_copy"])
	}
	enhancements, _ := structure["ai_enhancements"].([]any)
	if len(enhancements) != 2 {
		t.Errorf("enhancements = %v", enhancements)
	}
}

func TestInsightsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	userID, token := ts.seedUser(t)
	ts.completer.responses[model.TaskInsights] = `{"patterns":[{"title":"Consistency","description":"Writes daily"}],"suggestions":[],"mood_analysis":{"title":"Mood Analysis","description":"Stable"}}`

	entry := &journal.Entry{OwnerID: userID, Content: "a normal day of writing"}
	if err := ts.store.CreateEntry(context.Background(), entry); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	rec := ts.request(t, http.MethodPost, "/api/insights/generate", token, map[string]any{})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	insights, _ := body["insights"].([]any)
	if len(insights) != 2 {
		t.Errorf("insights = %d, want 2", len(insights))
	}
}

func TestInsightsUnparseableReturnsEmptyList(t *testing.T) {
	ts := newTestServer(t)
	userID, token := ts.seedUser(t)
	ts.completer.responses[model.TaskInsights] = "sorry, I cannot analyze these entries"

	ctx := context.Background()
	entry := &journal.Entry{OwnerID: userID, Content: "a normal day of writing"}
	if err := ts.store.CreateEntry(ctx, entry); err != nil {
		t.Fatalf("seed entry: %v", err)
	}
	prior := []journal.Insight{{Kind: "pattern", Title: "Old", Content: "kept"}}
	if err := ts.store.ReplaceInsights(ctx, userID, prior); err != nil {
		t.Fatalf("seed insights: %v", err)
	}

	rec := ts.request(t, http.MethodPost, "/api/insights/generate", token, map[string]any{})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	insights, ok := body["insights"].([]any)
	if !ok || len(insights) != 0 {
		t.Errorf("insights = %v, want empty list", body["insights"])
	}

	// The stored batch survives untouched
	stored, err := ts.store.ListInsights(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stored) != 1 || stored[0].Title != "Old" {
		t.Errorf("stored = %+v, want prior batch intact", stored)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.seedUser(t)

	rec := ts.request(t, http.MethodGet, "/api/preferences", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	prefs, _ := decodeBody(t, rec)["preferences"].(map[string]any)
	if prefs["writing_style"] != "reflective" {
		t.Errorf("default style = %v", prefs["writing_style"])
	}

	rec = ts.request(t, http.MethodPut, "/api/preferences", token, map[string]any{
		"writing_style":       "poetic",
		"tone":                "optimistic",
		"language_complexity": "moderate",
		"metaphor_frequency":  "frequent",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("save status = %d", rec.Code)
	}

	rec = ts.request(t, http.MethodGet, "/api/preferences", token, nil)
	prefs, _ = decodeBody(t, rec)["preferences"].(map[string]any)
	if prefs["writing_style"] != "poetic" {
		t.Errorf("saved style = %v", prefs["writing_style"])
	}
}
