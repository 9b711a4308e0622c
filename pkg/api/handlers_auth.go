package api

import (
	"net/http"

	"github.com/inkwell-ai/inkwell/pkg/auth"
	"github.com/inkwell-ai/inkwell/pkg/logging"
)

func (s *Server) handleNonce(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("wallet_address")
	if address == "" && r.Method == http.MethodPost {
		var body struct {
			WalletAddress string `json:"wallet_address"`
		}
		if err := readJSON(r, &body); err == nil {
			address = body.WalletAddress
		}
	}

	normalized, err := auth.NormalizeAddress(address)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid wallet address")
		return
	}

	nonce, err := auth.GenerateNonce()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate nonce")
		return
	}

	expires := s.now().Add(auth.NonceTTL)
	if err := s.store.StoreNonce(r.Context(), normalized, nonce, expires); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store nonce")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"nonce":      nonce,
		"message":    auth.LoginMessage(nonce),
		"expires_at": expires.UTC(),
	})
}

type loginRequest struct {
	WalletAddress string `json:"wallet_address"`
	Signature     string `json:"signature"`
	Nonce         string `json:"nonce"`
	ChainID       int64  `json:"chain_id"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	normalized, err := auth.NormalizeAddress(req.WalletAddress)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid wallet address")
		return
	}
	if req.Signature == "" {
		writeError(w, http.StatusBadRequest, "missing signature")
		return
	}

	stored, err := s.store.ConsumeNonce(r.Context(), normalized, s.now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if stored == "" || stored != req.Nonce {
		writeError(w, http.StatusBadRequest, "invalid or expired nonce")
		return
	}

	user, err := s.store.GetUserByWallet(r.Context(), normalized)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if user == nil {
		user, err = s.store.CreateUser(r.Context(), walletUsername(normalized), normalized)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "login failed")
			return
		}
		if err := s.store.LinkWallet(r.Context(), user.ID, normalized, req.ChainID); err != nil {
			writeError(w, http.StatusInternalServerError, "login failed")
			return
		}
		s.logger.Info(logging.CategoryGateway, "user_provisioned", "created user for wallet", map[string]any{
			"user_id": user.ID,
		})
	}

	token, err := s.tokens.GenerateToken(user.ID, normalized)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"user": map[string]any{
			"id":             user.ID,
			"username":       user.Username,
			"wallet_address": normalized,
		},
	})
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	if sessionID := sessionIDFrom(r); sessionID != "" {
		if err := s.store.DeleteAnonymousSession(r.Context(), sessionID); err != nil {
			s.logger.Warn(logging.CategoryGateway, "session_cleanup_failed", err.Error(), nil)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:   sessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// provisionWalletUser looks up or creates the account behind a wallet
// address supplied on an unauthenticated save. Failures leave the
// request anonymous rather than blocking the save.
func (s *Server) provisionWalletUser(r *http.Request, address string, chainID int64) (*auth.Claims, error) {
	normalized, err := auth.NormalizeAddress(address)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByWallet(r.Context(), normalized)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = s.store.CreateUser(r.Context(), walletUsername(normalized), normalized)
		if err != nil {
			return nil, err
		}
		if err := s.store.LinkWallet(r.Context(), user.ID, normalized, chainID); err != nil {
			return nil, err
		}
		s.logger.Info(logging.CategoryGateway, "user_provisioned", "created user for wallet on save", map[string]any{
			"user_id": user.ID,
		})
	}
	return &auth.Claims{UserID: user.ID, WalletAddress: normalized}, nil
}

// walletUsername derives a default username from the address tail.
func walletUsername(address string) string {
	return "user_" + address[len(address)-8:]
}
