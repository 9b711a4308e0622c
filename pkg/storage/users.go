package storage

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// User is an account holder.
type User struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	WalletAddress string    `json:"wallet_address,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// DefaultChainID is the chain a wallet links to when the client does
// not say otherwise.
const DefaultChainID = 8453

// Wallet tracks an owner's reward balance.
type Wallet struct {
	OwnerID int64  `json:"owner_id"`
	Address string `json:"address"`
	Balance int64  `json:"balance"`
	ChainID int64  `json:"chain_id"`
}

// CreateUser inserts a user. The wallet address may be empty for
// password-less demo accounts.
func (s *Store) CreateUser(ctx context.Context, username, walletAddress string) (*User, error) {
	if s == nil || s.db == nil {
		return nil, ErrStoreClosed
	}

	username = strings.TrimSpace(username)
	walletAddress = strings.ToLower(strings.TrimSpace(walletAddress))

	var wallet any
	if walletAddress != "" {
		wallet = walletAddress
	}

	res, err := s.db.ExecContext(ctx, `
        INSERT INTO users (username, wallet_address) VALUES (?, ?)
    `, username, wallet)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &User{ID: id, Username: username, WalletAddress: walletAddress, CreatedAt: time.Now().UTC()}, nil
}

// GetUser loads a user by id, or nil when absent.
func (s *Store) GetUser(ctx context.Context, id int64) (*User, error) {
	return s.userByQuery(ctx, `SELECT id, username, COALESCE(wallet_address, ''), created_at FROM users WHERE id = ?`, id)
}

// GetUserByUsername loads a user by name, or nil when absent.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return s.userByQuery(ctx, `SELECT id, username, COALESCE(wallet_address, ''), created_at FROM users WHERE username = ?`, strings.TrimSpace(username))
}

// GetUserByWallet loads a user by wallet address, or nil when absent.
func (s *Store) GetUserByWallet(ctx context.Context, address string) (*User, error) {
	return s.userByQuery(ctx, `SELECT id, username, COALESCE(wallet_address, ''), created_at FROM users WHERE wallet_address = ?`,
		strings.ToLower(strings.TrimSpace(address)))
}

func (s *Store) userByQuery(ctx context.Context, query string, arg any) (*User, error) {
	if s == nil || s.db == nil {
		return nil, ErrStoreClosed
	}
	row := s.db.QueryRowContext(ctx, query, arg)
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.WalletAddress, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// GetWallet returns the owner's wallet, or nil when none is linked.
func (s *Store) GetWallet(ctx context.Context, ownerID int64) (*Wallet, error) {
	if s == nil || s.db == nil {
		return nil, ErrStoreClosed
	}
	row := s.db.QueryRowContext(ctx, `SELECT owner_id, address, balance, chain_id FROM wallets WHERE owner_id = ?`, ownerID)
	var w Wallet
	if err := row.Scan(&w.OwnerID, &w.Address, &w.Balance, &w.ChainID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

// LinkWallet attaches a wallet address to an owner. A non-positive
// chainID falls back to DefaultChainID.
func (s *Store) LinkWallet(ctx context.Context, ownerID int64, address string, chainID int64) error {
	if s == nil || s.db == nil {
		return ErrStoreClosed
	}
	address = strings.ToLower(strings.TrimSpace(address))
	if chainID <= 0 {
		chainID = DefaultChainID
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO wallets (owner_id, address, chain_id) VALUES (?, ?, ?)
        ON CONFLICT(owner_id) DO UPDATE SET address = excluded.address, chain_id = excluded.chain_id
    `, ownerID, address, chainID)
	return err
}

// CreditWallet adds reward tokens to an owner's balance.
func (s *Store) CreditWallet(ctx context.Context, ownerID int64, amount int64) error {
	if s == nil || s.db == nil {
		return ErrStoreClosed
	}
	_, err := s.db.ExecContext(ctx, `UPDATE wallets SET balance = balance + ? WHERE owner_id = ?`, amount, ownerID)
	return err
}

// StoreNonce saves a login nonce for a wallet address, replacing any
// previous one.
func (s *Store) StoreNonce(ctx context.Context, address, nonce string, expires time.Time) error {
	if s == nil || s.db == nil {
		return ErrStoreClosed
	}
	address = strings.ToLower(strings.TrimSpace(address))
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO auth_nonces (wallet_address, nonce, expires_at) VALUES (?, ?, ?)
        ON CONFLICT(wallet_address) DO UPDATE SET nonce = excluded.nonce, expires_at = excluded.expires_at, created_at = CURRENT_TIMESTAMP
    `, address, nonce, expires.UTC())
	return err
}

// ConsumeNonce fetches and deletes the nonce for a wallet address.
// Returns empty when no unexpired nonce exists; a nonce can be used
// only once.
func (s *Store) ConsumeNonce(ctx context.Context, address string, now time.Time) (string, error) {
	if s == nil || s.db == nil {
		return "", ErrStoreClosed
	}
	address = strings.ToLower(strings.TrimSpace(address))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var nonce string
	var expires time.Time
	err = tx.QueryRowContext(ctx, `SELECT nonce, expires_at FROM auth_nonces WHERE wallet_address = ?`, address).Scan(&nonce, &expires)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM auth_nonces WHERE wallet_address = ?`, address); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}

	if !expires.After(now) {
		return "", nil
	}
	return nonce, nil
}
