package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/mr-tron/base58"
)

const (
	// TokenPrefix is the prefix for all generated tokens
	TokenPrefix = "eza_"
)

// TokenStore manages API token operations
type TokenStore struct {
	repo *Repository
}

// NewTokenStore creates a new token store
func NewTokenStore(repo *Repository) *TokenStore {
	return &TokenStore{repo: repo}
}

// GenerateToken creates a new random token with the eza_ prefix
// Format: eza_ + Base58(SHA256(random_bytes))
func (s *TokenStore) GenerateToken() (rawToken string, tokenHash string, err error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", err
	}

	hash := sha256.Sum256(randomBytes)
	encoded := base58.Encode(hash[:])

	rawToken = TokenPrefix + encoded
	tokenHash = hashToken(rawToken)

	return rawToken, tokenHash, nil
}

// hashToken creates a SHA256 hash of a token for storage
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// CreateToken creates a token for a user
func (s *TokenStore) CreateToken(userID int64, label string, expiresAt *time.Time) (*TokenWithRaw, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, fmt.Errorf("token label is required")
	}

	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	rawToken, tokenHash, err := s.GenerateToken()
	if err != nil {
		return nil, err
	}

	result, err := s.repo.db.Exec(`
		INSERT INTO tokens (user_id, token_hash, label, expires_at)
		VALUES (?, ?, ?, ?)
	`, userID, tokenHash, label, expiresAt)
	if err != nil {
		return nil, err
	}
	tokenID, _ := result.LastInsertId()

	return &TokenWithRaw{
		Token: Token{
			ID:        tokenID,
			UserID:    userID,
			Label:     label,
			ExpiresAt: expiresAt,
			CreatedAt: time.Now(),
		},
		RawToken: rawToken,
	}, nil
}

// ValidateToken validates a raw token and returns the token with user info
func (s *TokenStore) ValidateToken(rawToken string) (*ValidatedToken, error) {
	if !strings.HasPrefix(rawToken, TokenPrefix) {
		return nil, fmt.Errorf("invalid token format")
	}

	tokenHash := hashToken(rawToken)

	var t Token
	var expiresAt, revokedAt sql.NullTime
	err := s.repo.db.QueryRow(`
		SELECT id, user_id, token_hash, label, expires_at, revoked_at, created_at
		FROM tokens WHERE token_hash = ?
	`, tokenHash).Scan(&t.ID, &t.UserID, &t.TokenHash, &t.Label, &expiresAt, &revokedAt, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("invalid token")
	}
	if err != nil {
		return nil, err
	}

	t.ExpiresAt = ScanNullableTime(expiresAt)
	t.RevokedAt = ScanNullableTime(revokedAt)

	if t.RevokedAt != nil {
		return nil, fmt.Errorf("token has been revoked")
	}
	if t.ExpiresAt != nil && t.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("token has expired")
	}

	user, err := s.repo.GetUserByID(t.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}
	if user.Status != StatusActive {
		return nil, fmt.Errorf("user account is %s", user.Status)
	}

	return &ValidatedToken{Token: &t, User: user}, nil
}

// ListUserTokens returns all tokens for a user (without raw values)
func (s *TokenStore) ListUserTokens(userID int64) ([]Token, error) {
	rows, err := s.repo.db.Query(`
		SELECT id, user_id, label, expires_at, revoked_at, created_at
		FROM tokens WHERE user_id = ? ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []Token
	for rows.Next() {
		var t Token
		var expiresAt, revokedAt sql.NullTime
		if err := rows.Scan(&t.ID, &t.UserID, &t.Label, &expiresAt, &revokedAt, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.ExpiresAt = ScanNullableTime(expiresAt)
		t.RevokedAt = ScanNullableTime(revokedAt)
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

// RevokeToken revokes a token (user can only revoke their own tokens)
func (s *TokenStore) RevokeToken(tokenID int64, userID int64) error {
	result, err := s.repo.db.Exec(`
		UPDATE tokens SET revoked_at = ?
		WHERE id = ? AND user_id = ? AND revoked_at IS NULL
	`, time.Now(), tokenID, userID)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("token not found or already revoked")
	}
	return nil
}
