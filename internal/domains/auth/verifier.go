package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"blogcms-backend/internal/config"
)

// Verifier checks an admin credential pair. The backing is pluggable
// so the HTTP layer never knows where credentials live.
type Verifier interface {
	Verify(username, password string) bool
}

// NewVerifier picks the backing from config: bcrypt when a password
// hash is configured, otherwise the env-sourced static pair.
func NewVerifier(cfg config.AuthConfig) Verifier {
	if cfg.PasswordHash != "" {
		return &BcryptVerifier{
			Username: cfg.Username,
			Hash:     cfg.PasswordHash,
		}
	}
	return &StaticVerifier{
		Username: cfg.Username,
		Password: cfg.Password,
	}
}

// StaticVerifier compares against a plaintext pair from configuration.
type StaticVerifier struct {
	Username string
	Password string
}

func (v *StaticVerifier) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(v.Password)) == 1
	return userOK && passOK
}

// BcryptVerifier compares against a bcrypt hash from configuration.
type BcryptVerifier struct {
	Username string
	Hash     string
}

func (v *BcryptVerifier) Verify(username, password string) bool {
	if subtle.ConstantTimeCompare([]byte(username), []byte(v.Username)) != 1 {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(v.Hash), []byte(password)) == nil
}
