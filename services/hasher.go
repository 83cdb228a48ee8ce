package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CredentialHasher turns passwords into storable hashes and checks candidates against them
type CredentialHasher interface {
	Hash(password string) (string, error)
	Verify(candidate, hash string) bool
	// NeedsRehash reports whether hash was produced by a weaker scheme
	// than this hasher and should be replaced after a successful login
	NeedsRehash(hash string) bool
}

// Hasher names accepted by NewHasher
const (
	HasherBcrypt = "bcrypt"
	HasherSHA256 = "sha256"
)

// NewHasher returns the hasher registered under name
func NewHasher(name string) (CredentialHasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", HasherBcrypt:
		return NewBcryptHasher(bcrypt.DefaultCost), nil
	case HasherSHA256:
		return SHA256Hasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", name)
	}
}

// bcryptMaxInput is the longest input bcrypt accepts
const bcryptMaxInput = 72

// BcryptHasher stores salted bcrypt hashes. It still accepts legacy SHA-256
// hex digests so a database written by the earlier service keeps working.
// Passwords longer than bcrypt's input limit are reduced to their SHA-256
// hex digest before hashing.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a bcrypt hasher with the given cost
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(candidate, hash string) bool {
	if !isBcryptHash(hash) {
		return SHA256Hasher{}.Verify(candidate, hash)
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(candidate)) == nil
}

func (h *BcryptHasher) NeedsRehash(hash string) bool {
	return !isBcryptHash(hash)
}

func bcryptInput(password string) []byte {
	if len(password) <= bcryptMaxInput {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(hex.EncodeToString(sum[:]))
}

func isBcryptHash(hash string) bool {
	return strings.HasPrefix(hash, "$2")
}

// SHA256Hasher stores unsalted hex SHA-256 digests, the format of the
// earlier service. Only use it where that format must be written.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Verify(candidate, hash string) bool {
	computed, _ := h.Hash(candidate)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(strings.ToLower(hash))) == 1
}

func (SHA256Hasher) NeedsRehash(string) bool {
	return false
}
