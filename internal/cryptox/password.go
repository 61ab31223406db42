// Package cryptox turns account passwords into stored credentials and checks
// them back.
//
// Three schemes are available. argon2id is the default. bcrypt is there for
// databases shared with other tools. plain keeps the password as-is and only
// exists for databases written by the mobile app, which stores it verbatim.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/ariawaludin/smarttourism/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	SchemeArgon2id = "argon2id"
	SchemeBcrypt   = "bcrypt"
	SchemePlain    = "plain"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// bcryptMaxLen is the longest password bcrypt accepts, in bytes.
const bcryptMaxLen = 72

var (
	ErrUnknownScheme   = errors.New("unknown password scheme")
	ErrPasswordTooLong = fmt.Errorf("password must be at most %d bytes", bcryptMaxLen)
)

// PasswordHasher encodes passwords for storage and verifies them later.
type PasswordHasher interface {
	Scheme() string
	Hash(password string) (string, error)
	// Verify reports whether password matches the stored credential.
	Verify(encoded, password string) bool
}

// IsKnownScheme reports whether NewPasswordHasher accepts scheme.
func IsKnownScheme(scheme string) bool {
	switch scheme {
	case SchemeArgon2id, SchemeBcrypt, SchemePlain:
		return true
	}
	return false
}

// NewPasswordHasher returns the hasher for scheme.
func NewPasswordHasher(scheme string) (PasswordHasher, error) {
	switch scheme {
	case SchemeArgon2id:
		return argon2idHasher{}, nil
	case SchemeBcrypt:
		return bcryptHasher{cost: bcrypt.DefaultCost}, nil
	case SchemePlain:
		return plainHasher{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
}

// CheckPassword reports whether h can hash password at all.
func CheckPassword(h PasswordHasher, password string) error {
	if h.Scheme() == SchemeBcrypt && len(password) > bcryptMaxLen {
		return ErrPasswordTooLong
	}
	return nil
}

// VerifyPassword checks password against a credential produced by any of the
// schemes. The scheme is recognised from the credential prefix, so rows
// written before a scheme change still verify.
func VerifyPassword(encoded, password string) bool {
	switch {
	case strings.HasPrefix(encoded, SchemeArgon2id+"$"):
		return argon2idHasher{}.verify(encoded, password)
	case strings.HasPrefix(encoded, "$2a$"), strings.HasPrefix(encoded, "$2b$"), strings.HasPrefix(encoded, "$2y$"):
		return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
	default:
		return subtle.ConstantTimeCompare([]byte(encoded), []byte(password)) == 1
	}
}

type argon2idHasher struct{}

func (argon2idHasher) Scheme() string { return SchemeArgon2id }

// Hash returns "argon2id$<salt>$<key>" with both parts in raw base64.
func (argon2idHasher) Hash(password string) (string, error) {
	salt := common.GenerateRandByteArray(argonSaltLen)
	key := deriveKey([]byte(password), salt)
	enc := base64.RawStdEncoding
	return SchemeArgon2id + "$" + enc.EncodeToString(salt) + "$" + enc.EncodeToString(key), nil
}

func (h argon2idHasher) Verify(encoded, password string) bool {
	return VerifyPassword(encoded, password)
}

func (argon2idHasher) verify(encoded, password string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 {
		return false
	}
	enc := base64.RawStdEncoding
	salt, err := enc.DecodeString(parts[1])
	if err != nil {
		return false
	}
	want, err := enc.DecodeString(parts[2])
	if err != nil {
		return false
	}
	got := deriveKey([]byte(password), salt)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func deriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

type bcryptHasher struct {
	cost int
}

func (bcryptHasher) Scheme() string { return SchemeBcrypt }

func (h bcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

func (bcryptHasher) Verify(encoded, password string) bool {
	return VerifyPassword(encoded, password)
}

type plainHasher struct{}

func (plainHasher) Scheme() string { return SchemePlain }

func (plainHasher) Hash(password string) (string, error) { return password, nil }

// Verify compares bytes only. A plain password may itself look like a hash.
func (plainHasher) Verify(encoded, password string) bool {
	return subtle.ConstantTimeCompare([]byte(encoded), []byte(password)) == 1
}
