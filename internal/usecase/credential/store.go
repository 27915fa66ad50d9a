package credential

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"sync"
	"unicode"

	"golang.org/x/crypto/pbkdf2"

	"github.com/coralbank/coralbank-backend/internal/domain"
)

const (
	saltLength = 16
	keyLength  = 32
	minLength  = 12
)

// ErrCryptoUnavailable indicates the key-derivation primitive is broken in
// this runtime. It is a startup-time fatal condition, never a per-request
// failure.
var ErrCryptoUnavailable = errors.New("key derivation unavailable")

// Identity is the opaque token handed to a session after a successful login
type Identity struct {
	Username string
}

// record stores one customer's derived credentials. The iteration count is
// kept per record, not store-wide, so it can change across records as the
// default is tuned over time.
type record struct {
	iterations int
	salt       []byte
	key        []byte
}

// Store holds salted iterative password hashes and verifies login attempts.
// Registration takes the write lock; verification takes read locks only, as
// logins never touch ledger state.
type Store struct {
	mu         sync.RWMutex
	iterations int
	records    map[string]record
}

// NewStore creates a credential store deriving keys with the given
// iteration count for new registrations.
func NewStore(iterations int) *Store {
	return &Store{
		iterations: iterations,
		records:    make(map[string]record),
	}
}

// SelfCheck derives a probe key so a broken derivation backend is caught at
// bootstrap rather than on a customer's first login.
func SelfCheck() error {
	key := pbkdf2.Key([]byte("probe"), []byte("0123456789abcdef"), 1, keyLength, sha256.New)
	if len(key) != keyLength {
		return ErrCryptoUnavailable
	}
	return nil
}

// Register stores credentials for a new username. It fails with
// ErrDuplicateUsername if the username is taken and ErrWeakPassword if the
// password misses the complexity requirements.
func (s *Store) Register(username, password string) error {
	if !passwordMeetsRequirements(password) {
		return domain.ErrWeakPassword
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[username]; exists {
		return domain.ErrDuplicateUsername
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return ErrCryptoUnavailable
	}

	s.records[username] = record{
		iterations: s.iterations,
		salt:       salt,
		key:        pbkdf2.Key([]byte(password), salt, s.iterations, keyLength, sha256.New),
	}
	return nil
}

// Verify checks a login attempt. It fails closed for unknown usernames and
// compares derived keys in constant time.
func (s *Store) Verify(username, password string) (Identity, bool) {
	s.mu.RLock()
	rec, exists := s.records[username]
	s.mu.RUnlock()

	if !exists {
		return Identity{}, false
	}

	key := pbkdf2.Key([]byte(password), rec.salt, rec.iterations, len(rec.key), sha256.New)
	if subtle.ConstantTimeCompare(key, rec.key) != 1 {
		return Identity{}, false
	}
	return Identity{Username: username}, true
}

// passwordMeetsRequirements enforces the registration policy: at least 12
// characters with an upper-case letter, a lower-case letter, a digit, and a
// character that is neither alphanumeric nor whitespace.
func passwordMeetsRequirements(password string) bool {
	if len([]rune(password)) < minLength {
		return false
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsSpace(r):
			special = true
		}
	}
	return upper && lower && digit && special
}
