package auth

import "golang.org/x/crypto/bcrypt"

// NoopHasher stores no hash and accepts any password. It keeps the
// email-only login of the management front end.
type NoopHasher struct{}

func (NoopHasher) Hash(string) (string, error) { return "", nil }

func (NoopHasher) Compare(string, string) error { return nil }

// BcryptHasher hashes passwords with bcrypt and rejects mismatches.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher; cost 0 selects bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	encoded, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func (h *BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
