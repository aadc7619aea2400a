package auth

import (
	"encoding/binary"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/99minutos/customer-desk/internal/core/domain"
	"github.com/99minutos/customer-desk/internal/core/ports"
)

var _ ports.TokenParser = (*JWTTokens)(nil)

// DefaultTokenTag prefixes every random session token.
const DefaultTokenTag = "token-"

var ErrInvalidToken = errors.New("invalid token")

// RandomTokens issues opaque tokens: the tag followed by a base-36 fragment
// of random bits. They carry no meaning and are never verified.
type RandomTokens struct {
	Tag string
}

func (g RandomTokens) Generate(*domain.User) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	tag := g.Tag
	if tag == "" {
		tag = DefaultTokenTag
	}
	return tag + strconv.FormatUint(binary.BigEndian.Uint64(id[:8]), 36), nil
}

// JWTTokens issues HS256-signed tokens carrying the user's id, email and role.
type JWTTokens struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTTokens(secret string, ttl time.Duration) *JWTTokens {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTTokens{secret: []byte(secret), ttl: ttl}
}

func (g *JWTTokens) Generate(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(g.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(g.secret)
}

// Parse validates the signature and expiry and returns the user id claim.
func (g *JWTTokens) Parse(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return g.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
