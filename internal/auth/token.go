package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMissingToken = errors.New("missing bearer token")

type TokenConfig struct {
	Secret     string
	Issuer     string
	Audience   string
	Expiration time.Duration
}

type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 tokens.
type TokenService struct {
	cfg TokenConfig
	now func() time.Time
}

func (s *TokenService) Generate(u User) (string, error) {
	now := s.now()
	claims := Claims{
		Name: u.Name,
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Name,
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Expiration)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token for user %q: %w", u.Name, err)
	}
	return signed, nil
}

func (s *TokenService) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}
	if s.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(s.cfg.Audience))
	}

	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return claims, nil
}

// FromRequest verifies the bearer token carried by r.
func (s *TokenService) FromRequest(r *http.Request) (*Claims, error) {
	header := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, ErrMissingToken
	}
	return s.Parse(strings.TrimSpace(raw))
}

// ClientID returns the verified user name of r, or "anonymous".
func (s *TokenService) ClientID(r *http.Request) string {
	claims, err := s.FromRequest(r)
	if err != nil {
		return "anonymous"
	}
	return claims.Name
}

func NewTokenService(cfg TokenConfig) *TokenService {
	if cfg.Expiration <= 0 {
		cfg.Expiration = time.Hour
	}
	return &TokenService{cfg: cfg, now: time.Now}
}
