// Package auth issues and checks the operator tokens that guard every
// request changing match state.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	ErrNotAuthorized = errors.New("not authorized")
	ErrTokenExpired  = errors.New("token expired")
)

type Config struct {
	// Secret signs tokens. Authorization is off while it is empty.
	Secret     string `toml:"secret"`
	Expiration string `toml:"expiration"`
}

type Service struct {
	cfg Config
	now func() time.Time
}

func New(cfg Config) *Service {
	return &Service{cfg: cfg, now: time.Now}
}

func (s *Service) Enabled() bool {
	return s.cfg.Secret != ""
}

// Issue signs a token for subject and returns it with its expiration time.
func (s *Service) Issue(subject string) (string, time.Time, error) {
	expiresIn, err := time.ParseDuration(s.cfg.Expiration)
	if err != nil {
		return "", time.Time{}, err
	}
	now := s.now()
	expirationTime := now.Add(expiresIn)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		ExpiresAt: expirationTime.Unix(),
		IssuedAt:  now.Unix(),
		Subject:   subject,
	})
	tokenString, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expirationTime, nil
}

// Verify returns the subject of a valid token.
func (s *Service) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrNotAuthorized
	}
	token, err := jwt.ParseWithClaims(tokenString, &jwt.StandardClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err == nil && token.Valid {
		claims, ok := token.Claims.(*jwt.StandardClaims)
		if !ok || claims.Subject == "" {
			return "", ErrNotAuthorized
		}
		return claims.Subject, nil
	}
	ve := &jwt.ValidationError{}
	if errors.As(err, &ve) && ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0 {
		return "", ErrTokenExpired
	}
	return "", fmt.Errorf("%w: %v", ErrNotAuthorized, err)
}
