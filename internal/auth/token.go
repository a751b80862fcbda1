package auth

import (
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, expiry time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), expiry: expiry, now: time.Now}
}

// Issue signs an HS256 token carrying the user's id, email and role.
func (s *TokenService) Issue(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(s.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// KeyFunc resolves the verification key. Only HS256, the algorithm Issue
// signs with, is accepted.
func (s *TokenService) KeyFunc(token *jwt.Token) (interface{}, error) {
	if token.Method != jwt.SigningMethodHS256 {
		return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
	}
	return s.secret, nil
}

// Verify returns the identity carried by raw, or nil for any invalid token.
// It never fails: a bad token is the same as no token.
func (s *TokenService) Verify(raw string) *Identity {
	if raw == "" {
		return nil
	}
	token, err := jwt.Parse(raw, s.KeyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil
	}
	return IdentityFromToken(token)
}

// IdentityFromToken extracts the identity from an already verified token.
// Tokens missing sub, email or role yield nil.
func IdentityFromToken(token *jwt.Token) *Identity {
	if token == nil || !token.Valid {
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || email == "" || role == "" {
		return nil
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return nil
	}

	switch models.Role(role) {
	case models.RoleUser, models.RoleAdmin:
	default:
		return nil
	}

	return &Identity{ID: id, Email: email, Role: models.Role(role)}
}
