package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/yourusername/choir-api/internal/domain/entity"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

// JWTCustomClaims carries the member identity inside the token.
type JWTCustomClaims struct {
	MemberID  uint   `json:"member_id"`
	StudentID string `json:"student_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and validates stateless HMAC-signed session tokens.
// There is no revocation list; a token stays valid until it expires.
type JWTService struct {
	secretKey     []byte
	expirationHrs int
}

// NewJWTService creates a new JWT service.
func NewJWTService(secretKey string, expirationHrs int) (*JWTService, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("JWT secret key is required")
	}
	if len(secretKey) < 32 {
		return nil, fmt.Errorf("JWT secret key must be at least 32 bytes, got %d", len(secretKey))
	}
	if expirationHrs <= 0 {
		expirationHrs = 168 // 7 days
	}
	return &JWTService{
		secretKey:     []byte(secretKey),
		expirationHrs: expirationHrs,
	}, nil
}

// GenerateToken issues a signed token for the member.
func (s *JWTService) GenerateToken(member *entity.Member) (string, error) {
	now := time.Now()
	claims := JWTCustomClaims{
		MemberID:  member.ID,
		StudentID: member.StudentID,
		Email:     member.Email,
		Role:      member.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", member.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.expirationHrs) * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ParseToken validates the token signature and expiry and returns the claims.
func (s *JWTService) ParseToken(tokenString string) (*JWTCustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrExpiredToken
		}
		return nil, apperrors.ErrUnauthorized
	}

	claims, ok := token.Claims.(*JWTCustomClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrUnauthorized
	}
	return claims, nil
}
