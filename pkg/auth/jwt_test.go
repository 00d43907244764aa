package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/choir-api/internal/domain/entity"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

const testSecret = "test-secret-key-with-enough-length-123456"

func newTestService(t *testing.T) *JWTService {
	svc, err := NewJWTService(testSecret, 168)
	require.NoError(t, err)
	return svc
}

func testMember() *entity.Member {
	return &entity.Member{
		ID:        42,
		StudentID: "CS12345678",
		Email:     "cs12345678@my.sliit.lk",
		Role:      entity.RoleMember,
	}
}

func TestNewJWTService_RejectsShortSecret(t *testing.T) {
	_, err := NewJWTService("short", 168)
	assert.Error(t, err)

	_, err = NewJWTService("", 168)
	assert.Error(t, err)
}

func TestJWTService_GenerateAndParse(t *testing.T) {
	svc := newTestService(t)

	tokenString, err := svc.GenerateToken(testMember())
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := svc.ParseToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.MemberID)
	assert.Equal(t, "CS12345678", claims.StudentID)
	assert.Equal(t, "cs12345678@my.sliit.lk", claims.Email)
	assert.Equal(t, entity.RoleMember, claims.Role)
	assert.WithinDuration(t, time.Now().Add(168*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_ParseToken_RejectsTamperedToken(t *testing.T) {
	svc := newTestService(t)

	tokenString, err := svc.GenerateToken(testMember())
	require.NoError(t, err)

	tampered := tokenString[:len(tokenString)-2] + "xx"
	_, err = svc.ParseToken(tampered)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestJWTService_ParseToken_RejectsWrongKey(t *testing.T) {
	svc := newTestService(t)

	other, err := NewJWTService("another-secret-key-with-enough-length-42", 168)
	require.NoError(t, err)

	tokenString, err := other.GenerateToken(testMember())
	require.NoError(t, err)

	_, err = svc.ParseToken(tokenString)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestJWTService_ParseToken_RejectsExpiredToken(t *testing.T) {
	svc := newTestService(t)

	claims := JWTCustomClaims{
		MemberID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.ParseToken(tokenString)
	assert.ErrorIs(t, err, apperrors.ErrExpiredToken)
}

func TestJWTService_ParseToken_RejectsNoneAlgorithm(t *testing.T) {
	svc := newTestService(t)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, JWTCustomClaims{MemberID: 42})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ParseToken(tokenString)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
