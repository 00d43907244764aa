package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// BeforeSave does not touch the tx, but the hook signature requires one.
var mockTx *gorm.DB = nil

func TestMember_BeforeSave_HashesPassword(t *testing.T) {
	plainPassword := "mySecretPassword123"
	member := &Member{
		StudentID: "CS12345678",
		Email:     "cs12345678@my.sliit.lk",
		Password:  plainPassword,
	}

	err := member.BeforeSave(mockTx)

	require.NoError(t, err)
	assert.NotEqual(t, plainPassword, member.Password, "password must be replaced by its hash")
	assert.True(t, len(member.Password) > 50, "bcrypt hash should be longer than 50 chars")

	err = bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(plainPassword))
	assert.NoError(t, err, "hash must match the original password")
}

func TestMember_BeforeSave_SkipsAlreadyHashedPassword(t *testing.T) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("alreadyHashed"), bcrypt.DefaultCost)
	require.NoError(t, err)

	member := &Member{
		StudentID: "CS12345678",
		Password:  string(hashedPassword),
	}
	originalHash := member.Password

	err = member.BeforeSave(mockTx)

	require.NoError(t, err)
	assert.Equal(t, originalHash, member.Password, "already-hashed password must not be re-hashed")
}

func TestMember_CheckPassword(t *testing.T) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("correctPassword123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	member := &Member{Password: string(hashedPassword)}

	assert.True(t, member.CheckPassword("correctPassword123"))
	assert.False(t, member.CheckPassword("wrongPassword456"))
	assert.False(t, member.CheckPassword(""))
}

func TestNormalizeStudentID(t *testing.T) {
	assert.Equal(t, "CS12345678", NormalizeStudentID("  cs12345678 "))
	assert.Equal(t, "IT00000001", NormalizeStudentID("it00000001"))
}

func TestIsValidStudentID(t *testing.T) {
	valid := []string{"CS12345678", "IT00000001", "BM99999999"}
	for _, id := range valid {
		assert.True(t, IsValidStudentID(id), "expected %q to be valid", id)
	}

	invalid := []string{
		"",
		"C12345678",    // one letter
		"CSE1234567",   // three letters
		"CS1234567",    // seven digits
		"CS123456789",  // nine digits
		"cs12345678",   // not normalized
		"CS1234567A",   // letter in digit block
		"12CS345678",   // digits first
	}
	for _, id := range invalid {
		assert.False(t, IsValidStudentID(id), "expected %q to be invalid", id)
	}
}

func TestDerivedEmail(t *testing.T) {
	assert.Equal(t, "cs12345678@my.sliit.lk", DerivedEmail("CS12345678"))
}

func TestMember_HasPendingVerification(t *testing.T) {
	member := &Member{}
	assert.False(t, member.HasPendingVerification())

	hash := "deadbeef"
	member.VerificationCodeHash = &hash
	assert.False(t, member.HasPendingVerification(), "hash without expiry is not a pending challenge")

	expires := member.CreatedAt
	member.VerificationExpiresAt = &expires
	assert.True(t, member.HasPendingVerification())
}

func TestMember_TableName(t *testing.T) {
	assert.Equal(t, "members", Member{}.TableName())
}
