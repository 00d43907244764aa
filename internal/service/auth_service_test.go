package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/choir-api/internal/domain/entity"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
	"github.com/yourusername/choir-api/pkg/auth"
)

func newAuthService(t *testing.T, memberRepo *MockMemberRepository, emailSvc *MockEmailService) *AuthService {
	verificationSvc := newVerificationService(t, memberRepo, emailSvc)
	jwtService, err := auth.NewJWTService("test-secret-key-with-enough-length-123456", 168)
	require.NoError(t, err)

	svc, err := NewAuthService(memberRepo, verificationSvc, jwtService, nil)
	require.NoError(t, err)
	return svc
}

func hashedPassword(t *testing.T, plain string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		FirstName:       "Amara",
		LastName:        "Perera",
		StudentID:       "cs12345678",
		Email:           "CS12345678@my.sliit.lk",
		Password:        "longenoughpassword",
		ConfirmPassword: "longenoughpassword",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	memberRepo := new(MockMemberRepository)
	emailSvc := new(MockEmailService)
	svc := newAuthService(t, memberRepo, emailSvc)

	memberRepo.On("GetByStudentID", "CS12345678").Return(nil, apperrors.ErrNotFound)
	memberRepo.On("GetByEmail", "cs12345678@my.sliit.lk").Return(nil, apperrors.ErrNotFound)
	memberRepo.On("Create", mock.AnythingOfType("*entity.Member")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*entity.Member).ID = 7
		}).
		Return(nil)
	memberRepo.On("SetVerificationChallenge", uint(7), mock.Anything, mock.Anything, mock.Anything).Return(nil)
	emailSvc.On("SendVerificationCode", mock.Anything, "cs12345678@my.sliit.lk", mock.Anything, mock.Anything).Return(nil)

	member, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	// Student ID is normalized, email lowercased, account starts unverified.
	assert.Equal(t, "CS12345678", member.StudentID)
	assert.Equal(t, "cs12345678@my.sliit.lk", member.Email)
	assert.Equal(t, entity.StatusInactive, member.Status)
	assert.False(t, member.EmailVerified)
	assert.Equal(t, entity.RoleMember, member.Role)
	memberRepo.AssertExpectations(t)
}

func TestAuthService_Register_InvalidStudentID(t *testing.T) {
	svc := newAuthService(t, new(MockMemberRepository), new(MockEmailService))

	for _, id := range []string{"", "C1234567", "CS123", "CSE12345678", "1212345678"} {
		input := validRegisterInput()
		input.StudentID = id
		_, err := svc.Register(context.Background(), input)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "studentID %q", id)
	}
}

func TestAuthService_Register_EmailMustMatchStudentID(t *testing.T) {
	svc := newAuthService(t, new(MockMemberRepository), new(MockEmailService))

	input := validRegisterInput()
	input.Email = "someone.else@my.sliit.lk"
	_, err := svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	input.Email = "cs12345678@gmail.com"
	_, err = svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	svc := newAuthService(t, new(MockMemberRepository), new(MockEmailService))

	input := validRegisterInput()
	input.Password = "short"
	input.ConfirmPassword = "short"
	_, err := svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAuthService_Register_PasswordMismatch(t *testing.T) {
	memberRepo := new(MockMemberRepository)
	svc := newAuthService(t, memberRepo, new(MockEmailService))

	input := validRegisterInput()
	input.ConfirmPassword = "differentpassword"
	_, err := svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "passwords do not match")
	memberRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_Register_DuplicateStudentID(t *testing.T) {
	memberRepo := new(MockMemberRepository)
	svc := newAuthService(t, memberRepo, new(MockEmailService))

	memberRepo.On("GetByStudentID", "CS12345678").Return(&entity.Member{ID: 1}, nil)

	_, err := svc.Register(context.Background(), validRegisterInput())
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	memberRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_Register_EmailSendFailureSurfaces(t *testing.T) {
	memberRepo := new(MockMemberRepository)
	emailSvc := new(MockEmailService)
	svc := newAuthService(t, memberRepo, emailSvc)

	memberRepo.On("GetByStudentID", "CS12345678").Return(nil, apperrors.ErrNotFound)
	memberRepo.On("GetByEmail", "cs12345678@my.sliit.lk").Return(nil, apperrors.ErrNotFound)
	memberRepo.On("Create", mock.AnythingOfType("*entity.Member")).Return(nil)
	memberRepo.On("SetVerificationChallenge", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	emailSvc.On("SendVerificationCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)

	// The account is created either way, but the failed send must not be
	// reported as success.
	_, err := svc.Register(context.Background(), validRegisterInput())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrValidation)
	memberRepo.AssertCalled(t, "Create", mock.Anything)
}

func TestAuthService_Login_Success(t *testing.T) {
	memberRepo := new(MockMemberRepository)
	svc := newAuthService(t, memberRepo, new(MockEmailService))

	member := &entity.Member{
		ID:            7,
		StudentID:     "CS12345678",
		Email:         "cs12345678@my.sliit.lk",
		Password:      hashedPassword(t, "longenoughpassword"),
		Role:          entity.RoleMember,
		Status:        entity.StatusActive,
		EmailVerified: true,
	}
	memberRepo.On("GetByStudentID", "CS12345678").Return(member, nil)
	memberRepo.On("UpdateLastLogin", uint(7)).Return(nil)

	token, got, err := svc.Login(context.Background(), "  cs12345678 ", "longenoughpassword")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, uint(7), got.ID)
	memberRepo.AssertExpectations(t)
}

func TestAuthService_Login_UnknownStudentIDAndWrongPasswordLookAlike(t *testing.T) {
	memberRepo := new(MockMemberRepository)
	svc := newAuthService(t, memberRepo, new(MockEmailService))

	memberRepo.On("GetByStudentID", "CS00000000").Return(nil, apperrors.ErrNotFound)
	_, _, errUnknown := svc.Login(context.Background(), "CS00000000", "whatever123")

	member := &entity.Member{
		ID:            7,
		StudentID:     "CS12345678",
		Password:      hashedPassword(t, "rightpassword"),
		EmailVerified: true,
		Status:        entity.StatusActive,
	}
	memberRepo.On("GetByStudentID", "CS12345678").Return(member, nil)
	_, _, errWrong := svc.Login(context.Background(), "CS12345678", "wrongpassword")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestAuthService_Login_UnverifiedEmail(t *testing.T) {
	memberRepo := new(MockMemberRepository)
	svc := newAuthService(t, memberRepo, new(MockEmailService))

	member := &entity.Member{
		ID:        7,
		StudentID: "CS12345678",
		Password:  hashedPassword(t, "longenoughpassword"),
		Status:    entity.StatusInactive,
	}
	memberRepo.On("GetByStudentID", "CS12345678").Return(member, nil)

	_, _, err := svc.Login(context.Background(), "CS12345678", "longenoughpassword")
	assert.ErrorIs(t, err, ErrEmailNotVerified)
}

func TestAuthService_Login_SuspendedAccount(t *testing.T) {
	memberRepo := new(MockMemberRepository)
	svc := newAuthService(t, memberRepo, new(MockEmailService))

	member := &entity.Member{
		ID:            7,
		StudentID:     "CS12345678",
		Password:      hashedPassword(t, "longenoughpassword"),
		EmailVerified: true,
		Status:        entity.StatusSuspended,
	}
	memberRepo.On("GetByStudentID", "CS12345678").Return(member, nil)

	_, _, err := svc.Login(context.Background(), "CS12345678", "longenoughpassword")
	assert.ErrorIs(t, err, ErrAccountSuspended)
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	memberRepo := new(MockMemberRepository)
	svc := newAuthService(t, memberRepo, new(MockEmailService))

	// Verified but deactivated by an admin.
	member := &entity.Member{
		ID:            7,
		StudentID:     "CS12345678",
		Password:      hashedPassword(t, "longenoughpassword"),
		EmailVerified: true,
		Status:        entity.StatusInactive,
	}
	memberRepo.On("GetByStudentID", "CS12345678").Return(member, nil)

	_, _, err := svc.Login(context.Background(), "CS12345678", "longenoughpassword")
	assert.ErrorIs(t, err, ErrAccountNotActive)
	memberRepo.AssertNotCalled(t, "UpdateLastLogin", mock.Anything)
}

func TestAuthService_VerifyEmail_OpensSession(t *testing.T) {
	memberRepo := new(MockMemberRepository)
	svc := newAuthService(t, memberRepo, new(MockEmailService))

	member := memberWithChallenge("123456", time.Now().Add(10*time.Minute))
	member.StudentID = "CS12345678"
	memberRepo.On("GetByStudentID", "CS12345678").Return(member, nil)
	memberRepo.On("ClearVerificationChallenge", member.ID).Return(nil)
	memberRepo.On("UpdateLastLogin", member.ID).Return(nil)

	token, got, err := svc.VerifyEmail(context.Background(), "cs12345678", "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, got.EmailVerified)
	assert.Equal(t, entity.StatusActive, got.Status)
	memberRepo.AssertExpectations(t)
}

func TestAuthService_VerifyEmail_AlreadyVerifiedFails(t *testing.T) {
	memberRepo := new(MockMemberRepository)
	svc := newAuthService(t, memberRepo, new(MockEmailService))

	member := &entity.Member{ID: 7, StudentID: "CS12345678", EmailVerified: true}
	memberRepo.On("GetByStudentID", "CS12345678").Return(member, nil)

	_, _, err := svc.VerifyEmail(context.Background(), "CS12345678", "123456")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "already verified")
	memberRepo.AssertNotCalled(t, "ClearVerificationChallenge", mock.Anything)
}

func TestAuthService_VerifyEmail_NoPendingChallenge(t *testing.T) {
	memberRepo := new(MockMemberRepository)
	svc := newAuthService(t, memberRepo, new(MockEmailService))

	member := &entity.Member{ID: 7, StudentID: "CS12345678"}
	memberRepo.On("GetByStudentID", "CS12345678").Return(member, nil)

	_, _, err := svc.VerifyEmail(context.Background(), "CS12345678", "123456")
	assert.ErrorIs(t, err, ErrNoPendingVerification)
}

func TestAuthService_ResendCode_AlreadyVerified(t *testing.T) {
	memberRepo := new(MockMemberRepository)
	svc := newAuthService(t, memberRepo, new(MockEmailService))

	member := &entity.Member{ID: 7, StudentID: "CS12345678", EmailVerified: true}
	memberRepo.On("GetByStudentID", "CS12345678").Return(member, nil)

	err := svc.ResendCode(context.Background(), "CS12345678")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestAuthService_ForgotPassword_UnknownAccountReportsSuccess(t *testing.T) {
	memberRepo := new(MockMemberRepository)
	svc := newAuthService(t, memberRepo, new(MockEmailService))

	memberRepo.On("GetByStudentID", "CS00000000").Return(nil, apperrors.ErrNotFound)

	err := svc.ForgotPassword(context.Background(), "CS00000000")
	assert.NoError(t, err)
}

func TestAuthService_ResetPassword_Success(t *testing.T) {
	memberRepo := new(MockMemberRepository)
	svc := newAuthService(t, memberRepo, new(MockEmailService))

	member := memberWithChallenge("123456", time.Now().Add(10*time.Minute))
	member.StudentID = "CS12345678"
	memberRepo.On("GetByStudentID", "CS12345678").Return(member, nil)
	memberRepo.On("UpdatePassword", member.ID, "mynewlongpassword").Return(nil)
	memberRepo.On("ClearVerificationChallenge", member.ID).Return(nil)

	err := svc.ResetPassword(context.Background(), "CS12345678", "123456", "mynewlongpassword")
	require.NoError(t, err)
	memberRepo.AssertExpectations(t)
}

func TestAuthService_ResetPassword_WrongCode(t *testing.T) {
	memberRepo := new(MockMemberRepository)
	svc := newAuthService(t, memberRepo, new(MockEmailService))

	member := memberWithChallenge("123456", time.Now().Add(10*time.Minute))
	member.StudentID = "CS12345678"
	memberRepo.On("GetByStudentID", "CS12345678").Return(member, nil)

	err := svc.ResetPassword(context.Background(), "CS12345678", "000000", "mynewlongpassword")
	assert.ErrorIs(t, err, ErrInvalidVerificationCode)
	memberRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
}

func TestAuthService_ProvisionExternal_DisabledWithoutVerifier(t *testing.T) {
	svc := newAuthService(t, new(MockMemberRepository), new(MockEmailService))

	_, _, err := svc.ProvisionExternal(context.Background(), "some-token")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
