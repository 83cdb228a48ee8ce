package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/blogem/lanauthgate/logging"
	"github.com/blogem/lanauthgate/models"
	"github.com/blogem/lanauthgate/repositories"
	"github.com/blogem/lanauthgate/repositories/mocks"
)

const testDefaultPassword = "admin123"

// CredentialServiceTestSuite tests admin password handling
type CredentialServiceTestSuite struct {
	suite.Suite
	ctx            context.Context
	service        CredentialService
	mockConfigRepo *mocks.MockConfigRepository
	stored         string
}

// SetupTest wires the service to an in-memory fake of the config table
func (suite *CredentialServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.stored = ""
	suite.mockConfigRepo = mocks.NewMockConfigRepository(suite.T())

	suite.mockConfigRepo.EXPECT().Get(mock.Anything, AdminPasswordKey).
		RunAndReturn(func(ctx context.Context, key string) (string, error) {
			if suite.stored == "" {
				return "", repositories.ErrNotFound
			}
			return suite.stored, nil
		}).Maybe()
	suite.mockConfigRepo.EXPECT().GetOrInit(mock.Anything, AdminPasswordKey, mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, key, value, description string) (string, error) {
			if suite.stored == "" {
				suite.stored = value
			}
			return suite.stored, nil
		}).Maybe()
	suite.mockConfigRepo.EXPECT().Set(mock.Anything, AdminPasswordKey, mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, key, value, description string) error {
			suite.stored = value
			return nil
		}).Maybe()

	suite.service = NewCredentialService(suite.mockConfigRepo, NewBcryptHasher(4), testDefaultPassword, logging.Nop())
}

// TestGetHash_InitializesDefault tests that the first lookup stores the default password hash
func (suite *CredentialServiceTestSuite) TestGetHash_InitializesDefault() {
	hash, err := suite.service.GetHash(suite.ctx)

	require.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), hash)
	assert.Equal(suite.T(), suite.stored, hash)
	assert.True(suite.T(), suite.service.Verify(testDefaultPassword, hash))
}

// TestAuthenticate tests accepting the right password and rejecting a wrong one
func (suite *CredentialServiceTestSuite) TestAuthenticate() {
	ok, err := suite.service.Authenticate(suite.ctx, testDefaultPassword)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), ok)

	ok, err = suite.service.Authenticate(suite.ctx, "wrong")
	require.NoError(suite.T(), err)
	assert.False(suite.T(), ok)
}

// TestAuthenticate_UpgradesLegacyHash tests that a SHA-256 hash is replaced by bcrypt after login
func (suite *CredentialServiceTestSuite) TestAuthenticate_UpgradesLegacyHash() {
	legacy, _ := SHA256Hasher{}.Hash("legacy-pass")
	suite.stored = legacy

	ok, err := suite.service.Authenticate(suite.ctx, "legacy-pass")

	require.NoError(suite.T(), err)
	assert.True(suite.T(), ok)
	assert.NotEqual(suite.T(), legacy, suite.stored)
	assert.True(suite.T(), isBcryptHash(suite.stored))
}

// TestChangePassword_FullCycle tests the change password flow and the hint that follows it
func (suite *CredentialServiceTestSuite) TestChangePassword_FullCycle() {
	hint, err := suite.service.PasswordHint(suite.ctx)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), hint.IsDefault)
	assert.Equal(suite.T(), "Initial password: admin123", hint.Hint)

	err = suite.service.ChangePassword(suite.ctx, &models.PasswordChangeForm{
		CurrentPassword: testDefaultPassword,
		NewPassword:     "s3cret",
		ConfirmPassword: "s3cret",
	})
	require.NoError(suite.T(), err)

	ok, err := suite.service.Authenticate(suite.ctx, testDefaultPassword)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), ok)

	ok, err = suite.service.Authenticate(suite.ctx, "s3cret")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), ok)

	hint, err = suite.service.PasswordHint(suite.ctx)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), hint.IsDefault)
	assert.Equal(suite.T(), "Please enter the admin password", hint.Hint)
}

// TestChangePassword_Validation tests the form rules
func (suite *CredentialServiceTestSuite) TestChangePassword_Validation() {
	tests := []struct {
		name string
		form models.PasswordChangeForm
	}{
		{"missing fields", models.PasswordChangeForm{CurrentPassword: testDefaultPassword}},
		{"mismatch", models.PasswordChangeForm{CurrentPassword: testDefaultPassword, NewPassword: "abcd", ConfirmPassword: "abce"}},
		{"too short", models.PasswordChangeForm{CurrentPassword: testDefaultPassword, NewPassword: "abc", ConfirmPassword: "abc"}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := suite.service.ChangePassword(suite.ctx, &tt.form)
			assert.True(suite.T(), IsKind(err, KindValidation), "got %v", err)
		})
	}
}

// TestChangePassword_LongPassword tests that passwords past bcrypt's input limit are accepted
func (suite *CredentialServiceTestSuite) TestChangePassword_LongPassword() {
	long := strings.Repeat("p", 80)

	err := suite.service.ChangePassword(suite.ctx, &models.PasswordChangeForm{
		CurrentPassword: testDefaultPassword,
		NewPassword:     long,
		ConfirmPassword: long,
	})
	require.NoError(suite.T(), err)

	ok, err := suite.service.Authenticate(suite.ctx, long)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), ok)

	ok, err = suite.service.Authenticate(suite.ctx, long[:72])
	require.NoError(suite.T(), err)
	assert.False(suite.T(), ok)
}

// TestChangePassword_WrongCurrent tests that the current password must match
func (suite *CredentialServiceTestSuite) TestChangePassword_WrongCurrent() {
	err := suite.service.ChangePassword(suite.ctx, &models.PasswordChangeForm{
		CurrentPassword: "nope",
		NewPassword:     "abcd",
		ConfirmPassword: "abcd",
	})

	assert.True(suite.T(), IsKind(err, KindUnauthenticated))
}

func TestCredentialServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CredentialServiceTestSuite))
}

func TestCredentialService_StorageFailure(t *testing.T) {
	configRepo := mocks.NewMockConfigRepository(t)
	configRepo.EXPECT().Get(mock.Anything, AdminPasswordKey).Return("", errors.New("database is locked"))

	service := NewCredentialService(configRepo, SHA256Hasher{}, testDefaultPassword, logging.Nop())
	_, err := service.Authenticate(context.Background(), testDefaultPassword)

	assert.True(t, IsKind(err, KindInternal))
}
