package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hoteldesk/infras/jwt"
	"hoteldesk/internal/domains/auth/model/dto"
	"hoteldesk/shared/constant"
	"hoteldesk/shared/timezone"
)

func TestRegisterRequest_ToUserModel(t *testing.T) {
	req := dto.RegisterRequest{
		Email:    "frontdesk@example.com",
		Password: "plaintext",
		FullName: stringPtr("Front Desk"),
	}

	user := req.ToUserModel("guest", "hashed-password")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, req.Email, user.Email)
	assert.Equal(t, "hashed-password", user.Password)
	assert.Equal(t, constant.RoleReceptionist, user.Role)
	assert.Equal(t, req.FullName, user.FullName)
	assert.True(t, user.Active)
	assert.Equal(t, "guest", user.CreatedBy)

	req.Role = constant.RoleManager
	manager := req.ToUserModel("guest", "hashed-password")

	assert.Equal(t, constant.RoleManager, manager.Role)
}

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestUpdateLastLoginRequest(t *testing.T) {
	now := timezone.Now()

	req := dto.UpdateLastLoginRequest{
		LastLogin: now,
	}

	assert.Equal(t, now, req.LastLogin)
}

func TestUpdatePasswordRequest(t *testing.T) {
	hashedPassword := "hashed-new-password"

	req := dto.UpdatePasswordRequest{
		Password: hashedPassword,
	}

	assert.Equal(t, hashedPassword, req.Password)
}

// Helper function to create string pointer
func stringPtr(s string) *string {
	return &s
}
