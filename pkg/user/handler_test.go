package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evently-app/evently/pkg/model"
	"github.com/evently-app/evently/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandler_SignUp(t *testing.T) {
	userService := &mockUserService{}
	user := &model.User{ID: 123, Name: "some name", Email: "some@email.com"}
	userService.
		On("SignUp", mock.Anything, "some name", "some@email.com", "passpass").
		Return(user, nil)
	handler := NewHandler(userService, &mockTokenService{})

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newPost(t, "/users", &signUpRequest{Name: "some name", Email: "some@email.com", Password: "passpass"})

	handler.SignUp(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	var actual model.User
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &actual))
	assert.Equal(t, uint(123), actual.ID)
	assert.Equal(t, "some@email.com", actual.Email)
	userService.AssertExpectations(t)
}

func TestHandler_SignIn(t *testing.T) {
	user := &model.User{ID: 123}
	tokenService := &mockTokenService{}
	tokens := &token.Tokens{
		AccessToken:  "accessToken",
		TokenType:    "bearer",
		RefreshToken: "refreshToken",
		ExpiresIn:    312,
	}
	tokenService.
		On("GetTokens", user, "").
		Return(tokens, nil)
	handler := NewHandler(&mockUserService{}, tokenService)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Set("user", user)
	c.Request = newPost(t, "/tokens", nil)

	handler.SignIn(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	var actual token.Tokens
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &actual))
	assert.Equal(t, *tokens, actual)
	tokenService.AssertExpectations(t)
}

func TestHandler_RefreshToken(t *testing.T) {
	userService := &mockUserService{}
	user := &model.User{ID: 123}
	userService.
		On("FindById", mock.Anything, uint(123)).
		Return(user, nil)
	tokenService := &mockTokenService{}
	id := uuid.New()
	refreshTokenData := &token.RefreshTokenData{
		SignedToken: "signed-token",
		ID:          id,
		UserId:      123,
	}
	tokenService.
		On("ValidateRefreshToken", mock.Anything, "token").
		Return(refreshTokenData, nil)
	tokens := &token.Tokens{
		AccessToken:  "accessToken",
		TokenType:    "bearer",
		RefreshToken: "refreshToken",
		ExpiresIn:    312,
	}
	tokenService.
		On("GetTokens", user, id.String()).
		Return(tokens, nil)
	handler := NewHandler(userService, tokenService)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newPost(t, "/refresh", &RefreshTokenRequest{RefreshToken: "token"})

	handler.RefreshToken(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	var actual token.Tokens
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &actual))
	assert.Equal(t, *tokens, actual)
	tokenService.AssertExpectations(t)
	userService.AssertExpectations(t)
}

func TestHandler_SignOut(t *testing.T) {
	user := &model.User{ID: 123}
	tokenService := &mockTokenService{}
	tokenService.
		On("SignOut", uint(123)).
		Return(nil)
	handler := NewHandler(&mockUserService{}, tokenService)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Set("user", user)
	c.Request = newPost(t, "/users", nil)

	handler.SignOut(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusOK, recorder.Code)
	tokenService.AssertExpectations(t)
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) SignUp(ctx context.Context, name string, email string, password string) (*model.User, error) {
	called := m.Called(ctx, name, email, password)
	return called.Get(0).(*model.User), called.Error(1)
}

func (m *mockUserService) FindById(ctx context.Context, id uint) (*model.User, error) {
	called := m.Called(ctx, id)
	return called.Get(0).(*model.User), called.Error(1)
}

type mockTokenService struct{ mock.Mock }

func (m *mockTokenService) GetTokens(user *model.User, previousTokenId string) (*token.Tokens, error) {
	called := m.Called(user, previousTokenId)
	return called.Get(0).(*token.Tokens), called.Error(1)
}

func (m *mockTokenService) ValidateRefreshToken(ctx context.Context, tokenString string) (*token.RefreshTokenData, error) {
	called := m.Called(ctx, tokenString)
	return called.Get(0).(*token.RefreshTokenData), called.Error(1)
}

func (m *mockTokenService) SignOut(userId uint) error {
	called := m.Called(userId)
	return called.Error(0)
}

func newPost(t *testing.T, path string, jsonBody any) *http.Request {
	body, err := json.Marshal(jsonBody)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("Authorization", "token")

	return req
}
