package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/merahburam/ameo-assets/internal/auth"
	"github.com/merahburam/ameo-assets/internal/mocks"
	"github.com/merahburam/ameo-assets/internal/models"
	"github.com/merahburam/ameo-assets/internal/repositories"
)

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	return r
}

func TestRegisterSuccess(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewAuthHandler(userRepo, auth.NewTokenIssuer("test-secret"))
	router := setupAuthRouter(handler)

	userRepo.On("CreateUser", mock.Anything, "alice", "alice@example.com", mock.Anything).
		Return(models.User{ID: 1, Username: "alice", Email: "alice@example.com"}, nil).Once()

	body := bytes.NewBufferString(`{"username":"alice","email":"alice@example.com","password":"hunter2hunter2"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp["token"])

	userRepo.AssertExpectations(t)
}

func TestRegisterDuplicate(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewAuthHandler(userRepo, auth.NewTokenIssuer("test-secret"))
	router := setupAuthRouter(handler)

	userRepo.On("CreateUser", mock.Anything, "alice", "alice@example.com", mock.Anything).
		Return(models.User{}, repositories.ErrUserExists).Once()

	body := bytes.NewBufferString(`{"username":"alice","email":"alice@example.com","password":"hunter2hunter2"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	userRepo.AssertExpectations(t)
}

func TestRegisterWeakPassword(t *testing.T) {
	handler := NewAuthHandler(new(mocks.UserRepositoryMock), auth.NewTokenIssuer("test-secret"))
	router := setupAuthRouter(handler)

	body := bytes.NewBufferString(`{"username":"alice","email":"alice@example.com","password":"short"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginSuccess(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo := new(mocks.UserRepositoryMock)
	handler := NewAuthHandler(userRepo, auth.NewTokenIssuer("test-secret"))
	router := setupAuthRouter(handler)

	userRepo.On("GetUserByUsername", mock.Anything, "alice").
		Return(models.User{ID: 1, Username: "alice", PasswordHash: string(hash)}, nil).Once()

	body := bytes.NewBufferString(`{"username":"alice","password":"hunter2hunter2"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	userRepo.AssertExpectations(t)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo := new(mocks.UserRepositoryMock)
	handler := NewAuthHandler(userRepo, auth.NewTokenIssuer("test-secret"))
	router := setupAuthRouter(handler)

	userRepo.On("GetUserByUsername", mock.Anything, "alice").
		Return(models.User{ID: 1, Username: "alice", PasswordHash: string(hash)}, nil).Once()

	body := bytes.NewBufferString(`{"username":"alice","password":"wrong-password"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	userRepo.AssertExpectations(t)
}

func TestLoginUnknownUser(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewAuthHandler(userRepo, auth.NewTokenIssuer("test-secret"))
	router := setupAuthRouter(handler)

	userRepo.On("GetUserByUsername", mock.Anything, "nobody").
		Return(models.User{}, repositories.ErrUserNotFound).Once()

	body := bytes.NewBufferString(`{"username":"nobody","password":"whatever123"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	userRepo.AssertExpectations(t)
}
