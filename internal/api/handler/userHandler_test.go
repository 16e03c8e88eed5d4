package handler

import (
	"net/http"
	"testing"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserService mocks the UserService interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(page, pageSize int, search string) ([]models.User, int64, error) {
	args := m.Called(page, pageSize, search)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserService) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Create(req dto.CreateUserRequest) (*models.User, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Update(username string, req dto.UpdateUserRequest) (*models.User, error) {
	args := m.Called(username, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Delete(username string) error {
	args := m.Called(username)
	return args.Error(0)
}

func (m *MockUserService) UpdateMe(userID string, req dto.UpdateMeRequest) (*models.User, error) {
	args := m.Called(userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func admin() *models.User {
	return &models.User{ID: "admin-1", Username: "root", Role: models.RoleAdmin}
}

func setupUserRouter(svc service.UserService, principal *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if principal != nil {
		router.Use(func(c *gin.Context) {
			c.Set("principal", principal)
			c.Next()
		})
	}
	h := NewUserHandler(svc)
	h.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestListUsers_AdminOnly(t *testing.T) {
	mockSvc := new(MockUserService)

	t.Run("AdminAllowed", func(t *testing.T) {
		router := setupUserRouter(mockSvc, admin())
		mockSvc.On("List", 1, 20, "").Return([]models.User{*plainUser()}, int64(1), nil)

		w := jsonRequest(router, "GET", "/api/v1/users", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("PlainUserForbidden", func(t *testing.T) {
		router := setupUserRouter(mockSvc, plainUser())

		w := jsonRequest(router, "GET", "/api/v1/users", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("ModeratorForbidden", func(t *testing.T) {
		// moderators manage content, not accounts
		router := setupUserRouter(mockSvc, moderator())

		w := jsonRequest(router, "GET", "/api/v1/users", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("AnonymousUnauthorized", func(t *testing.T) {
		router := setupUserRouter(mockSvc, nil)

		w := jsonRequest(router, "GET", "/api/v1/users", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestStaffFlagGrantsAdminAccess(t *testing.T) {
	mockSvc := new(MockUserService)
	staff := &models.User{ID: "staff-1", Username: "ops", Role: models.RoleUser, IsStaff: true}
	router := setupUserRouter(mockSvc, staff)

	mockSvc.On("List", 1, 20, "").Return([]models.User{}, int64(0), nil)

	w := jsonRequest(router, "GET", "/api/v1/users", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetMe_ReturnsCaller(t *testing.T) {
	mockSvc := new(MockUserService)
	router := setupUserRouter(mockSvc, plainUser())

	w := jsonRequest(router, "GET", "/api/v1/users/me", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	// no admin gate and no service lookup for the alias
	mockSvc.AssertNotCalled(t, "GetByUsername", mock.Anything)
}

func TestGetUserByUsername_AdminOnly(t *testing.T) {
	mockSvc := new(MockUserService)
	router := setupUserRouter(mockSvc, plainUser())

	w := jsonRequest(router, "GET", "/api/v1/users/bob", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockSvc.AssertNotCalled(t, "GetByUsername", mock.Anything)
}

func TestUpdateMe_DropsRoleField(t *testing.T) {
	mockSvc := new(MockUserService)
	caller := plainUser()
	router := setupUserRouter(mockSvc, caller)

	bio := "avid reader"
	mockSvc.On("UpdateMe", caller.ID, dto.UpdateMeRequest{Bio: &bio}).Return(caller, nil)

	// the role key is not part of the self-edit payload and must be ignored
	w := jsonRequest(router, "PATCH", "/api/v1/users/me", gin.H{
		"bio":  "avid reader",
		"role": "admin",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestAdminUpdate_MayChangeRole(t *testing.T) {
	mockSvc := new(MockUserService)
	router := setupUserRouter(mockSvc, admin())

	role := "moderator"
	promoted := &models.User{ID: "user-1", Username: "bob", Role: models.RoleModerator}
	mockSvc.On("Update", "bob", dto.UpdateUserRequest{Role: &role}).Return(promoted, nil)

	w := jsonRequest(router, "PATCH", "/api/v1/users/bob", gin.H{"role": "moderator"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"moderator"`)
}

func TestCreateUser_Conflict(t *testing.T) {
	mockSvc := new(MockUserService)
	router := setupUserRouter(mockSvc, admin())

	mockSvc.On("Create", mock.AnythingOfType("dto.CreateUserRequest")).Return(nil, service.ErrNameInUse)

	w := jsonRequest(router, "POST", "/api/v1/users", gin.H{
		"username": "bob",
		"email":    "bob@example.com",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteUser_NotFound(t *testing.T) {
	mockSvc := new(MockUserService)
	router := setupUserRouter(mockSvc, admin())

	mockSvc.On("Delete", "ghost").Return(service.ErrUserNotFound)

	w := jsonRequest(router, "DELETE", "/api/v1/users/ghost", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
