package middleware

import (
	"net/http"
	"strings"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/permissions"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// Authenticate resolves the bearer token into a principal when one is
// present. Anonymous requests pass through with no principal so read-only
// endpoints stay public; a token that is present but bad is rejected here.
func Authenticate(authService service.AuthService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		// load the account so role changes since issuance take effect
		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(principalKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated principal, or nil for anonymous.
func CurrentUser(c *gin.Context) *models.User {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// ActionForMethod maps the HTTP verb onto the permission action set.
func ActionForMethod(method string) permissions.Action {
	switch method {
	case http.MethodPost:
		return permissions.ActionCreate
	case http.MethodPut:
		return permissions.ActionUpdate
	case http.MethodPatch:
		return permissions.ActionPartialUpdate
	case http.MethodDelete:
		return permissions.ActionDelete
	default:
		return permissions.ActionRetrieve
	}
}

// deny answers 401 for anonymous callers and 403 for authenticated ones.
func deny(c *gin.Context, principal *models.User) {
	if principal == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	} else {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
	c.Abort()
}

// RequireAdmin guards the user-administration endpoints.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := CurrentUser(c)
		if !permissions.AdminOnly(principal) {
			deny(c, principal)
			return
		}
		c.Next()
	}
}

// RequireAuthenticated guards the self-profile endpoints.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := CurrentUser(c)
		if !permissions.IsAuthenticated(principal) {
			deny(c, principal)
			return
		}
		c.Next()
	}
}

// SuperuserOrReadOnly guards the catalog endpoints.
func SuperuserOrReadOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := CurrentUser(c)
		if !permissions.SuperuserOrReadOnly(principal, ActionForMethod(c.Request.Method)) {
			deny(c, principal)
			return
		}
		c.Next()
	}
}

// AuthenticatedOrReadOnly is the collection-level gate for reviews and
// comments. The object-level AuthorOrManager check runs in the handlers once
// the target is loaded.
func AuthenticatedOrReadOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := CurrentUser(c)
		if !permissions.AuthenticatedOrReadOnly(principal, ActionForMethod(c.Request.Method)) {
			deny(c, principal)
			return
		}
		c.Next()
	}
}
