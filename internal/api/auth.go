package api

import (
	"errors"   // errors.Is checks
	"net/http" // HTTP status codes

	"amine_web/internal/service" // Authentication logic

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for login; the username field carries the flexible
// identifier, which may be either an email or a username
type LoginRequest struct {
	Username string `form:"username" binding:"required"` // Email or username
	Password string `form:"password" binding:"required"` // Password must be provided
}

// Response struct for a successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"` // Signed JWT
	TokenType   string `json:"token_type"`   // Always "bearer"
}

// LoginHandler authenticates a user and returns a JWT access token.
// Unknown identifier and wrong password produce the same response so the
// caller cannot probe which part was wrong; only the inactive-account case
// is distinguishable.
func LoginHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind form request to struct
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Incorrect email/username or password"})
			return
		}
		// Validate the credentials against storage
		user, err := auth.Authenticate(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidCredentials):
				c.JSON(http.StatusBadRequest, gin.H{"detail": "Incorrect email/username or password"})
			case errors.Is(err, service.ErrInactiveUser):
				c.JSON(http.StatusBadRequest, gin.H{"detail": "Inactive user"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
			}
			return
		}
		// Issue the access token only after successful authentication
		token, err := auth.IssueToken(user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
	}
}
