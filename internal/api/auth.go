package api

import (
	"net/http"                   // HTTP status codes
	"regexp"                     // Regular expressions
	"storefront/internal/domain" // Importing domain models
	"storefront/internal/store"  // Repository layer
	"storefront/internal/utils"  // Utility functions
	"strings"                    // String manipulation
	"time"                       // Token lifetimes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"golang.org/x/crypto/bcrypt"   // Password hashing
)

// Request struct for registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`    // Username must be provided
	Email    string `json:"email" binding:"required,email"` // Valid email must be provided
	Password string `json:"password" binding:"required"`    // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Username   string `json:"username" binding:"required"` // Username must be provided
	Password   string `json:"password" binding:"required"` // Password must be provided
	RememberMe bool   `json:"remember_me"`                 // Extends the session lifetime
}

// Response struct for authentication
type AuthResponse struct {
	Token string `json:"token"` // Session token
}

// isValidUsername checks if the username contains only alphabetic characters
func isValidUsername(username string) bool {
	matched, _ := regexp.MatchString(`^[A-Za-z]+$`, username) // Regex to match alphabetic characters only
	return matched                                            // Return whether it matched
}

// isValidPassword checks if the password length is between 8 and 15 characters
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 15 // Return true if length is valid
}

// RegisterHandler creates a new user account. Registering with the configured
// administrator email grants the admin flag, decided once and never revisited.
func RegisterHandler(users *store.UserStore, adminEmail string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate username and password
		if !isValidUsername(req.Username) {
			// If username is invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be alphabetic only"})
			return
		}
		// Validate password length
		if !isValidPassword(req.Password) {
			// If password is invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-15 characters"})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		email := strings.ToLower(req.Email) // Normalize email for uniqueness and the admin check
		user := domain.User{
			Username:     strings.ToLower(req.Username), // Lowercase username to ensure uniqueness
			Email:        email,                         // Normalized email
			PasswordHash: string(hash),                  // Bcrypt hash
			// The configured administrator email, if it matches, grants admin at creation
			IsAdmin: adminEmail != "" && strings.EqualFold(email, adminEmail),
		}
		// Attempt to create the user in the database
		if err := users.Create(&user); err != nil {
			// Duplicate username/email is a conflict, anything else is a server error
			c.JSON(storeStatus(err), gin.H{"error": "Username or email already exists"})
			return
		}
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// LoginHandler authenticates a user and returns a session token
func LoginHandler(users *store.UserStore, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Fetch user from database
		user, err := users.ByUsername(strings.ToLower(req.Username))
		if err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		// Remember-me extends the session lifetime
		ttl := utils.SessionTTL
		if req.RememberMe {
			ttl = utils.RememberTTL
		}
		// Generate session token
		token, err := utils.GenerateJWT(user.ID, jwtSecret, ttl)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Stamp last_login, best effort
		if err := users.RecordLogin(user.ID); err != nil {
			logrus.WithFields(logrus.Fields{"user_id": user.ID, "error": err.Error()}).Warn("Failed to record login time")
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}

// LogoutHandler denylists the presented token until its natural expiry
func LogoutHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetString("token") // Raw token stored by the JWT middleware
		expiry, _ := c.Get("tokenExpiry")
		ttl := utils.SessionTTL // Fallback if the middleware did not record an expiry
		if exp, ok := expiry.(time.Time); ok {
			ttl = time.Until(exp) // Deny only for as long as the token would live
		}
		// Put the token on the denylist
		if err := utils.DenyToken(c.Request.Context(), rdb, token, ttl); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// DeleteAccountHandler removes the caller's account and cart in one transaction
func DeleteAccountHandler(users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID") // Set by the JWT middleware
		if err := users.DeleteAccount(userID); err != nil {
			c.JSON(storeStatus(err), gin.H{"error": "Failed to delete account"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
	}
}
