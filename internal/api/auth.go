package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"regexp"   // Regular expressions
	"strings"  // String manipulation
	"time"     // Token TTL

	"dhanrekha/internal/domain" // Importing domain models
	"dhanrekha/internal/mail"   // Password reset mail
	"dhanrekha/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/google/uuid"       // Reset token ids
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"golang.org/x/crypto/bcrypt"   // Password hashing
	"gorm.io/gorm"                 // GORM ORM library
)

// resetTokenTTL bounds how long a password reset token stays valid.
const resetTokenTTL = 15 * time.Minute

// Request and Response structs
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`     // Display name must be provided
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// isValidEmail checks the email has a plausible mailbox@domain shape
func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// isValidPassword checks if the password length is between 8 and 64 characters
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 64
}

// RegisterHandler creates a new user account
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate email and password
		if !isValidEmail(req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
			return
		}
		// Validate password length
		if !isValidPassword(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-64 characters"})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		// Create user with lowercase email to ensure uniqueness
		user := domain.User{Name: strings.TrimSpace(req.Name), Email: strings.ToLower(req.Email), Password: string(hash)}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			// If creation fails (e.g., duplicate email), return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, user.Email, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}

// MeHandler returns the authenticated user's profile
func MeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var user domain.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// DeleteAccountHandler deletes the authenticated user and every
// transaction the account owns, atomically. The cascade is the only
// bulk delete in the system.
func DeleteAccountHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			// Remove the user's ledger first, then the account
			if err := tx.Where("user_id = ?", userID).Delete(&domain.Expense{}).Error; err != nil {
				return err // Return error to rollback
			}
			if err := tx.Where("user_id = ?", userID).Delete(&domain.Income{}).Error; err != nil {
				return err // Return error to rollback
			}
			if err := tx.Delete(&domain.User{}, userID).Error; err != nil {
				return err // Return error to rollback
			}
			return nil // Commit transaction
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Account deletion failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
		}).Info("Account deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
	}
}

// ForgotPasswordRequest carries the address asking for a reset
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"` // Email must be provided
}

// ResetPasswordRequest carries the token and the replacement password
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`    // Reset token must be provided
	Password string `json:"password" binding:"required"` // New password must be provided
}

// ForgotPasswordHandler issues a short-lived reset token, stores it in
// Redis, and mails it to the account address. The response does not
// reveal whether the address exists.
func ForgotPasswordHandler(db *gorm.DB, rdb *redis.Client, mailer mail.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ForgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User
		if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err == nil {
			token := uuid.NewString() // One-time reset token
			ctx := context.Background()
			if err := utils.StoreResetToken(ctx, rdb, token, user.ID, resetTokenTTL); err != nil {
				logrus.WithFields(logrus.Fields{
					"user_id": user.ID,
					"error":   err.Error(),
				}).Error("Failed to store reset token")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue reset token"})
				return
			}
			if err := mailer.SendPasswordReset(user.Email, token); err != nil {
				logrus.WithFields(logrus.Fields{
					"user_id": user.ID,
					"error":   err.Error(),
				}).Error("Failed to send reset mail")
			}
		}
		// Same answer whether or not the account exists
		c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset mail has been sent"})
	}
}

// ResetPasswordHandler consumes a reset token and replaces the password
func ResetPasswordHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if !isValidPassword(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-64 characters"})
			return
		}
		ctx := context.Background()
		userID, found, err := utils.LookupResetToken(ctx, rdb, req.Token)
		if err != nil || !found {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired reset token"})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		if err := db.Model(&domain.User{}).Where("id = ?", userID).Update("password", string(hash)).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
			return
		}
		// Token is single-use
		_ = utils.DropResetToken(ctx, rdb, req.Token)
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
		}).Info("Password reset")
		c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
	}
}
