package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/config"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/database"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/models"
	"github.com/shivamgupta951/YemmyChats-sub000/pkg/errors"
	"github.com/shivamgupta951/YemmyChats-sub000/pkg/logger"
	"github.com/shivamgupta951/YemmyChats-sub000/pkg/utils"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// --- Helper Functions ---

func validatePasswordStrength(password string) error {
	var (
		hasMinLen = false
		hasUpper  = false
		hasLower  = false
		hasNumber = false
	)
	if len(password) >= 8 {
		hasMinLen = true
	}
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}
	if !hasMinLen || !hasUpper || !hasLower || !hasNumber {
		return fmt.Errorf("password must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, and one number")
	}
	return nil
}

// --- Local Auth ---

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, errors.BadRequest(err.Error()))
		return
	}

	if err := validatePasswordStrength(input.Password); err != nil {
		fail(c, errors.BadRequest(err.Error()))
		return
	}

	if !utils.ValidateUsername(input.Username) {
		fail(c, errors.BadRequest("Username must be 3-30 characters and contain only letters, numbers, underscores, or hyphens"))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		fail(c, errors.Internal("Failed to hash password"))
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    strings.ToLower(input.Email),
		Username: input.Username,
		Password: string(hashedPassword),
	}

	if result := database.DB.Create(&user); result.Error != nil {
		// Differentiate between email and username conflict
		var existing models.User
		if err := database.DB.Where("email = ?", user.Email).First(&existing).Error; err == nil {
			fail(c, errors.Conflict("An account with this email already exists. Please sign in instead."))
			return
		}
		if err := database.DB.Where("username = ?", input.Username).First(&existing).Error; err == nil {
			fail(c, errors.Conflict("This username is already taken. Please choose another one."))
			return
		}

		logger.Warn().Err(result.Error).Str("email", user.Email).Msg("Registration failed: unique violation")
		fail(c, errors.Conflict("User with this email or username already exists"))
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		fail(c, errors.Internal("Failed to generate token"))
		return
	}

	logger.Info().Str("user_id", user.ID).Msg("User registered successfully")

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, errors.BadRequest(err.Error()))
		return
	}

	var user models.User
	if result := database.DB.Where("email = ?", strings.ToLower(input.Email)).First(&user); result.Error != nil {
		logger.Warn().Str("email", input.Email).Msg("Login failed: user not found")
		fail(c, errors.Unauthorized("Invalid credentials"))
		return
	}

	if user.Password == "" {
		fail(c, errors.Unauthorized("This account uses Google sign-in"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		logger.Warn().Str("user_id", user.ID).Msg("Login failed: wrong password")
		fail(c, errors.Unauthorized("Invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		fail(c, errors.Internal("Failed to generate token"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout revokes the current token by blacklisting its jti until expiry.
func Logout(c *gin.Context) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		fail(c, errors.Unauthorized("Unauthorized"))
		return
	}
	claims := claimsVal.(*utils.Claims)

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl > 0 {
		if err := database.BlacklistToken(claims.GetJTI(), ttl); err != nil {
			logger.Warn().Err(err).Msg("Failed to blacklist token on logout")
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func CheckUsername(c *gin.Context) {
	username := c.Query("username")
	if !utils.ValidateUsername(username) {
		c.JSON(http.StatusOK, gin.H{"available": false, "reason": "invalid"})
		return
	}

	var count int64
	database.DB.Model(&models.User{}).Where("username = ?", username).Count(&count)
	c.JSON(http.StatusOK, gin.H{"available": count == 0})
}

// --- Google OAuth ---

var googleOAuthConfig *oauth2.Config

func InitOAuthConfig() {
	cfg := config.AppConfig
	googleOAuthConfig = &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleCallbackURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

func GoogleLogin(c *gin.Context) {
	state := utils.GenerateID()
	// Short-lived state nonce to protect the callback
	database.CacheSet("oauth_state:"+state, true, 10*time.Minute)
	c.Redirect(http.StatusTemporaryRedirect, googleOAuthConfig.AuthCodeURL(state))
}

func GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	var ok bool
	if err := database.CacheGet("oauth_state:"+state, &ok); err != nil || !ok {
		fail(c, errors.BadRequest("Invalid OAuth state"))
		return
	}
	database.CacheInvalidate("oauth_state:" + state)

	token, err := googleOAuthConfig.Exchange(context.Background(), c.Query("code"))
	if err != nil {
		logger.Warn().Err(err).Msg("Google OAuth exchange failed")
		fail(c, errors.Unauthorized("OAuth exchange failed"))
		return
	}

	resp, err := googleOAuthConfig.Client(context.Background(), token).
		Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		fail(c, errors.Internal("Failed to fetch Google profile"))
		return
	}
	defer resp.Body.Close()

	var profile struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil || profile.Email == "" {
		fail(c, errors.Internal("Failed to parse Google profile"))
		return
	}

	email := strings.ToLower(profile.Email)
	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		// First login: provision an account with a usable username
		username := strings.SplitN(email, "@", 2)[0]
		username = utils.TruncateString(username, 24)
		var count int64
		database.DB.Model(&models.User{}).Where("username = ?", username).Count(&count)
		if count > 0 {
			username = username + "-" + utils.GenerateID()[:6]
		}

		user = models.User{
			Name:     profile.Name,
			Email:    email,
			Username: username,
			Avatar:   profile.Picture,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			logger.Error().Err(err).Msg("Failed to provision OAuth user")
			fail(c, errors.Internal("Failed to create account"))
			return
		}
	}

	jwtToken, err := utils.GenerateToken(user.ID)
	if err != nil {
		fail(c, errors.Internal("Failed to generate token"))
		return
	}

	c.Redirect(http.StatusTemporaryRedirect,
		fmt.Sprintf("%s/auth/callback?token=%s", config.AppConfig.FrontendURL, jwtToken))
}
