package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/taskzen/taskzen/internal/constants"
	"github.com/taskzen/taskzen/internal/models"
	"github.com/taskzen/taskzen/internal/repository"
	"github.com/taskzen/taskzen/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrNameRequired         = errors.New("name is required")
	ErrEmailRequired        = errors.New("email is required")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
	ErrFailedToIssueToken   = errors.New("failed to issue token")
)

// AuthService handles registration, login and bearer token lifecycle.
type AuthService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewAuthService creates a new AuthService. Issued tokens live for tokenTTL.
func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// RegisterInput represents the information needed to create an account.
type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	Availability string
	Skills       []string
}

// Register creates a regular user. Self-registration never grants admin.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	return s.createUser(input, models.RoleUser)
}

// EnsureAdmin creates an admin account for email unless a user with that
// email already exists.
func (s *AuthService) EnsureAdmin(name, email, password string) (*models.User, error) {
	existing, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check admin account: %w", err)
	}

	return s.createUser(RegisterInput{Name: name, Email: email, Password: password}, models.RoleAdmin)
}

func (s *AuthService) createUser(input RegisterInput, role models.Role) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	availability := strings.TrimSpace(input.Availability)
	if availability == "" {
		availability = constants.DefaultAvailability
	}
	skills := make([]string, 0, len(input.Skills))
	for _, skill := range input.Skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			skills = append(skills, skill)
		}
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		Availability: availability,
		Skills:       skills,
	}
	if err := s.userRepo.Create(user); err != nil {
		log.Printf("Failed to create user %s: %v", email, err)
		return nil, ErrFailedToCreateUser
	}

	return user, nil
}

// Login verifies credentials and issues a new bearer token.
func (s *AuthService) Login(email, password string) (*models.AccessToken, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	value, err := utils.GenerateToken()
	if err != nil {
		return nil, ErrFailedToIssueToken
	}

	token := &models.AccessToken{
		Token:     value,
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.tokenTTL),
	}
	if err := s.tokenRepo.Create(token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	token.User = *user

	return token, nil
}

// Authenticate resolves a bearer token to its user.
func (s *AuthService) Authenticate(value string) (*models.User, error) {
	if value == "" {
		return nil, ErrInvalidToken
	}

	token, err := s.tokenRepo.Find(value)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to find token: %w", err)
	}

	if token.Expired(s.now()) || token.User.ID == "" {
		return nil, ErrInvalidToken
	}

	return &token.User, nil
}

// Logout revokes a bearer token.
func (s *AuthService) Logout(value string) error {
	if err := s.tokenRepo.Delete(value); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// PurgeExpiredTokens deletes every token past its expiry.
func (s *AuthService) PurgeExpiredTokens() (int64, error) {
	return s.tokenRepo.DeleteExpired(s.now())
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// ListUsers returns the roster.
func (s *AuthService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
