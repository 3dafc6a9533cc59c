package authenticating

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealer-crm-api/infrastructure/repository"
	"github.com/vfg2006/dealer-crm-api/internal/config"
	"github.com/vfg2006/dealer-crm-api/internal/domain"
	"github.com/vfg2006/dealer-crm-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type Authenticator interface {
	LoginUser(ctx context.Context, email, password string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	GetUserProfile(ctx context.Context, userID int) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int, currentPassword, newPassword, confirmation string) error
	GenerateStrongPassword(ctx context.Context, requestUserID, targetUserID int) (string, error)
	EnsureAdmin(ctx context.Context, email, password string) error

	CreateClient(ctx context.Context, req *domain.CreateClientRequest) (*domain.User, error)
	ListClients(ctx context.Context) ([]*domain.User, error)
	GetClient(ctx context.Context, clientID int) (*domain.User, error)
	UpdateClient(ctx context.Context, req *domain.UpdateClientRequest) (*domain.User, error)
	ResolveBaseID(ctx context.Context, claims *domain.Claims, clientID int) (string, error)
}

type Service struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	now      func() time.Time
}

func NewService(userRepo repository.UserRepository, cfg *config.Config) Authenticator {
	return &Service{
		userRepo: userRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}

func (s *Service) LoginUser(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "email and password are required")
	}

	email = handleEmail(email)

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrDatabaseOperation, "could not load user")
	}

	if user == nil {
		return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "unknown email or wrong password")
	}

	if !user.Active {
		return "", NewUserAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, user.ID, "account disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "unknown email or wrong password")
	}

	token, err := generateJWT(user, s.cfg.Auth.Secret, s.now())
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "could not sign token")
	}

	logrus.WithField("user_id", user.ID).Info("User logged in")

	return token, nil
}

func generateJWT(user *domain.User, secretKey string, now time.Time) (string, error) {
	claims := domain.Claims{
		UserID:     user.ID,
		UserName:   user.Name,
		UserEmail:  user.Email,
		UserRoleID: user.RoleID,
		UserBaseID: user.BaseID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	return claims, nil
}

func (s *Service) GetUserProfile(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Could not load user profile")
		return nil, NewUserAuthError(err, apiErrors.ErrDatabaseOperation, userID, "could not load user")
	}

	if user == nil {
		return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "")
	}

	user.PasswordHash = ""
	return user, nil
}

// ChangePassword lets a user replace their own password. An empty
// confirmation skips the confirmation check.
func (s *Service) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword, confirmation string) error {
	if currentPassword == "" || newPassword == "" {
		return NewUserAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, userID, "current and new password are required")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return NewUserAuthError(err, apiErrors.ErrDatabaseOperation, userID, "could not load user")
	}

	if user == nil {
		return NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, userID, "current password is incorrect")
	}

	if err := ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	if confirmation != "" && confirmation != newPassword {
		return NewUserAuthError(ErrPasswordMismatch, apiErrors.ErrPasswordMismatch, userID, "")
	}

	if newPassword == currentPassword {
		return NewUserAuthError(ErrSamePassword, apiErrors.ErrWeakPassword, userID, "")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hashedPassword)
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return NewUserAuthError(err, apiErrors.ErrDatabaseOperation, userID, "could not update password")
	}

	return nil
}

// GenerateStrongPassword resets the target user's password. Only admins may
// call it; the plain password is returned once and never stored.
func (s *Service) GenerateStrongPassword(ctx context.Context, requestUserID, targetUserID int) (string, error) {
	requestUser, err := s.userRepo.GetUserByID(ctx, requestUserID)
	if err != nil {
		return "", NewUserAuthError(err, apiErrors.ErrDatabaseOperation, requestUserID, "could not load user")
	}
	if requestUser == nil {
		return "", NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, requestUserID, "")
	}
	if requestUser.RoleID != domain.RoleAdmin {
		return "", NewUserAuthError(ErrInsufficientPrivilege, apiErrors.ErrInsufficientPrivilege, requestUserID, "only admins can reset passwords")
	}

	targetUser, err := s.userRepo.GetUserByID(ctx, targetUserID)
	if err != nil {
		return "", NewUserAuthError(err, apiErrors.ErrDatabaseOperation, targetUserID, "could not load user")
	}
	if targetUser == nil {
		return "", NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, targetUserID, "")
	}

	newPassword, err := generateStrongPassword(generatedPasswordLength)
	if err != nil {
		return "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	targetUser.PasswordHash = string(hashedPassword)
	if err := s.userRepo.UpdateUser(ctx, targetUser); err != nil {
		return "", NewUserAuthError(err, apiErrors.ErrDatabaseOperation, targetUserID, "could not update password")
	}

	logrus.WithFields(logrus.Fields{
		"user_id":        requestUserID,
		"target_user_id": targetUserID,
	}).Info("Password reset by admin")

	return newPassword, nil
}

// EnsureAdmin creates the admin account on first start. An existing account
// with the same email is left untouched.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	email = handleEmail(email)
	if email == "" || password == "" {
		logrus.Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}

	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return NewAuthError(err, apiErrors.ErrDatabaseOperation, "could not look up admin")
	}
	if existing != nil {
		return nil
	}

	if err := ValidatePasswordStrength(password); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin, err := s.userRepo.CreateUser(ctx, &domain.User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: string(hashedPassword),
		Active:       true,
		RoleID:       domain.RoleAdmin,
	})
	if err != nil {
		return NewAuthError(err, apiErrors.ErrDatabaseOperation, "could not create admin")
	}

	logrus.WithField("user_id", admin.ID).Info("Admin account created")

	return nil
}
