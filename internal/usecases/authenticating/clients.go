package authenticating

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealer-crm-api/internal/domain"
	"github.com/vfg2006/dealer-crm-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

func (s *Service) CreateClient(ctx context.Context, req *domain.CreateClientRequest) (*domain.User, error) {
	name := strings.TrimSpace(req.Name)
	email := handleEmail(req.Email)
	baseID := strings.TrimSpace(req.BaseID)

	if name == "" || email == "" || baseID == "" || req.Password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "name, email, base_id and password are required")
	}

	if !strings.Contains(email, "@") {
		return nil, NewAuthError(ErrInvalidFormat, apiErrors.ErrInvalidFormat, "email is not valid")
	}

	if err := ValidatePasswordStrength(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "could not look up email")
	}
	if existing != nil {
		return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	client, err := s.userRepo.CreateUser(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Active:       true,
		RoleID:       domain.RoleClient,
		BaseID:       &baseID,
	})
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "could not create client")
	}

	logrus.WithFields(logrus.Fields{
		"client_id": client.ID,
		"base_id":   baseID,
	}).Info("Client created")

	client.PasswordHash = ""
	return client, nil
}

func (s *Service) ListClients(ctx context.Context) ([]*domain.User, error) {
	clients, err := s.userRepo.ListUsersByRole(ctx, domain.RoleClient)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "could not list clients")
	}

	for _, c := range clients {
		c.PasswordHash = ""
	}

	return clients, nil
}

func (s *Service) GetClient(ctx context.Context, clientID int) (*domain.User, error) {
	client, err := s.loadClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	client.PasswordHash = ""
	return client, nil
}

// loadClient returns the client with its password hash intact.
func (s *Service) loadClient(ctx context.Context, clientID int) (*domain.User, error) {
	client, err := s.userRepo.GetUserByID(ctx, clientID)
	if err != nil {
		return nil, NewUserAuthError(err, apiErrors.ErrDatabaseOperation, clientID, "could not load client")
	}

	if client == nil || client.RoleID != domain.RoleClient {
		return nil, NewUserAuthError(ErrClientNotFound, apiErrors.ErrUserNotFound, clientID, "")
	}

	return client, nil
}

func (s *Service) UpdateClient(ctx context.Context, req *domain.UpdateClientRequest) (*domain.User, error) {
	if req.ID == 0 {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "id is required")
	}

	client, err := s.loadClient(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, NewUserAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, req.ID, "name cannot be empty")
		}
		client.Name = name
	}

	if req.Email != nil {
		email := handleEmail(*req.Email)
		if !strings.Contains(email, "@") {
			return nil, NewUserAuthError(ErrInvalidFormat, apiErrors.ErrInvalidFormat, req.ID, "email is not valid")
		}

		if email != client.Email {
			other, err := s.userRepo.GetUserByEmail(ctx, email)
			if err != nil {
				return nil, NewUserAuthError(err, apiErrors.ErrDatabaseOperation, req.ID, "could not look up email")
			}
			if other != nil && other.ID != client.ID {
				return nil, NewUserAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, req.ID, "email already registered")
			}
		}
		client.Email = email
	}

	if req.BaseID != nil {
		baseID := strings.TrimSpace(*req.BaseID)
		client.BaseID = &baseID
	}

	if req.Active != nil {
		client.Active = *req.Active
	}

	// Leave the stored hash alone.
	client.PasswordHash = ""
	if err := s.userRepo.UpdateUser(ctx, client); err != nil {
		return nil, NewUserAuthError(err, apiErrors.ErrDatabaseOperation, req.ID, "could not update client")
	}

	return client, nil
}

// ResolveBaseID maps a client ID to the base the caller may read or write.
// Admins may act on any client; clients only on themselves.
func (s *Service) ResolveBaseID(ctx context.Context, claims *domain.Claims, clientID int) (string, error) {
	if claims == nil {
		return "", NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	if claims.UserRoleID != domain.RoleAdmin && claims.UserID != clientID {
		return "", NewUserAuthError(ErrInsufficientPrivilege, apiErrors.ErrInsufficientPrivilege, claims.UserID, "clients can only access their own data")
	}

	client, err := s.loadClient(ctx, clientID)
	if err != nil {
		return "", err
	}

	if claims.UserRoleID != domain.RoleAdmin && !client.Active {
		return "", NewUserAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, clientID, "account disabled")
	}

	if !client.IsClient() {
		return "", NewUserAuthError(ErrClientHasNoBase, apiErrors.ErrClientHasNoBase, clientID, "")
	}

	return *client.BaseID, nil
}
