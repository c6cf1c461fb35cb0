package services

import (
	"context"
	"errors"

	"lazymint/internal/apperrors"
	"lazymint/internal/models"
	"lazymint/internal/repositories/interfaces"
	"lazymint/internal/utils"
	"lazymint/internal/validators"
	"lazymint/pkg/auth"
	"lazymint/pkg/logger"
)

type UserService interface {
	CreateUser(ctx context.Context, request *models.UserCreateRequest) (*models.User, error)
	GetUser(ctx context.Context, uid string) (*models.User, error)
	UpdateUser(ctx context.Context, uid string, request *models.UserUpdateRequest) (*models.User, error)
	DeleteUser(ctx context.Context, uid string) error
}

type userService struct {
	userRepo      interfaces.UserRepository
	authManager   auth.UserManager
	subscriptions SubscriptionService
	logger        *logger.Logger
}

// NewUserService wires the identity provider, the user store, and the
// optional billing integration. A nil subscription service disables
// billing enrollment.
func NewUserService(
	userRepo interfaces.UserRepository,
	authManager auth.UserManager,
	subscriptions SubscriptionService,
	log *logger.Logger,
) UserService {
	return &userService{
		userRepo:      userRepo,
		authManager:   authManager,
		subscriptions: subscriptions,
		logger:        log,
	}
}

func (s *userService) CreateUser(ctx context.Context, request *models.UserCreateRequest) (*models.User, error) {
	if err := validators.ValidateUserCreate(request); err != nil {
		return nil, err
	}

	email := utils.NormalizeEmail(request.Email)

	identity, err := s.authManager.CreateUser(ctx, email, request.Password, request.DisplayName)
	if err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			return nil, apperrors.ErrEmailExists
		}
		return nil, apperrors.Internal(err)
	}

	user := &models.User{
		UID:                identity.UID,
		Email:              email,
		DisplayName:        request.DisplayName,
		SubscriptionTier:   models.SubscriptionTierFree,
		SubscriptionStatus: models.SubscriptionStatusActive,
	}

	if s.subscriptions != nil {
		customerID, err := s.subscriptions.EnsureCustomer(ctx, user)
		if err != nil {
			// Billing enrollment retries on the next subscription action.
			s.logger.WithUserID(user.UID).WithError(err).Warn("billing customer creation failed")
		} else {
			user.StripeCustomerID = customerID
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Roll back the identity record so the email is not orphaned.
		if deleteErr := s.authManager.DeleteUser(ctx, identity.UID); deleteErr != nil {
			s.logger.WithUserID(identity.UID).WithError(deleteErr).Error("failed to roll back auth user")
		}
		return nil, err
	}

	s.logger.WithUserID(user.UID).Info("user created")

	return user, nil
}

func (s *userService) GetUser(ctx context.Context, uid string) (*models.User, error) {
	return s.userRepo.GetByUID(ctx, uid)
}

func (s *userService) UpdateUser(ctx context.Context, uid string, request *models.UserUpdateRequest) (*models.User, error) {
	if err := validators.ValidateUserUpdate(request); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	var email, displayName string

	if request.Email != nil {
		email = utils.NormalizeEmail(*request.Email)
		updates["email"] = email
	}
	if request.DisplayName != nil {
		displayName = *request.DisplayName
		updates["display_name"] = displayName
	}

	// The identity provider is the source of truth for credentials, so it
	// is updated first. The store follows only on success.
	if err := s.authManager.UpdateUser(ctx, uid, email, displayName); err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			return nil, apperrors.ErrEmailExists
		case errors.Is(err, auth.ErrUserNotFound):
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Internal(err)
	}

	if err := s.userRepo.Update(ctx, uid, updates); err != nil {
		return nil, err
	}

	return s.userRepo.GetByUID(ctx, uid)
}

func (s *userService) DeleteUser(ctx context.Context, uid string) error {
	if err := s.userRepo.Delete(ctx, uid); err != nil {
		return err
	}

	if err := s.authManager.DeleteUser(ctx, uid); err != nil && !errors.Is(err, auth.ErrUserNotFound) {
		s.logger.WithUserID(uid).WithError(err).Error("failed to delete auth user")
		return apperrors.Internal(err)
	}

	s.logger.WithUserID(uid).Info("user deleted")

	return nil
}
