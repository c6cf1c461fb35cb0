package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/webhook"

	"lazymint/internal/apperrors"
	"lazymint/internal/models"
	"lazymint/internal/repositories/interfaces"
	"lazymint/pkg/logger"
)

// SubscriptionService keeps platform subscription state in sync with the
// billing provider. The provider is the source of truth; this service only
// mirrors its events onto user records.
type SubscriptionService interface {
	EnsureCustomer(ctx context.Context, user *models.User) (string, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type subscriptionService struct {
	userRepo      interfaces.UserRepository
	webhookSecret string
	logger        *logger.Logger
}

func NewSubscriptionService(userRepo interfaces.UserRepository, apiKey, webhookSecret string, log *logger.Logger) SubscriptionService {
	stripe.Key = apiKey
	return &subscriptionService{
		userRepo:      userRepo,
		webhookSecret: webhookSecret,
		logger:        log,
	}
}

func (s *subscriptionService) EnsureCustomer(ctx context.Context, user *models.User) (string, error) {
	if user.StripeCustomerID != "" {
		return user.StripeCustomerID, nil
	}

	params := &stripe.CustomerParams{
		Email: stripe.String(user.Email),
		Name:  stripe.String(user.DisplayName),
	}
	params.Context = ctx
	params.AddMetadata("uid", user.UID)

	created, err := customer.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create billing customer: %w", err)
	}

	updates := map[string]interface{}{"stripe_customer_id": created.ID}
	if err := s.userRepo.Update(ctx, user.UID, updates); err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return "", err
	}

	return created.ID, nil
}

func (s *subscriptionService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		return apperrors.New(apperrors.KindValidation, "INVALID_WEBHOOK_SIGNATURE", "Webhook signature verification failed")
	}

	switch event.Type {
	case "customer.subscription.created", "customer.subscription.updated":
		return s.syncSubscription(ctx, event.Data.Raw, false)
	case "customer.subscription.deleted":
		return s.syncSubscription(ctx, event.Data.Raw, true)
	default:
		// Unhandled event types are acknowledged without action.
		s.logger.WithField("event_type", string(event.Type)).Debug("ignoring billing event")
		return nil
	}
}

func (s *subscriptionService) syncSubscription(ctx context.Context, raw json.RawMessage, deleted bool) error {
	var subscription stripe.Subscription
	if err := json.Unmarshal(raw, &subscription); err != nil {
		return fmt.Errorf("failed to decode subscription event: %w", err)
	}
	if subscription.Customer == nil {
		return fmt.Errorf("subscription event carries no customer")
	}

	user, err := s.userRepo.GetByStripeCustomerID(ctx, subscription.Customer.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Customers created outside this platform are not an error.
			s.logger.WithField("customer_id", subscription.Customer.ID).Warn("billing event for unknown customer")
			return nil
		}
		return err
	}

	tier := subscriptionTier(&subscription)
	status := subscriptionStatus(&subscription)
	if deleted {
		tier = models.SubscriptionTierFree
		status = models.SubscriptionStatusCanceled
	}

	updates := map[string]interface{}{
		"subscription_tier":   tier,
		"subscription_status": status,
	}
	if err := s.userRepo.Update(ctx, user.UID, updates); err != nil {
		return err
	}

	s.logger.WithUserID(user.UID).
		WithFields(map[string]interface{}{"tier": tier, "status": status}).
		Info("subscription synced")

	return nil
}

func subscriptionTier(subscription *stripe.Subscription) models.SubscriptionTier {
	if tier, ok := subscription.Metadata["tier"]; ok {
		switch models.SubscriptionTier(tier) {
		case models.SubscriptionTierFree, models.SubscriptionTierBasic, models.SubscriptionTierPro:
			return models.SubscriptionTier(tier)
		}
	}

	if subscription.Items != nil {
		for _, item := range subscription.Items.Data {
			if item.Price == nil {
				continue
			}
			switch item.Price.LookupKey {
			case "lazymint_pro":
				return models.SubscriptionTierPro
			case "lazymint_basic":
				return models.SubscriptionTierBasic
			}
		}
	}

	return models.SubscriptionTierBasic
}

func subscriptionStatus(subscription *stripe.Subscription) models.SubscriptionStatus {
	switch subscription.Status {
	case stripe.SubscriptionStatusActive, stripe.SubscriptionStatusTrialing:
		return models.SubscriptionStatusActive
	case stripe.SubscriptionStatusPastDue, stripe.SubscriptionStatusUnpaid:
		return models.SubscriptionStatusPastDue
	default:
		return models.SubscriptionStatusCanceled
	}
}
