package auth

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var (
	ErrEmailExists  = errors.New("email already exists")
	ErrUserNotFound = errors.New("auth user not found")
)

// Identity is the decoded result of a verified bearer credential.
type Identity struct {
	UID           string `json:"uid"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

// Verifier exchanges a bearer credential for a stable identity.
type Verifier interface {
	VerifyToken(ctx context.Context, idToken string) (*Identity, error)
}

// UserManager manages the identity provider's user records.
type UserManager interface {
	CreateUser(ctx context.Context, email, password, displayName string) (*Identity, error)
	UpdateUser(ctx context.Context, uid string, email, displayName string) error
	DeleteUser(ctx context.Context, uid string) error
}

type FirebaseAuth struct {
	client *fbauth.Client
}

func NewFirebaseAuth(projectID, credentialsFile string) (*FirebaseAuth, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	var config *firebase.Config
	if projectID != "" {
		config = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, config, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}

	return &FirebaseAuth{client: client}, nil
}

func (f *FirebaseAuth) VerifyToken(ctx context.Context, idToken string) (*Identity, error) {
	token, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}

	identity := &Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if verified, ok := token.Claims["email_verified"].(bool); ok {
		identity.EmailVerified = verified
	}

	return identity, nil
}

func (f *FirebaseAuth) CreateUser(ctx context.Context, email, password, displayName string) (*Identity, error) {
	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	record, err := f.client.CreateUser(ctx, params)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create auth user: %w", err)
	}

	return &Identity{
		UID:           record.UID,
		Email:         record.Email,
		EmailVerified: record.EmailVerified,
	}, nil
}

func (f *FirebaseAuth) UpdateUser(ctx context.Context, uid string, email, displayName string) error {
	params := &fbauth.UserToUpdate{}
	if email != "" {
		params = params.Email(email)
	}
	if displayName != "" {
		params = params.DisplayName(displayName)
	}

	_, err := f.client.UpdateUser(ctx, uid, params)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return ErrEmailExists
		}
		if fbauth.IsUserNotFound(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update auth user: %w", err)
	}

	return nil
}

func (f *FirebaseAuth) DeleteUser(ctx context.Context, uid string) error {
	err := f.client.DeleteUser(ctx, uid)
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete auth user: %w", err)
	}

	return nil
}
