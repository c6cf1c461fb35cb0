package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lazymint/internal/apperrors"
	"lazymint/internal/models"
	"lazymint/pkg/storage"
)

// fakeTxRunner serializes transaction bodies with a mutex, mirroring the
// atomicity the real runner provides.
type fakeTxRunner struct {
	mu sync.Mutex
}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type memCampaignRepo struct {
	mu        sync.Mutex
	campaigns map[primitive.ObjectID]*models.Campaign
}

func newMemCampaignRepo() *memCampaignRepo {
	return &memCampaignRepo{campaigns: make(map[primitive.ObjectID]*models.Campaign)}
}

func (r *memCampaignRepo) Create(ctx context.Context, campaign *models.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	campaign.ID = primitive.NewObjectID()
	campaign.CreatedAt = time.Now()
	campaign.UpdatedAt = time.Now()
	clone := *campaign
	r.campaigns[campaign.ID] = &clone
	return nil
}

func (r *memCampaignRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	campaign, ok := r.campaigns[id]
	if !ok {
		return nil, apperrors.ErrCampaignNotFound
	}
	clone := *campaign
	return &clone, nil
}

func (r *memCampaignRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	campaign, ok := r.campaigns[id]
	if !ok {
		return apperrors.ErrCampaignNotFound
	}

	for key, value := range updates {
		switch key {
		case "title":
			campaign.Title = value.(string)
		case "description":
			campaign.Description = value.(string)
		case "max_claims":
			campaign.MaxClaims = value.(int)
		case "is_public":
			campaign.IsPublic = value.(bool)
		case "status":
			campaign.Status = value.(models.CampaignStatus)
		case "logo_url":
			campaign.LogoURL = value.(string)
		case "ticket_background_url":
			campaign.TicketBackgroundURL = value.(string)
		case "qr_code_url":
			campaign.QRCodeURL = value.(string)
		}
	}
	campaign.UpdatedAt = time.Now()
	return nil
}

func (r *memCampaignRepo) IncrementClaims(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	campaign, ok := r.campaigns[id]
	if !ok {
		return apperrors.ErrCampaignNotFound
	}
	if campaign.CurrentClaims >= campaign.MaxClaims {
		return apperrors.ErrMaxClaimsReached
	}
	campaign.CurrentClaims++
	return nil
}

func (r *memCampaignRepo) DecrementClaims(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	campaign, ok := r.campaigns[id]
	if !ok {
		return apperrors.ErrCampaignNotFound
	}
	if campaign.CurrentClaims > 0 {
		campaign.CurrentClaims--
	}
	return nil
}

func (r *memCampaignRepo) ListByCreator(ctx context.Context, creatorID string, limit int) ([]*models.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*models.Campaign
	for _, campaign := range r.campaigns {
		if campaign.CreatorID == creatorID && campaign.Status != models.CampaignStatusArchived {
			clone := *campaign
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *memCampaignRepo) ListPublicActive(ctx context.Context, limit int) ([]*models.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*models.Campaign
	for _, campaign := range r.campaigns {
		if campaign.IsPublic && campaign.Status == models.CampaignStatusActive {
			clone := *campaign
			result = append(result, &clone)
		}
	}
	return result, nil
}

type memClaimRepo struct {
	mu     sync.Mutex
	claims map[primitive.ObjectID]*models.Claim
}

func newMemClaimRepo() *memClaimRepo {
	return &memClaimRepo{claims: make(map[primitive.ObjectID]*models.Claim)}
}

func (r *memClaimRepo) Create(ctx context.Context, claim *models.Claim) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	claim.ID = primitive.NewObjectID()
	claim.CreatedAt = time.Now()
	claim.UpdatedAt = time.Now()
	clone := *claim
	r.claims[claim.ID] = &clone
	return nil
}

func (r *memClaimRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	claim, ok := r.claims[id]
	if !ok {
		return nil, apperrors.ErrClaimNotFound
	}
	clone := *claim
	return &clone, nil
}

func (r *memClaimRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	claim, ok := r.claims[id]
	if !ok {
		return apperrors.ErrClaimNotFound
	}

	for key, value := range updates {
		switch key {
		case "status":
			claim.Status = value.(models.ClaimStatus)
		case "verified_at":
			t := value.(time.Time)
			claim.VerifiedAt = &t
		case "verification_token":
			if value == nil {
				claim.VerificationToken = ""
			} else {
				claim.VerificationToken = value.(string)
			}
		case "ticket_url":
			claim.TicketURL = value.(string)
		}
	}
	claim.UpdatedAt = time.Now()
	return nil
}

func (r *memClaimRepo) FindActiveByEmail(ctx context.Context, campaignID primitive.ObjectID, email string) (*models.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, claim := range r.claims {
		if claim.CampaignID == campaignID && claim.Email == email && claim.Status != models.ClaimStatusExpired {
			clone := *claim
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *memClaimRepo) ListByCampaign(ctx context.Context, campaignID primitive.ObjectID, limit int) ([]*models.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*models.Claim
	for _, claim := range r.claims {
		if claim.CampaignID == campaignID {
			clone := *claim
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *memClaimRepo) IncrementDownloadCount(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	claim, ok := r.claims[id]
	if !ok {
		return apperrors.ErrClaimNotFound
	}
	claim.DownloadCount++
	return nil
}

func (r *memClaimRepo) ListStaleByStatus(ctx context.Context, status models.ClaimStatus, before time.Time, limit int) ([]*models.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*models.Claim
	for _, claim := range r.claims {
		if claim.Status == status && claim.CreatedAt.Before(before) {
			clone := *claim
			result = append(result, &clone)
		}
	}
	return result, nil
}

// backdate rewrites a claim's creation time so expiry paths can be
// exercised without sleeping.
func (r *memClaimRepo) backdate(id primitive.ObjectID, createdAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if claim, ok := r.claims[id]; ok {
		claim.CreatedAt = createdAt
	}
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*models.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperrors.ErrEmailExists
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	clone := *user
	r.users[user.UID] = &clone
	return nil
}

func (r *memUserRepo) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[uid]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) GetByStripeCustomerID(ctx context.Context, customerID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.StripeCustomerID == customerID {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *memUserRepo) Update(ctx context.Context, uid string, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[uid]
	if !ok {
		return apperrors.ErrUserNotFound
	}

	for key, value := range updates {
		switch key {
		case "email":
			user.Email = value.(string)
		case "display_name":
			user.DisplayName = value.(string)
		case "stripe_customer_id":
			user.StripeCustomerID = value.(string)
		case "subscription_tier":
			user.SubscriptionTier = value.(models.SubscriptionTier)
		case "subscription_status":
			user.SubscriptionStatus = value.(models.SubscriptionStatus)
		}
	}
	user.UpdatedAt = time.Now()
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[uid]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.users, uid)
	return nil
}

func (r *memUserRepo) IncrementCampaignCount(ctx context.Context, uid string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[uid]
	if !ok {
		return nil
	}
	if delta < 0 && user.CampaignCount == 0 {
		return nil
	}
	user.CampaignCount += delta
	return nil
}

type fakeRenderer struct {
	mu      sync.Mutex
	err     error
	renders int
}

func (f *fakeRenderer) RenderTicket(ctx context.Context, campaign *models.Campaign, claim *models.Claim) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.renders++
	return []byte("png-bytes"), nil
}

func (f *fakeRenderer) setError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

type fakeStorage struct {
	mu      sync.Mutex
	uploads map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(ctx context.Context, request *storage.UploadRequest) (*storage.UploadResponse, error) {
	data, err := io.ReadAll(request.Reader)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads[request.Key] = data

	return &storage.UploadResponse{
		Key:  request.Key,
		URL:  f.PublicURL(request.Key),
		Size: int64(len(data)),
	}, nil
}

func (f *fakeStorage) Download(ctx context.Context, key string) (*storage.DownloadResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.uploads, key)
	return nil
}

func (f *fakeStorage) FileExists(ctx context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.uploads[key]
	return ok, nil
}

func (f *fakeStorage) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type sentEmail struct {
	to      string
	subject string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{to: to, subject: subject})
	return nil
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
