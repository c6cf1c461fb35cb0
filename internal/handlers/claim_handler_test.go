package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lazymint/internal/apperrors"
	"lazymint/internal/models"
)

type stubClaimService struct {
	submitResult *models.ClaimSubmissionResult
	submitErr    error
	verifyResult *models.ClaimVerificationResult
	verifyErr    error
	statusResult *models.ClaimStatusView
	statusErr    error
	downloadURL  string
	downloadErr  error
}

func (s *stubClaimService) SubmitClaim(ctx context.Context, request *models.ClaimRequest) (*models.ClaimSubmissionResult, error) {
	return s.submitResult, s.submitErr
}

func (s *stubClaimService) VerifyClaim(ctx context.Context, request *models.ClaimVerificationRequest) (*models.ClaimVerificationResult, error) {
	return s.verifyResult, s.verifyErr
}

func (s *stubClaimService) GetClaimStatus(ctx context.Context, claimID primitive.ObjectID) (*models.ClaimStatusView, error) {
	return s.statusResult, s.statusErr
}

func (s *stubClaimService) ListCampaignClaims(ctx context.Context, campaignID primitive.ObjectID, callerUID string) ([]*models.ClaimListEntry, string, error) {
	return nil, "", nil
}

func (s *stubClaimService) DownloadTicket(ctx context.Context, claimID primitive.ObjectID) (string, error) {
	return s.downloadURL, s.downloadErr
}

func (s *stubClaimService) AttachTicket(ctx context.Context, claimID primitive.ObjectID) (string, error) {
	return "", nil
}

func (s *stubClaimService) ExpireStaleClaims(ctx context.Context) (int, error) {
	return 0, nil
}

func (s *stubClaimService) RecoverUnattachedTickets(ctx context.Context) (int, error) {
	return 0, nil
}

func newClaimTestRouter(service *stubClaimService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewClaimHandler(service)

	router := gin.New()
	router.POST("/claims", handler.SubmitClaim)
	router.POST("/claims/verify", handler.VerifyClaim)
	router.GET("/claims/:id/status", handler.GetClaimStatus)
	router.GET("/claims/:id/download", handler.DownloadTicket)
	return router
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestSubmitClaimHandler(t *testing.T) {
	t.Run("returns 201 on admission", func(t *testing.T) {
		service := &stubClaimService{
			submitResult: &models.ClaimSubmissionResult{
				ClaimID:       primitive.NewObjectID().Hex(),
				ClaimNumber:   1,
				CampaignTitle: "Launch Party",
			},
		}
		router := newClaimTestRouter(service)

		recorder := performJSON(t, router, http.MethodPost, "/claims", gin.H{
			"campaign_id": primitive.NewObjectID().Hex(),
			"email":       "fan@example.com",
		})

		assert.Equal(t, http.StatusCreated, recorder.Code)
	})

	t.Run("maps capacity exhaustion to 400", func(t *testing.T) {
		service := &stubClaimService{submitErr: apperrors.ErrMaxClaimsReached}
		router := newClaimTestRouter(service)

		recorder := performJSON(t, router, http.MethodPost, "/claims", gin.H{
			"campaign_id": primitive.NewObjectID().Hex(),
			"email":       "fan@example.com",
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "MAX_CLAIMS_REACHED")
	})

	t.Run("maps duplicate claim to 409", func(t *testing.T) {
		service := &stubClaimService{submitErr: apperrors.ErrAlreadyClaimed}
		router := newClaimTestRouter(service)

		recorder := performJSON(t, router, http.MethodPost, "/claims", gin.H{
			"campaign_id": primitive.NewObjectID().Hex(),
			"email":       "fan@example.com",
		})

		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "ALREADY_CLAIMED")
	})
}

func TestVerifyClaimHandler(t *testing.T) {
	t.Run("maps re-verification to 409", func(t *testing.T) {
		service := &stubClaimService{verifyErr: apperrors.ErrAlreadyVerified}
		router := newClaimTestRouter(service)

		recorder := performJSON(t, router, http.MethodPost, "/claims/verify", gin.H{
			"claim_id":           primitive.NewObjectID().Hex(),
			"verification_token": "deadbeef",
		})

		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "ALREADY_VERIFIED")
	})

	t.Run("maps expired token to 400", func(t *testing.T) {
		service := &stubClaimService{verifyErr: apperrors.ErrTokenExpired}
		router := newClaimTestRouter(service)

		recorder := performJSON(t, router, http.MethodPost, "/claims/verify", gin.H{
			"claim_id":           primitive.NewObjectID().Hex(),
			"verification_token": "deadbeef",
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "TOKEN_EXPIRED")
	})
}

func TestGetClaimStatusHandler(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		router := newClaimTestRouter(&stubClaimService{})

		recorder := performJSON(t, router, http.MethodGet, "/claims/not-an-id/status", nil)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("unknown claim", func(t *testing.T) {
		service := &stubClaimService{statusErr: apperrors.ErrClaimNotFound}
		router := newClaimTestRouter(service)

		recorder := performJSON(t, router, http.MethodGet, "/claims/"+primitive.NewObjectID().Hex()+"/status", nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("response omits claimant email", func(t *testing.T) {
		service := &stubClaimService{
			statusResult: &models.ClaimStatusView{
				ClaimID:     primitive.NewObjectID().Hex(),
				ClaimNumber: 4,
				Status:      models.ClaimStatusPending,
			},
		}
		router := newClaimTestRouter(service)

		recorder := performJSON(t, router, http.MethodGet, "/claims/"+service.statusResult.ClaimID+"/status", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.NotContains(t, recorder.Body.String(), "email")
		assert.NotContains(t, recorder.Body.String(), "verification_token")
	})
}

func TestDownloadTicketHandler(t *testing.T) {
	t.Run("incomplete claim", func(t *testing.T) {
		service := &stubClaimService{downloadErr: apperrors.ErrClaimNotCompleted}
		router := newClaimTestRouter(service)

		recorder := performJSON(t, router, http.MethodGet, "/claims/"+primitive.NewObjectID().Hex()+"/download", nil)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "CLAIM_NOT_COMPLETED")
	})

	t.Run("redirects to ticket url", func(t *testing.T) {
		service := &stubClaimService{downloadURL: "https://cdn.example.com/tickets/t.png"}
		router := newClaimTestRouter(service)

		recorder := performJSON(t, router, http.MethodGet, "/claims/"+primitive.NewObjectID().Hex()+"/download", nil)
		assert.Equal(t, http.StatusFound, recorder.Code)
		assert.Equal(t, "https://cdn.example.com/tickets/t.png", recorder.Header().Get("Location"))
	})
}
