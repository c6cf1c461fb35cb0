package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lazymint/internal/models"
	"lazymint/internal/utils"
)

func TestRenderTicket(t *testing.T) {
	renderer := NewTicketRenderer("https://lazymint.example.com")

	campaign := &models.Campaign{
		ID:          primitive.NewObjectID(),
		Title:       "Launch Party",
		Description: "First hundred fans get a ticket",
	}
	claim := &models.Claim{
		ID:          primitive.NewObjectID(),
		CampaignID:  campaign.ID,
		ClaimNumber: 7,
		Status:      models.ClaimStatusVerified,
		CreatedAt:   time.Now(),
	}

	data, err := renderer.RenderTicket(context.Background(), campaign, claim)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, utils.TicketWidth, img.Bounds().Dx())
	assert.Equal(t, utils.TicketHeight, img.Bounds().Dy())
}

func TestRenderTicketWithLogo(t *testing.T) {
	logo := solidPNG(t, 400, 400)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(logo)
	}))
	defer server.Close()

	renderer := NewTicketRenderer("https://lazymint.example.com")

	campaign := &models.Campaign{
		ID:          primitive.NewObjectID(),
		Title:       "Launch Party",
		Description: "First hundred fans get a ticket",
		LogoURL:     server.URL + "/logo.png",
	}
	claim := &models.Claim{
		ID:          primitive.NewObjectID(),
		CampaignID:  campaign.ID,
		ClaimNumber: 1,
		Status:      models.ClaimStatusVerified,
		CreatedAt:   time.Now(),
	}

	data, err := renderer.RenderTicket(context.Background(), campaign, claim)
	require.NoError(t, err)

	_, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
}

func TestRenderTicketBrokenBackgroundFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	renderer := NewTicketRenderer("https://lazymint.example.com")

	campaign := &models.Campaign{
		ID:                  primitive.NewObjectID(),
		Title:               "Launch Party",
		TicketBackgroundURL: server.URL + "/bg.png",
	}
	claim := &models.Claim{
		ID:          primitive.NewObjectID(),
		CampaignID:  campaign.ID,
		ClaimNumber: 2,
		CreatedAt:   time.Now(),
	}

	data, err := renderer.RenderTicket(context.Background(), campaign, claim)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 80))

	long := strings.Repeat("é", 100)
	cut := truncate(long, 80)
	assert.True(t, utf8.ValidString(cut))
	assert.Equal(t, strings.Repeat("é", 77)+"...", cut)
}

func solidPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fill := color.RGBA{R: 200, G: 40, B: 40, A: 255}
	draw.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
