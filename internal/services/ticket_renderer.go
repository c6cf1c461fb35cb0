package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"net/http"
	"time"

	"github.com/nfnt/resize"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"lazymint/internal/models"
	"lazymint/internal/utils"
)

// TicketRenderer produces the downloadable ticket artwork for a claim.
type TicketRenderer interface {
	RenderTicket(ctx context.Context, campaign *models.Campaign, claim *models.Claim) ([]byte, error)
}

type imageTicketRenderer struct {
	httpClient  *http.Client
	frontendURL string
}

func NewTicketRenderer(frontendURL string) TicketRenderer {
	return &imageTicketRenderer{
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		frontendURL: frontendURL,
	}
}

// RenderTicket composes the 800x600 ticket: the campaign background image
// over a white base, the campaign logo top-left, title, claim number,
// description and date text, and a verification QR code bottom-right.
func (r *imageTicketRenderer) RenderTicket(ctx context.Context, campaign *models.Campaign, claim *models.Claim) ([]byte, error) {
	canvas := image.NewRGBA(image.Rect(0, 0, utils.TicketWidth, utils.TicketHeight))

	if err := r.drawBackground(ctx, canvas, campaign); err != nil {
		return nil, err
	}

	if campaign.LogoURL != "" {
		if err := r.drawLogo(ctx, canvas, campaign.LogoURL); err != nil {
			return nil, fmt.Errorf("failed to draw logo: %w", err)
		}
	}

	ink := color.RGBA{R: 30, G: 41, B: 59, A: 255}
	muted := color.RGBA{R: 100, G: 116, B: 139, A: 255}

	drawText(canvas, campaign.Title, 50, 280, ink)
	drawText(canvas, fmt.Sprintf("Claim #%d", claim.ClaimNumber), 50, 320, ink)
	drawText(canvas, truncate(campaign.Description, 80), 50, 360, muted)
	drawText(canvas, claim.CreatedAt.Format("Jan 2, 2006"), 50, 400, muted)
	drawText(canvas, "Scan the QR code to verify this ticket", 50, 560, muted)

	if err := r.drawVerificationQR(canvas, campaign, claim); err != nil {
		return nil, fmt.Errorf("failed to draw QR code: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode ticket: %w", err)
	}

	return buf.Bytes(), nil
}

func (r *imageTicketRenderer) drawBackground(ctx context.Context, canvas *image.RGBA, campaign *models.Campaign) error {
	if campaign.TicketBackgroundURL != "" {
		background, err := r.fetchImage(ctx, campaign.TicketBackgroundURL)
		if err == nil {
			scaled := resize.Resize(utils.TicketWidth, utils.TicketHeight, background, resize.Lanczos3)
			draw.Draw(canvas, canvas.Bounds(), scaled, image.Point{}, draw.Src)
			return nil
		}
		// A missing background degrades to the white base rather than
		// blocking ticket delivery.
	}

	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return nil
}

func (r *imageTicketRenderer) drawLogo(ctx context.Context, canvas *image.RGBA, logoURL string) error {
	logo, err := r.fetchImage(ctx, logoURL)
	if err != nil {
		return err
	}

	scaled := resize.Thumbnail(utils.TicketLogoSize, utils.TicketLogoSize, logo, resize.Lanczos3)
	target := scaled.Bounds().Add(image.Pt(50, 50))
	draw.Draw(canvas, target, scaled, scaled.Bounds().Min, draw.Over)
	return nil
}

func (r *imageTicketRenderer) drawVerificationQR(canvas *image.RGBA, campaign *models.Campaign, claim *models.Claim) error {
	payload, err := json.Marshal(map[string]interface{}{
		"type":        "ticket",
		"claimId":     claim.ID.Hex(),
		"campaignId":  campaign.ID.Hex(),
		"claimNumber": claim.ClaimNumber,
		"verifyUrl":   fmt.Sprintf("%s/claims/%s", r.frontendURL, claim.ID.Hex()),
	})
	if err != nil {
		return err
	}

	qrPNG, err := qrcode.Encode(string(payload), qrcode.Medium, utils.TicketQRSize)
	if err != nil {
		return err
	}

	qrImage, _, err := image.Decode(bytes.NewReader(qrPNG))
	if err != nil {
		return err
	}

	target := qrImage.Bounds().Add(image.Pt(600, 400))
	draw.Draw(canvas, target, qrImage, qrImage.Bounds().Min, draw.Over)
	return nil
}

func (r *imageTicketRenderer) fetchImage(ctx context.Context, url string) (image.Image, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	response, err := r.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", response.StatusCode, url)
	}

	img, _, err := image.Decode(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return img, nil
}

// truncate cuts on rune boundaries so multi-byte text is never split
// mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func drawText(canvas *image.RGBA, text string, x, y int, textColor color.Color) {
	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(text)
}
