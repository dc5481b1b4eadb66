// internal/services/preview_service_test.go
package services

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teeloom/teeloom-backend/internal/config"
	"github.com/teeloom/teeloom-backend/internal/models"
)

func previewServiceForTest(pixelsPerCM, maxEdgePx int) *PreviewService {
	return &PreviewService{
		cfg: &config.Config{
			Preview: config.PreviewConfig{
				PixelsPerCM: pixelsPerCM,
				MaxEdgePx:   maxEdgePx,
			},
		},
	}
}

func TestRenderAtSizeMatchesGarmentProportions(t *testing.T) {
	s := previewServiceForTest(10, 2048)
	src := image.NewRGBA(image.Rect(0, 0, 400, 400))

	size := &models.ShirtSize{Width: 51, Height: 69}
	rendered := s.renderAtSize(src, size)

	bounds := rendered.Bounds()
	assert.Equal(t, 510, bounds.Dx())
	assert.Equal(t, 690, bounds.Dy())
}

func TestRenderAtSizeClampsLongestEdge(t *testing.T) {
	s := previewServiceForTest(10, 500)
	src := image.NewRGBA(image.Rect(0, 0, 100, 100))

	size := &models.ShirtSize{Width: 51, Height: 69}
	rendered := s.renderAtSize(src, size)

	bounds := rendered.Bounds()
	assert.Equal(t, 500, bounds.Dy(), "longest edge clamps to the cap")
	assert.Less(t, bounds.Dx(), 500)

	// Aspect ratio survives the clamp
	ratio := float64(bounds.Dx()) / float64(bounds.Dy())
	assert.InDelta(t, 51.0/69.0, ratio, 0.01)
}

func TestRenderAtSizeNeverCollapsesToZero(t *testing.T) {
	s := previewServiceForTest(1, 2048)
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))

	size := &models.ShirtSize{Width: 0.1, Height: 0.1}
	rendered := s.renderAtSize(src, size)

	bounds := rendered.Bounds()
	assert.GreaterOrEqual(t, bounds.Dx(), 1)
	assert.GreaterOrEqual(t, bounds.Dy(), 1)
}
