// ABOUTME: Image asset model for uploaded pictures and their thumbnails.
// ABOUTME: Dimensions are derived from the stored blob, never persisted.

package models

import (
	"time"

	"github.com/google/uuid"
)

type Image struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	Thumbnail   string    `json:"thumbnail"`
	Category    string    `json:"category,omitempty"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	AspectRatio float64   `json:"aspectRatio"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewImage() *Image {
	img := &Image{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
	}
	img.Filename = img.ID.String() + ".jpg"
	img.Thumbnail = img.ID.String() + "-thumb.jpg"
	return img
}

// SetDimensions records decoded pixel dimensions and the derived ratio.
func (i *Image) SetDimensions(w, h int) {
	i.Width = w
	i.Height = h
	if h > 0 {
		i.AspectRatio = float64(w) / float64(h)
	}
}
