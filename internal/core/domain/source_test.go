package domain_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/folio-site/folio/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsSourceImageName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"photo.jpg", true},
		{"photo.JPEG", true},
		{"photo.png", true},
		{"photo.webp", true},
		{"photo-800w.jpg", false},
		{"photo-800w.JPG", false},
		{"photo-400w.webp", false},
		{"photo-2400w.png", false},
		{"photo-800.jpg", true},
		{"photo-w.jpg", true},
		{"photo-800w-final.jpg", true},
		{"photo.gif", false},
		{"srcsets.json", false},
		{"README", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.IsSourceImageName(tt.name))
		})
	}
}

func TestNewSourceImage(t *testing.T) {
	mod := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	path := filepath.Join("assets", "images", "commercial", "hasnur-1.jpg")

	src := domain.NewSourceImage(path, mod)

	assert.Equal(t, path, src.Path)
	assert.Equal(t, filepath.Join("assets", "images", "commercial"), src.Dir)
	assert.Equal(t, "hasnur-1", src.Base)
	assert.Equal(t, ".jpg", src.Ext)
	assert.Equal(t, "hasnur-1.jpg", src.Name())
	assert.True(t, mod.Equal(src.ModTime))
}
