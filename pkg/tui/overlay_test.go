package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlayViews(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		overlay string
		x, y    int
		want    string
	}{
		{
			name:    "middle of a line",
			base:    "aaaaaaaa\nbbbbbbbb\ncccccccc",
			overlay: "XX\nYY",
			x:       3,
			y:       1,
			want:    "aaaaaaaa\nbbbXXbbb\ncccYYccc",
		},
		{
			name:    "past the end of a short line",
			base:    "ab",
			overlay: "XY",
			x:       4,
			y:       0,
			want:    "ab  XY",
		},
		{
			name:    "extends below the base",
			base:    "abc",
			overlay: "X\nY",
			x:       0,
			y:       0,
			want:    "Xbc\nY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(overlayViews(tt.base, tt.overlay, tt.x, tt.y))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCenterOverlay(t *testing.T) {
	base := "......\n......\n......"
	got := stripANSI(centerOverlay(base, "XX", 6, 3))
	assert.Equal(t, "......\n..XX..\n......", got)
}
