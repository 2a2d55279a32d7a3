package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"floorplanner/internal/planner/models"
)

func TestClampToRoom(t *testing.T) {
	room := models.Room{Length: 20, Width: 15}

	tests := []struct {
		name   string
		in     models.Point
		hw, hh float64
		want   models.Point
	}{
		{"inside untouched", models.Point{X: 10, Y: 7.5}, 3, 1.8, models.Point{X: 10, Y: 7.5}},
		{"top-left corner", models.Point{X: 0, Y: 0}, 1.8, 3, models.Point{X: 1.8, Y: 3}},
		{"bottom-right corner", models.Point{X: 50, Y: 50}, 3, 1.8, models.Point{X: 17, Y: 13.2}},
		{"wider than room centers", models.Point{X: 2, Y: 2}, 12, 1, models.Point{X: 10, Y: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampToRoom(tt.in, tt.hw, tt.hh, room)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
		})
	}
}

func TestSnap(t *testing.T) {
	assert.Equal(t, 3.0, Snap(2.6, 1))
	assert.Equal(t, 2.0, Snap(2.4, 1))
	assert.Equal(t, 2.5, Snap(2.5, 0))
	assert.Equal(t, models.Point{X: 4, Y: 6}, SnapPoint(models.Point{X: 4.2, Y: 5.5}, 1))
}

func TestContains(t *testing.T) {
	table := models.Table{X: 10, Y: 7.5, Width: 6, Height: 3.6}

	assert.True(t, Contains(table, models.Point{X: 10, Y: 7.5}))
	assert.True(t, Contains(table, models.Point{X: 7, Y: 7.5}), "edge is inclusive")
	assert.False(t, Contains(table, models.Point{X: 13.01, Y: 7.5}))
	assert.False(t, Contains(table, models.Point{X: 10, Y: 9.4}))
}

func TestRectanglePoints_QuarterTurnMatchesSwappedBox(t *testing.T) {
	points := RectanglePoints(10, 7.5, 6, 3.6, 90)
	min, max := Bounds(points)

	assert.InDelta(t, 10-1.8, min.X, 1e-9)
	assert.InDelta(t, 10+1.8, max.X, 1e-9)
	assert.InDelta(t, 7.5-3, min.Y, 1e-9)
	assert.InDelta(t, 7.5+3, max.Y, 1e-9)
}

func TestTransform(t *testing.T) {
	tr := Transform{BaseScale: 25, Zoom: 2}

	assert.Equal(t, 50.0, tr.Scale())
	assert.Equal(t, 500.0, tr.ToPixels(10))
	assert.Equal(t, 10.0, tr.ToUnits(500))
	assert.Equal(t, models.Point{X: 2, Y: 3}, tr.PointToUnits(tr.PointToPixels(models.Point{X: 2, Y: 3})))
}

func TestPlaceInRoom_SnapStaysInside(t *testing.T) {
	room := models.Room{Length: 20, Width: 15}

	got := PlaceInRoom(models.Point{X: 0, Y: 0}, 1.2, 1.2, room, 1)
	assert.Equal(t, 2.0, got.X, "snapped inward instead of to 1")
	assert.Equal(t, 2.0, got.Y)

	got = PlaceInRoom(models.Point{X: 7.4, Y: 8.6}, 2, 1.2, room, 1)
	assert.Equal(t, 7.0, got.X)
	assert.Equal(t, 9.0, got.Y)

	got = PlaceInRoom(models.Point{X: 7.4, Y: 8.6}, 2, 1.2, room, 0)
	assert.Equal(t, 7.4, got.X)
}

func TestSnapWithin_NoMultipleInRange(t *testing.T) {
	assert.Equal(t, 3.3, SnapWithin(3.3, 3.2, 3.6, 1))
}
