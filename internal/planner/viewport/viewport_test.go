package viewport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"floorplanner/internal/planner/models"
)

func TestSetZoomClamps(t *testing.T) {
	v := New(25, "ft")

	v.SetZoomPercent(250)
	assert.Equal(t, 2.5, v.Zoom())
	assert.Equal(t, 62.5, v.Scale())

	v.SetZoomPercent(300)
	assert.Equal(t, MaxZoom, v.Zoom())

	v.SetZoom(0.1)
	assert.Equal(t, MinZoom, v.Zoom())
}

func TestZoomSteps(t *testing.T) {
	v := New(25, "ft")

	assert.True(t, v.ZoomIn())
	assert.Equal(t, 1.25, v.Zoom())

	for i := 0; i < 10; i++ {
		v.ZoomIn()
	}
	assert.Equal(t, MaxZoom, v.Zoom())

	assert.False(t, v.ResetZoom())
	assert.Equal(t, 1.0, v.Zoom())

	for i := 0; i < 10; i++ {
		v.ZoomOut()
	}
	assert.Equal(t, MinZoom, v.Zoom())

	v.ResetZoom()
	v.Wheel(-3)
	assert.InDelta(t, 1.1, v.Zoom(), 1e-9)
	v.Wheel(5)
	assert.InDelta(t, 1.0, v.Zoom(), 1e-9)
}

func TestFitZoom(t *testing.T) {
	room := models.Room{Length: 20, Width: 15}

	assert.Equal(t, 1.0, FitZoom(room, 25, models.Size{Width: 2000, Height: 2000}), "never zooms in past 100%")
	assert.Equal(t, 0.5, FitZoom(room, 25, models.Size{Width: 250, Height: 1000}))
	assert.Equal(t, MinZoom, FitZoom(room, 25, models.Size{Width: 10, Height: 10}))
}

func TestFitKeepsCanvasInsideAvailableArea(t *testing.T) {
	rooms := []models.Room{{Length: 20, Width: 15}, {Length: 60, Width: 20}, {Length: 30, Width: 45}, {Length: 8, Width: 6}}
	available := models.Size{Width: 800, Height: 560}

	for _, room := range rooms {
		v := New(25, "ft")
		v.Fit(room, available)
		canvas := v.CanvasSize(room)

		assert.GreaterOrEqual(t, v.Zoom(), MinZoom)
		assert.LessOrEqual(t, canvas.Width, available.Width+0.5, "room %+v", room)
		assert.LessOrEqual(t, canvas.Height, available.Height+0.5, "room %+v", room)
	}
}

func TestNeedsFit(t *testing.T) {
	v := New(25, "ft")
	assert.False(t, v.NeedsFit(models.Room{Length: 20, Width: 15}, models.Size{Width: 1160, Height: 760}))
	assert.True(t, v.NeedsFit(models.Room{Length: 60, Width: 15}, models.Size{Width: 1160, Height: 760}))
}

func TestCanvasSizeIsExact(t *testing.T) {
	v := New(25, "ft")
	v.SetZoom(2)

	size := v.CanvasSize(models.Room{Length: 20, Width: 15})

	assert.Equal(t, 1000.0, size.Width)
	assert.Equal(t, 750.0, size.Height)
}

func TestScrollClampAndClientToUnits(t *testing.T) {
	room := models.Room{Length: 20, Width: 15}
	v := New(25, "ft")
	v.SetZoom(2)
	v.SetContainer(models.Size{Width: 400, Height: 300})

	v.SetScroll(models.Point{X: 5000, Y: -20}, room)
	assert.Equal(t, models.Point{X: 600, Y: 0}, v.Scroll())

	v.SetScroll(models.Point{X: 100, Y: 50}, room)
	got := v.ClientToUnits(models.Point{X: 100, Y: 50})
	assert.Equal(t, models.Point{X: 4, Y: 2}, got)
}

func TestPanHintPhases(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	h := &PanHint{}

	assert.Equal(t, HintHidden, h.Phase(start))
	assert.True(t, h.Trigger(start))
	assert.False(t, h.Trigger(start.Add(time.Minute)), "one-shot")

	assert.Equal(t, HintShown, h.Phase(start.Add(2*time.Second)))
	assert.Equal(t, HintFading, h.Phase(start.Add(3200*time.Millisecond)))
	assert.Equal(t, HintDismissed, h.Phase(start.Add(4*time.Second)))

	h.Pin(true)
	assert.Equal(t, HintShown, h.Phase(start.Add(time.Hour)))
}
