package viewport

import (
	"math"

	"floorplanner/internal/planner/geometry"
	"floorplanner/internal/planner/models"
)

// ============================================================
// Zoom limits
// ============================================================

const (
	MinZoom     = 0.25
	MaxZoom     = 2.5
	DefaultZoom = 1.0
	ZoomStep    = 0.25
	WheelStep   = 0.1
	GridSize    = 1.0

	// FitGutter отступ (px) вокруг холста при подгонке под контейнер.
	FitGutter = 40.0
)

// ============================================================
// Viewport
// ============================================================

// Viewport состояние вида: zoom, прокрутка, переключатели отображения.
// Геометрию столов не трогает: все в единицах комнаты, пиксели только при рендеринге.
type Viewport struct {
	baseScale      float64
	zoom           float64
	unit           string
	ShowGrid       bool
	ShowDimensions bool
	ShowRulers     bool
	SnapToGrid     bool

	container models.Size
	scroll    models.Point

	Hint *PanHint
}

func New(baseScale float64, unit string) *Viewport {
	return &Viewport{
		baseScale:      baseScale,
		zoom:           DefaultZoom,
		unit:           unit,
		ShowGrid:       true,
		ShowDimensions: true,
		ShowRulers:     true,
		Hint:           &PanHint{},
	}
}

func (v *Viewport) Transform() geometry.Transform {
	return geometry.Transform{BaseScale: v.baseScale, Zoom: v.zoom}
}

func (v *Viewport) Scale() float64 {
	return v.baseScale * v.zoom
}

func (v *Viewport) Zoom() float64 {
	return v.zoom
}

func (v *Viewport) BaseScale() float64 {
	return v.baseScale
}

func (v *Viewport) Unit() string {
	return v.unit
}

// SetZoom ограничивает level диапазоном [MinZoom, MaxZoom].
// Возвращает true, если zoom впервые превысил 1.0 и надо показать подсказку о панорамировании.
func (v *Viewport) SetZoom(level float64) bool {
	if math.IsNaN(level) {
		return false
	}
	v.zoom = geometry.Clamp(level, MinZoom, MaxZoom)
	return v.zoom > 1.0
}

func (v *Viewport) ZoomIn() bool {
	return v.SetZoom(v.zoom + ZoomStep)
}

func (v *Viewport) ZoomOut() bool {
	return v.SetZoom(v.zoom - ZoomStep)
}

func (v *Viewport) ResetZoom() bool {
	return v.SetZoom(DefaultZoom)
}

// SetZoomPercent значение ползунка: 250 -> 2.5.
func (v *Viewport) SetZoomPercent(percent float64) bool {
	return v.SetZoom(percent / 100)
}

// Wheel zoom колесом: deltaY > 0 уменьшает.
func (v *Viewport) Wheel(deltaY float64) bool {
	if deltaY > 0 {
		return v.SetZoom(v.zoom - WheelStep)
	}
	return v.SetZoom(v.zoom + WheelStep)
}

// ============================================================
// Fit & canvas size
// ============================================================

// FitZoom чистая функция: zoom, при котором комната помещается в available,
// не больше 1.0 и не меньше MinZoom.
func FitZoom(room models.Room, baseScale float64, available models.Size) float64 {
	scaleX := available.Width / (room.Length * baseScale)
	scaleY := available.Height / (room.Width * baseScale)
	fit := math.Min(math.Min(scaleX, scaleY), 1.0)
	if math.IsNaN(fit) {
		return DefaultZoom
	}
	return geometry.Clamp(fit, MinZoom, 1.0)
}

// Fit подгоняет zoom под available (размер контейнера за вычетом отступов).
func (v *Viewport) Fit(room models.Room, available models.Size) bool {
	return v.SetZoom(FitZoom(room, v.baseScale, available))
}

// NeedsFit true, если комната при базовом масштабе не помещается в available.
func (v *Viewport) NeedsFit(room models.Room, available models.Size) bool {
	return room.Length*v.baseScale > available.Width || room.Width*v.baseScale > available.Height
}

// CanvasSize точный размер холста в пикселях, без обрезки контейнером.
func (v *Viewport) CanvasSize(room models.Room) models.Size {
	return models.Size{
		Width:  room.Length * v.Scale(),
		Height: room.Width * v.Scale(),
	}
}

// ============================================================
// Container & scroll
// ============================================================

func (v *Viewport) Container() models.Size {
	return v.container
}

// Available область контейнера для холста.
func (v *Viewport) Available() models.Size {
	return models.Size{
		Width:  math.Max(0, v.container.Width-FitGutter),
		Height: math.Max(0, v.container.Height-FitGutter),
	}
}

func (v *Viewport) SetContainer(size models.Size) {
	v.container = size
}

func (v *Viewport) Scroll() models.Point {
	return v.scroll
}

// SetScroll ограничивает прокрутку диапазоном [0, canvas - container].
func (v *Viewport) SetScroll(p models.Point, room models.Room) {
	canvas := v.CanvasSize(room)
	maxX := math.Max(0, canvas.Width-v.container.Width)
	maxY := math.Max(0, canvas.Height-v.container.Height)
	v.scroll = models.Point{
		X: geometry.Clamp(p.X, 0, maxX),
		Y: geometry.Clamp(p.Y, 0, maxY),
	}
}

// ClientToUnits переводит координаты указателя в контейнере в единицы комнаты.
func (v *Viewport) ClientToUnits(client models.Point) models.Point {
	return v.Transform().PointToUnits(models.Point{
		X: client.X + v.scroll.X,
		Y: client.Y + v.scroll.Y,
	})
}

// Snapshot копия для рендеринга.
func (v *Viewport) Snapshot(room models.Room) models.View {
	return models.View{
		BaseScale:      v.baseScale,
		ZoomLevel:      v.zoom,
		Scale:          v.Scale(),
		GridSize:       GridSize,
		ShowGrid:       v.ShowGrid,
		ShowDimensions: v.ShowDimensions,
		ShowRulers:     v.ShowRulers,
		SnapToGrid:     v.SnapToGrid,
		Scroll:         v.scroll,
		Canvas:         v.CanvasSize(room),
		Unit:           v.unit,
	}
}

// SnapSize размер сетки для перемещений или 0, если снаппинг выключен.
func (v *Viewport) SnapSize() float64 {
	if v.SnapToGrid {
		return GridSize
	}
	return 0
}
