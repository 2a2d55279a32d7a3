package geometry

import "floorplanner/internal/planner/models"

// ============================================================
// Unit/Pixel Transform
// ============================================================

// Transform переводит единицы комнаты в пиксели и обратно.
// Scale = BaseScale * Zoom, пересчитывается при каждом вызове.
type Transform struct {
	BaseScale float64
	Zoom      float64
}

func (t Transform) Scale() float64 {
	return t.BaseScale * t.Zoom
}

func (t Transform) ToPixels(u float64) float64 {
	return u * t.Scale()
}

func (t Transform) ToUnits(p float64) float64 {
	return p / t.Scale()
}

func (t Transform) PointToPixels(p models.Point) models.Point {
	return models.Point{X: t.ToPixels(p.X), Y: t.ToPixels(p.Y)}
}

func (t Transform) PointToUnits(p models.Point) models.Point {
	return models.Point{X: t.ToUnits(p.X), Y: t.ToUnits(p.Y)}
}
