package geometry

import (
	"math"

	"floorplanner/internal/planner/models"
)

// ============================================================
// Clamp & Snap
// ============================================================

func Clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampToRoom удерживает центр так, чтобы прямоугольник с полуразмерами hw, hh
// оставался внутри комнаты. Если объект больше комнаты, центр ставится в середину.
func ClampToRoom(p models.Point, hw, hh float64, room models.Room) models.Point {
	return models.Point{
		X: clampAxis(p.X, hw, room.Length),
		Y: clampAxis(p.Y, hh, room.Width),
	}
}

func clampAxis(v, half, extent float64) float64 {
	if 2*half > extent {
		return extent / 2
	}
	return Clamp(v, half, extent-half)
}

// Snap округляет координату до ближайшего кратного gridSize.
func Snap(v, gridSize float64) float64 {
	if gridSize <= 0 {
		return v
	}
	return math.Round(v/gridSize) * gridSize
}

func SnapPoint(p models.Point, gridSize float64) models.Point {
	return models.Point{X: Snap(p.X, gridSize), Y: Snap(p.Y, gridSize)}
}

// SnapWithin снаппит v, но не выходит за [lo, hi]: ближайшее кратное внутри диапазона,
// а если такого нет, то v без изменений.
func SnapWithin(v, lo, hi, gridSize float64) float64 {
	if gridSize <= 0 {
		return v
	}
	s := Snap(v, gridSize)
	if s < lo {
		s = math.Ceil(lo/gridSize) * gridSize
	}
	if s > hi {
		s = math.Floor(hi/gridSize) * gridSize
	}
	if s < lo || s > hi {
		return v
	}
	return s
}

// PlaceInRoom ограничивает центр комнатой и затем, если gridSize > 0, снаппит его к сетке.
func PlaceInRoom(p models.Point, hw, hh float64, room models.Room, gridSize float64) models.Point {
	p = ClampToRoom(p, hw, hh, room)
	if gridSize <= 0 {
		return p
	}
	return models.Point{
		X: SnapWithin(p.X, math.Min(hw, room.Length/2), math.Max(room.Length-hw, room.Length/2), gridSize),
		Y: SnapWithin(p.Y, math.Min(hh, room.Width/2), math.Max(room.Width-hh, room.Width/2), gridSize),
	}
}

// ============================================================
// Bounding boxes
// ============================================================

// Contains проверяет попадание точки в осевой прямоугольник стола (границы включительно).
func Contains(t models.Table, p models.Point) bool {
	hw, hh := t.Half()
	return p.X >= t.X-hw && p.X <= t.X+hw &&
		p.Y >= t.Y-hh && p.Y <= t.Y+hh
}

// InsideRoom true, если bounding box стола целиком в комнате.
func InsideRoom(t models.Table, room models.Room) bool {
	const eps = 1e-9
	hw, hh := t.Half()
	return t.X-hw >= -eps && t.X+hw <= room.Length+eps &&
		t.Y-hh >= -eps && t.Y+hh <= room.Width+eps
}

// RectanglePoints углы прямоугольника width×height с центром (cx, cy),
// повернутого на rotationDeg вокруг центра.
func RectanglePoints(cx, cy, width, height, rotationDeg float64) []models.Point {
	halfW := width / 2
	halfH := height / 2

	points := []models.Point{
		{X: cx - halfW, Y: cy - halfH},
		{X: cx + halfW, Y: cy - halfH},
		{X: cx + halfW, Y: cy + halfH},
		{X: cx - halfW, Y: cy + halfH},
	}

	if rotationDeg == 0 {
		return points
	}

	rad := rotationDeg * math.Pi / 180
	sin := math.Sin(rad)
	cos := math.Cos(rad)

	for i, p := range points {
		dx := p.X - cx
		dy := p.Y - cy
		points[i] = models.Point{
			X: cx + dx*cos - dy*sin,
			Y: cy + dx*sin + dy*cos,
		}
	}

	return points
}

// Bounds осевой bounding box набора точек.
func Bounds(points []models.Point) (min, max models.Point) {
	if len(points) == 0 {
		return models.Point{}, models.Point{}
	}
	min, max = points[0], points[0]
	for _, p := range points[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}
