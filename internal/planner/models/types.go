package models

// ============================================================
// Geometry primitives
// ============================================================

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rotation угол поворота стола в градусах: 0, 90, 180 или 270.
type Rotation int

const (
	Rotation0   Rotation = 0
	Rotation90  Rotation = 90
	Rotation180 Rotation = 180
	Rotation270 Rotation = 270
)

// Next возвращает угол после поворота на 90° по часовой.
func (r Rotation) Next() Rotation {
	return (r + 90) % 360
}

// QuarterTurn true для 90 и 270.
func (r Rotation) QuarterTurn() bool {
	return r == Rotation90 || r == Rotation270
}

// ============================================================
// Planner core structures
// ============================================================

// Room прямоугольная комната в единицах комнаты (например, футах).
type Room struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
}

// Center центр комнаты, позиция нового стола по умолчанию.
func (r Room) Center() Point {
	return Point{X: r.Length / 2, Y: r.Width / 2}
}

// Table один размещенный стол. X, Y: центр.
// Width/Height всегда хранят эффективный footprint для текущего Rotation:
// при каждом повороте на 90° они меняются местами.
type Table struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Size     float64  `json:"size"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Rotation Rotation `json:"rotation"`
}

// Half половина footprint'а.
func (t Table) Half() (float64, float64) {
	return t.Width / 2, t.Height / 2
}

// Footprint размер в неповернутой системе координат стола.
func (t Table) Footprint() Size {
	if t.Rotation.QuarterTurn() {
		return Size{Width: t.Height, Height: t.Width}
	}
	return Size{Width: t.Width, Height: t.Height}
}

// ============================================================
// Snapshots
// ============================================================

// View копия состояния вида, достаточная для рендеринга.
type View struct {
	BaseScale      float64 `json:"base_scale"`
	ZoomLevel      float64 `json:"zoom_level"`
	Scale          float64 `json:"scale"`
	GridSize       float64 `json:"grid_size"`
	ShowGrid       bool    `json:"show_grid"`
	ShowDimensions bool    `json:"show_dimensions"`
	ShowRulers     bool    `json:"show_rulers"`
	SnapToGrid     bool    `json:"snap_to_grid"`
	Scroll         Point   `json:"scroll"`
	Canvas         Size    `json:"canvas"`
	Unit           string  `json:"unit"`
}

// Snapshot неизменяемая копия всего состояния редактора.
type Snapshot struct {
	Room       Room    `json:"room"`
	View       View    `json:"view"`
	Tables     []Table `json:"tables"`
	SelectedID *int    `json:"selected_id"`
	Summary    string  `json:"summary"`
	Dragging   bool    `json:"dragging"`
	Panning    bool    `json:"panning"`
	PanHint    string  `json:"pan_hint"`
}
