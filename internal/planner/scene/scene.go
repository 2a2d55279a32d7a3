package scene

import (
	"fmt"
	"sort"
	"strings"

	"floorplanner/internal/planner/geometry"
	"floorplanner/internal/planner/models"
)

// ============================================================
// Scene
// ============================================================

// footprintRatio отношение глубины стола к его размеру.
const footprintRatio = 0.6

// Scene хранит столы в z-порядке (последний сверху), выделение и счетчики.
// Выделение хранится как id: при удалении стола сбрасывается только оно.
type Scene struct {
	room        models.Room
	tables      []models.Table
	selectedID  int
	hasSelected bool
	nextID      int
	nextName    int
}

func New(room models.Room) *Scene {
	return &Scene{
		room:     room,
		tables:   []models.Table{},
		nextName: 1,
	}
}

func (s *Scene) Room() models.Room {
	return s.room
}

// SetRoom меняет размеры комнаты и заново ограничивает все столы.
func (s *Scene) SetRoom(room models.Room) {
	s.room = room
	for i := range s.tables {
		s.reclamp(&s.tables[i])
	}
}

func (s *Scene) Len() int {
	return len(s.tables)
}

// Tables копия списка столов.
func (s *Scene) Tables() []models.Table {
	out := make([]models.Table, len(s.tables))
	copy(out, s.tables)
	return out
}

func (s *Scene) Table(id int) (models.Table, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.tables[i], true
	}
	return models.Table{}, false
}

// ============================================================
// Mutations
// ============================================================

// AddTable создает стол в центре комнаты, кладет его наверх и выделяет.
func (s *Scene) AddTable(size float64) models.Table {
	center := s.room.Center()
	table := models.Table{
		ID:       s.nextID,
		Name:     fmt.Sprintf("Table %d", s.nextName),
		Size:     size,
		Width:    size,
		Height:   size * footprintRatio,
		X:        center.X,
		Y:        center.Y,
		Rotation: models.Rotation0,
	}
	s.nextID++
	s.nextName++

	s.reclamp(&table)
	s.tables = append(s.tables, table)
	s.Select(table.ID)
	return table
}

// RemoveTable удаляет стол; неизвестный id: no-op.
func (s *Scene) RemoveTable(id int) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tables = append(s.tables[:i], s.tables[i+1:]...)
	if s.hasSelected && s.selectedID == id {
		s.ClearSelection()
	}
	return true
}

// RenameTable задает имя; пустое после trim превращается в "Table {id+1}".
func (s *Scene) RenameTable(id int, name string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Table %d", id+1)
	}
	s.tables[i].Name = name
	return true
}

// RotateTable поворачивает на 90°, меняет местами Width/Height и заново ограничивает позицию.
func (s *Scene) RotateTable(id int) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	t := &s.tables[i]
	t.Rotation = t.Rotation.Next()
	t.Width, t.Height = t.Height, t.Width
	s.reclamp(t)
	return true
}

// MoveTable ставит центр в (x, y) с ограничением комнатой и, если gridSize > 0, снаппингом.
func (s *Scene) MoveTable(id int, x, y, gridSize float64) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	t := &s.tables[i]
	hw, hh := t.Half()
	p := geometry.PlaceInRoom(models.Point{X: x, Y: y}, hw, hh, s.room, gridSize)
	t.X, t.Y = p.X, p.Y
	return true
}

// ClearAll очищает сцену. Счетчик имен сбрасывается, счетчик id нет.
func (s *Scene) ClearAll() bool {
	if len(s.tables) == 0 {
		return false
	}
	s.tables = []models.Table{}
	s.nextName = 1
	s.ClearSelection()
	return true
}

func (s *Scene) reclamp(t *models.Table) {
	hw, hh := t.Half()
	p := geometry.ClampToRoom(models.Point{X: t.X, Y: t.Y}, hw, hh, s.room)
	t.X, t.Y = p.X, p.Y
}

// ============================================================
// Selection
// ============================================================

// Select выделяет стол; неизвестный id игнорируется.
func (s *Scene) Select(id int) bool {
	if s.indexOf(id) < 0 {
		return false
	}
	s.selectedID = id
	s.hasSelected = true
	return true
}

func (s *Scene) ClearSelection() {
	s.selectedID = 0
	s.hasSelected = false
}

func (s *Scene) Selected() (models.Table, bool) {
	if !s.hasSelected {
		return models.Table{}, false
	}
	return s.Table(s.selectedID)
}

func (s *Scene) SelectedID() (int, bool) {
	return s.selectedID, s.hasSelected
}

// ============================================================
// Queries
// ============================================================

// HitTest возвращает самый верхний стол, содержащий точку (в единицах комнаты).
func (s *Scene) HitTest(p models.Point) (models.Table, bool) {
	for i := len(s.tables) - 1; i >= 0; i-- {
		if geometry.Contains(s.tables[i], p) {
			return s.tables[i], true
		}
	}
	return models.Table{}, false
}

// Summary строка вида "3 tables placed (2×6ft, 1×8ft)".
func (s *Scene) Summary(unit string) string {
	count := len(s.tables)
	plural := "s"
	if count == 1 {
		plural = ""
	}
	text := fmt.Sprintf("%d table%s placed", count, plural)

	bySize := map[float64]int{}
	for _, t := range s.tables {
		bySize[t.Size]++
	}
	if len(bySize) == 0 {
		return text
	}

	sizes := make([]float64, 0, len(bySize))
	for size := range bySize {
		sizes = append(sizes, size)
	}
	sort.Float64s(sizes)

	parts := make([]string, 0, len(sizes))
	for _, size := range sizes {
		parts = append(parts, fmt.Sprintf("%d×%s%s", bySize[size], FormatLength(size), unit))
	}
	return text + " (" + strings.Join(parts, ", ") + ")"
}

func (s *Scene) indexOf(id int) int {
	for i := range s.tables {
		if s.tables[i].ID == id {
			return i
		}
	}
	return -1
}
