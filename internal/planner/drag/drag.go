package drag

import "floorplanner/internal/planner/models"

// ============================================================
// Drag Controller
// ============================================================

type State string

const (
	Idle     State = "idle"
	Dragging State = "dragging"
)

type Button int

const (
	ButtonPrimary   Button = 0
	ButtonSecondary Button = 2
)

// Controller машина состояний Idle -> Dragging -> Idle плюс сессия панорамирования.
// Одновременно перетаскивается не больше одного стола.
type Controller struct {
	state   State
	tableID int
	start   models.Point // указатель в момент нажатия, px
	initial models.Point // центр стола в момент нажатия, единицы комнаты

	spaceHeld bool
	panning   bool
	panStart  models.Point // client + scroll в момент начала панорамирования
}

func New() *Controller {
	return &Controller{state: Idle}
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Dragging() bool {
	return c.state == Dragging
}

// TableID стол, который сейчас перетаскивается.
func (c *Controller) TableID() (int, bool) {
	return c.tableID, c.state == Dragging
}

// Begin начинает перетаскивание. Не стартует в режиме панорамирования и во время другого drag.
func (c *Controller) Begin(tableID int, pointer, tablePos models.Point) bool {
	if c.PanMode() || c.state == Dragging {
		return false
	}
	c.state = Dragging
	c.tableID = tableID
	c.start = pointer
	c.initial = tablePos
	return true
}

// Candidate позиция-кандидат: initial + (pointer - start) / scale.
// Ограничение комнатой и снаппинг делает сцена.
func (c *Controller) Candidate(pointer models.Point, scale float64) (int, models.Point, bool) {
	if c.state != Dragging || scale <= 0 {
		return 0, models.Point{}, false
	}
	return c.tableID, models.Point{
		X: c.initial.X + (pointer.X-c.start.X)/scale,
		Y: c.initial.Y + (pointer.Y-c.start.Y)/scale,
	}, true
}

// End переводит в Idle безусловно.
func (c *Controller) End() bool {
	was := c.state == Dragging
	c.state = Idle
	c.tableID = 0
	return was
}

// Cancel прерывает drag, если перетаскивался именно этот стол (например, его удалили).
func (c *Controller) Cancel(tableID int) {
	if c.state == Dragging && c.tableID == tableID {
		c.End()
	}
}

// ============================================================
// Pan
// ============================================================

func (c *Controller) SetSpaceHeld(held bool) {
	c.spaceHeld = held
}

func (c *Controller) SpaceHeld() bool {
	return c.spaceHeld
}

func (c *Controller) Panning() bool {
	return c.panning
}

// PanMode панорамирование активно или готово (зажат Space).
func (c *Controller) PanMode() bool {
	return c.spaceHeld || c.panning
}

// WantsPan правая кнопка или левая с зажатым Space.
func (c *Controller) WantsPan(button Button) bool {
	return button == ButtonSecondary || (button == ButtonPrimary && c.spaceHeld)
}

// BeginPan запоминает client + scroll.
func (c *Controller) BeginPan(client, scroll models.Point) bool {
	if c.state == Dragging {
		return false
	}
	c.panning = true
	c.panStart = models.Point{X: client.X + scroll.X, Y: client.Y + scroll.Y}
	return true
}

// PanScroll новая прокрутка: panStart - client.
func (c *Controller) PanScroll(client models.Point) (models.Point, bool) {
	if !c.panning {
		return models.Point{}, false
	}
	return models.Point{X: c.panStart.X - client.X, Y: c.panStart.Y - client.Y}, true
}

func (c *Controller) EndPan() bool {
	was := c.panning
	c.panning = false
	return was
}
