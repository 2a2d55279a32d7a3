package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"floorplanner/internal/planner/editor"
	"floorplanner/internal/planner/export"
	"floorplanner/internal/planner/journal"
	"floorplanner/internal/planner/models"
	"floorplanner/internal/planner/render"
)

// CommandLog журнал, который отдается по /journal.
type CommandLog interface {
	List(ctx context.Context) ([]journal.Entry, error)
	Ping(ctx context.Context) error
}

// ============================================================
// Planner Handler
// ============================================================

type PlannerHandler struct {
	session  *Session
	log      CommandLog
	renderer *render.Renderer
	now      func() time.Time
	logger   *zap.Logger
}

func NewPlannerHandler(session *Session, log CommandLog, renderer *render.Renderer, logger *zap.Logger) *PlannerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlannerHandler{
		session:  session,
		log:      log,
		renderer: renderer,
		now:      time.Now,
		logger:   logger,
	}
}

type commandResponse struct {
	Result editor.Result   `json:"result"`
	State  models.Snapshot `json:"state"`
}

type journalResponse struct {
	SessionID string          `json:"session_id"`
	Entries   []journal.Entry `json:"entries"`
}

// Register вешает маршруты управления на router.
func (h *PlannerHandler) Register(router fiber.Router) {
	router.Get("/health/live", LivenessProbe)
	router.Get("/health/ready", h.ReadinessProbe)

	router.Post("/commands", h.ExecuteCommand)
	router.Get("/state", h.GetState)
	router.Get("/journal", h.GetJournal)

	router.Get("/export.png", h.ExportPNG)
	router.Get("/export.svg", h.ExportSVG)
	router.Get("/export.xlsx", h.ExportXLSX)
	router.Get("/frame.png", h.FramePNG)
}

// ExecuteCommand принимает {"type": "...", ...} и возвращает результат и новое состояние.
func (h *PlannerHandler) ExecuteCommand(c fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "body required"})
	}

	cmd, err := editor.Decode(c.Body())
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	res, snap, err := h.session.Dispatch(context.Background(), cmd)
	if err != nil {
		if isRejected(err) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.Error("command failed", zap.String("type", cmd.Kind()), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(commandResponse{Result: res, State: snap})
}

func (h *PlannerHandler) GetState(c fiber.Ctx) error {
	return c.JSON(h.session.Snapshot())
}

func (h *PlannerHandler) GetJournal(c fiber.Ctx) error {
	entries, err := h.log.List(context.Background())
	if err != nil {
		h.logger.Error("journal list failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(journalResponse{SessionID: h.session.ID(), Entries: entries})
}

// ============================================================
// Exports
// ============================================================

func (h *PlannerHandler) ExportPNG(c fiber.Ctx) error {
	return h.artifact(c, export.ExtPNG, true, func(w io.Writer, snap models.Snapshot) error {
		return h.renderer.PNG(w, snap, render.Export)
	})
}

func (h *PlannerHandler) ExportSVG(c fiber.Ctx) error {
	return h.artifact(c, export.ExtSVG, true, func(w io.Writer, snap models.Snapshot) error {
		return h.renderer.SVG(w, snap, render.Export)
	})
}

func (h *PlannerHandler) ExportXLSX(c fiber.Ctx) error {
	return h.artifact(c, export.ExtXLSX, true, export.Schedule)
}

// FramePNG текущий видимый холст без полей и заголовка.
func (h *PlannerHandler) FramePNG(c fiber.Ctx) error {
	return h.artifact(c, export.ExtPNG, false, func(w io.Writer, snap models.Snapshot) error {
		return h.renderer.PNG(w, snap, render.Live)
	})
}

// artifact снимает снимок под блокировкой и рендерит его уже без нее.
func (h *PlannerHandler) artifact(c fiber.Ctx, ext string, download bool, write func(io.Writer, models.Snapshot) error) error {
	snap := h.session.Snapshot()

	var buf bytes.Buffer
	if err := write(&buf, snap); err != nil {
		if errors.Is(err, render.ErrCanvasTooLarge) {
			h.logger.Warn("export refused", zap.String("format", ext), zap.Error(err))
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.Error("export failed", zap.String("format", ext), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "export failed"})
	}

	c.Set(fiber.HeaderContentType, export.ContentTypes[ext])
	if download {
		c.Set(fiber.HeaderContentDisposition, export.Disposition(ext, h.now()))
	}
	return c.Send(buf.Bytes())
}

func isRejected(err error) bool {
	return errors.Is(err, editor.ErrInvalidRoom) ||
		errors.Is(err, editor.ErrInvalidSize) ||
		errors.Is(err, editor.ErrUnknownToggle) ||
		errors.Is(err, editor.ErrUnknownCommand)
}
