package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"floorplanner/internal/common/config"
	"floorplanner/internal/common/logger"
	"floorplanner/internal/common/middleware"
	"floorplanner/internal/planner/editor"
	"floorplanner/internal/planner/handlers"
	"floorplanner/internal/planner/journal"
	"floorplanner/internal/planner/models"
	"floorplanner/internal/planner/render"
)

// ============================================================
// Floor Planner Service
// ============================================================

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found; continuing with environment variables")
	}
	cfg := config.Load()

	zlog, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, "floor-planner")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	db, err := journal.OpenMemory()
	if err != nil {
		zlog.Fatal("open journal db", zap.Error(err))
	}
	commands, err := journal.New(context.Background(), db, zlog.Named("journal"))
	if err != nil {
		zlog.Fatal("init journal", zap.Error(err))
	}
	defer commands.Close()

	planner := editor.New(editor.Options{
		Room:       models.Room{Length: cfg.Planner.RoomLength, Width: cfg.Planner.RoomWidth},
		BaseScale:  cfg.Planner.BaseScale,
		Unit:       cfg.Planner.Unit,
		TableSizes: cfg.Planner.TableSizes,
		Container:  models.Size{Width: cfg.Planner.ContainerWidth, Height: cfg.Planner.ContainerHeight},
		Logger:     zlog.Named("editor"),
	})
	planner.SetRecorder(commands)
	planner.Subscribe(func(s models.Snapshot) {
		zlog.Debug("state changed", zap.Int("tables", len(s.Tables)), zap.Float64("zoom", s.View.ZoomLevel))
	})

	renderer, err := render.New(zlog.Named("render"))
	if err != nil {
		zlog.Fatal("init renderer", zap.Error(err))
	}

	session := handlers.NewSession(commands.SessionID(), planner)
	plannerHandler := handlers.NewPlannerHandler(session, commands, renderer, zlog.Named("http"))

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Floor Planner",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.ForFormat(cfg.LogFormat, zlog.Named("access")))
	app.Use(middleware.CORS(cfg.CORSOrigins))

	// ============================================================
	// Planner Routes
	// ============================================================

	plannerHandler.Register(app)

	// ============================================================
	// Server Start
	// ============================================================

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		zlog.Info("shutting down")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			zlog.Error("shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Port)
	zlog.Info("starting floor planner",
		zap.String("addr", addr),
		zap.String("env", cfg.Environment),
		zap.String("session_id", session.ID()),
	)

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
