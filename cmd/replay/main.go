package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"floorplanner/internal/common/config"
	"floorplanner/internal/common/logger"
	"floorplanner/internal/planner/editor"
	"floorplanner/internal/planner/export"
	"floorplanner/internal/planner/journal"
	"floorplanner/internal/planner/models"
	"floorplanner/internal/planner/render"
)

// ============================================================
// Replay CLI
// ============================================================

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found; continuing with environment variables")
	}
	cfg := config.Load()

	script := flag.String("script", "-", "JSON-lines command script, - for stdin")
	outDir := flag.String("out", cfg.Planner.ExportDir, "directory for exported artifacts")
	flag.Parse()

	zlog, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, "floor-planner-replay")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	if err := run(context.Background(), cfg, *script, *outDir, zlog); err != nil {
		zlog.Fatal("replay failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, script, outDir string, zlog *zap.Logger) error {
	in, err := openScript(script)
	if err != nil {
		return err
	}
	defer in.Close()

	cmds, err := journal.ReadLines(in)
	if err != nil {
		return err
	}

	planner := editor.New(editor.Options{
		Room:       models.Room{Length: cfg.Planner.RoomLength, Width: cfg.Planner.RoomWidth},
		BaseScale:  cfg.Planner.BaseScale,
		Unit:       cfg.Planner.Unit,
		TableSizes: cfg.Planner.TableSizes,
		Container:  models.Size{Width: cfg.Planner.ContainerWidth, Height: cfg.Planner.ContainerHeight},
		Logger:     zlog.Named("editor"),
	})
	if err := journal.Replay(ctx, planner, cmds); err != nil {
		return err
	}

	snap := planner.Snapshot()
	renderer, err := render.New(zlog.Named("render"))
	if err != nil {
		return err
	}

	storage := export.NewStorage(outDir)
	now := time.Now()
	artifacts := []struct {
		ext   string
		write func(io.Writer) error
	}{
		{export.ExtPNG, func(w io.Writer) error { return renderer.PNG(w, snap, render.Export) }},
		{export.ExtSVG, func(w io.Writer) error { return renderer.SVG(w, snap, render.Export) }},
		{export.ExtXLSX, func(w io.Writer) error { return export.Schedule(w, snap) }},
	}
	for _, a := range artifacts {
		var buf bytes.Buffer
		if err := a.write(&buf); err != nil {
			return fmt.Errorf("export %s: %w", a.ext, err)
		}
		path, err := storage.Save(a.ext, now, buf.Bytes())
		if err != nil {
			return err
		}
		zlog.Info("artifact written", zap.String("path", path), zap.Int("bytes", buf.Len()))
	}

	zlog.Info("replay complete",
		zap.Int("commands", len(cmds)),
		zap.String("summary", snap.Summary),
		zap.String("dir", storage.Root()),
	)
	return nil
}

func openScript(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	return f, nil
}
