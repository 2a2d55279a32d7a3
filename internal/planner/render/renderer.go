package render

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"floorplanner/internal/planner/models"
)

// ============================================================
// Renderer
// ============================================================

// Renderer рисует снимки редактора. Работает только со снимком,
// поэтому экспорт не видит изменений, сделанных после захвата.
type Renderer struct {
	mu     sync.Mutex
	fonts  *Fonts
	logger *zap.Logger
}

func New(logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fonts, err := NewFonts()
	if err != nil {
		return nil, err
	}
	return &Renderer{fonts: fonts, logger: logger}, nil
}

func (r *Renderer) Layout(snap models.Snapshot, mode Mode) Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Layout(snap, mode, r.fonts)
}

// PNG кодирует кадр в PNG.
func (r *Renderer) PNG(w io.Writer, snap models.Snapshot, mode Mode) error {
	if err := CheckCanvas(snap, mode); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	frame := Layout(snap, mode, r.fonts)
	dc := rasterize(frame, r.fonts)
	if err := dc.EncodePNG(w); err != nil {
		r.logger.Error("png encode failed", zap.Error(err))
		return fmt.Errorf("encode png: %w", err)
	}

	r.logger.Debug("png rendered",
		zap.Int("tables", len(frame.Tables)),
		zap.Float64("width", frame.Size.Width),
		zap.Float64("height", frame.Size.Height),
	)
	return nil
}

// SVG векторная версия того же кадра.
func (r *Renderer) SVG(w io.Writer, snap models.Snapshot, mode Mode) error {
	if err := CheckCanvas(snap, mode); err != nil {
		return err
	}

	r.mu.Lock()
	frame := Layout(snap, mode, r.fonts)
	r.mu.Unlock()

	bw := bufio.NewWriter(w)
	writeSVG(bw, frame)
	if err := bw.Flush(); err != nil {
		r.logger.Error("svg write failed", zap.Error(err))
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}
