package render

import (
	"fmt"
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// ============================================================
// Fonts
// ============================================================

type faceKey struct {
	size float64
	bold bool
}

// Fonts кэш font.Face по кеглю. Сами face не потокобезопасны: Renderer сериализует рисование.
type Fonts struct {
	regular *truetype.Font
	bold    *truetype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

func NewFonts() (*Fonts, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &Fonts{
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

// Face кегль округляется до 0.5px, чтобы кэш не рос от дробных zoom.
func (f *Fonts) Face(size float64, bold bool) font.Face {
	key := faceKey{size: math.Round(size*2) / 2, bold: bold}

	f.mu.Lock()
	defer f.mu.Unlock()

	if face, ok := f.faces[key]; ok {
		return face
	}
	ttf := f.regular
	if bold {
		ttf = f.bold
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    key.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	f.faces[key] = face
	return face
}

// Measure реализует Measurer.
func (f *Fonts) Measure(text string, size float64, bold bool) float64 {
	return float64(font.MeasureString(f.Face(size, bold), text)) / 64
}
