package viewport

import "time"

// ============================================================
// Pan hint
// ============================================================

const (
	HintVisibleFor = 3 * time.Second
	HintFadeFor    = 500 * time.Millisecond
)

type HintPhase string

const (
	HintHidden    HintPhase = "hidden"
	HintShown     HintPhase = "shown"
	HintFading    HintPhase = "fading"
	HintDismissed HintPhase = "dismissed"
)

// PanHint одноразовая подсказка. Фаза вычисляется от момента показа, таймеров нет.
type PanHint struct {
	shown   bool
	shownAt time.Time
	pinned  bool
}

// Trigger показывает подсказку один раз за сессию.
func (h *PanHint) Trigger(now time.Time) bool {
	if h.shown {
		return false
	}
	h.shown = true
	h.shownAt = now
	return true
}

// Pin держит подсказку видимой (пока зажат Space), не расходуя одноразовый показ.
func (h *PanHint) Pin(on bool) {
	h.pinned = on
}

func (h *PanHint) Phase(now time.Time) HintPhase {
	if h.pinned {
		return HintShown
	}
	if !h.shown {
		return HintHidden
	}
	elapsed := now.Sub(h.shownAt)
	switch {
	case elapsed < HintVisibleFor:
		return HintShown
	case elapsed < HintVisibleFor+HintFadeFor:
		return HintFading
	default:
		return HintDismissed
	}
}
