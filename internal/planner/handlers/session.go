package handlers

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"floorplanner/internal/planner/editor"
	"floorplanner/internal/planner/models"
)

// ============================================================
// Editor Session
// ============================================================

// Session единственная сессия редактора. HTTP-запросы идут параллельно,
// а редактор однопоточный: все команды проходят под мьютексом.
type Session struct {
	mu     sync.Mutex
	id     string
	editor *editor.Editor
}

// NewSession id обычно совпадает с id сессии журнала; пустой id генерируется.
func NewSession(id string, e *editor.Editor) *Session {
	if id == "" {
		id = uuid.NewString()
	}
	return &Session{
		id:     id,
		editor: e,
	}
}

func (s *Session) ID() string {
	return s.id
}

// Dispatch применяет команду и возвращает снимок сразу после нее.
func (s *Session) Dispatch(ctx context.Context, cmd editor.Command) (editor.Result, models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.editor.Dispatch(ctx, cmd)
	return res, s.editor.Snapshot(), err
}

// Snapshot неизменяемая копия для рендеринга вне блокировки.
func (s *Session) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.editor.Snapshot()
}
