package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"go.uber.org/zap"

	"floorplanner/internal/planner/editor"
)

var ErrClosed = errors.New("journal closed")

// MemoryDSN база живет, пока открыто единственное соединение.
const MemoryDSN = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS commands (
    seq         INTEGER NOT NULL,
    session_id  TEXT    NOT NULL,
    type        TEXT    NOT NULL,
    payload     TEXT    NOT NULL,
    recorded_at TEXT    NOT NULL,
    PRIMARY KEY (session_id, seq)
)`

type Entry struct {
	Seq        int64           `json:"seq"`
	SessionID  string          `json:"session_id"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// ============================================================
// SQLite Journal
// ============================================================

// Journal журнал команд одной сессии редактора. Ничего не переживает перезапуск.
type Journal struct {
	mu      sync.Mutex
	db      *sql.DB
	session string
	seq     int64
	closed  bool
	now     func() time.Time
	logger  *zap.Logger
}

// OpenMemory открывает sqlite в памяти процесса.
func OpenMemory() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", MemoryDSN)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// New применяет схему и начинает новую сессию с uuid.
func New(ctx context.Context, db *sql.DB, logger *zap.Logger) (*Journal, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	j := &Journal{
		db:      db,
		session: uuid.NewString(),
		now:     time.Now,
		logger:  logger,
	}
	logger.Info("journal session started", zap.String("session_id", j.session))
	return j, nil
}

func (j *Journal) SessionID() string {
	return j.session
}

// Record реализует editor.Recorder.
func (j *Journal) Record(ctx context.Context, cmd editor.Command) error {
	payload, err := editor.Encode(cmd)
	if err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return ErrClosed
	}

	seq := j.seq + 1
	_, err = j.db.ExecContext(ctx, `
        INSERT INTO commands (seq, session_id, type, payload, recorded_at)
        VALUES (?, ?, ?, ?, ?)
    `, seq, j.session, cmd.Kind(), string(payload), j.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert command: %w", err)
	}
	j.seq = seq
	return nil
}

// List все записи текущей сессии по порядку.
func (j *Journal) List(ctx context.Context) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil, ErrClosed
	}

	rows, err := j.db.QueryContext(ctx, `
        SELECT seq, session_id, type, payload, recorded_at
        FROM commands
        WHERE session_id = ?
        ORDER BY seq
    `, j.session)
	if err != nil {
		return nil, fmt.Errorf("query commands: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e          Entry
			payload    string
			recordedAt string
		)
		if err := rows.Scan(&e.Seq, &e.SessionID, &e.Type, &payload, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan command: %w", err)
		}
		e.Payload = json.RawMessage(payload)
		if e.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt); err != nil {
			return nil, fmt.Errorf("parse recorded_at: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate commands: %w", err)
	}
	return entries, nil
}

// Commands команды сессии в виде, пригодном для Replay.
func (j *Journal) Commands(ctx context.Context) ([]editor.Command, error) {
	entries, err := j.List(ctx)
	if err != nil {
		return nil, err
	}
	cmds := make([]editor.Command, 0, len(entries))
	for _, e := range entries {
		cmd, err := editor.Decode(e.Payload)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", e.Seq, err)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// Ping готовность для /health/ready.
func (j *Journal) Ping(ctx context.Context) error {
	j.mu.Lock()
	closed := j.closed
	j.mu.Unlock()
	if closed {
		return ErrClosed
	}
	return j.db.PingContext(ctx)
}

// Close закрывает базу; содержимое журнала теряется.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil
	}
	j.closed = true
	return j.db.Close()
}
