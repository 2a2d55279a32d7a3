package journal

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"floorplanner/internal/planner/editor"
)

// ReadLines читает скрипт команд: по JSON-объекту в строке.
// Пустые строки и строки, начинающиеся с '#', пропускаются.
func ReadLines(r io.Reader) ([]editor.Command, error) {
	var cmds []editor.Command

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 || text[0] == '#' {
			continue
		}
		cmd, err := editor.Decode(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cmds = append(cmds, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return cmds, nil
}

// Replay применяет команды по порядку. Останавливается на первой ошибке.
func Replay(ctx context.Context, e *editor.Editor, cmds []editor.Command) error {
	for i, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := e.Dispatch(ctx, cmd); err != nil {
			return fmt.Errorf("command %d (%s): %w", i+1, cmd.Kind(), err)
		}
	}
	return nil
}
