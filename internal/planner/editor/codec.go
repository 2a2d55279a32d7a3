package editor

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// ============================================================
// JSON codec
// ============================================================

type envelope struct {
	Type string `json:"type"`
	ID   *int   `json:"id"`
}

// idRequired команды над конкретным столом. id 0 валиден, поэтому отсутствие поля ошибка.
var idRequired = map[string]bool{
	"remove_table": true,
	"rename_table": true,
	"rotate_table": true,
	"move_table":   true,
	"select_table": true,
}

// Decode разбирает {"type": "add_table", "size": 6} в конкретную команду.
func Decode(data []byte) (Command, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode command: %w", err)
	}

	factory, ok := registry[env.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, env.Type)
	}
	if idRequired[env.Type] && env.ID == nil {
		return nil, fmt.Errorf("decode %s: %w", env.Type, ErrMissingID)
	}

	cmd := factory()
	if err := json.Unmarshal(data, cmd); err != nil {
		return nil, fmt.Errorf("decode %s: %w", env.Type, err)
	}

	// Диспетчер работает со значениями, а не указателями.
	return reflect.ValueOf(cmd).Elem().Interface().(Command), nil
}

// Encode сериализует команду вместе с полем type.
func Encode(cmd Command) ([]byte, error) {
	body, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", cmd.Kind(), err)
	}

	fields := map[string]any{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("encode %s: %w", cmd.Kind(), err)
	}
	fields["type"] = cmd.Kind()

	return json.Marshal(fields)
}
