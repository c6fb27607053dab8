package store

import (
	"fmt"
	"strings"
)

// CheckReadOnly rejects anything but a single SELECT or WITH statement. The
// journal sql command is for analysis only.
func CheckReadOnly(query string) error {
	trimmed := strings.TrimSpace(query)
	trimmed = strings.TrimSuffix(trimmed, ";")
	if trimmed == "" {
		return fmt.Errorf("query is required")
	}
	if strings.Contains(trimmed, ";") {
		return fmt.Errorf("only a single statement is allowed")
	}
	first := strings.ToUpper(strings.Fields(trimmed)[0])
	if first != "SELECT" && first != "WITH" {
		return fmt.Errorf("only SELECT queries are allowed, got %s", first)
	}
	return nil
}

// PositionalArgs orders params keyed "1", "2", ... into positional arguments.
func PositionalArgs(params map[string]any) []any {
	args := make([]any, 0, len(params))
	for i := 1; i <= len(params); i++ {
		if val, ok := params[fmt.Sprint(i)]; ok {
			args = append(args, val)
		}
	}
	return args
}
