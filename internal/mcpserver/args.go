package mcpserver

import (
	"fmt"
	"regexp"
	"strings"
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
var hashPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

func stringArg(args map[string]any, name string) string {
	value, _ := args[name].(string)
	return strings.TrimSpace(value)
}

func requiredStringArg(args map[string]any, name string) (string, error) {
	value := stringArg(args, name)
	if value == "" {
		return "", fmt.Errorf("%s is required", name)
	}

	return value, nil
}

func addressArg(args map[string]any, name string) (string, error) {
	value, err := requiredStringArg(args, name)
	if err != nil {
		return "", err
	}

	if !addressPattern.MatchString(value) {
		return "", fmt.Errorf("%s must be a 0x-prefixed 20-byte address", name)
	}

	return value, nil
}

func hashArg(args map[string]any, name string) (string, error) {
	value, err := requiredStringArg(args, name)
	if err != nil {
		return "", err
	}

	if !hashPattern.MatchString(value) {
		return "", fmt.Errorf("%s must be a 0x-prefixed 32-byte hash", name)
	}

	return value, nil
}

// uintArg reads an optional non-negative integer argument. JSON numbers
// arrive as float64.
func uintArg(args map[string]any, name string) (*uint64, error) {
	raw, present := args[name]
	if !present || raw == nil {
		return nil, nil
	}

	number, ok := raw.(float64)
	if !ok || number < 0 || number != float64(uint64(number)) {
		return nil, fmt.Errorf("%s must be a non-negative integer", name)
	}

	value := uint64(number)

	return &value, nil
}

func intArgDefault(args map[string]any, name string, fallback int) int {
	number, ok := args[name].(float64)
	if !ok {
		return fallback
	}

	return int(number)
}

func boolArg(args map[string]any, name string) bool {
	value, _ := args[name].(bool)
	return value
}

func stringSliceArg(args map[string]any, name string) []string {
	raw, ok := args[name].([]any)
	if !ok {
		return nil
	}

	values := make([]string, 0, len(raw))
	for _, item := range raw {
		if value, isString := item.(string); isString && strings.TrimSpace(value) != "" {
			values = append(values, strings.TrimSpace(value))
		}
	}

	return values
}
