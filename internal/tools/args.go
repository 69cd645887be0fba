package tools

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// decodeArgs maps a dynamic argument map onto a typed argument struct.
// Weak typing tolerates JSON numbers arriving as float64 for integer
// fields. A failure here is a malformed inbound argument structure and
// therefore fatal.
func decodeArgs(args map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("malformed arguments: %w", err)
	}

	if err := decoder.Decode(args); err != nil {
		return fmt.Errorf("malformed arguments: %w", err)
	}

	return nil
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func intOrDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func stringOrDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
