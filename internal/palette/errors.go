package palette

import "fmt"

// ParseError reports a colour query that is not six hex digits.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("palette: invalid hex colour %q", e.Input)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConfigError reports an unusable palette.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("palette: %s: %v", e.Reason, e.Err)
	}
	return "palette: " + e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Err }
