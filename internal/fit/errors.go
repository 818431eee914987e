package fit

// ErrInvalidConfiguration is returned when a dataset or descent setting is out of range.
// Use errors.Is(err, ErrInvalidConfiguration) to check for this error.
var ErrInvalidConfiguration = &ConfigError{}

// ConfigError describes the offending setting.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "invalid configuration"
	}
	return "invalid configuration: " + e.Field + " " + e.Reason
}

func (e *ConfigError) Is(target error) bool {
	_, ok := target.(*ConfigError)
	return ok
}

func invalid(field, reason string) error {
	return &ConfigError{Field: field, Reason: reason}
}
