package config

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Valid log level strings for the logging.level key.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError}
}

// Validate checks the Config for invalid values
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Renderer,
			validation.Required,
			validation.By(func(value interface{}) error {
				rc, ok := value.(RendererConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a RendererConfig")
				}
				return validation.ValidateStruct(&rc,
					validation.Field(&rc.Command,
						validation.Required,
					),
					validation.Field(&rc.TimeoutSeconds,
						validation.Min(0),
					),
					validation.Field(&rc.ExpectStatus,
						validation.Min(0),
						validation.Max(255),
					),
				)
			}),
		),
		validation.Field(&c.Logging,
			validation.Required,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
					),
					validation.Field(&lc.MaxSizeMB,
						validation.Min(0),
					),
					validation.Field(&lc.MaxBackups,
						validation.Min(0),
					),
					validation.Field(&lc.BufferCapacity,
						validation.Min(1),
					),
				)
			}),
		),
	)
}
