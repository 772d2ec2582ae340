package config

import "github.com/ayoisaiah/presence/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errDecodeConfig = &apperr.Error{
		Message: "decoding config failed",
	}

	errInvalidCLIDuration = &apperr.Error{
		Message: "invalid --%s value: %v",
	}

	errNotPositive = &apperr.Error{
		Message: "%s must be positive, got %v",
	}

	errIdleBelowCadence = &apperr.Error{
		Message: "idle threshold (%v) must not be shorter than the idle check interval (%v)",
	}

	errUnknownSource = &apperr.Error{
		Message: "unknown capture source: %q (expected replay or synthetic)",
	}

	errUnknownDriver = &apperr.Error{
		Message: "unknown store driver: %q (expected bolt or sqlite)",
	}

	errInvalidLogLevel = &apperr.Error{
		Message: "unknown log level: %q",
	}

	errInvalidLogFormat = &apperr.Error{
		Message: "unknown log format: %q (expected json or text)",
	}
)
