package finrag

import "errors"

// Sentinel errors returned by the public API. Guardrail rejections are
// returned as-is so callers can match them with errors.Is; internal layer
// failures are wrapped with helper.NewError instead.
var (
	// ErrQueryTooShort is returned for queries under four characters that
	// also carry no recognizable entities.
	ErrQueryTooShort = errors.New("finrag: query too short")

	// ErrQueryTooLong is returned for queries over the maximum length.
	ErrQueryTooLong = errors.New("finrag: query too long")

	// ErrQueryOutOfScope is returned when no company, year, metric or
	// section could be extracted from the query.
	ErrQueryOutOfScope = errors.New("finrag: query matches no known companies, years, metrics or sections")

	// ErrNoResults is returned when retrieval produced no hits above the
	// similarity floor.
	ErrNoResults = errors.New("finrag: no results above the similarity floor")

	// ErrInvalidConfig is returned for configurations that fail validation.
	ErrInvalidConfig = errors.New("finrag: invalid configuration")

	// ErrMissingEnvVariable is returned when required database environment
	// variables are not set.
	ErrMissingEnvVariable = errors.New("finrag: missing environment variable")
)
