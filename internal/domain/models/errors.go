package models

import "errors"

var (
	// ErrDataInsufficient means the model path has too few bars to work with.
	ErrDataInsufficient = errors.New("insufficient historical data")

	// ErrModelUnavailable means the Kronos model service is not reachable
	// or was not available at startup.
	ErrModelUnavailable = errors.New("kronos model unavailable")

	// ErrPredictionFailed means both the model and heuristic paths yielded
	// nothing. This is the only error surfaced to clients.
	ErrPredictionFailed = errors.New("prediction failed")
)
