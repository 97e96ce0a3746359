package domain

import "errors"

var (
	// ErrInvalidMoneyValue marks a malformed units/nano monetary input.
	ErrInvalidMoneyValue = errors.New("invalid monetary value")
	// ErrMalformedWeight marks a benchmark weight string that failed to parse.
	// The affected row is dropped; the batch continues.
	ErrMalformedWeight = errors.New("malformed benchmark weight")
	// ErrInvalidCashBalance marks a caller contract violation on engine entry.
	ErrInvalidCashBalance = errors.New("invalid cash balance")
	// ErrInvalidRequest marks an empty or malformed query to a collaborator.
	ErrInvalidRequest = errors.New("invalid request")
)
