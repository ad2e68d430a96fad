package domain

import "errors"

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrOutOfRange     Error = "column must be between 0 and 6"
	ErrColumnFull     Error = "column is full"
	ErrGameOver       Error = "game is already over"
	ErrNotYourTurn    Error = "not your turn"
	ErrSessionMissing Error = "game not found"
	ErrNoValidMove    Error = "no valid moves available"
	ErrUnknownPlayer  Error = "player must be 1 or 2"
	ErrUnknownBot     Error = "unknown opponent strategy"
	ErrSessionExists  Error = "game already exists"
	ErrCorruptSession Error = "game state is corrupt"
)

// ErrorKind groups errors by how a caller should react to them.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindTurn       ErrorKind = "turn"
	KindNotFound   ErrorKind = "not_found"
	KindExhausted  ErrorKind = "exhausted"
	KindInternal   ErrorKind = "internal"
)

func (e Error) Kind() ErrorKind {
	switch e {
	case ErrOutOfRange, ErrColumnFull, ErrUnknownPlayer, ErrUnknownBot:
		return KindValidation
	case ErrGameOver, ErrNotYourTurn:
		return KindTurn
	case ErrSessionMissing:
		return KindNotFound
	case ErrNoValidMove:
		return KindExhausted
	}
	return KindInternal
}

// KindOf classifies err. Anything that is not a known domain error is internal.
func KindOf(err error) ErrorKind {
	var de Error
	if errors.As(err, &de) {
		return de.Kind()
	}
	return KindInternal
}
