package service

import (
	"errors"

	"github.com/Olprog59/go-fromagerie/internal/domain"
)

// Error categories returned by every service / Catégories d'erreur retournées par les services
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = domain.ErrValidation
	ErrInternal   = errors.New("internal error")
)

// Error carries a category and a message safe to return to clients
// Porte une catégorie et un message renvoyable au client
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap lets errors.Is match the category / Permet à errors.Is de reconnaître la catégorie
func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}
