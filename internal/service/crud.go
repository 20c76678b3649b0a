package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Olprog59/go-fromagerie/internal/domain"
	"github.com/Olprog59/go-fromagerie/internal/ports"
	"github.com/Olprog59/go-fromagerie/internal/repository/db"
)

// Operation outcomes reported to the recorder / Résultats d'opération transmis à l'enregistreur
const (
	OutcomeSuccess    = "success"
	OutcomeNotFound   = "not_found"
	OutcomeConflict   = "conflict"
	OutcomeValidation = "validation"
	OutcomeError      = "error"
)

// OperationRecorder records CRUD operation metrics / Enregistre les métriques des opérations CRUD
type OperationRecorder interface {
	RecordOperation(entity, operation, outcome string)
}

type noopRecorder struct{}

func (noopRecorder) RecordOperation(string, string, string) {}

// Rules describe what one entity adds to the generic CRUD flow / Décrivent l'apport d'une entité au flux CRUD générique
type Rules[T any, K comparable, P any] struct {
	Entity  string // singular name used in messages
	KeyName string // key field name used in messages

	New      func() *T
	Apply    func(P, *T)
	Validate func(*T) error
	KeyOf    func(*T) K
	Prepare  func(*T) // optional, runs on create before validation
}

// CRUDService applies validation and error categories around a repository
// Applique la validation et les catégories d'erreur autour d'un repository
type CRUDService[T any, K comparable, P any] struct {
	repo    ports.Repository[T, K]
	rules   Rules[T, K, P]
	metrics OperationRecorder
}

// NewCRUDService creates a CRUD service; metrics may be nil / Crée un service CRUD ; metrics peut être nil
func NewCRUDService[T any, K comparable, P any](repo ports.Repository[T, K], rules Rules[T, K, P], metrics OperationRecorder) *CRUDService[T, K, P] {
	if metrics == nil {
		metrics = noopRecorder{}
	}
	return &CRUDService[T, K, P]{repo: repo, rules: rules, metrics: metrics}
}

// Entity returns the singular entity name / Retourne le nom de l'entité
func (s *CRUDService[T, K, P]) Entity() string {
	return s.rules.Entity
}

// List returns every entity / Retourne toutes les entités
func (s *CRUDService[T, K, P]) List(ctx context.Context) ([]*T, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.fail("list", err, nil)
	}
	s.record("list", OutcomeSuccess)
	return items, nil
}

// Get retrieves one entity by key / Récupère une entité par clé
func (s *CRUDService[T, K, P]) Get(ctx context.Context, id K) (*T, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail("get", err, &id)
	}
	s.record("get", OutcomeSuccess)
	return item, nil
}

// Create builds an entity from its defaults and patch, then stores it
// Construit une entité à partir de ses défauts et du patch, puis la stocke
func (s *CRUDService[T, K, P]) Create(ctx context.Context, patch P) (*T, error) {
	entity := s.rules.New()
	s.rules.Apply(patch, entity)
	if s.rules.Prepare != nil {
		s.rules.Prepare(entity)
	}
	if err := s.rules.Validate(entity); err != nil {
		return nil, s.fail("create", err, nil)
	}

	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		key := s.rules.KeyOf(entity)
		return nil, s.fail("create", err, &key)
	}
	s.record("create", OutcomeSuccess)
	return created, nil
}

// Update applies the fields present in patch / Applique les champs présents dans le patch
func (s *CRUDService[T, K, P]) Update(ctx context.Context, id K, patch P) (*T, error) {
	updated, err := s.repo.Update(ctx, id, func(current *T) error {
		s.rules.Apply(patch, current)
		if s.rules.KeyOf(current) != id {
			return &domain.FieldError{Field: s.rules.KeyName, Message: "cannot be changed"}
		}
		return s.rules.Validate(current)
	})
	if err != nil {
		return nil, s.fail("update", err, &id)
	}
	s.record("update", OutcomeSuccess)
	return updated, nil
}

// Delete removes one entity / Supprime une entité
func (s *CRUDService[T, K, P]) Delete(ctx context.Context, id K) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.fail("delete", err, &id)
	}
	s.record("delete", OutcomeSuccess)
	return nil
}

// fail maps a repository or validation error onto a category / Associe l'erreur à une catégorie
func (s *CRUDService[T, K, P]) fail(op string, err error, id *K) error {
	var (
		fieldErr *domain.FieldError
		dupErr   *db.DuplicateError
	)

	switch {
	case errors.As(err, &fieldErr):
		s.record(op, OutcomeValidation)
		return newError(ErrValidation, fieldErr.Error())

	case errors.Is(err, db.ErrNoRecord):
		s.record(op, OutcomeNotFound)
		if id == nil {
			return newError(ErrNotFound, fmt.Sprintf("%s not found", s.rules.Entity))
		}
		return newError(ErrNotFound, fmt.Sprintf("%s with %s %v not found", s.rules.Entity, s.rules.KeyName, *id))

	case errors.Is(err, db.ErrDuplicate):
		s.record(op, OutcomeConflict)
		if !errors.As(err, &dupErr) || dupErr.Column == "" {
			return newError(ErrConflict, fmt.Sprintf("%s already exists", s.rules.Entity))
		}
		return newError(ErrConflict, fmt.Sprintf("%s with %s %q already exists", s.rules.Entity, dupErr.Column, fmt.Sprint(dupErr.Value)))

	case errors.Is(err, db.ErrForeignKeyViolation) && op == "delete":
		s.record(op, OutcomeConflict)
		return newError(ErrConflict, fmt.Sprintf("%s with %s %v is still referenced", s.rules.Entity, s.rules.KeyName, *id))

	case errors.Is(err, db.ErrForeignKeyViolation):
		s.record(op, OutcomeValidation)
		return newError(ErrValidation, fmt.Sprintf("%s references a record that does not exist", s.rules.Entity))

	case errors.Is(err, db.ErrCheckViolation):
		s.record(op, OutcomeValidation)
		return newError(ErrValidation, fmt.Sprintf("%s violates a constraint: %v", s.rules.Entity, err))

	case errors.Is(err, ErrValidation):
		s.record(op, OutcomeValidation)
		return newError(ErrValidation, err.Error())
	}

	s.record(op, OutcomeError)
	slog.Error("storage operation failed", "entity", s.rules.Entity, "operation", op, "err", err)
	return newError(ErrInternal, err.Error())
}

func (s *CRUDService[T, K, P]) record(op, outcome string) {
	s.metrics.RecordOperation(s.rules.Entity, op, outcome)
}
