package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yourorg/rosterhub/internal/domain"
	"github.com/yourorg/rosterhub/internal/observability/metrics"
)

const listCachePrefix = "funcionarios:search:"

// Cache stores serialized list responses keyed by search term. Both the
// Redis wrapper and the in-process cache satisfy it.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// EmployeeService implements the roster operations over the employee
// repository, translating the external field names to storage columns.
type EmployeeService struct {
	repo     domain.EmployeeRepository
	cache    Cache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewEmployeeService creates a new employee service. cache may be nil, in
// which case every list goes to the store.
func NewEmployeeService(repo domain.EmployeeRepository, cache Cache, cacheTTL time.Duration, logger *slog.Logger) *EmployeeService {
	if logger == nil {
		logger = slog.Default()
	}

	return &EmployeeService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// List returns all employees, or those whose name contains search
// case-insensitively. Results are cached per search term until the next
// write invalidates them.
func (s *EmployeeService) List(ctx context.Context, search string) ([]*domain.Employee, error) {
	key := listCachePrefix + strings.ToLower(search)

	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, key); ok {
			var cached []*domain.Employee
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				metrics.ObserveCacheLookup("hit")
				return cached, nil
			}
		}
		metrics.ObserveCacheLookup("miss")
	}

	employees, err := s.repo.List(ctx, search)
	if err != nil {
		metrics.ObserveEmployeeOp("list", "error")
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	metrics.ObserveEmployeeOp("list", "success")

	if s.cache != nil {
		if raw, err := json.Marshal(employees); err == nil {
			if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
				s.logger.Warn("failed to cache employee list", slog.String("error", err.Error()))
			}
		}
	}

	return employees, nil
}

// Create inserts a new employee. No field validation happens here; whatever
// the caller supplied goes to the store, which may enforce its own
// constraints.
func (s *EmployeeService) Create(ctx context.Context, in *domain.EmployeeInput) error {
	if err := s.repo.Create(ctx, in); err != nil {
		metrics.ObserveEmployeeOp("create", "error")
		return fmt.Errorf("failed to create employee: %w", err)
	}

	metrics.ObserveEmployeeOp("create", "success")
	s.invalidateListCache(ctx)
	return nil
}

// updatableFields maps external payload fields to their storage columns.
// dataNascimento is the only field whose storage name differs.
var updatableFields = []struct {
	column string
	value  func(*domain.EmployeeInput) string
}{
	{"nome", func(in *domain.EmployeeInput) string { return in.Nome }},
	{"cargo", func(in *domain.EmployeeInput) string { return in.Cargo }},
	{"email", func(in *domain.EmployeeInput) string { return in.Email }},
	{"cpf", func(in *domain.EmployeeInput) string { return in.CPF }},
	{"data_nascimento", func(in *domain.EmployeeInput) string { return in.DataNascimento }},
	{"telefone", func(in *domain.EmployeeInput) string { return in.Telefone }},
}

// Update applies a partial update to the employee matching id. Only fields
// supplied with a non-empty value enter the change-set, so an empty string
// means "not supplied" and this operation cannot clear a field. An empty
// change-set is domain.ErrNothingToUpdate; a change-set that matches no row
// is domain.ErrNotFound.
func (s *EmployeeService) Update(ctx context.Context, id int64, in *domain.EmployeeInput) error {
	changes := map[string]string{}
	if in != nil {
		for _, f := range updatableFields {
			if v := f.value(in); v != "" {
				changes[f.column] = v
			}
		}
	}

	if len(changes) == 0 {
		return domain.ErrNothingToUpdate
	}

	affected, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		metrics.ObserveEmployeeOp("update", "error")
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if affected == 0 {
		metrics.ObserveEmployeeOp("update", "not_found")
		return domain.ErrNotFound
	}

	metrics.ObserveEmployeeOp("update", "success")
	s.invalidateListCache(ctx)
	return nil
}

// Delete removes the employee matching id. Zero rows affected is
// domain.ErrNotFound.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		metrics.ObserveEmployeeOp("delete", "error")
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if affected == 0 {
		metrics.ObserveEmployeeOp("delete", "not_found")
		return domain.ErrNotFound
	}

	metrics.ObserveEmployeeOp("delete", "success")
	s.invalidateListCache(ctx)
	return nil
}

// invalidateListCache drops cached list responses after a write. Cache
// failures are logged, never surfaced to the caller.
func (s *EmployeeService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPrefix(ctx, listCachePrefix); err != nil {
		s.logger.Warn("failed to invalidate employee cache", slog.String("error", err.Error()))
	}
}
