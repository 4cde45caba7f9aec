/*
 * Copyright 2025 JohnyYen.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ignix

import (
	"context"
	"github.com/JohnyYen/ignix-core/database"
	"github.com/JohnyYen/ignix-core/repository"
	"github.com/JohnyYen/ignix-core/types"
	"reflect"
	"sync"
)

// Service is the generic CRUD orchestrator. T is the persisted entity type,
// R the response shape handed to callers. Every operation calls the
// repository, normalizes its outcome, and returns a Result; no operation
// returns a Go error or panics on repository failure. A Service holds no
// state between calls and is safe for concurrent use when its repository is.
type Service[T, R any] interface {
	// List returns all entities matching the options, mapped to the
	// response shape in input order.
	List(ctx context.Context, opts *types.QueryOptions) types.Result[[]R]

	// GetByID returns a single entity by its identifier. A missing entity
	// is a NotFoundError failure.
	GetByID(ctx context.Context, id any) types.Result[R]

	// FindOne returns the first entity matching the options. No match is a
	// success carrying a nil payload, not an error.
	FindOne(ctx context.Context, opts *types.QueryOptions) types.Result[*R]

	// Create inserts a new entity from a column-keyed payload. An empty
	// payload is a ValidationError failure and never reaches the repository.
	Create(ctx context.Context, data types.JsonObject) types.Result[R]

	// Update modifies an existing entity from a column-keyed payload. An
	// empty payload is a ValidationError failure; a missing entity is a
	// NotFoundError failure.
	Update(ctx context.Context, id any, data types.JsonObject) types.Result[R]

	// HardDelete permanently removes an entity by its identifier.
	HardDelete(ctx context.Context, id any) types.Result[bool]

	// SoftDelete marks an entity as deleted, keeping the row.
	SoftDelete(ctx context.Context, id any) types.Result[bool]

	// Restore brings a soft-deleted entity back.
	Restore(ctx context.Context, id any) types.Result[bool]

	// Count returns the number of entities matching the options.
	Count(ctx context.Context, opts *types.QueryOptions) types.Result[int]
}

type baseServiceImpl[T, R any] struct {
	repo     repository.Repository[T]
	mapper   func(*T) R
	resource string
	once     sync.Once
}

// Option configures a Service during construction.
type Option[T, R any] func(*baseServiceImpl[T, R])

// WithMapper overrides the entity-to-response hook. The default reinterprets
// the entity value as R and panics when the shapes differ. Panics inside the
// mapper are not normalized into Results; they propagate.
func WithMapper[T, R any](mapper func(*T) R) Option[T, R] {
	return func(s *baseServiceImpl[T, R]) { s.mapper = mapper }
}

// WithResource overrides the resource name used in not-found messages. The
// default is the Go type name of T.
func WithResource[T, R any](name string) Option[T, R] {
	return func(s *baseServiceImpl[T, R]) { s.resource = name }
}

// NewService returns a Service over the given repository.
func NewService[T, R any](repo repository.Repository[T], opts ...Option[T, R]) Service[T, R] {
	s := &baseServiceImpl[T, R]{
		repo:     repo,
		mapper:   func(e *T) R { return any(*e).(R) },
		resource: reflect.TypeOf((*T)(nil)).Elem().Name(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewCrudService returns a Service whose response shape is the entity itself.
func NewCrudService[T any](repo repository.Repository[T], opts ...Option[T, T]) Service[T, T] {
	opts = append([]Option[T, T]{WithMapper[T, T](func(e *T) T { return *e })}, opts...)
	return NewService[T, T](repo, opts...)
}

// NewDatabaseService returns a Service backed by the generic Bun repository
// over the global database connection. The repository is constructed lazily
// on first use, so services can be declared before InitDB has run.
func NewDatabaseService[T any](opts ...Option[T, T]) Service[T, T] {
	return NewCrudService[T](nil, opts...)
}

func (s *baseServiceImpl[T, R]) baseRepo() repository.Repository[T] {
	s.once.Do(func() {
		if s.repo == nil {
			s.repo = repository.NewRepository[T](database.GetDB())
		}
	})
	return s.repo
}

// databaseError wraps a repository failure, keeping the original message
// when there is one and attaching the backend code when one can be extracted.
func (s *baseServiceImpl[T, R]) databaseError(err error) types.ServiceError {
	message := "Unknown database error"
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	if code := database.ErrorCode(err); code != "" {
		return types.NewDatabaseErrorWithCode(message, code)
	}
	return types.NewDatabaseError(message)
}

func (s *baseServiceImpl[T, R]) notFound(id any) types.ServiceError {
	return types.NewNotFoundError(s.resource, id)
}

// mapAll maps every entity through the response hook. Elements carry no
// cross-element dependency, so mapping runs concurrently; the output keeps
// the input order.
func (s *baseServiceImpl[T, R]) mapAll(entities []*T) []R {
	mapped := make([]R, len(entities))
	var wg sync.WaitGroup
	for i, entity := range entities {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mapped[i] = s.mapper(entity)
		}()
	}
	wg.Wait()
	return mapped
}

func (s *baseServiceImpl[T, R]) List(ctx context.Context, opts *types.QueryOptions) types.Result[[]R] {
	entities, err := s.baseRepo().FindAll(ctx, opts)
	if err != nil {
		return types.Fail[[]R](s.databaseError(err))
	}
	return types.Ok(s.mapAll(entities))
}

func (s *baseServiceImpl[T, R]) GetByID(ctx context.Context, id any) types.Result[R] {
	entity, err := s.baseRepo().FindByID(ctx, id)
	if err != nil {
		return types.Fail[R](s.databaseError(err))
	}
	if entity == nil {
		return types.Fail[R](s.notFound(id))
	}
	return types.Ok(s.mapper(entity))
}

func (s *baseServiceImpl[T, R]) FindOne(ctx context.Context, opts *types.QueryOptions) types.Result[*R] {
	entity, err := s.baseRepo().FindOne(ctx, opts)
	if err != nil {
		return types.Fail[*R](s.databaseError(err))
	}
	if entity == nil {
		return types.Ok[*R](nil)
	}
	mapped := s.mapper(entity)
	return types.Ok(&mapped)
}

func (s *baseServiceImpl[T, R]) Create(ctx context.Context, data types.JsonObject) types.Result[R] {
	if len(data) == 0 {
		return types.Fail[R](types.NewValidationError("data", "Create data cannot be empty"))
	}
	entity, err := s.baseRepo().Create(ctx, data)
	if err != nil {
		return types.Fail[R](s.databaseError(err))
	}
	return types.Ok(s.mapper(entity))
}

func (s *baseServiceImpl[T, R]) Update(ctx context.Context, id any, data types.JsonObject) types.Result[R] {
	if len(data) == 0 {
		return types.Fail[R](types.NewValidationError("data", "Update data cannot be empty"))
	}
	entity, err := s.baseRepo().Update(ctx, id, data)
	if err != nil {
		return types.Fail[R](s.databaseError(err))
	}
	if entity == nil {
		return types.Fail[R](s.notFound(id))
	}
	return types.Ok(s.mapper(entity))
}

// lifecycle folds the shared (bool, error) outcome of the delete and restore
// operations into a Result.
func (s *baseServiceImpl[T, R]) lifecycle(id any, ok bool, err error) types.Result[bool] {
	if err != nil {
		return types.Fail[bool](s.databaseError(err))
	}
	if !ok {
		return types.Fail[bool](s.notFound(id))
	}
	return types.Ok(true)
}

func (s *baseServiceImpl[T, R]) HardDelete(ctx context.Context, id any) types.Result[bool] {
	ok, err := s.baseRepo().HardDelete(ctx, id)
	return s.lifecycle(id, ok, err)
}

func (s *baseServiceImpl[T, R]) SoftDelete(ctx context.Context, id any) types.Result[bool] {
	ok, err := s.baseRepo().SoftDelete(ctx, id)
	return s.lifecycle(id, ok, err)
}

func (s *baseServiceImpl[T, R]) Restore(ctx context.Context, id any) types.Result[bool] {
	ok, err := s.baseRepo().Restore(ctx, id)
	return s.lifecycle(id, ok, err)
}

func (s *baseServiceImpl[T, R]) Count(ctx context.Context, opts *types.QueryOptions) types.Result[int] {
	n, err := s.baseRepo().Count(ctx, opts)
	if err != nil {
		return types.Fail[int](s.databaseError(err))
	}
	return types.Ok(n)
}
