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
	"errors"

	"github.com/JohnyYen/ignix-core/types"
)

// LegacyService adapts a Service to the conventional value-comma-error
// contract for callers that do not branch on Result tags. Failures surface
// as plain errors whose text is exactly the ServiceError's message, never
// the Result's outer message. Callers that matched on error strings against
// the Result-free predecessors of this layer keep working unchanged.
type LegacyService[T, R any] struct {
	service Service[T, R]
}

// NewLegacyService wraps a Service in the value-comma-error contract.
func NewLegacyService[T, R any](service Service[T, R]) *LegacyService[T, R] {
	return &LegacyService[T, R]{service: service}
}

// unwrap converts a Result into a value and an error. It is the only
// translation the bridge performs; no wrapping, no retries.
func unwrap[V any](res types.Result[V]) (V, error) {
	if res.IsFail() {
		var zero V
		return zero, errors.New(res.Err().Error())
	}
	return res.Data(), nil
}

// List returns all entities matching the options.
func (l *LegacyService[T, R]) List(ctx context.Context, opts *types.QueryOptions) ([]R, error) {
	return unwrap(l.service.List(ctx, opts))
}

// GetByID returns a single entity by its identifier.
func (l *LegacyService[T, R]) GetByID(ctx context.Context, id any) (R, error) {
	return unwrap(l.service.GetByID(ctx, id))
}

// FindOne returns the first entity matching the options; nil means no match.
func (l *LegacyService[T, R]) FindOne(ctx context.Context, opts *types.QueryOptions) (*R, error) {
	return unwrap(l.service.FindOne(ctx, opts))
}

// Create inserts a new entity from a column-keyed payload.
func (l *LegacyService[T, R]) Create(ctx context.Context, data types.JsonObject) (R, error) {
	return unwrap(l.service.Create(ctx, data))
}

// Update modifies an existing entity. The returned pointer is never nil on
// success; nil only accompanies an error.
func (l *LegacyService[T, R]) Update(ctx context.Context, id any, data types.JsonObject) (*R, error) {
	r, err := unwrap(l.service.Update(ctx, id, data))
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// HardDelete permanently removes an entity by its identifier.
func (l *LegacyService[T, R]) HardDelete(ctx context.Context, id any) (bool, error) {
	return unwrap(l.service.HardDelete(ctx, id))
}

// SoftDelete marks an entity as deleted, keeping the row.
func (l *LegacyService[T, R]) SoftDelete(ctx context.Context, id any) (bool, error) {
	return unwrap(l.service.SoftDelete(ctx, id))
}

// Restore brings a soft-deleted entity back.
func (l *LegacyService[T, R]) Restore(ctx context.Context, id any) (bool, error) {
	return unwrap(l.service.Restore(ctx, id))
}

// Count returns the number of entities matching the options.
func (l *LegacyService[T, R]) Count(ctx context.Context, opts *types.QueryOptions) (int, error) {
	return unwrap(l.service.Count(ctx, opts))
}
