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

package repository

import (
	"context"

	"github.com/JohnyYen/ignix-core/types"
)

// Reader defines lookup operations for a generic entity type. FindByID and
// FindOne return (nil, nil) when no row matches; absence is not an error at
// this layer.
type Reader[T any] interface {
	FindAll(ctx context.Context, opts *types.QueryOptions) ([]*T, error)

	FindByID(ctx context.Context, id any) (*T, error)

	FindOne(ctx context.Context, opts *types.QueryOptions) (*T, error)

	Count(ctx context.Context, opts *types.QueryOptions) (int, error)
}

// Writer defines mutation operations fed by column-keyed payloads. Update
// returns (nil, nil) when the identifier does not exist.
type Writer[T any] interface {
	Create(ctx context.Context, data types.JsonObject) (*T, error)

	Update(ctx context.Context, id any, data types.JsonObject) (*T, error)
}

// Lifecycle defines removal and recovery operations. The boolean reports
// whether a row was affected; false means the identifier was not present.
type Lifecycle[T any] interface {
	HardDelete(ctx context.Context, id any) (bool, error)

	SoftDelete(ctx context.Context, id any) (bool, error)

	Restore(ctx context.Context, id any) (bool, error)
}

// Repository combines read, write, and lifecycle operations. Implementations
// must be safe for concurrent use; the service layer invokes them from
// multiple goroutines without coordination.
type Repository[T any] interface {
	Reader[T]
	Writer[T]
	Lifecycle[T]
}
