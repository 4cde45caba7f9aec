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
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"

	"github.com/JohnyYen/ignix-core/types"
)

// BunRepository is the reference Repository implementation backed by a Bun
// database. Soft delete and restore require the model to declare a Bun
// soft-delete column; hard delete works for any model.
type BunRepository[T any] struct {
	db *bun.DB
}

var _ Repository[struct{}] = (*BunRepository[struct{}])(nil)

// NewRepository returns a generic repository backed by the provided Bun DB.
func NewRepository[T any](db *bun.DB) *BunRepository[T] {
	return &BunRepository[T]{db: db}
}

func (r *BunRepository[T]) Dialect() schema.Dialect { return r.db.Dialect() }

func (r *BunRepository[T]) NewSelect() *bun.SelectQuery { return r.db.NewSelect() }

func (r *BunRepository[T]) NewInsert() *bun.InsertQuery { return r.db.NewInsert() }

func (r *BunRepository[T]) NewUpdate() *bun.UpdateQuery { return r.db.NewUpdate() }

func (r *BunRepository[T]) NewDelete() *bun.DeleteQuery { return r.db.NewDelete() }

func (r *BunRepository[T]) table() *schema.Table {
	return r.db.Table(reflect.TypeOf((*T)(nil)).Elem())
}

func (r *BunRepository[T]) pk() (*schema.Field, error) {
	table := r.table()
	if len(table.PKs) != 1 {
		return nil, fmt.Errorf("model %s must have exactly one primary key, got %d", table.TypeName, len(table.PKs))
	}
	return table.PKs[0], nil
}

func (r *BunRepository[T]) FindAll(ctx context.Context, opts *types.QueryOptions) ([]*T, error) {
	var entities []*T
	query := applyOptions(r.db.NewSelect().Model(&entities), opts)
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *BunRepository[T]) FindByID(ctx context.Context, id any) (*T, error) {
	pk, err := r.pk()
	if err != nil {
		return nil, err
	}
	entity := new(T)
	err = r.db.NewSelect().Model(entity).Where("? = ?", bun.Ident(pk.Name), id).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *BunRepository[T]) FindOne(ctx context.Context, opts *types.QueryOptions) (*T, error) {
	entity := new(T)
	query := applyOptions(r.db.NewSelect().Model(entity), opts)
	err := query.Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *BunRepository[T]) Count(ctx context.Context, opts *types.QueryOptions) (int, error) {
	query := r.db.NewSelect().Model((*T)(nil))
	if filter := opts.GetFilter(); filter != nil {
		query = query.Where(filter.Schema, filter.Args...)
	}
	return query.Count(ctx)
}

// Query executes a raw WHERE clause and maps the results to entities.
func (r *BunRepository[T]) Query(ctx context.Context, query string, args ...interface{}) ([]*T, error) {
	var entities []*T
	err := r.db.NewSelect().Model(&entities).Where(query, args...).Scan(ctx)
	return entities, err
}

func (r *BunRepository[T]) Create(ctx context.Context, data types.JsonObject) (*T, error) {
	pk, err := r.pk()
	if err != nil {
		return nil, err
	}
	entity := new(T)
	if err := r.applyPayload(entity, data); err != nil {
		return nil, err
	}

	strct := reflect.ValueOf(entity).Elem()
	if !pk.AutoIncrement && pk.IndirectType.Kind() == reflect.String && pk.HasZeroValue(strct) {
		if err := pk.ScanValue(strct, uuid.NewString()); err != nil {
			return nil, err
		}
	}

	if _, err := r.db.NewInsert().Model(entity).Exec(ctx); err != nil {
		return nil, err
	}

	// Re-read so backend-assigned values (autoincrement keys, column
	// defaults) are reflected in the returned entity.
	created, err := r.FindByID(ctx, pk.Value(strct).Interface())
	if err != nil {
		return nil, err
	}
	if created == nil {
		return entity, nil
	}
	return created, nil
}

func (r *BunRepository[T]) Update(ctx context.Context, id any, data types.JsonObject) (*T, error) {
	table := r.table()
	for column := range data {
		if field, ok := table.FieldMap[column]; ok && field.IsPK {
			return nil, fmt.Errorf("primary key column %q cannot be updated", column)
		}
	}

	entity, err := r.FindByID(ctx, id)
	if err != nil || entity == nil {
		return nil, err
	}
	if err := r.applyPayload(entity, data); err != nil {
		return nil, err
	}

	columns := make([]string, 0, len(data))
	for column := range data {
		columns = append(columns, column)
	}
	if _, err := r.db.NewUpdate().Model(entity).Column(columns...).WherePK().Exec(ctx); err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *BunRepository[T]) HardDelete(ctx context.Context, id any) (bool, error) {
	pk, err := r.pk()
	if err != nil {
		return false, err
	}
	res, err := r.db.NewDelete().
		Model((*T)(nil)).
		Where("? = ?", bun.Ident(pk.Name), id).
		ForceDelete().
		Exec(ctx)
	if err != nil {
		return false, err
	}
	return rowsAffected(res)
}

func (r *BunRepository[T]) SoftDelete(ctx context.Context, id any) (bool, error) {
	table := r.table()
	if table.SoftDeleteField == nil {
		return false, fmt.Errorf("model %s has no soft delete column", table.TypeName)
	}
	pk, err := r.pk()
	if err != nil {
		return false, err
	}
	res, err := r.db.NewDelete().
		Model((*T)(nil)).
		Where("? = ?", bun.Ident(pk.Name), id).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	return rowsAffected(res)
}

func (r *BunRepository[T]) Restore(ctx context.Context, id any) (bool, error) {
	table := r.table()
	if table.SoftDeleteField == nil {
		return false, fmt.Errorf("model %s has no soft delete column", table.TypeName)
	}
	pk, err := r.pk()
	if err != nil {
		return false, err
	}
	res, err := r.db.NewUpdate().
		Model((*T)(nil)).
		Set("? = NULL", bun.Ident(table.SoftDeleteField.Name)).
		Where("? = ?", bun.Ident(pk.Name), id).
		WhereDeleted().
		Exec(ctx)
	if err != nil {
		return false, err
	}
	return rowsAffected(res)
}

// applyPayload assigns column-keyed payload values onto the entity through
// Bun's schema metadata. Unknown columns are rejected rather than dropped.
func (r *BunRepository[T]) applyPayload(entity *T, data types.JsonObject) error {
	table := r.table()
	strct := reflect.ValueOf(entity).Elem()
	for column, value := range data {
		field, ok := table.FieldMap[column]
		if !ok {
			return fmt.Errorf("unknown column %q for model %s", column, table.TypeName)
		}
		src, err := driverValue(value)
		if err != nil {
			return fmt.Errorf("failed to encode column %q: %w", column, err)
		}
		if err := field.ScanValue(strct, src); err != nil {
			return fmt.Errorf("failed to assign column %q: %w", column, err)
		}
	}
	return nil
}

// driverValue coerces payload values into the primitives Bun's field scanners
// accept. Composite values are encoded as JSON.
func driverValue(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case nil, bool, string, []byte, int64, float64, time.Time:
		return v, nil
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	case float32:
		return float64(v), nil
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return json.Marshal(value)
	}
	return value, nil
}

func applyOptions(query *bun.SelectQuery, opts *types.QueryOptions) *bun.SelectQuery {
	if filter := opts.GetFilter(); filter != nil {
		query = query.Where(filter.Schema, filter.Args...)
	}
	if orders := opts.GetOrders(); len(orders) > 0 {
		query = query.Order(orders...)
	}
	if limit := opts.GetLimit(); limit > 0 {
		query = query.Limit(limit)
	}
	if offset := opts.GetOffset(); offset > 0 {
		query = query.Offset(offset)
	}
	return query
}

func rowsAffected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
