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

package types

// QueryFilter describes a WHERE clause schema and its argument values.
type QueryFilter struct {
	Schema string
	Args   []interface{}
}

// NewQueryFilter creates a new query filter with schema and args.
func NewQueryFilter(schema string, args ...interface{}) *QueryFilter {
	return &QueryFilter{schema, args}
}

// QueryOptions describes an optional filter, ordering, and window for list,
// lookup, and count operations. A nil QueryOptions means "everything"; all
// accessors are safe to call on a nil receiver.
type QueryOptions struct {
	filter *QueryFilter
	orders []string // "id ASC", "name DESC"
	limit  int
	offset int
}

func (o *QueryOptions) GetFilter() *QueryFilter {
	if o == nil {
		return nil
	}
	return o.filter
}

func (o *QueryOptions) GetOrders() []string {
	if o == nil {
		return nil
	}
	return o.orders
}

func (o *QueryOptions) GetLimit() int {
	if o == nil || o.limit < 0 {
		return 0
	}
	return o.limit
}

func (o *QueryOptions) GetOffset() int {
	if o == nil || o.offset < 0 {
		return 0
	}
	return o.offset
}

// NewQueryOptions constructs QueryOptions with filter, ordering, and window.
func NewQueryOptions(filter *QueryFilter, orders []string, limit int, offset int) *QueryOptions {
	return &QueryOptions{filter, orders, limit, offset}
}

// NewQueryOptionsWithFilter constructs QueryOptions with a filter only.
func NewQueryOptionsWithFilter(filter *QueryFilter) *QueryOptions {
	return NewQueryOptions(filter, make([]string, 0), 0, 0)
}

// NewQueryOptionsWithOrders constructs QueryOptions with ordering only.
func NewQueryOptionsWithOrders(orders ...string) *QueryOptions {
	return NewQueryOptions(nil, orders, 0, 0)
}

// NewFilterOptions constructs QueryOptions from a filter schema and args.
func NewFilterOptions(schema string, args ...interface{}) *QueryOptions {
	return NewQueryOptionsWithFilter(NewQueryFilter(schema, args...))
}

// NewDefaultQueryOptions constructs QueryOptions that match everything.
func NewDefaultQueryOptions() *QueryOptions {
	return NewQueryOptions(nil, make([]string, 0), 0, 0)
}
