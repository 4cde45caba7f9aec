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

package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode_Nil(t *testing.T) {
	assert.Empty(t, ErrorCode(nil))
}

func TestErrorCode_MySQL(t *testing.T) {
	err := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	assert.Equal(t, "1062", ErrorCode(err))
}

func TestErrorCode_MySQLWrapped(t *testing.T) {
	err := fmt.Errorf("insert failed: %w", &mysql.MySQLError{Number: 1048, Message: "Column cannot be null"})
	assert.Equal(t, "1048", ErrorCode(err))
}

func TestErrorCode_Postgres(t *testing.T) {
	err := &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}
	assert.Equal(t, "23505", ErrorCode(err))
}

func TestErrorCode_SQLStateInMessage(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want string
	}{
		{
			name: "parenthesized upper",
			msg:  `ERROR: relation "users" does not exist (SQLSTATE 42P01)`,
			want: "42P01",
		},
		{
			name: "equals separator",
			msg:  "driver: bad query: SQLSTATE=23505",
			want: "23505",
		},
		{
			name: "colon separator lowercase",
			msg:  "query rejected, sqlstate: 22001",
			want: "22001",
		},
		{
			name: "no marker",
			msg:  "connection refused",
			want: "",
		},
		{
			name: "marker but truncated code",
			msg:  "failed with SQLSTATE 42",
			want: "",
		},
		{
			name: "marker followed by punctuation only",
			msg:  "failed with SQLSTATE =",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCode(errors.New(tt.msg)))
		})
	}
}

func TestErrorCode_PlainErrorHasNoCode(t *testing.T) {
	assert.Empty(t, ErrorCode(errors.New("some transient failure")))
}
