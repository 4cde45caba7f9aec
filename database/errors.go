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
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// ErrorCode extracts a backend-specific error code from a database error.
// MySQL errors yield the numeric driver code (for example "1062"), Postgres
// errors the five-character SQLSTATE (for example "23505"). Errors from
// other drivers are sniffed for an embedded SQLSTATE marker. It returns ""
// when the error carries no recognizable code.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return strconv.FormatUint(uint64(mysqlErr.Number), 10)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return sqlStateOf(err.Error())
}

// sqlStateOf scans an error message for a SQLSTATE code. Drivers embed it
// in several shapes ("SQLSTATE 42P01", "(SQLSTATE=23505)"), so matching is
// case-insensitive and tolerant of the separator.
func sqlStateOf(msg string) string {
	s := strings.ToLower(msg)
	idx := strings.Index(s, "sqlstate")
	if idx < 0 {
		return ""
	}
	rest := strings.TrimLeft(s[idx+len("sqlstate"):], " =:")
	if len(rest) < 5 {
		return ""
	}
	code := rest[:5]
	for _, c := range code {
		if (c < '0' || c > '9') && (c < 'a' || c > 'z') {
			return ""
		}
	}
	return strings.ToUpper(code)
}
