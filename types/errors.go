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

import (
	"encoding/json"
	"fmt"
)

// ErrorKind discriminates the closed set of service error variants.
type ErrorKind string

const (
	KindDatabase   ErrorKind = "database"
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
)

// ServiceError is the closed set of failures a service operation may carry.
// The only implementations are DatabaseError, ValidationError, and
// NotFoundError; the unexported marker method keeps the set closed so type
// switches over the three variants are exhaustive.
type ServiceError interface {
	error
	Kind() ErrorKind
	serviceError()
}

var (
	_ ServiceError = (*DatabaseError)(nil)
	_ ServiceError = (*ValidationError)(nil)
	_ ServiceError = (*NotFoundError)(nil)
)

// DatabaseError reports a backend or transport failure. Code carries the
// backend-specific error code when one could be extracted, otherwise "".
type DatabaseError struct {
	Message string
	Code    string
}

// NewDatabaseError creates a DatabaseError without a backend code.
func NewDatabaseError(message string) *DatabaseError {
	return &DatabaseError{Message: message}
}

// NewDatabaseErrorWithCode creates a DatabaseError carrying a backend code.
func NewDatabaseErrorWithCode(message string, code string) *DatabaseError {
	return &DatabaseError{Message: message, Code: code}
}

func (e *DatabaseError) Error() string { return e.Message }

func (e *DatabaseError) Kind() ErrorKind { return KindDatabase }

func (e *DatabaseError) serviceError() {}

func (e *DatabaseError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorKind `json:"type"`
		Message string    `json:"message"`
		Code    string    `json:"code,omitempty"`
	}{KindDatabase, e.Message, e.Code})
}

// ValidationError reports caller-supplied malformed input for a single field.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field string, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Kind() ErrorKind { return KindValidation }

func (e *ValidationError) serviceError() {}

func (e *ValidationError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorKind `json:"type"`
		Field   string    `json:"field"`
		Message string    `json:"message"`
	}{KindValidation, e.Field, e.Message})
}

// NotFoundError reports that the referenced identity does not exist. ID is
// the identifier that was looked up, numeric or string.
type NotFoundError struct {
	Message  string
	Resource string
	ID       any
}

// NewNotFoundError creates a NotFoundError for the resource and identifier.
func NewNotFoundError(resource string, id any) *NotFoundError {
	return &NotFoundError{
		Message:  fmt.Sprintf("%s with id %v not found", resource, id),
		Resource: resource,
		ID:       id,
	}
}

func (e *NotFoundError) Error() string { return e.Message }

func (e *NotFoundError) Kind() ErrorKind { return KindNotFound }

func (e *NotFoundError) serviceError() {}

func (e *NotFoundError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     ErrorKind `json:"type"`
		Message  string    `json:"message"`
		Resource string    `json:"resource"`
		ID       any       `json:"id"`
	}{KindNotFound, e.Message, e.Resource, e.ID})
}
