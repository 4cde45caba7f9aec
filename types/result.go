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

// Result is the outcome envelope returned by every service operation.
// Exactly one variant is active: success carrying a payload, or failure
// carrying a ServiceError. The tag is the sole discriminator; callers must
// check IsOk or IsFail before reading variant data.
type Result[T any] struct {
	ok      bool
	data    T
	err     ServiceError
	message string
}

// Ok constructs a success Result wrapping data.
func Ok[T any](data T) Result[T] {
	return Result[T]{ok: true, data: data}
}

// OkWithMessage constructs a success Result with a human-readable message.
func OkWithMessage[T any](data T, message string) Result[T] {
	return Result[T]{ok: true, data: data, message: message}
}

// Fail constructs a failure Result wrapping err.
func Fail[T any](err ServiceError) Result[T] {
	return Result[T]{err: err}
}

// FailWithMessage constructs a failure Result with a human-readable message.
func FailWithMessage[T any](err ServiceError, message string) Result[T] {
	return Result[T]{err: err, message: message}
}

func (r Result[T]) IsOk() bool { return r.ok }

func (r Result[T]) IsFail() bool { return !r.ok }

// Data returns the success payload, or the zero value of T on failure.
func (r Result[T]) Data() T { return r.data }

// Err returns the failure error, or nil on success.
func (r Result[T]) Err() ServiceError { return r.err }

func (r Result[T]) Message() string { return r.message }

// Unpack splits the Result into its payload and error for callers that
// prefer the conventional two-value form.
func (r Result[T]) Unpack() (T, ServiceError) {
	return r.data, r.err
}
