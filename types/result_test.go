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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_OkRoundTrip(t *testing.T) {
	res := Ok(42)

	assert.True(t, res.IsOk())
	assert.False(t, res.IsFail())
	assert.Equal(t, 42, res.Data())
	assert.Nil(t, res.Err())
	assert.Empty(t, res.Message())
}

func TestResult_FailRoundTrip(t *testing.T) {
	serviceErr := NewDatabaseError("connection refused")
	res := Fail[int](serviceErr)

	assert.True(t, res.IsFail())
	assert.False(t, res.IsOk())
	assert.Same(t, serviceErr, res.Err())
	assert.Zero(t, res.Data())
}

func TestResult_MessageCarriage(t *testing.T) {
	ok := OkWithMessage("payload", "saved")
	assert.True(t, ok.IsOk())
	assert.Equal(t, "payload", ok.Data())
	assert.Equal(t, "saved", ok.Message())

	fail := FailWithMessage[string](NewValidationError("name", "name is required"), "rejected")
	assert.True(t, fail.IsFail())
	assert.Equal(t, "rejected", fail.Message())
	// The outer message never replaces the error's own message.
	assert.Equal(t, "name is required", fail.Err().Error())
}

func TestResult_StructPayload(t *testing.T) {
	type user struct {
		ID   int64
		Name string
	}

	res := Ok(user{ID: 7, Name: "ada"})
	assert.Equal(t, user{ID: 7, Name: "ada"}, res.Data())

	fail := Fail[user](NewNotFoundError("user", 7))
	assert.Zero(t, fail.Data())
}

func TestResult_WrongVariantAccess(t *testing.T) {
	fail := Fail[[]string](NewDatabaseError("boom"))
	assert.Nil(t, fail.Data())

	ok := Ok([]string{"a"})
	assert.Nil(t, ok.Err())
}

func TestResult_Unpack(t *testing.T) {
	data, err := Ok([]int{1, 2, 3}).Unpack()
	assert.Nil(t, err)
	assert.Equal(t, []int{1, 2, 3}, data)

	serviceErr := NewNotFoundError("user", 7)
	missing, err := Fail[[]int](serviceErr).Unpack()
	assert.Same(t, serviceErr, err)
	assert.Nil(t, missing)
}
