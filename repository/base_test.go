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
	"fmt"
	"testing"
	"time"

	"github.com/JohnyYen/ignix-core/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type Article struct {
	bun.BaseModel `bun:"table:articles,alias:a"`

	ID        int64            `bun:"id,pk,autoincrement"`
	Title     string           `bun:"title,notnull"`
	Views     int              `bun:"views"`
	Meta      types.JsonObject `bun:"meta,type:text"`
	DeletedAt time.Time        `bun:"deleted_at,soft_delete,nullzero"`
}

type ApiKey struct {
	bun.BaseModel `bun:"table:api_keys,alias:k"`

	ID   string `bun:"id,pk"`
	Name string `bun:"name,notnull"`
}

func openTestDB(t *testing.T) *bun.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	for _, model := range []interface{}{(*Article)(nil), (*ApiKey)(nil)} {
		_, err := db.NewCreateTable().Model(model).IfNotExists().Exec(context.Background())
		require.NoError(t, err)
	}
	return db
}

func seedArticle(t *testing.T, repo *BunRepository[Article], title string, views int) *Article {
	t.Helper()
	entity, err := repo.Create(context.Background(), types.JsonObject{"title": title, "views": views})
	require.NoError(t, err)
	return entity
}

func TestBunRepository_CreateAssignsKeyAndReReads(t *testing.T) {
	repo := NewRepository[Article](openTestDB(t))

	entity, err := repo.Create(context.Background(), types.JsonObject{
		"title": "generics in practice",
		"views": 10,
		"meta":  map[string]interface{}{"source": "rss", "rank": 3},
	})

	require.NoError(t, err)
	require.NotNil(t, entity)
	assert.NotZero(t, entity.ID)
	assert.Equal(t, "generics in practice", entity.Title)
	assert.Equal(t, 10, entity.Views)
	assert.Equal(t, types.JsonObject{"source": "rss", "rank": float64(3)}, entity.Meta)
}

func TestBunRepository_CreateFillsStringKey(t *testing.T) {
	repo := NewRepository[ApiKey](openTestDB(t))

	entity, err := repo.Create(context.Background(), types.JsonObject{"name": "ci"})

	require.NoError(t, err)
	require.NotNil(t, entity)
	_, parseErr := uuid.Parse(entity.ID)
	assert.NoError(t, parseErr)
	assert.Equal(t, "ci", entity.Name)
}

func TestBunRepository_CreateKeepsProvidedStringKey(t *testing.T) {
	repo := NewRepository[ApiKey](openTestDB(t))

	entity, err := repo.Create(context.Background(), types.JsonObject{"id": "key-1", "name": "ci"})

	require.NoError(t, err)
	assert.Equal(t, "key-1", entity.ID)
}

func TestBunRepository_CreateUnknownColumn(t *testing.T) {
	repo := NewRepository[Article](openTestDB(t))

	_, err := repo.Create(context.Background(), types.JsonObject{"nope": 1})

	require.Error(t, err)
	assert.EqualError(t, err, `unknown column "nope" for model Article`)
}

func TestBunRepository_FindByID(t *testing.T) {
	repo := NewRepository[Article](openTestDB(t))
	created := seedArticle(t, repo, "first", 1)

	entity, err := repo.FindByID(context.Background(), created.ID)

	require.NoError(t, err)
	require.NotNil(t, entity)
	assert.Equal(t, created.ID, entity.ID)
	assert.Equal(t, "first", entity.Title)
}

func TestBunRepository_FindByID_Absent(t *testing.T) {
	repo := NewRepository[Article](openTestDB(t))

	entity, err := repo.FindByID(context.Background(), int64(12345))

	require.NoError(t, err)
	assert.Nil(t, entity)
}

func TestBunRepository_FindAllWithOptions(t *testing.T) {
	repo := NewRepository[Article](openTestDB(t))
	seedArticle(t, repo, "alpha", 5)
	seedArticle(t, repo, "beta", 20)
	seedArticle(t, repo, "gamma", 30)

	entities, err := repo.FindAll(context.Background(), types.NewQueryOptions(
		types.NewQueryFilter("views > ?", 10), []string{"title DESC"}, 0, 0,
	))

	require.NoError(t, err)
	require.Len(t, entities, 2)
	assert.Equal(t, "gamma", entities[0].Title)
	assert.Equal(t, "beta", entities[1].Title)
}

func TestBunRepository_FindAllLimitOffset(t *testing.T) {
	repo := NewRepository[Article](openTestDB(t))
	for i := 0; i < 5; i++ {
		seedArticle(t, repo, fmt.Sprintf("article %d", i), i)
	}

	entities, err := repo.FindAll(context.Background(), types.NewQueryOptions(
		nil, []string{"views ASC"}, 2, 1,
	))

	require.NoError(t, err)
	require.Len(t, entities, 2)
	assert.Equal(t, 1, entities[0].Views)
	assert.Equal(t, 2, entities[1].Views)
}

func TestBunRepository_FindOne(t *testing.T) {
	repo := NewRepository[Article](openTestDB(t))
	seedArticle(t, repo, "alpha", 5)
	seedArticle(t, repo, "beta", 20)

	entity, err := repo.FindOne(context.Background(), types.NewFilterOptions("title = ?", "beta"))

	require.NoError(t, err)
	require.NotNil(t, entity)
	assert.Equal(t, "beta", entity.Title)
}

func TestBunRepository_FindOne_NoMatch(t *testing.T) {
	repo := NewRepository[Article](openTestDB(t))
	seedArticle(t, repo, "alpha", 5)

	entity, err := repo.FindOne(context.Background(), types.NewFilterOptions("title = ?", "missing"))

	require.NoError(t, err)
	assert.Nil(t, entity)
}

func TestBunRepository_UpdateChangesOnlyGivenColumns(t *testing.T) {
	repo := NewRepository[Article](openTestDB(t))
	created := seedArticle(t, repo, "draft", 7)

	entity, err := repo.Update(context.Background(), created.ID, types.JsonObject{"title": "published"})

	require.NoError(t, err)
	require.NotNil(t, entity)
	assert.Equal(t, "published", entity.Title)
	assert.Equal(t, 7, entity.Views)
}

func TestBunRepository_UpdateMissingRow(t *testing.T) {
	repo := NewRepository[Article](openTestDB(t))

	entity, err := repo.Update(context.Background(), int64(12345), types.JsonObject{"title": "x"})

	require.NoError(t, err)
	assert.Nil(t, entity)
}

func TestBunRepository_UpdateRejectsPrimaryKey(t *testing.T) {
	repo := NewRepository[Article](openTestDB(t))
	created := seedArticle(t, repo, "draft", 7)

	_, err := repo.Update(context.Background(), created.ID, types.JsonObject{"id": 999, "title": "x"})

	require.Error(t, err)
	assert.EqualError(t, err, `primary key column "id" cannot be updated`)
}

func TestBunRepository_HardDelete(t *testing.T) {
	repo := NewRepository[Article](openTestDB(t))
	created := seedArticle(t, repo, "doomed", 1)

	ok, err := repo.HardDelete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	entity, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, entity)

	ok, err = repo.HardDelete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBunRepository_SoftDeleteAndRestore(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository[Article](db)
	created := seedArticle(t, repo, "hidden", 1)
	ctx := context.Background()

	ok, err := repo.SoftDelete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Regular reads no longer see the row.
	entity, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, entity)

	// The row itself is still there.
	total, err := db.NewSelect().Model((*Article)(nil)).WhereAllWithDeleted().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	// A second soft delete finds nothing live to mark.
	ok, err = repo.SoftDelete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Restore(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	entity, err = repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, entity)
	assert.Equal(t, "hidden", entity.Title)
}

func TestBunRepository_RestoreLiveRow(t *testing.T) {
	repo := NewRepository[Article](openTestDB(t))
	created := seedArticle(t, repo, "alive", 1)

	ok, err := repo.Restore(context.Background(), created.ID)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBunRepository_SoftDeleteUnsupportedModel(t *testing.T) {
	repo := NewRepository[ApiKey](openTestDB(t))

	_, err := repo.SoftDelete(context.Background(), "key-1")
	assert.EqualError(t, err, "model ApiKey has no soft delete column")

	_, err = repo.Restore(context.Background(), "key-1")
	assert.EqualError(t, err, "model ApiKey has no soft delete column")
}

func TestBunRepository_Count(t *testing.T) {
	repo := NewRepository[Article](openTestDB(t))
	seedArticle(t, repo, "alpha", 5)
	seedArticle(t, repo, "beta", 20)
	seedArticle(t, repo, "gamma", 30)
	ctx := context.Background()

	total, err := repo.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	filtered, err := repo.Count(ctx, types.NewFilterOptions("views >= ?", 20))
	require.NoError(t, err)
	assert.Equal(t, 2, filtered)
}

func TestBunRepository_CountSkipsSoftDeleted(t *testing.T) {
	repo := NewRepository[Article](openTestDB(t))
	created := seedArticle(t, repo, "alpha", 5)
	seedArticle(t, repo, "beta", 20)
	ctx := context.Background()

	_, err := repo.SoftDelete(ctx, created.ID)
	require.NoError(t, err)

	total, err := repo.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestBunRepository_Query(t *testing.T) {
	repo := NewRepository[Article](openTestDB(t))
	seedArticle(t, repo, "alpha", 5)
	seedArticle(t, repo, "beta", 20)

	entities, err := repo.Query(context.Background(), "views > ?", 10)

	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "beta", entities[0].Title)
}
