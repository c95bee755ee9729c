package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/thinkel-blog-api/internal/domain/repository"
)

func TestBuildPostListQuery_Defaults(t *testing.T) {
	query, args, err := buildPostListQuery(repository.PostFilter{PublishedOnly: true, Limit: 10}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM posts WHERE published = $1")
	assert.Contains(t, query, "ORDER BY created_at DESC, id")
	assert.Contains(t, query, "LIMIT 10")
	assert.NotContains(t, query, "OFFSET")
	assert.Equal(t, []any{true}, args)
}

func TestBuildPostListQuery_Filters(t *testing.T) {
	f := repository.PostFilter{
		PublishedOnly: true,
		Tag:           "go",
		Search:        "50%_off",
		Sort:          "-likes",
		Limit:         5,
		Offset:        10,
	}
	query, args, err := buildPostListQuery(f).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "$2 = ANY(tags)")
	assert.Contains(t, query, "title ILIKE $3")
	assert.Contains(t, query, "description ILIKE $4")
	assert.Contains(t, query, "t ILIKE $5")
	assert.Contains(t, query, "ORDER BY likes DESC, created_at DESC, id")
	assert.Contains(t, query, "LIMIT 5 OFFSET 10")
	require.Len(t, args, 5)
	assert.Equal(t, "go", args[1])
	assert.Equal(t, `%50\%\_off%`, args[2])
}

func TestBuildPostListQuery_UnknownSortFallsBack(t *testing.T) {
	query, _, err := buildPostListQuery(repository.PostFilter{Sort: "password_hash"}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "ORDER BY created_at DESC, id")
	assert.NotContains(t, query, "password_hash")
}

func TestBuildPostListQuery_Owner(t *testing.T) {
	query, args, err := buildPostListQuery(repository.PostFilter{AuthorID: "u1", BookmarkedBy: "u2"}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "author_id = $1")
	assert.Contains(t, query, "$2::uuid = ANY(bookmarked_by)")
	assert.Equal(t, []any{"u1", "u2"}, args)
}

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil))
	assert.ErrorIs(t, mapError(pgx.ErrNoRows), repository.ErrNotFound)
	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: pgUniqueViolation}), repository.ErrDuplicate)
	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: pgForeignKeyViolation}), repository.ErrNotFound)
	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: pgInvalidText}), repository.ErrNotFound)

	other := errors.New("conn reset")
	assert.Equal(t, other, mapError(other))
}

func TestNewPool_BadDSN(t *testing.T) {
	_, err := NewPool(context.Background(), "postgres://u:p@localhost:notaport/db", 4, 1, time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse postgres dsn")
}
