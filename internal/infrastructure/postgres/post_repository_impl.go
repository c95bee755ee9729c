package postgres

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/thinkel-blog-api/internal/domain/entity"
	"github.com/oksasatya/thinkel-blog-api/internal/domain/repository"
)

var postColumns = []string{
	"id::text", "slug", "title", "content", "description", "thumbnail",
	"author_id::text", "author_name", "author_username", "author_avatar", "author_bio",
	"tags", "likes", "comments", "views", "liked_by::text[]", "bookmarked_by::text[]",
	"published", "created_at", "updated_at",
}

var postReturning = strings.Join(postColumns, ", ")

// sortable post fields and their columns
var postSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"likes":     "likes",
	"views":     "views",
	"comments":  "comments",
	"title":     "title",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	var createdAt any
	if !p.CreatedAt.IsZero() {
		createdAt = p.CreatedAt
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (slug, title, content, description, thumbnail,
		                   author_id, author_name, author_username, author_avatar, author_bio,
		                   tags, published, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, COALESCE($13::timestamptz, now()))
		RETURNING id::text, created_at, updated_at
	`, p.Slug, p.Title, p.Content, p.Description, p.Thumbnail,
		p.Author.UserID, p.Author.Name, p.Author.Username, p.Author.Avatar, p.Author.Bio,
		p.Tags, p.Published, createdAt)

	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return mapError(err)
	}
	p.Likes, p.Comments, p.Views = 0, 0, 0
	p.LikedBy, p.BookmarkedBy = []string{}, []string{}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	p, err := scanPost(r.pool.QueryRow(ctx, `SELECT `+postReturning+` FROM posts WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

func (r *PostRepository) ViewBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	p, err := scanPost(r.pool.QueryRow(ctx, `
		UPDATE posts SET views = views + 1
		WHERE slug = $1 AND published
		RETURNING `+postReturning, slug))
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

// Update writes the editable columns only and reloads the row so callers see
// the live counters.
func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	updated, err := scanPost(r.pool.QueryRow(ctx, `
		UPDATE posts
		SET title = $2, content = $3, description = $4, slug = $5, thumbnail = $6,
		    tags = $7, published = $8, author_name = $9, author_username = $10,
		    author_avatar = $11, author_bio = $12, updated_at = now()
		WHERE id = $1
		RETURNING `+postReturning,
		p.ID, p.Title, p.Content, p.Description, p.Slug, p.Thumbnail,
		p.Tags, p.Published, p.Author.Name, p.Author.Username,
		p.Author.Avatar, p.Author.Bio))
	if err != nil {
		return mapError(err)
	}
	*p = *updated
	return nil
}

// Delete relies on ON DELETE CASCADE to remove the post's comments.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PostRepository) List(ctx context.Context, f repository.PostFilter) ([]*entity.Post, int64, error) {
	countSQL, countArgs, err := applyPostFilter(psql.Select("COUNT(*)").From("posts"), f).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	query, args, err := buildPostListQuery(f).ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError(err)
	}
	posts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Post, error) {
		return scanPost(row)
	})
	if err != nil {
		return nil, 0, mapError(err)
	}
	return posts, total, nil
}

func (r *PostRepository) ToggleLike(ctx context.Context, postID, userID string) (int, bool, error) {
	var (
		likes int
		liked bool
	)
	err := r.pool.QueryRow(ctx, `
		UPDATE posts SET
		    likes = CASE WHEN $2::uuid = ANY(liked_by) THEN GREATEST(likes - 1, 0) ELSE likes + 1 END,
		    liked_by = CASE WHEN $2::uuid = ANY(liked_by)
		                    THEN array_remove(liked_by, $2::uuid)
		                    ELSE array_append(liked_by, $2::uuid) END,
		    updated_at = now()
		WHERE id = $1
		RETURNING likes, $2::uuid = ANY(liked_by)
	`, postID, userID).Scan(&likes, &liked)
	if err != nil {
		return 0, false, mapError(err)
	}
	return likes, liked, nil
}

func (r *PostRepository) ToggleBookmark(ctx context.Context, postID, userID string) (bool, error) {
	var bookmarked bool
	err := r.pool.QueryRow(ctx, `
		UPDATE posts SET
		    bookmarked_by = CASE WHEN $2::uuid = ANY(bookmarked_by)
		                         THEN array_remove(bookmarked_by, $2::uuid)
		                         ELSE array_append(bookmarked_by, $2::uuid) END,
		    updated_at = now()
		WHERE id = $1
		RETURNING $2::uuid = ANY(bookmarked_by)
	`, postID, userID).Scan(&bookmarked)
	if err != nil {
		return false, mapError(err)
	}
	return bookmarked, nil
}

func (r *PostRepository) Stats(ctx context.Context, userID string) (entity.PostStats, error) {
	var st entity.PostStats
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(likes), 0),
		       COALESCE(SUM(comments), 0),
		       (SELECT COUNT(*) FROM posts WHERE $1::uuid = ANY(bookmarked_by))
		FROM posts
		WHERE author_id = $1
	`, userID).Scan(&st.TotalPosts, &st.TotalLikes, &st.TotalComments, &st.SavedPosts)
	if err != nil {
		return entity.PostStats{}, mapError(err)
	}
	return st, nil
}

func (r *PostRepository) RecountCounters(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		WITH actual AS (
		    SELECT p.id,
		           cardinality(p.liked_by) AS likes,
		           (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id)::int AS comments
		    FROM posts p
		)
		UPDATE posts
		SET likes = actual.likes, comments = actual.comments
		FROM actual
		WHERE posts.id = actual.id
		  AND (posts.likes <> actual.likes OR posts.comments <> actual.comments)
	`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func buildPostListQuery(f repository.PostFilter) sq.SelectBuilder {
	b := applyPostFilter(psql.Select(postColumns...).From("posts"), f)
	for _, o := range postOrderBy(f.Sort) {
		b = b.OrderBy(o)
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}
	return b
}

func applyPostFilter(b sq.SelectBuilder, f repository.PostFilter) sq.SelectBuilder {
	if f.PublishedOnly {
		b = b.Where(sq.Eq{"published": true})
	}
	if f.AuthorID != "" {
		b = b.Where(sq.Eq{"author_id": f.AuthorID})
	}
	if f.BookmarkedBy != "" {
		b = b.Where(sq.Expr("?::uuid = ANY(bookmarked_by)", f.BookmarkedBy))
	}
	if f.Tag != "" {
		b = b.Where(sq.Expr("? = ANY(tags)", f.Tag))
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		b = b.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"description": pattern},
			sq.Expr("EXISTS (SELECT 1 FROM unnest(tags) AS t WHERE t ILIKE ?)", pattern),
		})
	}
	return b
}

func postOrderBy(order string) []string {
	desc := strings.HasPrefix(order, "-")
	col, ok := postSortColumns[strings.TrimPrefix(order, "-")]
	if !ok {
		col, desc = "created_at", true
	}
	dir := " ASC"
	if desc {
		dir = " DESC"
	}
	if col == "created_at" {
		return []string{col + dir, "id"}
	}
	return []string{col + dir, "created_at DESC", "id"}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func scanPost(row pgx.Row) (*entity.Post, error) {
	p := &entity.Post{}
	var createdAt, updatedAt time.Time
	if err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Content, &p.Description, &p.Thumbnail,
		&p.Author.UserID, &p.Author.Name, &p.Author.Username, &p.Author.Avatar, &p.Author.Bio,
		&p.Tags, &p.Likes, &p.Comments, &p.Views, &p.LikedBy, &p.BookmarkedBy,
		&p.Published, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt, p.UpdatedAt = createdAt.UTC(), updatedAt.UTC()
	return p, nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
