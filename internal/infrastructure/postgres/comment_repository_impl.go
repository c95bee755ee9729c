package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/thinkel-blog-api/internal/domain/entity"
	"github.com/oksasatya/thinkel-blog-api/internal/domain/repository"
)

const commentColumns = `id::text, post_id::text, parent_id::text, is_reply,
	author_id::text, author_name, author_avatar, content, likes, liked_by::text[],
	created_at, updated_at`

var commentOrderBy = map[repository.CommentOrder]string{
	repository.NewestFirst: "created_at DESC, id",
	repository.OldestFirst: "created_at ASC, id",
	repository.MostLiked:   "likes DESC, created_at DESC, id",
	repository.LeastLiked:  "likes ASC, created_at DESC, id",
}

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

// Create inserts the comment and increments the post counter in one
// transaction. A missing post or parent fails the foreign key.
func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	return mapError(pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO comments (post_id, parent_id, is_reply, author_id, author_name, author_avatar, content)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id::text, created_at, updated_at
		`, c.PostID, c.ParentID, c.ParentID != nil, c.Author.UserID, c.Author.Name, c.Author.Avatar, c.Content)
		if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `UPDATE posts SET comments = comments + 1 WHERE id = $1`, c.PostID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
		c.IsReply = c.ParentID != nil
		c.Likes = 0
		c.LikedBy = []string{}
		return nil
	}))
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	c, err := scanComment(r.pool.QueryRow(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *CommentRepository) ListTopLevel(ctx context.Context, postID string, order repository.CommentOrder) ([]*entity.Comment, error) {
	orderBy, ok := commentOrderBy[order]
	if !ok {
		orderBy = commentOrderBy[repository.NewestFirst]
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+commentColumns+`
		FROM comments
		WHERE post_id = $1 AND parent_id IS NULL
		ORDER BY `+orderBy, postID)
	if err != nil {
		return nil, mapError(err)
	}
	return collectComments(rows)
}

// ListReplies loads the replies of all parents with a single query.
func (r *CommentRepository) ListReplies(ctx context.Context, parentIDs []string) (map[string][]*entity.Comment, error) {
	result := make(map[string][]*entity.Comment, len(parentIDs))
	if len(parentIDs) == 0 {
		return result, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+commentColumns+`
		FROM comments
		WHERE parent_id = ANY($1::text[]::uuid[])
		ORDER BY created_at ASC, id
	`, parentIDs)
	if err != nil {
		return nil, mapError(err)
	}
	replies, err := collectComments(rows)
	if err != nil {
		return nil, err
	}
	for _, c := range replies {
		result[*c.ParentID] = append(result[*c.ParentID], c)
	}
	return result, nil
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id, content string) (*entity.Comment, error) {
	c, err := scanComment(r.pool.QueryRow(ctx, `
		UPDATE comments SET content = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+commentColumns, id, content))
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

// DeleteWithReplies removes the replies, then the comment, then lowers the
// post counter by the total, all in one transaction.
func (r *CommentRepository) DeleteWithReplies(ctx context.Context, id string) (int, error) {
	var deleted int
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var postID string
		if err := tx.QueryRow(ctx, `SELECT post_id::text FROM comments WHERE id = $1 FOR UPDATE`, id).Scan(&postID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM comments WHERE parent_id = $1`, id)
		if err != nil {
			return err
		}
		replies := int(tag.RowsAffected())
		if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id); err != nil {
			return err
		}
		deleted = replies + 1
		_, err = tx.Exec(ctx, `UPDATE posts SET comments = GREATEST(comments - $2, 0) WHERE id = $1`, postID, deleted)
		return err
	})
	if err != nil {
		return 0, mapError(err)
	}
	return deleted, nil
}

func (r *CommentRepository) ToggleLike(ctx context.Context, commentID, userID string) (int, bool, error) {
	var (
		likes int
		liked bool
	)
	err := r.pool.QueryRow(ctx, `
		UPDATE comments SET
		    likes = CASE WHEN $2::uuid = ANY(liked_by) THEN GREATEST(likes - 1, 0) ELSE likes + 1 END,
		    liked_by = CASE WHEN $2::uuid = ANY(liked_by)
		                    THEN array_remove(liked_by, $2::uuid)
		                    ELSE array_append(liked_by, $2::uuid) END
		WHERE id = $1
		RETURNING likes, $2::uuid = ANY(liked_by)
	`, commentID, userID).Scan(&likes, &liked)
	if err != nil {
		return 0, false, mapError(err)
	}
	return likes, liked, nil
}

func collectComments(rows pgx.Rows) ([]*entity.Comment, error) {
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Comment, error) {
		return scanComment(row)
	})
	if err != nil {
		return nil, mapError(err)
	}
	if out == nil {
		out = []*entity.Comment{}
	}
	return out, nil
}

func scanComment(row pgx.Row) (*entity.Comment, error) {
	c := &entity.Comment{}
	var createdAt, updatedAt time.Time
	if err := row.Scan(&c.ID, &c.PostID, &c.ParentID, &c.IsReply,
		&c.Author.UserID, &c.Author.Name, &c.Author.Avatar, &c.Content, &c.Likes, &c.LikedBy,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}
	c.CreatedAt, c.UpdatedAt = createdAt.UTC(), updatedAt.UTC()
	return c, nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
