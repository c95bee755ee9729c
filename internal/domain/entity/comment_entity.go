package entity

import "time"

// CommentAuthor is the snapshot embedded in a comment.
type CommentAuthor struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Comment belongs to a post. ParentID is nil for top-level comments; replies
// are flagged with IsReply and can not be replied to.
type Comment struct {
	ID        string        `json:"id"`
	PostID    string        `json:"postId"`
	ParentID  *string       `json:"parentId"`
	IsReply   bool          `json:"isReply"`
	Author    CommentAuthor `json:"author"`
	Content   string        `json:"content"`
	Likes     int           `json:"likes"`
	LikedBy   []string      `json:"likedBy"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// CommentThread is a top-level comment with its direct replies.
type CommentThread struct {
	*Comment
	Replies []*Comment `json:"replies"`
}

func (c *Comment) OwnedBy(userID string) bool {
	return userID != "" && c.Author.UserID == userID
}

func (c *Comment) ToggleLike(userID string) (likes int, liked bool) {
	c.LikedBy, liked = ToggleMembership(c.LikedBy, userID)
	c.Likes = adjustCounter(c.Likes, liked)
	return c.Likes, liked
}

func (c *Comment) Clone() *Comment {
	cp := *c
	cp.LikedBy = append([]string{}, c.LikedBy...)
	if c.ParentID != nil {
		pid := *c.ParentID
		cp.ParentID = &pid
	}
	return &cp
}
