package models

import "time"

type Story struct {
	ID         int       `json:"id"`
	AuthorID   int       `json:"author_id"`
	Title      string    `json:"title"`
	Location   string    `json:"location"`
	Content    string    `json:"content"`
	ShareUUID  string    `json:"share_uuid"`
	ViewsCount int       `json:"views_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type StoryImage struct {
	ID      int    `json:"id"`
	StoryID int    `json:"story_id"`
	URL     string `json:"url"`
}

type Comment struct {
	ID        int       `json:"id"`
	StoryID   int       `json:"story_id"`
	AuthorID  int       `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentWithAuthor is a comment row with author display fields joined in.
type CommentWithAuthor struct {
	Comment
	AuthorName   string
	AuthorAvatar *string
}

// StoryWithAuthor is a story row with author display fields joined in.
type StoryWithAuthor struct {
	Story
	AuthorName   string
	AuthorAvatar *string
}

// CommentView is a feed-ready comment with author display fields joined in.
type CommentView struct {
	ID           int     `json:"id"`
	Author       string  `json:"author"`
	AuthorAvatar *string `json:"authorAvatar"`
	Text         string  `json:"text"`
	Timestamp    string  `json:"timestamp"`
}

// StoryView is one feed entry; field names follow the frontend contract.
type StoryView struct {
	ID           int           `json:"id"`
	ShareUUID    string        `json:"share_uuid"`
	Author       string        `json:"author"`
	AuthorID     int           `json:"authorId"`
	AuthorAvatar *string       `json:"authorAvatar"`
	Location     string        `json:"location"`
	Date         string        `json:"date"`
	Title        string        `json:"title"`
	Content      string        `json:"content"`
	Images       []string      `json:"images"`
	Likes        int           `json:"likes"`
	Views        int           `json:"views"`
	Comments     []CommentView `json:"comments"`
	IsLiked      bool          `json:"isLiked"`
	IsSaved      bool          `json:"isSaved"`
}

type LikeToggleResponse struct {
	Status  string `json:"status"`
	IsLiked bool   `json:"isLiked"`
	Likes   int    `json:"likes"`
}

type SaveToggleResponse struct {
	Status  string `json:"status"`
	IsSaved bool   `json:"isSaved"`
}

type StoryCreateRequest struct {
	Title    string `json:"title"`
	Location string `json:"location"`
	Content  string `json:"content"`
}

type CommentCreateRequest struct {
	Text string `json:"text"`
}
