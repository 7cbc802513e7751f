package repositories

import (
	"context"
	"database/sql"

	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/models"
)

type CommentRepository struct {
	DB *sql.DB
}

func (r *CommentRepository) CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	query := `
		INSERT INTO comments (story_id, author_id, text, created_at)
		VALUES (?, ?, ?, NOW())
	`
	result, err := r.DB.ExecContext(ctx, query, comment.StoryID, comment.AuthorID, comment.Text)
	if err != nil {
		return models.Comment{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Comment{}, err
	}
	comment.ID = int(id)
	return comment, nil
}

// GetCommentViewsByStory joins author display fields, newest first.
func (r *CommentRepository) GetCommentViewsByStory(ctx context.Context, storyID int) ([]models.CommentWithAuthor, error) {
	query := `
		SELECT c.id, c.story_id, c.author_id, c.text, c.created_at,
		       u.username, p.profile_picture
		FROM comments c
		JOIN users u ON c.author_id = u.id
		LEFT JOIN profiles p ON c.author_id = p.user_id
		WHERE c.story_id = ?
		ORDER BY c.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, storyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.CommentWithAuthor{}
	for rows.Next() {
		var c models.CommentWithAuthor
		if err := rows.Scan(
			&c.ID, &c.StoryID, &c.AuthorID, &c.Text, &c.CreatedAt,
			&c.AuthorName, &c.AuthorAvatar,
		); err != nil {
			return nil, err
		}
		if c.AuthorAvatar != nil && *c.AuthorAvatar == "" {
			c.AuthorAvatar = nil
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
