package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/models"
)

type StoryRepository struct {
	DB *sql.DB
}

func (r *StoryRepository) CreateStory(ctx context.Context, story models.Story) (models.Story, error) {
	query := `
		INSERT INTO stories (author_id, title, location, content, share_uuid, views_count, created_at)
		VALUES (?, ?, ?, ?, ?, 0, NOW())
	`
	result, err := r.DB.ExecContext(ctx, query,
		story.AuthorID, story.Title, story.Location, story.Content, story.ShareUUID,
	)
	if err != nil {
		return models.Story{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Story{}, err
	}
	story.ID = int(id)
	return story, nil
}

func (r *StoryRepository) GetStoryByID(ctx context.Context, id int) (models.Story, error) {
	var story models.Story
	query := `
		SELECT id, author_id, title, location, content, share_uuid, views_count, created_at
		FROM stories WHERE id = ?
	`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&story.ID, &story.AuthorID, &story.Title, &story.Location, &story.Content,
		&story.ShareUUID, &story.ViewsCount, &story.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Story{}, models.ErrStoryNotFound
	}
	if err != nil {
		return models.Story{}, err
	}
	return story, nil
}

func (r *StoryRepository) GetStoryByShareUUID(ctx context.Context, shareUUID string) (models.Story, error) {
	var story models.Story
	query := `
		SELECT id, author_id, title, location, content, share_uuid, views_count, created_at
		FROM stories WHERE share_uuid = ?
	`
	err := r.DB.QueryRowContext(ctx, query, shareUUID).Scan(
		&story.ID, &story.AuthorID, &story.Title, &story.Location, &story.Content,
		&story.ShareUUID, &story.ViewsCount, &story.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Story{}, models.ErrStoryNotFound
	}
	if err != nil {
		return models.Story{}, err
	}
	return story, nil
}

// GetAllStoriesWithAuthor returns feed rows with author display fields,
// newest first.
func (r *StoryRepository) GetAllStoriesWithAuthor(ctx context.Context) ([]models.StoryWithAuthor, error) {
	query := `
		SELECT s.id, s.author_id, s.title, s.location, s.content, s.share_uuid,
		       s.views_count, s.created_at, u.username, p.profile_picture
		FROM stories s
		JOIN users u ON s.author_id = u.id
		LEFT JOIN profiles p ON s.author_id = p.user_id
		ORDER BY s.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stories := []models.StoryWithAuthor{}
	for rows.Next() {
		var s models.StoryWithAuthor
		if err := rows.Scan(
			&s.ID, &s.AuthorID, &s.Title, &s.Location, &s.Content, &s.ShareUUID,
			&s.ViewsCount, &s.CreatedAt, &s.AuthorName, &s.AuthorAvatar,
		); err != nil {
			return nil, err
		}
		if s.AuthorAvatar != nil && *s.AuthorAvatar == "" {
			s.AuthorAvatar = nil
		}
		stories = append(stories, s)
	}
	return stories, rows.Err()
}

func (r *StoryRepository) UpdateStory(ctx context.Context, story models.Story) error {
	query := `UPDATE stories SET title = ?, location = ?, content = ? WHERE id = ? AND author_id = ?`
	result, err := r.DB.ExecContext(ctx, query,
		story.Title, story.Location, story.Content, story.ID, story.AuthorID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrStoryNotFound
	}
	return nil
}

func (r *StoryRepository) DeleteStory(ctx context.Context, id, authorID int) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM stories WHERE id = ? AND author_id = ?`, id, authorID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrStoryNotFound
	}
	return nil
}

func (r *StoryRepository) IncrementViews(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE stories SET views_count = views_count + 1 WHERE id = ?`, id)
	return err
}

func (r *StoryRepository) AddImage(ctx context.Context, storyID int, url string) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO story_images (story_id, url) VALUES (?, ?)`, storyID, url)
	return err
}

func (r *StoryRepository) GetImages(ctx context.Context, storyID int) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT url FROM story_images WHERE story_id = ? ORDER BY id`, storyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	urls := []string{}
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}

func (r *StoryRepository) DeleteImages(ctx context.Context, storyID int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM story_images WHERE story_id = ?`, storyID)
	return err
}
