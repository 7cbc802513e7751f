package repositories

import (
	"context"
	"database/sql"
)

// StoryReactionRepository backs both the like and save toggles; the two
// differ only in the join table they touch.
type StoryReactionRepository struct {
	DB *sql.DB
}

func (r *StoryReactionRepository) IsLiked(ctx context.Context, storyID, userID int) (bool, error) {
	return r.exists(ctx, "story_likes", storyID, userID)
}

func (r *StoryReactionRepository) IsSaved(ctx context.Context, storyID, userID int) (bool, error) {
	return r.exists(ctx, "story_saves", storyID, userID)
}

// ToggleLike adds or removes the like and returns the new state.
func (r *StoryReactionRepository) ToggleLike(ctx context.Context, storyID, userID int) (bool, error) {
	return r.toggle(ctx, "story_likes", storyID, userID)
}

func (r *StoryReactionRepository) ToggleSave(ctx context.Context, storyID, userID int) (bool, error) {
	return r.toggle(ctx, "story_saves", storyID, userID)
}

func (r *StoryReactionRepository) CountLikes(ctx context.Context, storyID int) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM story_likes WHERE story_id = ?`, storyID).Scan(&count)
	return count, err
}

func (r *StoryReactionRepository) exists(ctx context.Context, table string, storyID, userID int) (bool, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+table+` WHERE story_id = ? AND user_id = ?`,
		storyID, userID).Scan(&count)
	return count > 0, err
}

func (r *StoryReactionRepository) toggle(ctx context.Context, table string, storyID, userID int) (bool, error) {
	present, err := r.exists(ctx, table, storyID, userID)
	if err != nil {
		return false, err
	}
	if present {
		_, err = r.DB.ExecContext(ctx,
			`DELETE FROM `+table+` WHERE story_id = ? AND user_id = ?`, storyID, userID)
		return false, err
	}
	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO `+table+` (story_id, user_id) VALUES (?, ?)`, storyID, userID)
	return true, err
}
