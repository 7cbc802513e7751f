package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/models"
	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/repositories"
)

// StoryStore is the persistence behind stories and their image rows.
type StoryStore interface {
	CreateStory(ctx context.Context, story models.Story) (models.Story, error)
	GetStoryByID(ctx context.Context, id int) (models.Story, error)
	GetStoryByShareUUID(ctx context.Context, shareUUID string) (models.Story, error)
	GetAllStoriesWithAuthor(ctx context.Context) ([]models.StoryWithAuthor, error)
	UpdateStory(ctx context.Context, story models.Story) error
	DeleteStory(ctx context.Context, id, authorID int) error
	IncrementViews(ctx context.Context, id int) error
	AddImage(ctx context.Context, storyID int, url string) error
	GetImages(ctx context.Context, storyID int) ([]string, error)
	DeleteImages(ctx context.Context, storyID int) error
}

// StoryReactionStore is the persistence behind the like and save toggles.
type StoryReactionStore interface {
	IsLiked(ctx context.Context, storyID, userID int) (bool, error)
	IsSaved(ctx context.Context, storyID, userID int) (bool, error)
	ToggleLike(ctx context.Context, storyID, userID int) (bool, error)
	ToggleSave(ctx context.Context, storyID, userID int) (bool, error)
	CountLikes(ctx context.Context, storyID int) (int, error)
}

type StoryService struct {
	StoryRepo   StoryStore
	CommentRepo *repositories.CommentRepository
	UserRepo    *repositories.UserRepository
	ProfileRepo *repositories.ProfileRepository
	Reactions   StoryReactionStore
	Views       ViewTracker
}

// Feed assembles the full story feed for a viewer: author info, images,
// comments, like counts and the viewer's own like/save state.
func (s *StoryService) Feed(ctx context.Context, viewerID int) ([]models.StoryView, error) {
	stories, err := s.StoryRepo.GetAllStoriesWithAuthor(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	feed := make([]models.StoryView, 0, len(stories))
	for _, story := range stories {
		view, err := s.buildStoryView(ctx, story, viewerID, now)
		if err != nil {
			return nil, err
		}
		feed = append(feed, view)
	}
	return feed, nil
}

func (s *StoryService) buildStoryView(ctx context.Context, story models.StoryWithAuthor, viewerID int, now time.Time) (models.StoryView, error) {
	images, err := s.StoryRepo.GetImages(ctx, story.ID)
	if err != nil {
		return models.StoryView{}, err
	}
	comments, err := s.CommentRepo.GetCommentViewsByStory(ctx, story.ID)
	if err != nil {
		return models.StoryView{}, err
	}
	likes, err := s.Reactions.CountLikes(ctx, story.ID)
	if err != nil {
		return models.StoryView{}, err
	}

	isLiked, isSaved := false, false
	if viewerID > 0 {
		if isLiked, err = s.Reactions.IsLiked(ctx, story.ID, viewerID); err != nil {
			return models.StoryView{}, err
		}
		if isSaved, err = s.Reactions.IsSaved(ctx, story.ID, viewerID); err != nil {
			return models.StoryView{}, err
		}
	}

	commentViews := make([]models.CommentView, 0, len(comments))
	for _, c := range comments {
		commentViews = append(commentViews, models.CommentView{
			ID:           c.ID,
			Author:       c.AuthorName,
			AuthorAvatar: c.AuthorAvatar,
			Text:         c.Text,
			Timestamp:    timeAgo(c.CreatedAt, now),
		})
	}

	return models.StoryView{
		ID:           story.ID,
		ShareUUID:    story.ShareUUID,
		Author:       story.AuthorName,
		AuthorID:     story.AuthorID,
		AuthorAvatar: story.AuthorAvatar,
		Location:     story.Location,
		Date:         timeAgo(story.CreatedAt, now),
		Title:        story.Title,
		Content:      story.Content,
		Images:       images,
		Likes:        likes,
		Views:        story.ViewsCount,
		Comments:     commentViews,
		IsLiked:      isLiked,
		IsSaved:      isSaved,
	}, nil
}

func (s *StoryService) CreateStory(ctx context.Context, authorID int, req models.StoryCreateRequest) (models.Story, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if req.Title == "" || req.Content == "" {
		return models.Story{}, models.ErrMissingSearchFields
	}

	story := models.Story{
		AuthorID:  authorID,
		Title:     req.Title,
		Location:  strings.TrimSpace(req.Location),
		Content:   req.Content,
		ShareUUID: uuid.New().String(),
		CreatedAt: time.Now(),
	}
	return s.StoryRepo.CreateStory(ctx, story)
}

func (s *StoryService) AttachImage(ctx context.Context, storyID int, url string) error {
	return s.StoryRepo.AddImage(ctx, storyID, url)
}

// UpdateStory edits title, location and content. The repository's author
// scope makes editing someone else's story indistinguishable from a missing
// story.
func (s *StoryService) UpdateStory(ctx context.Context, authorID, storyID int, req models.StoryCreateRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if req.Title == "" || req.Content == "" {
		return models.ErrMissingSearchFields
	}
	return s.StoryRepo.UpdateStory(ctx, models.Story{
		ID:       storyID,
		AuthorID: authorID,
		Title:    req.Title,
		Location: strings.TrimSpace(req.Location),
		Content:  req.Content,
	})
}

// ReplaceImages swaps the story's image set for the given URLs.
func (s *StoryService) ReplaceImages(ctx context.Context, storyID int, urls []string) error {
	if err := s.StoryRepo.DeleteImages(ctx, storyID); err != nil {
		return err
	}
	for _, url := range urls {
		if err := s.StoryRepo.AddImage(ctx, storyID, url); err != nil {
			return err
		}
	}
	return nil
}

// DeleteStory removes an author's story together with its image rows.
// Ownership is checked before anything is touched, so a non-owner cannot
// strip another user's images and leave the story half-deleted.
func (s *StoryService) DeleteStory(ctx context.Context, authorID, storyID int) error {
	story, err := s.StoryRepo.GetStoryByID(ctx, storyID)
	if err != nil {
		return err
	}
	if story.AuthorID != authorID {
		return models.ErrStoryNotFound
	}
	if err := s.StoryRepo.DeleteImages(ctx, storyID); err != nil {
		return err
	}
	return s.StoryRepo.DeleteStory(ctx, storyID, authorID)
}

func (s *StoryService) ToggleLike(ctx context.Context, storyID, userID int) (models.LikeToggleResponse, error) {
	if _, err := s.StoryRepo.GetStoryByID(ctx, storyID); err != nil {
		return models.LikeToggleResponse{}, err
	}
	isLiked, err := s.Reactions.ToggleLike(ctx, storyID, userID)
	if err != nil {
		return models.LikeToggleResponse{}, err
	}
	likes, err := s.Reactions.CountLikes(ctx, storyID)
	if err != nil {
		return models.LikeToggleResponse{}, err
	}
	return models.LikeToggleResponse{Status: "success", IsLiked: isLiked, Likes: likes}, nil
}

func (s *StoryService) ToggleSave(ctx context.Context, storyID, userID int) (models.SaveToggleResponse, error) {
	if _, err := s.StoryRepo.GetStoryByID(ctx, storyID); err != nil {
		return models.SaveToggleResponse{}, err
	}
	isSaved, err := s.Reactions.ToggleSave(ctx, storyID, userID)
	if err != nil {
		return models.SaveToggleResponse{}, err
	}
	return models.SaveToggleResponse{Status: "success", IsSaved: isSaved}, nil
}

func (s *StoryService) AddComment(ctx context.Context, storyID, authorID int, text string) (models.CommentView, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.CommentView{}, models.ErrEmptyComment
	}
	if _, err := s.StoryRepo.GetStoryByID(ctx, storyID); err != nil {
		return models.CommentView{}, err
	}

	comment, err := s.CommentRepo.CreateComment(ctx, models.Comment{
		StoryID:  storyID,
		AuthorID: authorID,
		Text:     text,
	})
	if err != nil {
		return models.CommentView{}, err
	}

	author, err := s.UserRepo.GetUserByID(ctx, authorID)
	if err != nil {
		return models.CommentView{}, err
	}
	profile, err := s.ProfileRepo.GetByUserID(ctx, authorID)
	if err != nil {
		return models.CommentView{}, err
	}

	return models.CommentView{
		ID:           comment.ID,
		Author:       author.Username,
		AuthorAvatar: profile.ProfilePicture,
		Text:         text,
		Timestamp:    "Just now",
	}, nil
}

// SharedStory resolves a public share link and counts the view once per
// viewer per day.
func (s *StoryService) SharedStory(ctx context.Context, shareUUID, viewer string) (models.StoryView, error) {
	story, err := s.StoryRepo.GetStoryByShareUUID(ctx, shareUUID)
	if err != nil {
		return models.StoryView{}, err
	}

	firstView := true
	if s.Views != nil {
		firstView = s.Views.FirstView(ctx, story.ID, viewer)
	}
	if firstView {
		if err := s.StoryRepo.IncrementViews(ctx, story.ID); err != nil {
			return models.StoryView{}, err
		}
		story.ViewsCount++
	}

	author, err := s.UserRepo.GetUserByID(ctx, story.AuthorID)
	if err != nil {
		return models.StoryView{}, err
	}
	profile, err := s.ProfileRepo.GetByUserID(ctx, story.AuthorID)
	if err != nil {
		return models.StoryView{}, err
	}

	return s.buildStoryView(ctx, models.StoryWithAuthor{
		Story:        story,
		AuthorName:   author.Username,
		AuthorAvatar: profile.ProfilePicture,
	}, 0, time.Now())
}

// timeAgo humanizes a timestamp for the feed. Anything older than a week is
// shown as a plain date.
func timeAgo(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < 2*time.Minute:
		return "1 minute ago"
	case diff < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(diff.Minutes()))
	case diff < 2*time.Hour:
		return "1 hour ago"
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(diff.Hours()))
	case diff < 48*time.Hour:
		return "1 day ago"
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
