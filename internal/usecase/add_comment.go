package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/workforce/internal/domain"
	"github.com/runoshun/workforce/internal/usecase/shared"
)

// AddCommentInput contains the parameters for adding a comment.
// Fields are ordered to minimize memory padding.
type AddCommentInput struct {
	Message string // Comment text (required)
	TaskID  int64  // Task ID (required)
	UserID  int64  // Author
}

// AddCommentOutput contains the result of adding a comment.
type AddCommentOutput struct {
	Comment domain.Comment // The created comment
}

// AddComment is the use case for adding a comment to a task.
type AddComment struct {
	tasks      domain.TaskRepository
	comments   domain.CommentRepository
	activities *shared.ActivityLogger
	clock      domain.Clock
}

// NewAddComment creates a new AddComment use case.
func NewAddComment(tasks domain.TaskRepository, comments domain.CommentRepository, activities *shared.ActivityLogger, clock domain.Clock) *AddComment {
	return &AddComment{
		tasks:      tasks,
		comments:   comments,
		activities: activities,
		clock:      clock,
	}
}

// Execute adds a comment to a task and records COMMENT_ADDED.
func (uc *AddComment) Execute(_ context.Context, in AddCommentInput) (*AddCommentOutput, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, domain.ErrEmptyMessage
	}

	if _, err := shared.GetTask(uc.tasks, in.TaskID); err != nil {
		return nil, err
	}

	comment := domain.Comment{
		TaskID: in.TaskID,
		UserID: in.UserID,
		Text:   message,
		Time:   uc.clock.Now(),
	}
	if err := uc.comments.Add(&comment); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}

	if _, err := uc.activities.Log(shared.ActivityEntry{
		TaskID:      in.TaskID,
		Type:        domain.ActivityCommentAdded,
		Description: fmt.Sprintf("Comment added by user %d", in.UserID),
		UserID:      in.UserID,
	}); err != nil {
		return nil, err
	}

	return &AddCommentOutput{Comment: comment}, nil
}
