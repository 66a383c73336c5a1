package httpapi

import (
	"time"

	"github.com/runoshun/workforce/internal/domain"
	"github.com/runoshun/workforce/internal/usecase"
)

// Response wraps every payload the API returns.
type Response struct {
	Data   any            `json:"data"`
	Status ResponseStatus `json:"status"`
}

// ResponseStatus carries the outcome of a request.
type ResponseStatus struct {
	StatusMessage string `json:"status_message"`
	StatusCode    int    `json:"status_code"`
}

// TaskDTO is the wire form of a task.
type TaskDTO struct {
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
	TaskDeadlineTime *int64               `json:"task_deadline_time"`
	StartDate        *int64               `json:"start_date"`
	ReferenceType    domain.ReferenceType `json:"reference_type"`
	Task             domain.Kind          `json:"task"`
	Description      string               `json:"description"`
	Status           domain.Status        `json:"status"`
	Priority         domain.Priority      `json:"priority"`
	Activities       []ActivityDTO        `json:"activities,omitempty"`
	Comments         []CommentDTO         `json:"comments,omitempty"`
	ID               int64                `json:"id"`
	ReferenceID      int64                `json:"reference_id"`
	AssigneeID       int64                `json:"assignee_id"`
}

// ActivityDTO is the wire form of an activity.
type ActivityDTO struct {
	Timestamp    time.Time           `json:"timestamp"`
	OldValue     *string             `json:"old_value"`
	NewValue     *string             `json:"new_value"`
	ActivityType domain.ActivityType `json:"activity_type"`
	Description  string              `json:"description"`
	ID           int64               `json:"id"`
	TaskID       int64               `json:"task_id"`
	UserID       int64               `json:"user_id"`
}

// CommentDTO is the wire form of a comment.
type CommentDTO struct {
	Timestamp time.Time `json:"timestamp"`
	Comment   string    `json:"comment"`
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	UserID    int64     `json:"user_id"`
}

// ConsistencyDTO is the wire form of a consistency report.
type ConsistencyDTO struct {
	Violations []ViolationDTO      `json:"violations"`
	Duplicates []DuplicateGroupDTO `json:"duplicates"`
	Checked    int                 `json:"checked"`
	OK         bool                `json:"ok"`
}

// ViolationDTO is one failed consistency rule.
type ViolationDTO struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
	TaskID  int64  `json:"task_id"`
}

// DuplicateGroupDTO lists active tasks that share a reference and kind.
type DuplicateGroupDTO struct {
	ReferenceType domain.ReferenceType `json:"reference_type"`
	Task          domain.Kind          `json:"task"`
	TaskIDs       []int64              `json:"task_ids"`
	ReferenceID   int64                `json:"reference_id"`
}

// Request bodies.

type createTaskRequest struct {
	TaskDeadlineTime *int64 `json:"task_deadline_time"`
	StartDate        *int64 `json:"start_date"`
	ReferenceType    string `json:"reference_type" binding:"required"`
	Task             string `json:"task" binding:"required"`
	Priority         string `json:"priority"`
	ReferenceID      int64  `json:"reference_id"`
	AssigneeID       int64  `json:"assignee_id"`
}

type createTasksRequest struct {
	Requests []createTaskRequest `json:"requests" binding:"required,dive"`
}

type updateTaskRequest struct {
	TaskStatus  *string `json:"task_status"`
	Description *string `json:"description"`
	TaskID      int64   `json:"task_id" binding:"required"`
}

type updateTasksRequest struct {
	Requests []updateTaskRequest `json:"requests" binding:"required,dive"`
}

type assignByReferenceRequest struct {
	ReferenceType string `json:"reference_type" binding:"required"`
	ReferenceID   int64  `json:"reference_id"`
	AssigneeID    int64  `json:"assignee_id"`
}

type fetchByDateRequest struct {
	AssigneeIDs []int64 `json:"assignee_ids"`
	StartDate   int64   `json:"start_date"`
	EndDate     int64   `json:"end_date"`
}

type updatePriorityRequest struct {
	Priority string `json:"priority" binding:"required"`
	TaskID   int64  `json:"task_id" binding:"required"`
	UserID   int64  `json:"user_id"`
}

type addCommentRequest struct {
	Comment string `json:"comment"`
	TaskID  int64  `json:"task_id" binding:"required"`
	UserID  int64  `json:"user_id"`
}

// Mapping.

func toTaskDTO(t *domain.Task) TaskDTO {
	dto := TaskDTO{
		ID:               t.ID,
		ReferenceID:      t.ReferenceID,
		ReferenceType:    t.ReferenceType,
		Task:             t.Kind,
		Description:      t.Description,
		Status:           t.Status,
		AssigneeID:       t.AssigneeID,
		TaskDeadlineTime: t.Deadline,
		Priority:         t.Priority,
		StartDate:        t.StartDate,
		CreatedAt:        t.Created,
		UpdatedAt:        t.Updated,
	}
	for _, a := range t.Activities {
		dto.Activities = append(dto.Activities, toActivityDTO(a))
	}
	for _, c := range t.Comments {
		dto.Comments = append(dto.Comments, toCommentDTO(c))
	}
	return dto
}

func toTaskDTOs(tasks []*domain.Task) []TaskDTO {
	dtos := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		dtos = append(dtos, toTaskDTO(t))
	}
	return dtos
}

func toActivityDTO(a domain.Activity) ActivityDTO {
	return ActivityDTO{
		ID:           a.ID,
		TaskID:       a.TaskID,
		ActivityType: a.Type,
		Description:  a.Description,
		UserID:       a.UserID,
		OldValue:     a.OldValue,
		NewValue:     a.NewValue,
		Timestamp:    a.Timestamp,
	}
}

func toCommentDTO(c domain.Comment) CommentDTO {
	return CommentDTO{
		ID:        c.ID,
		TaskID:    c.TaskID,
		Comment:   c.Text,
		UserID:    c.UserID,
		Timestamp: c.Time,
	}
}

func toConsistencyDTO(out *usecase.CheckConsistencyOutput) ConsistencyDTO {
	dto := ConsistencyDTO{
		Checked:    out.Checked,
		OK:         out.OK(),
		Violations: make([]ViolationDTO, 0, len(out.Violations)),
		Duplicates: make([]DuplicateGroupDTO, 0, len(out.Duplicates)),
	}
	for _, v := range out.Violations {
		dto.Violations = append(dto.Violations, ViolationDTO{TaskID: v.TaskID, Rule: v.Rule, Message: v.Message})
	}
	for _, g := range out.Duplicates {
		dto.Duplicates = append(dto.Duplicates, DuplicateGroupDTO{
			ReferenceID:   g.ReferenceID,
			ReferenceType: g.ReferenceType,
			Task:          g.Kind,
			TaskIDs:       g.TaskIDs,
		})
	}
	return dto
}
