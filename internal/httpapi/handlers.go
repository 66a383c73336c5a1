package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/runoshun/workforce/internal/domain"
	"github.com/runoshun/workforce/internal/usecase"
)

var errBadRequest = errors.New("bad request")

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Data:   data,
		Status: ResponseStatus{StatusCode: http.StatusOK, StatusMessage: "Success"},
	})
}

func fail(c *gin.Context, err error) {
	code := statusFor(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(code, Response{
		Status: ResponseStatus{StatusCode: code, StatusMessage: err.Error()},
	})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidPriority),
		errors.Is(err, domain.ErrInvalidReferenceType),
		errors.Is(err, domain.ErrInvalidKind),
		errors.Is(err, domain.ErrKindNotApplicable),
		errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrInvalidDateRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return false
	}
	return true
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleGetTask(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, fmt.Errorf("%w: invalid task id %q", errBadRequest, c.Param("id")))
		return
	}

	out, err := s.container.GetTaskUseCase().Execute(c.Request.Context(), usecase.GetTaskInput{TaskID: id})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, toTaskDTO(out.Task))
}

func (s *Server) handleCreateTasks(c *gin.Context) {
	var req createTasksRequest
	if !bind(c, &req) {
		return
	}

	items := make([]usecase.CreateTaskItem, 0, len(req.Requests))
	for _, r := range req.Requests {
		refType, err := domain.ParseReferenceType(r.ReferenceType)
		if err != nil {
			fail(c, err)
			return
		}
		kind, err := domain.ParseKind(r.Task)
		if err != nil {
			fail(c, err)
			return
		}
		var priority domain.Priority
		if r.Priority != "" {
			if priority, err = domain.ParsePriority(r.Priority); err != nil {
				fail(c, err)
				return
			}
		}
		items = append(items, usecase.CreateTaskItem{
			ReferenceID:   r.ReferenceID,
			ReferenceType: refType,
			Kind:          kind,
			AssigneeID:    r.AssigneeID,
			Priority:      priority,
			Deadline:      r.TaskDeadlineTime,
			StartDate:     r.StartDate,
		})
	}

	out, err := s.container.CreateTasksUseCase().Execute(c.Request.Context(), usecase.CreateTasksInput{Items: items})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, toTaskDTOs(out.Tasks))
}

func (s *Server) handleUpdateTasks(c *gin.Context) {
	var req updateTasksRequest
	if !bind(c, &req) {
		return
	}

	items := make([]usecase.UpdateTaskItem, 0, len(req.Requests))
	for _, r := range req.Requests {
		item := usecase.UpdateTaskItem{TaskID: r.TaskID, Description: r.Description}
		if r.TaskStatus != nil {
			status, err := domain.ParseStatus(*r.TaskStatus)
			if err != nil {
				fail(c, err)
				return
			}
			item.Status = &status
		}
		items = append(items, item)
	}

	out, err := s.container.UpdateTasksUseCase().Execute(c.Request.Context(), usecase.UpdateTasksInput{Items: items})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, toTaskDTOs(out.Tasks))
}

func (s *Server) handleAssignByReference(c *gin.Context) {
	var req assignByReferenceRequest
	if !bind(c, &req) {
		return
	}
	refType, err := domain.ParseReferenceType(req.ReferenceType)
	if err != nil {
		fail(c, err)
		return
	}

	out, err := s.container.AssignByReferenceUseCase().Execute(c.Request.Context(), usecase.AssignByReferenceInput{
		ReferenceID:   req.ReferenceID,
		ReferenceType: refType,
		AssigneeID:    req.AssigneeID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, out.Message)
}

func (s *Server) handleFetchByDate(c *gin.Context) {
	var req fetchByDateRequest
	if !bind(c, &req) {
		return
	}

	out, err := s.container.FetchTasksByDateUseCase().Execute(c.Request.Context(), usecase.FetchTasksByDateInput{
		AssigneeIDs: req.AssigneeIDs,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, toTaskDTOs(out.Tasks))
}

func (s *Server) handleUpdatePriority(c *gin.Context) {
	var req updatePriorityRequest
	if !bind(c, &req) {
		return
	}
	priority, err := domain.ParsePriority(req.Priority)
	if err != nil {
		fail(c, err)
		return
	}

	out, err := s.container.UpdatePriorityUseCase().Execute(c.Request.Context(), usecase.UpdatePriorityInput{
		TaskID:   req.TaskID,
		Priority: priority,
		UserID:   req.UserID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, toTaskDTO(out.Task))
}

func (s *Server) handleListByPriority(c *gin.Context) {
	priority, err := domain.ParsePriority(c.Param("priority"))
	if err != nil {
		fail(c, err)
		return
	}

	out, err := s.container.ListByPriorityUseCase().Execute(c.Request.Context(), usecase.ListByPriorityInput{Priority: priority})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, toTaskDTOs(out.Tasks))
}

func (s *Server) handleAddComment(c *gin.Context) {
	var req addCommentRequest
	if !bind(c, &req) {
		return
	}

	out, err := s.container.AddCommentUseCase().Execute(c.Request.Context(), usecase.AddCommentInput{
		TaskID:  req.TaskID,
		UserID:  req.UserID,
		Message: req.Comment,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, toCommentDTO(out.Comment))
}

func (s *Server) handleConsistency(c *gin.Context) {
	out, err := s.container.CheckConsistencyUseCase().Execute(c.Request.Context(), usecase.CheckConsistencyInput{})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, toConsistencyDTO(out))
}
