package controllers

import (
	"errors"
	"net/http"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/curaious/taskhive/internal/api/response"
	"github.com/curaious/taskhive/internal/perrors"
	"github.com/curaious/taskhive/internal/services"
	task2 "github.com/curaious/taskhive/internal/services/task"
)

func RegisterTaskRoutes(r *router.Router, svc *services.Services) {
	// Create task
	r.POST("/api/tasks", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		var body task2.TaskPayload
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		created, err := svc.Task.Create(stdCtx, principal(ctx), body)
		if err != nil {
			writeError(ctx, stdCtx, "Task creation failed.", perrors.NewErrInternalServerError("Task creation failed.", err))
			return
		}

		response.NewResponse(stdCtx, "Task created successfully.", created).
			WithStatus(http.StatusCreated).
			Write(ctx)
	})

	// List all tasks owned by the caller
	r.GET("/api/tasks/all-tasks", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		tasks, err := svc.Task.List(stdCtx, principal(ctx))
		if err != nil {
			writeError(ctx, stdCtx, "Failed to retrieve tasks.", perrors.NewErrInternalServerError("Failed to retrieve tasks.", err))
			return
		}

		writeOK(ctx, stdCtx, "Tasks retrieved successfully.", tasks)
	})

	// Filter by completion
	r.GET("/api/tasks/completed", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		completed, err := requireBoolQuery(ctx, "completed")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid completed parameter", perrors.NewErrInvalidRequest("Invalid completed parameter", err))
			return
		}

		tasks, err := svc.Task.FilterByCompletion(stdCtx, principal(ctx), completed)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to retrieve tasks.", perrors.NewErrInternalServerError("Failed to retrieve tasks.", err))
			return
		}

		writeOK(ctx, stdCtx, "Tasks retrieved successfully.", tasks)
	})

	// Filter by importance
	r.GET("/api/tasks/important", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		important, err := requireBoolQuery(ctx, "important")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid important parameter", perrors.NewErrInvalidRequest("Invalid important parameter", err))
			return
		}

		tasks, err := svc.Task.FilterByImportance(stdCtx, principal(ctx), important)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to retrieve tasks.", perrors.NewErrInternalServerError("Failed to retrieve tasks.", err))
			return
		}

		writeOK(ctx, stdCtx, "Tasks retrieved successfully.", tasks)
	})

	// Search by title within the caller's tasks
	r.GET("/api/tasks/search", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		title, err := requireStringQuery(ctx, "taskTitle")
		if err != nil {
			writeError(ctx, stdCtx, "taskTitle parameter is required", perrors.NewErrInvalidRequest("taskTitle parameter is required", err))
			return
		}

		tasks, err := svc.Task.Search(stdCtx, principal(ctx), title)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to fetch tasks.", perrors.NewErrInternalServerError("Failed to fetch tasks.", err))
			return
		}

		if len(tasks) == 0 {
			writeError(ctx, stdCtx, "No tasks found with the given title.", perrors.NewErrNotFound("No tasks found with the given title.", errors.New("no matching tasks")))
			return
		}

		writeOK(ctx, stdCtx, "Tasks fetched successfully.", tasks)
	})

	// Get a task by id
	r.GET("/api/tasks/{id}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		t, err := svc.Task.Get(stdCtx, principal(ctx), id)
		if err != nil {
			switch {
			case errors.Is(err, task2.ErrTaskNotFound):
				writeError(ctx, stdCtx, "Task not available.", perrors.NewErrNotFound("Task not available.", err))
			default:
				writeError(ctx, stdCtx, "Failed to retrieve the task.", perrors.NewErrInternalServerError("Failed to retrieve the task.", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "Task retrieved successfully.", t)
	})

	// Replace a task
	r.PUT("/api/tasks/{id}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		var body task2.TaskPayload
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		updated, err := svc.Task.Replace(stdCtx, principal(ctx), id, body)
		if err != nil {
			switch {
			case errors.Is(err, task2.ErrTaskNotFound):
				writeError(ctx, stdCtx, "Task not available.", perrors.NewErrNotFound("Task not available.", err))
			default:
				writeError(ctx, stdCtx, "Failed to update the task.", perrors.NewErrInternalServerError("Failed to update the task.", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "Task updated successfully.", updated)
	})

	// Patch completion/importance flags
	r.PATCH("/api/tasks/{id}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		var patch task2.StatusPatch
		if err := parseBody(ctx, &patch); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		updated, err := svc.Task.PatchStatus(stdCtx, principal(ctx), id, patch)
		if err != nil {
			switch {
			case errors.Is(err, task2.ErrTaskNotFound):
				writeError(ctx, stdCtx, "Task not available.", perrors.NewErrNotFound("Task not available.", err))
			default:
				writeError(ctx, stdCtx, "Failed to update task status.", perrors.NewErrInternalServerError("Failed to update task status.", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "Task status updated successfully.", updated)
	})

	// Delete a task
	r.DELETE("/api/tasks/{id}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		if err := svc.Task.Delete(stdCtx, principal(ctx), id); err != nil {
			switch {
			case errors.Is(err, task2.ErrTaskNotFound):
				writeError(ctx, stdCtx, "Task not available.", perrors.NewErrNotFound("Task not available.", err))
			default:
				writeError(ctx, stdCtx, "Failed to delete the task.", perrors.NewErrInternalServerError("Failed to delete the task.", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "Task deleted successfully.", nil)
	})
}
