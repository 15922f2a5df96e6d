package controllers

import (
	"encoding/json"
	"net/http"

	"tasknest/app/middleware"
	"tasknest/app/services"
)

// TaskController handles HTTP requests for tasks.
type TaskController struct {
	Service *services.TaskService
}

// NewTaskController creates a new TaskController.
func NewTaskController(service *services.TaskService) *TaskController {
	return &TaskController{Service: service}
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Urgency     string `json:"urgency"`
	ListID      uint   `json:"list_id"`
	ParentID    *uint  `json:"parent_id"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Urgency     *string `json:"urgency"`
	Completed   *bool   `json:"completed"`
}

type moveTaskRequest struct {
	ParentID *uint `json:"parent_id"`
}

type moveToListRequest struct {
	NewListID *uint `json:"new_list_id"`
}

// GetTasks handles GET /api/tasks/{listID}: the top-level tasks of a
// list with their children nested.
func (c *TaskController) GetTasks(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	tasks, err := c.Service.GetListTasks(r.Context(), userID, pathID(r, "listID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

// GetTask handles GET /api/task/{taskID}.
func (c *TaskController) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	task, err := c.Service.GetTask(r.Context(), userID, pathID(r, "taskID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"task": task})
}

// CreateTask handles POST /api/tasks.
func (c *TaskController) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Title == "" || (req.ListID == 0 && req.ParentID == nil) {
		writeError(w, http.StatusBadRequest, "Title and list_id are required")
		return
	}

	userID, _ := middleware.UserID(r.Context())
	task, err := c.Service.CreateTask(r.Context(), userID, services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Urgency:     req.Urgency,
		ListID:      req.ListID,
		ParentID:    req.ParentID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Task created successfully",
		"task":    task,
	})
}

// CreateSubtask handles POST /api/tasks/{taskID}/subtasks.
func (c *TaskController) CreateSubtask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	userID, _ := middleware.UserID(r.Context())
	parentID := pathID(r, "taskID")
	task, err := c.Service.CreateTask(r.Context(), userID, services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Urgency:     req.Urgency,
		ParentID:    &parentID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	parent, err := c.Service.GetTask(r.Context(), userID, parentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Subtask created successfully",
		"task":    task,
		"parent":  parent,
	})
}

// GetSubtasks handles GET /api/tasks/{taskID}/subtasks.
func (c *TaskController) GetSubtasks(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	parent, subtasks, err := c.Service.GetSubtasks(r.Context(), userID, pathID(r, "taskID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"parent": parent, "subtasks": subtasks})
}

// UpdateTask handles PUT /api/tasks/{taskID}.
func (c *TaskController) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID, _ := middleware.UserID(r.Context())
	task, err := c.Service.UpdateTask(r.Context(), userID, pathID(r, "taskID"), services.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Urgency:     req.Urgency,
		Completed:   req.Completed,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Task updated successfully",
		"task":    task,
	})
}

// DeleteTask handles DELETE /api/tasks/{taskID}.
func (c *TaskController) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	if err := c.Service.DeleteTask(r.Context(), userID, pathID(r, "taskID")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

// MoveTask handles PUT /api/tasks/{taskID}/move; a null parent_id makes
// the task top-level.
func (c *TaskController) MoveTask(w http.ResponseWriter, r *http.Request) {
	var req moveTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID, _ := middleware.UserID(r.Context())
	task, err := c.Service.MoveTask(r.Context(), userID, pathID(r, "taskID"), req.ParentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Task moved successfully",
		"task":    task,
	})
}

// MoveToList handles PUT /api/tasks/{taskID}/move-to-list.
func (c *TaskController) MoveToList(w http.ResponseWriter, r *http.Request) {
	var req moveToListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.NewListID == nil {
		writeError(w, http.StatusBadRequest, "new_list_id is required")
		return
	}

	userID, _ := middleware.UserID(r.Context())
	task, err := c.Service.MoveTaskToList(r.Context(), userID, pathID(r, "taskID"), *req.NewListID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Task moved successfully",
		"task":    task,
	})
}

// GetTree handles GET /api/tasks/{taskID}/tree.
func (c *TaskController) GetTree(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	result, err := c.Service.TaskTree(r.Context(), userID, pathID(r, "taskID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tree":              result.Tree,
		"depth":             result.Depth,
		"total_descendants": result.TotalDescendants,
	})
}

// Flatten handles GET /api/tasks/{taskID}/flatten: the subtree in
// pre-order as a flat list.
func (c *TaskController) Flatten(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	result, err := c.Service.FlattenTask(r.Context(), userID, pathID(r, "taskID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tasks":           result.Tasks,
		"total_count":     result.TotalCount,
		"completed_count": result.CompletedCount,
	})
}
