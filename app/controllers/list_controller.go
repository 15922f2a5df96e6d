package controllers

import (
	"encoding/json"
	"net/http"

	"tasknest/app/middleware"
	"tasknest/app/services"
)

// ListController handles HTTP requests for todo lists.
type ListController struct {
	Lists *services.ListService
	Tasks *services.TaskService
}

// NewListController creates a new ListController.
func NewListController(lists *services.ListService, tasks *services.TaskService) *ListController {
	return &ListController{Lists: lists, Tasks: tasks}
}

type listRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// GetLists handles GET /api/lists.
func (c *ListController) GetLists(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	lists, err := c.Lists.GetLists(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lists": lists})
}

// GetList handles GET /api/lists/{listID}, tasks included.
func (c *ListController) GetList(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	list, err := c.Lists.GetList(r.Context(), userID, pathID(r, "listID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"list": list})
}

// CreateList handles POST /api/lists.
func (c *ListController) CreateList(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Name == nil {
		writeError(w, http.StatusBadRequest, "List name is required")
		return
	}

	userID, _ := middleware.UserID(r.Context())
	description := ""
	if req.Description != nil {
		description = *req.Description
	}
	list, err := c.Lists.CreateList(r.Context(), userID, *req.Name, description)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "List created successfully",
		"list":    list,
	})
}

// UpdateList handles PUT /api/lists/{listID}.
func (c *ListController) UpdateList(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID, _ := middleware.UserID(r.Context())
	list, err := c.Lists.UpdateList(r.Context(), userID, pathID(r, "listID"), req.Name, req.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "List updated successfully",
		"list":    list,
	})
}

// DeleteList handles DELETE /api/lists/{listID}.
func (c *ListController) DeleteList(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	if err := c.Lists.DeleteList(r.Context(), userID, pathID(r, "listID")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "List deleted successfully"})
}

// CompleteAll handles PUT /api/lists/{listID}/complete-all.
func (c *ListController) CompleteAll(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	if err := c.Tasks.SetAllCompleted(r.Context(), userID, pathID(r, "listID"), true); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "All tasks completed successfully"})
}

// UncheckAll handles PUT /api/lists/{listID}/uncheck-all.
func (c *ListController) UncheckAll(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	if err := c.Tasks.SetAllCompleted(r.Context(), userID, pathID(r, "listID"), false); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "All tasks unchecked successfully"})
}
