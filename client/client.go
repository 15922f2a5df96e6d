// Package client is a thin typed wrapper over the REST API. It carries
// the session cookie between calls so terminal clients can stay stateless.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
)

// User mirrors the API's user representation.
type User struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// List mirrors the API's list representation.
type List struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UserID      uint      `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	TaskCount   int64     `json:"task_count"`
}

// Task mirrors the API's task representation, children nested.
type Task struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Urgency     string     `json:"urgency"`
	Depth       int        `json:"depth"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
	ListID      uint       `json:"list_id"`
	ParentID    *uint      `json:"parent_id"`
	Children    []Task     `json:"children"`
}

// Tree is the response of the tree endpoint.
type Tree struct {
	Tree             Task `json:"tree"`
	Depth            int  `json:"depth"`
	TotalDescendants int  `json:"total_descendants"`
}

// Flat is the response of the flatten endpoint.
type Flat struct {
	Tasks          []Task `json:"tasks"`
	TotalCount     int    `json:"total_count"`
	CompletedCount int    `json:"completed_count"`
}

// TaskUpdate holds optional task fields; nil leaves a field unchanged.
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Urgency     *string `json:"urgency,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// Client talks to one API server and holds its session cookie.
type Client struct {
	base        *url.URL
	http        *http.Client
	sessionName string
}

// New creates a client for the server at baseURL. sessionName is the
// session cookie's name, used only for persistence helpers.
func New(baseURL, sessionName string) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		base:        base,
		http:        &http.Client{Jar: jar, Timeout: 30 * time.Second},
		sessionName: sessionName,
	}, nil
}

// SessionCookie returns the current session cookie value, or "".
func (c *Client) SessionCookie() string {
	for _, ck := range c.http.Jar.Cookies(c.base) {
		if ck.Name == c.sessionName {
			return ck.Value
		}
	}
	return ""
}

// SetSessionCookie restores a previously saved session cookie value.
func (c *Client) SetSessionCookie(value string) {
	if value == "" {
		return
	}
	c.http.Jar.SetCookies(c.base, []*http.Cookie{{Name: c.sessionName, Value: value, Path: "/"}})
}

func (c *Client) do(method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.base.JoinPath(path).String(), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&envelope)
		if envelope.Error == "" {
			envelope.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: envelope.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Register creates an account and starts a session.
func (c *Client) Register(username, email, password string) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	err := c.do(http.MethodPost, "/api/register",
		map[string]string{"username": username, "email": email, "password": password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Login authenticates by username or email and starts a session.
func (c *Client) Login(username, password string) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	err := c.do(http.MethodPost, "/api/login",
		map[string]string{"username": username, "password": password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout ends the session.
func (c *Client) Logout() error {
	return c.do(http.MethodPost, "/api/logout", nil, nil)
}

// CheckAuth reports whether the stored session is still valid.
func (c *Client) CheckAuth() (bool, *User, error) {
	var resp struct {
		Authenticated bool  `json:"authenticated"`
		User          *User `json:"user"`
	}
	if err := c.do(http.MethodGet, "/api/check_auth", nil, &resp); err != nil {
		return false, nil, err
	}
	return resp.Authenticated, resp.User, nil
}

// Lists returns the caller's lists.
func (c *Client) Lists() ([]List, error) {
	var resp struct {
		Lists []List `json:"lists"`
	}
	if err := c.do(http.MethodGet, "/api/lists", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Lists, nil
}

// CreateList creates a list.
func (c *Client) CreateList(name, description string) (*List, error) {
	var resp struct {
		List List `json:"list"`
	}
	err := c.do(http.MethodPost, "/api/lists",
		map[string]string{"name": name, "description": description}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.List, nil
}

// DeleteList deletes a list and every task in it.
func (c *Client) DeleteList(id uint) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/api/lists/%d", id), nil, nil)
}

// Tasks returns the top-level tasks of a list, children nested.
func (c *Client) Tasks(listID uint) ([]Task, error) {
	var resp struct {
		Tasks []Task `json:"tasks"`
	}
	if err := c.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d", listID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// CreateTask creates a top-level task in a list.
func (c *Client) CreateTask(listID uint, title, description, urgency string) (*Task, error) {
	var resp struct {
		Task Task `json:"task"`
	}
	err := c.do(http.MethodPost, "/api/tasks", map[string]any{
		"title": title, "description": description, "urgency": urgency, "list_id": listID,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

// CreateSubtask creates a task under parentID.
func (c *Client) CreateSubtask(parentID uint, title, description, urgency string) (*Task, error) {
	var resp struct {
		Task Task `json:"task"`
	}
	err := c.do(http.MethodPost, fmt.Sprintf("/api/tasks/%d/subtasks", parentID), map[string]any{
		"title": title, "description": description, "urgency": urgency,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

// UpdateTask applies the non-nil fields of up.
func (c *Client) UpdateTask(id uint, up TaskUpdate) (*Task, error) {
	var resp struct {
		Task Task `json:"task"`
	}
	if err := c.do(http.MethodPut, fmt.Sprintf("/api/tasks/%d", id), up, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

// SetCompleted toggles a task's completed flag.
func (c *Client) SetCompleted(id uint, completed bool) (*Task, error) {
	return c.UpdateTask(id, TaskUpdate{Completed: &completed})
}

// DeleteTask deletes a task and its subtree.
func (c *Client) DeleteTask(id uint) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", id), nil, nil)
}

// MoveTask re-parents a task; nil makes it top-level.
func (c *Client) MoveTask(id uint, parentID *uint) (*Task, error) {
	var resp struct {
		Task Task `json:"task"`
	}
	err := c.do(http.MethodPut, fmt.Sprintf("/api/tasks/%d/move", id),
		map[string]any{"parent_id": parentID}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

// MoveTaskToList moves a top-level task to another list.
func (c *Client) MoveTaskToList(id, listID uint) (*Task, error) {
	var resp struct {
		Task Task `json:"task"`
	}
	err := c.do(http.MethodPut, fmt.Sprintf("/api/tasks/%d/move-to-list", id),
		map[string]any{"new_list_id": listID}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

// TaskTree fetches the subtree rooted at a task.
func (c *Client) TaskTree(id uint) (*Tree, error) {
	var resp Tree
	if err := c.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d/tree", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FlattenTask fetches a subtree as a flat pre-order list.
func (c *Client) FlattenTask(id uint) (*Flat, error) {
	var resp Flat
	if err := c.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d/flatten", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CompleteAll marks every task in a list completed.
func (c *Client) CompleteAll(listID uint) error {
	return c.do(http.MethodPut, fmt.Sprintf("/api/lists/%d/complete-all", listID), nil, nil)
}

// UncheckAll marks every task in a list incomplete.
func (c *Client) UncheckAll(listID uint) error {
	return c.do(http.MethodPut, fmt.Sprintf("/api/lists/%d/uncheck-all", listID), nil, nil)
}
