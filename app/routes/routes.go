package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"tasknest/app/controllers"
	"tasknest/app/middleware"
	"tasknest/app/session"
)

// RegisterRoutes sets up all routes for the application. Auth routes
// are public; everything else sits behind the session guard.
func RegisterRoutes(
	router *mux.Router,
	auth *controllers.AuthController,
	lists *controllers.ListController,
	tasks *controllers.TaskController,
	sessions *session.Manager,
) {
	router.HandleFunc("/", index).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", health).Methods(http.MethodGet)
	api.HandleFunc("/register", auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/logout", auth.Logout).Methods(http.MethodPost)
	api.HandleFunc("/check_auth", auth.CheckAuth).Methods(http.MethodGet)

	protected := api.PathPrefix("/").Subrouter()
	protected.Use(middleware.RequireAuth(sessions))

	protected.HandleFunc("/current_user", auth.CurrentUser).Methods(http.MethodGet)

	protected.HandleFunc("/lists", lists.GetLists).Methods(http.MethodGet)
	protected.HandleFunc("/lists", lists.CreateList).Methods(http.MethodPost)
	protected.HandleFunc("/lists/{listID:[0-9]+}", lists.GetList).Methods(http.MethodGet)
	protected.HandleFunc("/lists/{listID:[0-9]+}", lists.UpdateList).Methods(http.MethodPut)
	protected.HandleFunc("/lists/{listID:[0-9]+}", lists.DeleteList).Methods(http.MethodDelete)
	protected.HandleFunc("/lists/{listID:[0-9]+}/complete-all", lists.CompleteAll).Methods(http.MethodPut)
	protected.HandleFunc("/lists/{listID:[0-9]+}/uncheck-all", lists.UncheckAll).Methods(http.MethodPut)

	protected.HandleFunc("/tasks", tasks.CreateTask).Methods(http.MethodPost)
	protected.HandleFunc("/tasks/{listID:[0-9]+}", tasks.GetTasks).Methods(http.MethodGet)
	protected.HandleFunc("/task/{taskID:[0-9]+}", tasks.GetTask).Methods(http.MethodGet)
	protected.HandleFunc("/tasks/{taskID:[0-9]+}", tasks.UpdateTask).Methods(http.MethodPut)
	protected.HandleFunc("/tasks/{taskID:[0-9]+}", tasks.DeleteTask).Methods(http.MethodDelete)
	protected.HandleFunc("/tasks/{taskID:[0-9]+}/subtasks", tasks.CreateSubtask).Methods(http.MethodPost)
	protected.HandleFunc("/tasks/{taskID:[0-9]+}/subtasks", tasks.GetSubtasks).Methods(http.MethodGet)
	protected.HandleFunc("/tasks/{taskID:[0-9]+}/move", tasks.MoveTask).Methods(http.MethodPut)
	protected.HandleFunc("/tasks/{taskID:[0-9]+}/move-to-list", tasks.MoveToList).Methods(http.MethodPut)
	protected.HandleFunc("/tasks/{taskID:[0-9]+}/tree", tasks.GetTree).Methods(http.MethodGet)
	protected.HandleFunc("/tasks/{taskID:[0-9]+}/flatten", tasks.Flatten).Methods(http.MethodGet)
}

func index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"message": "Hierarchical task list API is running",
		"status":  "success",
		"endpoints": []string{
			"/api/register - User registration",
			"/api/login - User login",
			"/api/logout - User logout",
			"/api/lists - Todo lists management",
			"/api/tasks - Tasks management",
		},
	})
}

func health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy", "database": "connected"})
}
