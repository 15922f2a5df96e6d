// todoctl is a terminal client for the task-list API. Every command is
// one HTTP call; list views are re-fetched after each mutation.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tasknest/client"
)

var (
	serverURL   string
	sessionFile string

	api *client.Client
)

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tasknest-session"
	}
	return filepath.Join(home, ".tasknest-session")
}

func loadSession() {
	data, err := os.ReadFile(sessionFile)
	if err != nil {
		return
	}
	api.SetSessionCookie(strings.TrimSpace(string(data)))
}

func saveSession() error {
	cookie := api.SessionCookie()
	if cookie == "" {
		return os.Remove(sessionFile)
	}
	return os.WriteFile(sessionFile, []byte(cookie), 0o600)
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return uint(id), nil
}

func main() {
	root := &cobra.Command{
		Use:           "todoctl",
		Short:         "Terminal client for the hierarchical task-list API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			api, err = client.New(serverURL, "tasknest_session")
			if err != nil {
				return err
			}
			loadSession()
			return nil
		},
	}
	root.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "API server base URL")
	root.PersistentFlags().StringVar(&sessionFile, "session-file", defaultSessionFile(), "file holding the session cookie")

	root.AddCommand(
		registerCmd(),
		loginCmd(),
		logoutCmd(),
		whoamiCmd(),
		listsCmd(),
		tasksCmd(),
		addCmd(),
		subCmd(),
		doneCmd(),
		undoneCmd(),
		rmCmd(),
		mvCmd(),
		treeCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <username> <email> <password>",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := api.Register(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			if err := saveSession(); err != nil {
				return err
			}
			fmt.Printf("registered and logged in as %s\n", user.Username)
			return nil
		},
	}
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Log in (username or email)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := api.Login(args[0], args[1])
			if err != nil {
				return err
			}
			if err := saveSession(); err != nil {
				return err
			}
			fmt.Printf("logged in as %s\n", user.Username)
			return nil
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := api.Logout(); err != nil {
				return err
			}
			os.Remove(sessionFile)
			fmt.Println("logged out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, user, err := api.CheckAuth()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("not logged in")
				return nil
			}
			fmt.Printf("%s <%s>\n", user.Username, user.Email)
			return nil
		},
	}
}

func listsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Show your lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lists, err := api.Lists()
			if err != nil {
				return err
			}
			renderLists(os.Stdout, lists)
			return nil
		},
	}

	var desc string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := api.CreateList(args[0], desc)
			if err != nil {
				return err
			}
			fmt.Printf("created list #%d %s\n", list.ID, list.Name)
			return nil
		},
	}
	add.Flags().StringVar(&desc, "desc", "", "list description")

	rm := &cobra.Command{
		Use:   "rm <list-id>",
		Short: "Delete a list and all its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := api.DeleteList(id); err != nil {
				return err
			}
			fmt.Println("list deleted")
			return nil
		},
	}

	completeAll := &cobra.Command{
		Use:   "done <list-id>",
		Short: "Mark every task in a list completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := api.CompleteAll(id); err != nil {
				return err
			}
			return showList(id)
		},
	}

	uncheckAll := &cobra.Command{
		Use:   "reset <list-id>",
		Short: "Mark every task in a list incomplete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := api.UncheckAll(id); err != nil {
				return err
			}
			return showList(id)
		},
	}

	cmd.AddCommand(add, rm, completeAll, uncheckAll)
	return cmd
}

// showList re-fetches and renders a list after a mutation.
func showList(listID uint) error {
	tasks, err := api.Tasks(listID)
	if err != nil {
		return err
	}
	renderTasks(os.Stdout, tasks)
	return nil
}

func tasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks <list-id>",
		Short: "Show a list's task tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return showList(id)
		},
	}
}

func addCmd() *cobra.Command {
	var desc, urgency string
	cmd := &cobra.Command{
		Use:   "add <list-id> <title>",
		Short: "Add a top-level task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := api.CreateTask(id, args[1], desc, urgency); err != nil {
				return err
			}
			return showList(id)
		},
	}
	cmd.Flags().StringVar(&desc, "desc", "", "task description")
	cmd.Flags().StringVar(&urgency, "urgency", "medium", "low|medium|high|urgent")
	return cmd
}

func subCmd() *cobra.Command {
	var desc, urgency string
	cmd := &cobra.Command{
		Use:   "sub <task-id> <title>",
		Short: "Add a subtask under a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			task, err := api.CreateSubtask(id, args[1], desc, urgency)
			if err != nil {
				return err
			}
			return showList(task.ListID)
		},
	}
	cmd.Flags().StringVar(&desc, "desc", "", "task description")
	cmd.Flags().StringVar(&urgency, "urgency", "medium", "low|medium|high|urgent")
	return cmd
}

func setCompleted(arg string, completed bool) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	task, err := api.SetCompleted(id, completed)
	if err != nil {
		return err
	}
	return showList(task.ListID)
}

func doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <task-id>",
		Short: "Complete a task (and its subtasks)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setCompleted(args[0], true)
		},
	}
}

func undoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undone <task-id>",
		Short: "Mark a task incomplete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setCompleted(args[0], false)
		},
	}
}

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <task-id>",
		Short: "Delete a task and its subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := api.DeleteTask(id); err != nil {
				return err
			}
			fmt.Println("task deleted")
			return nil
		},
	}
}

func mvCmd() *cobra.Command {
	var parentArg, listArg string
	var top bool
	cmd := &cobra.Command{
		Use:   "mv <task-id>",
		Short: "Move a task to a new parent, to top level, or to another list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var task *client.Task
			switch {
			case listArg != "":
				listID, err := parseID(listArg)
				if err != nil {
					return err
				}
				task, err = api.MoveTaskToList(id, listID)
				if err != nil {
					return err
				}
			case top:
				task, err = api.MoveTask(id, nil)
				if err != nil {
					return err
				}
			case parentArg != "":
				parentID, err := parseID(parentArg)
				if err != nil {
					return err
				}
				task, err = api.MoveTask(id, &parentID)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("one of --parent, --top, or --list is required")
			}
			return showList(task.ListID)
		},
	}
	cmd.Flags().StringVar(&parentArg, "parent", "", "new parent task id")
	cmd.Flags().BoolVar(&top, "top", false, "make the task top-level")
	cmd.Flags().StringVar(&listArg, "list", "", "destination list id (top-level tasks only)")
	return cmd
}

func treeCmd() *cobra.Command {
	var flat bool
	cmd := &cobra.Command{
		Use:   "tree <task-id>",
		Short: "Show a task's subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if flat {
				result, err := api.FlattenTask(id)
				if err != nil {
					return err
				}
				for _, t := range result.Tasks {
					renderTask(os.Stdout, client.Task{
						ID: t.ID, Title: t.Title, Completed: t.Completed,
						Urgency: t.Urgency, Depth: 0,
					})
				}
				fmt.Printf("%d tasks, %d completed\n", result.TotalCount, result.CompletedCount)
				return nil
			}
			result, err := api.TaskTree(id)
			if err != nil {
				return err
			}
			renderTask(os.Stdout, result.Tree)
			return nil
		},
	}
	cmd.Flags().BoolVar(&flat, "flat", false, "print the subtree as a flat list")
	return cmd
}
