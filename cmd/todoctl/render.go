package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tasknest/client"
)

var (
	doneStyle  = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	titleStyle = lipgloss.NewStyle().Bold(true)
	idStyle    = lipgloss.NewStyle().Faint(true)

	urgencyStyles = map[string]lipgloss.Style{
		"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		"high":   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"urgent": lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
)

func renderLists(w io.Writer, lists []client.List) {
	if len(lists) == 0 {
		fmt.Fprintln(w, "no lists yet")
		return
	}
	for _, l := range lists {
		fmt.Fprintf(w, "%s %s  %s\n",
			idStyle.Render(fmt.Sprintf("#%d", l.ID)),
			titleStyle.Render(l.Name),
			idStyle.Render(fmt.Sprintf("(%d tasks)", l.TaskCount)),
		)
		if l.Description != "" {
			fmt.Fprintf(w, "   %s\n", l.Description)
		}
	}
}

// renderTasks prints a task tree recursively, two spaces per depth level.
func renderTasks(w io.Writer, tasks []client.Task) {
	for _, t := range tasks {
		renderTask(w, t)
	}
}

func renderTask(w io.Writer, t client.Task) {
	indent := strings.Repeat("  ", t.Depth)
	box := "[ ]"
	title := t.Title
	if t.Completed {
		box = "[x]"
		title = doneStyle.Render(title)
	}
	fmt.Fprintf(w, "%s%s %s %s %s\n",
		indent,
		box,
		idStyle.Render(fmt.Sprintf("#%d", t.ID)),
		title,
		urgencyStyles[t.Urgency].Render(t.Urgency),
	)
	for _, child := range t.Children {
		renderTask(w, child)
	}
}
