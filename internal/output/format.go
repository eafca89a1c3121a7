// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"dailytask/internal/service"
	"dailytask/internal/store"
)

// EmptyMessage is printed by the list command when there are no tasks.
const EmptyMessage = "no tasks found"

// FormatTask formats a task row.
// Format: "{N:>4}  [x] {TEXT}\n" (4-wide right-aligned number, two spaces, checkbox, text)
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, Checkbox(task.Completed), normalizeTitle(task.Text))
}

// FormatRemaining formats the remaining counter line, preceded by a blank line.
func FormatRemaining(w io.Writer, remaining int) {
	fmt.Fprintf(w, "\n%d remaining Tasks\n", remaining)
}

// FormatList renders a view: one row per task, then the remaining counter.
// An empty list prints EmptyMessage unless quiet.
func FormatList(w io.Writer, v store.View, quiet bool) {
	if len(v.Tasks) == 0 && !quiet {
		fmt.Fprintln(w, EmptyMessage)
	}
	for i, task := range v.Tasks {
		FormatTask(w, i+1, task)
	}
	FormatRemaining(w, v.Remaining)
}

// Checkbox returns "[x]" for completed tasks and "[ ]" otherwise.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// normalizeTitle normalizes a task text for display.
// - Empty or whitespace-only texts become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

// Title returns the display form of a task text.
func Title(text string) string {
	return normalizeTitle(text)
}
