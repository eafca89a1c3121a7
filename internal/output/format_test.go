package output

import (
	"bytes"
	"testing"

	"dailytask/internal/service"
	"dailytask/internal/store"
)

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		num  int
		task service.Task
		want string
	}{
		{"open", 1, service.Task{ID: "1", Text: "buy milk"}, "   1  [ ] buy milk\n"},
		{"completed", 12, service.Task{ID: "2", Text: "write report", Completed: true}, "  12  [x] write report\n"},
		{"newline", 3, service.Task{ID: "3", Text: "a\nb"}, "   3  [ ] a b\n"},
		{"blank", 4, service.Task{ID: "4", Text: "  "}, "   4  [ ] (untitled)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatTask(&buf, tt.num, tt.task)
			if got := buf.String(); got != tt.want {
				t.Errorf("FormatTask() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatList(t *testing.T) {
	tasks := []service.Task{
		{ID: "1", Text: "buy milk", Completed: true},
		{ID: "2", Text: "write report"},
	}
	var buf bytes.Buffer
	FormatList(&buf, store.View{Tasks: tasks, Remaining: store.Remaining(tasks)}, false)

	want := "   1  [x] buy milk\n   2  [ ] write report\n\n1 remaining Tasks\n"
	if got := buf.String(); got != want {
		t.Errorf("FormatList() = %q, want %q", got, want)
	}
}

func TestFormatList_Empty(t *testing.T) {
	var buf bytes.Buffer
	FormatList(&buf, store.View{}, false)
	if want := "no tasks found\n\n0 remaining Tasks\n"; buf.String() != want {
		t.Errorf("FormatList() = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	FormatList(&buf, store.View{}, true)
	if want := "\n0 remaining Tasks\n"; buf.String() != want {
		t.Errorf("FormatList(quiet) = %q, want %q", buf.String(), want)
	}
}
