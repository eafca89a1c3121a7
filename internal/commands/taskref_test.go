package commands

import (
	"testing"

	"dailytask/internal/service"
)

func TestParseTaskRef_Number(t *testing.T) {
	ref, err := ParseTaskRef([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 5 || ref.ID != "" {
		t.Errorf("expected Num 5, got %+v", ref)
	}
}

func TestParseTaskRef_ID(t *testing.T) {
	ref, err := ParseTaskRef([]string{"64f1c0ffee"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "64f1c0ffee" || ref.Num != 0 {
		t.Errorf("expected ID ref, got %+v", ref)
	}
}

func TestParseTaskRef_IDPrefix(t *testing.T) {
	ref, err := ParseTaskRef([]string{"id:2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "2" || ref.Num != 0 {
		t.Errorf("expected ID \"2\", got %+v", ref)
	}
}

func TestParseTaskRef_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"none", nil},
		{"empty", []string{""}},
		{"zero", []string{"0"}},
		{"too many", []string{"1", "2"}},
		{"bare prefix", []string{"id:"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseTaskRef(tt.args); err == nil {
				t.Errorf("expected error for %v", tt.args)
			}
		})
	}

	if _, err := ParseTaskRef(nil); err != ErrTaskRefRequired {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestTaskRef_Resolve(t *testing.T) {
	tasks := []service.Task{
		{ID: "a", Text: "buy milk"},
		{ID: "b", Text: "write report"},
	}

	got, err := TaskRef{Num: 2}.Resolve(tasks)
	if err != nil || got.ID != "b" {
		t.Errorf("Resolve(Num 2) = %+v, %v", got, err)
	}

	got, err = TaskRef{ID: "a"}.Resolve(tasks)
	if err != nil || got.Text != "buy milk" {
		t.Errorf("Resolve(ID a) = %+v, %v", got, err)
	}

	if _, err := (TaskRef{Num: 3}).Resolve(tasks); err == nil {
		t.Error("expected out of range error")
	}
	if _, err := (TaskRef{ID: "zzz"}).Resolve(tasks); err == nil {
		t.Error("expected not found error")
	}
}
