package commands

import (
	"testing"

	"github.com/spf13/cobra"
)

func find(t *testing.T, root *cobra.Command, name string) *cobra.Command {
	t.Helper()
	cmd, _, err := root.Find([]string{name})
	if err != nil || cmd == root {
		t.Fatalf("command %q not found: %v", name, err)
	}
	return cmd
}

func TestCommandTree(t *testing.T) {
	root := New()
	for _, name := range []string{
		"add", "get", "edit", "remove", "rm", "complete", "log",
		"serve", "mcp", "ui", "key", "info", "version",
	} {
		find(t, root, name)
	}
}

func TestKindArgs(t *testing.T) {
	root := New()
	for _, tc := range []struct {
		cmd     string
		args    []string
		wantErr bool
	}{
		{"add", []string{"task", "Standup"}, false},
		{"add", []string{"tasks", "Standup", "again"}, false},
		{"add", []string{"task"}, true},
		{"add", []string{"chore", "Dishes"}, true},
		{"add", nil, true},
		{"get", []string{"visions"}, false},
		{"get", []string{"goal", "id-1"}, false},
		{"get", []string{"goal", "id-1", "extra"}, true},
		{"edit", []string{"todo", "id-1"}, false},
		{"edit", []string{"todo"}, true},
		{"remove", []string{"word", "id-1"}, false},
		{"complete", []string{"goal"}, true},
	} {
		cmd := find(t, root, tc.cmd)
		err := cmd.Args(cmd, tc.args)
		if (err != nil) != tc.wantErr {
			t.Errorf("%s %v: err = %v, wantErr %v", tc.cmd, tc.args, err, tc.wantErr)
		}
	}
}

func TestKindCompletions(t *testing.T) {
	names, _ := kindCompletions(nil, nil, "")
	if len(names) != 6 {
		t.Fatalf("got %v", names)
	}
	if names, _ := kindCompletions(nil, []string{"task"}, ""); len(names) != 0 {
		t.Fatalf("completed past the kind: %v", names)
	}
}
