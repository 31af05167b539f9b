package main

import "testing"

func TestRootRegistersSchemaCommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"up", "down", "version"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("subcommand %q not registered (err=%v)", name, err)
		}
	}
}

func TestSchemaCommandsRejectArgs(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"up", "extra"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected positional args to be rejected")
	}
}
