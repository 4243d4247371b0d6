package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestListSeeders(t *testing.T) {
	list := listSeeders()
	if len(list) != 1 || list[0].Name() != "profiles" {
		t.Fatalf("listSeeders() = %v, want [profiles]", list)
	}
}

func TestProfileSeeder_Commands(t *testing.T) {
	t.Run("builtins", func(t *testing.T) {
		s := &ProfileSeeder{}
		cmds, err := s.commands()
		if err != nil {
			t.Fatalf("commands() error = %v", err)
		}
		if len(cmds) != 7 {
			t.Errorf("len = %d, want 7", len(cmds))
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.toml")
		content := `
[[profiles]]
name = "State PSC"
width = 300
height = 400
min_kb = 15
max_kb = 40
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		s := &ProfileSeeder{}
		s.SetFile(path)
		cmds, err := s.commands()
		if err != nil {
			t.Fatalf("commands() error = %v", err)
		}
		if len(cmds) != 1 || cmds[0].Name != "State PSC" || cmds[0].Width != 300 {
			t.Errorf("commands() = %+v", cmds)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		s := &ProfileSeeder{}
		s.SetFile(filepath.Join(t.TempDir(), "missing.toml"))
		if _, err := s.commands(); err == nil {
			t.Error("commands() accepted a missing file")
		}
	})
}

func TestResolveDSN_Flag(t *testing.T) {
	t.Setenv(EnvDatabaseDSN, "host=env")
	got, err := resolveDSN("host=flag")
	if err != nil || got != "host=flag" {
		t.Errorf("resolveDSN() = %q, %v", got, err)
	}

	got, err = resolveDSN("")
	if err != nil || got != "host=env" {
		t.Errorf("resolveDSN() = %q, %v", got, err)
	}
}
