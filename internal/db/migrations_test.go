package db

import (
	"errors"
	"testing"
	"testing/fstest"
)

func TestRunMigrationsDetectsModifiedScript(t *testing.T) {
	database := openTestDatabase(t)

	files := fstest.MapFS{
		"0100_notes.sql": {Data: []byte("-- scratch table\nCREATE TABLE scratch (id INTEGER);\n")},
	}
	if err := runMigrations(database, files); err != nil {
		t.Fatalf("apply scratch migration: %v", err)
	}
	if err := runMigrations(database, files); err != nil {
		t.Fatalf("expected unchanged script to be skipped, got %v", err)
	}

	files["0100_notes.sql"] = &fstest.MapFile{Data: []byte("CREATE TABLE scratch (id INTEGER, label TEXT);\n")}
	err := runMigrations(database, files)
	if !errors.Is(err, errChecksumMismatch) {
		t.Fatalf("expected checksum mismatch, got %v", err)
	}
}

func TestReadMigrationScriptsOrdersByVersion(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{
		"0010_b.sql": {Data: []byte("SELECT 2;")},
		"0002_a.sql": {Data: []byte("SELECT 1;")},
		"README.md":  {Data: []byte("ignored")},
	}
	scripts, err := readMigrationScripts(files)
	if err != nil {
		t.Fatalf("read scripts: %v", err)
	}
	if len(scripts) != 2 || scripts[0].version != 2 || scripts[1].version != 10 {
		t.Fatalf("unexpected order: %+v", scripts)
	}
}

func TestReadMigrationScriptsRejectsBadNames(t *testing.T) {
	t.Parallel()

	cases := map[string]fstest.MapFS{
		"no version":        {"init.sql": {Data: []byte("SELECT 1;")}},
		"non-numeric":       {"abc_init.sql": {Data: []byte("SELECT 1;")}},
		"duplicate version": {"0001_a.sql": {Data: []byte("SELECT 1;")}, "01_b.sql": {Data: []byte("SELECT 1;")}},
	}
	for name, files := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if _, err := readMigrationScripts(files); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSplitSQLStatementsSkipsCommentLines(t *testing.T) {
	t.Parallel()

	statements := splitSQLStatements("-- header; with semicolon\nCREATE TABLE a (id INTEGER);\n  -- trailing\n")
	if len(statements) != 1 || statements[0] != "CREATE TABLE a (id INTEGER)" {
		t.Fatalf("unexpected statements %q", statements)
	}
}
