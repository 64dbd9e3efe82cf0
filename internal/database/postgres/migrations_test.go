package postgres

import (
	"errors"
	"strings"
	"testing"
)

func TestEmbeddedMigrations(t *testing.T) {
	migrations, err := embeddedMigrations()
	if err != nil {
		t.Fatalf("embeddedMigrations() error = %v", err)
	}
	if len(migrations) == 0 {
		t.Fatal("expected at least one embedded migration")
	}
	if migrations[0].version != "001_initial.sql" {
		t.Errorf("first migration = %q, want 001_initial.sql", migrations[0].version)
	}
	for i, m := range migrations {
		if strings.TrimSpace(m.sql) == "" {
			t.Errorf("migration %s is empty", m.version)
		}
		if i > 0 && migrations[i-1].version >= m.version {
			t.Errorf("migrations out of order: %s before %s", migrations[i-1].version, m.version)
		}
	}
}

func TestNewPool_RequiresURL(t *testing.T) {
	if _, err := NewPool(nil); !errors.Is(err, errNoURL) {
		t.Errorf("NewPool(nil) error = %v, want %v", err, errNoURL)
	}
	if err := Initialize(nil); !errors.Is(err, errNoURL) {
		t.Errorf("Initialize(nil) error = %v, want %v", err, errNoURL)
	}
}
