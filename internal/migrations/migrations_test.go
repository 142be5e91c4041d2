package migrations

import (
	"strings"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func TestMigrationsEmbedded(t *testing.T) {
	// Проверяем наличие файлов
	entries, err := embedMigrations.ReadDir(".")
	if err != nil {
		t.Fatalf("Failed to read embedded migrations: %v", err)
	}

	if len(entries) == 0 {
		t.Error("No migration files found in embedFS")
	}

	// Проверяем, что есть хотя бы одна SQL миграция
	foundSQL := false
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			foundSQL = true
			t.Logf("Found migration: %s", entry.Name())
		}
	}

	if !foundSQL {
		t.Error("No .sql migration files found")
	}
}

func TestMigrationsContainCoreTables(t *testing.T) {
	// Обе таблицы-коллаборатора должны создаваться миграциями
	wantTables := []string{"orders", "admin_users"}

	entries, err := embedMigrations.ReadDir(".")
	if err != nil {
		t.Fatalf("Failed to read embedded migrations: %v", err)
	}

	var all strings.Builder
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		data, err := embedMigrations.ReadFile(entry.Name())
		if err != nil {
			t.Fatalf("Failed to read %s: %v", entry.Name(), err)
		}
		all.Write(data)
	}

	for _, table := range wantTables {
		if !strings.Contains(all.String(), "CREATE TABLE "+table) {
			t.Errorf("migrations do not create table %q", table)
		}
	}
}
