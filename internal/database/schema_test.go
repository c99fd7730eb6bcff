package database

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMigrationFilesExist(t *testing.T) {
	migrationsDir := "../../migrations"

	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		t.Fatal("Migrations directory does not exist")
	}

	expectedMigrations := []string{
		"00001_create_restaurants_table.sql",
		"00002_create_restaurant_days_table.sql",
		"00003_create_products_table.sql",
		"00004_create_promotions_table.sql",
		"00005_create_promotion_days_table.sql",
	}

	for _, migration := range expectedMigrations {
		path := filepath.Join(migrationsDir, migration)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("Migration file %s does not exist", migration)
		}
	}
}

func TestMigrationFilesHaveUpAndDown(t *testing.T) {
	migrationsDir := "../../migrations"

	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		t.Fatalf("Failed to read migrations directory: %v", err)
	}

	sqlFileCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		sqlFileCount++
		content, err := os.ReadFile(filepath.Join(migrationsDir, file.Name()))
		if err != nil {
			t.Errorf("Failed to read migration file %s: %v", file.Name(), err)
			continue
		}

		contentStr := string(content)

		if !strings.Contains(contentStr, "-- +goose Up") {
			t.Errorf("Migration file %s missing '-- +goose Up' directive", file.Name())
		}
		if !strings.Contains(contentStr, "-- +goose Down") {
			t.Errorf("Migration file %s missing '-- +goose Down' directive", file.Name())
		}
		if !strings.Contains(contentStr, "-- +goose StatementBegin") {
			t.Errorf("Migration file %s missing '-- +goose StatementBegin' directive", file.Name())
		}
		if !strings.Contains(contentStr, "-- +goose StatementEnd") {
			t.Errorf("Migration file %s missing '-- +goose StatementEnd' directive", file.Name())
		}
	}

	if sqlFileCount == 0 {
		t.Error("No SQL migration files found")
	}
}

func TestMigrationFilesCreateExpectedTables(t *testing.T) {
	migrationsDir := "../../migrations"

	expectedTables := map[string]string{
		"restaurants":     "00001_create_restaurants_table.sql",
		"restaurant_days": "00002_create_restaurant_days_table.sql",
		"products":        "00003_create_products_table.sql",
		"promotions":      "00004_create_promotions_table.sql",
		"promotion_days":  "00005_create_promotion_days_table.sql",
	}

	for tableName, migrationFile := range expectedTables {
		path := filepath.Join(migrationsDir, migrationFile)
		content, err := os.ReadFile(path)
		if err != nil {
			t.Errorf("Failed to read migration file %s: %v", migrationFile, err)
			continue
		}

		contentStr := string(content)

		if !strings.Contains(contentStr, "CREATE TABLE "+tableName) {
			t.Errorf("Migration file %s does not create table %s", migrationFile, tableName)
		}
		if !strings.Contains(contentStr, "DROP TABLE "+tableName) {
			t.Errorf("Migration file %s does not drop table %s in down section", migrationFile, tableName)
		}
	}
}

// The hour tables store times as 'HH:mm' strings, and both "start" and "end"
// are reserved words in Postgres so they must stay quoted.
func TestHourTablesQuoteReservedColumns(t *testing.T) {
	migrationsDir := "../../migrations"

	for _, migrationFile := range []string{
		"00002_create_restaurant_days_table.sql",
		"00005_create_promotion_days_table.sql",
	} {
		content, err := os.ReadFile(filepath.Join(migrationsDir, migrationFile))
		if err != nil {
			t.Fatalf("Failed to read migration file %s: %v", migrationFile, err)
		}

		contentStr := string(content)
		for _, column := range []string{`"start" VARCHAR(5)`, `"end" VARCHAR(5)`, "day INTEGER"} {
			if !strings.Contains(contentStr, column) {
				t.Errorf("Migration file %s missing column definition %s", migrationFile, column)
			}
		}
	}
}

func TestChildTablesCascadeOnDelete(t *testing.T) {
	migrationsDir := "../../migrations"

	childMigrations := []string{
		"00002_create_restaurant_days_table.sql",
		"00003_create_products_table.sql",
		"00004_create_promotions_table.sql",
		"00005_create_promotion_days_table.sql",
	}

	for _, migrationFile := range childMigrations {
		content, err := os.ReadFile(filepath.Join(migrationsDir, migrationFile))
		if err != nil {
			t.Fatalf("Failed to read migration file %s: %v", migrationFile, err)
		}

		if !strings.Contains(string(content), "ON DELETE CASCADE") {
			t.Errorf("Migration file %s missing ON DELETE CASCADE", migrationFile)
		}
	}
}
