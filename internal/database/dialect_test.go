package database

import (
	"testing"
)

func TestSQLiteDialect(t *testing.T) {
	dialect := NewSQLiteDialect()

	if got := dialect.DriverName(); got != "sqlite3" {
		t.Errorf("DriverName() = %v, want sqlite3", got)
	}

	query := "SELECT * FROM profiles WHERE id = ? AND role = ?"
	if got := dialect.RewriteQuery(query); got != query {
		t.Errorf("RewriteQuery() changed query: %v", got)
	}

	if got := dialect.BoolValue(true); got != "1" {
		t.Errorf("BoolValue(true) = %v, want 1", got)
	}
	if got := dialect.BoolValue(false); got != "0" {
		t.Errorf("BoolValue(false) = %v, want 0", got)
	}
}

func TestPostgresDialect(t *testing.T) {
	dialect := NewPostgresDialect()

	if got := dialect.DriverName(); got != "postgres" {
		t.Errorf("DriverName() = %v, want postgres", got)
	}

	tests := []struct {
		query    string
		expected string
	}{
		{
			"SELECT * FROM profiles WHERE id = ?",
			"SELECT * FROM profiles WHERE id = $1",
		},
		{
			"INSERT INTO sessions (id, profile_id, expires_at) VALUES (?, ?, ?)",
			"INSERT INTO sessions (id, profile_id, expires_at) VALUES ($1, $2, $3)",
		},
		{
			"SELECT COUNT(*) FROM assignments",
			"SELECT COUNT(*) FROM assignments",
		},
	}
	for _, tc := range tests {
		if got := dialect.RewriteQuery(tc.query); got != tc.expected {
			t.Errorf("RewriteQuery(%q) = %q, want %q", tc.query, got, tc.expected)
		}
	}

	if got := dialect.BoolValue(true); got != "TRUE" {
		t.Errorf("BoolValue(true) = %v, want TRUE", got)
	}
}

func TestMySQLDialect(t *testing.T) {
	dialect := NewMySQLDialect()

	if got := dialect.DriverName(); got != "mysql" {
		t.Errorf("DriverName() = %v, want mysql", got)
	}

	query := "SELECT * FROM resources WHERE category_id = ?"
	if got := dialect.RewriteQuery(query); got != query {
		t.Errorf("RewriteQuery() changed query: %v", got)
	}

	t.Run("DSN adds parseTime", func(t *testing.T) {
		tests := []struct {
			url      string
			expected string
		}{
			{
				"user:pass@tcp(localhost:3306)/chitraboard",
				"user:pass@tcp(localhost:3306)/chitraboard?parseTime=true",
			},
			{
				"user:pass@tcp(localhost:3306)/chitraboard?charset=utf8mb4",
				"user:pass@tcp(localhost:3306)/chitraboard?charset=utf8mb4&parseTime=true",
			},
			{
				"user:pass@tcp(localhost:3306)/chitraboard?parseTime=false",
				"user:pass@tcp(localhost:3306)/chitraboard?parseTime=false",
			},
		}
		for _, tc := range tests {
			got := dialect.DSN(DialectConfig{URL: tc.url})
			if got != tc.expected {
				t.Errorf("DSN(%q) = %q, want %q", tc.url, got, tc.expected)
			}
		}
	})
}
