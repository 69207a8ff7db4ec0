package config

import (
	"os"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestLoad(t *testing.T) {
	// Create a temporary config file
	configContent := `
server:
  port: 9090
log:
  level: "debug"
  format: "json"
auth:
  jwt_secret: "test-secret"
  token_expire_hours: 48
seed:
  path: "seed.yaml"
attachments:
  enabled: true
  endpoint: "localhost:9000"
  access_key: "minioadmin"
  secret_key: "minioadmin"
  bucket: "contract-attachments"
  use_ssl: false
  expire_days: 14
users:
  - username: "testuser"
    password: "testpass"
    kentem_scope: "K-000123"
`
	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(configContent); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpFile.Close()

	// Test loading config
	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Verify values
	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Expected log format json, got %s", cfg.Log.Format)
	}
	if cfg.Auth.TokenExpireHours != 48 {
		t.Errorf("Expected token_expire_hours 48, got %d", cfg.Auth.TokenExpireHours)
	}
	if cfg.Seed.Path != "seed.yaml" {
		t.Errorf("Expected seed path seed.yaml, got %s", cfg.Seed.Path)
	}
	if !cfg.Attachments.Enabled {
		t.Error("Expected attachments to be enabled")
	}
	if cfg.Attachments.Endpoint != "localhost:9000" {
		t.Errorf("Expected endpoint localhost:9000, got %s", cfg.Attachments.Endpoint)
	}
	if cfg.Attachments.ExpireDays != 14 {
		t.Errorf("Expected expire_days 14, got %d", cfg.Attachments.ExpireDays)
	}
	if len(cfg.Users) != 1 {
		t.Fatalf("Expected 1 user, got %d", len(cfg.Users))
	}
	if cfg.Users[0].Username != "testuser" {
		t.Errorf("Expected username testuser, got %s", cfg.Users[0].Username)
	}
	if cfg.Users[0].KentemScope != "K-000123" {
		t.Errorf("Expected kentem scope K-000123, got %s", cfg.Users[0].KentemScope)
	}
}

func TestLoadDefaults(t *testing.T) {
	// Create minimal config to test defaults
	configContent := `
auth:
  jwt_secret: "test-secret"
`
	tmpFile, err := os.CreateTemp("", "config-defaults-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(configContent); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpFile.Close()

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Verify defaults
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Expected default log level info, got %s", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Expected default log format text, got %s", cfg.Log.Format)
	}
	if cfg.Auth.TokenExpireHours != 24 {
		t.Errorf("Expected default token_expire_hours 24, got %d", cfg.Auth.TokenExpireHours)
	}
	if cfg.Attachments.ExpireDays != 7 {
		t.Errorf("Expected default expire_days 7, got %d", cfg.Attachments.ExpireDays)
	}
	if cfg.Attachments.Enabled {
		t.Error("Expected attachments to be disabled by default")
	}
}

func TestLoadNonExistent(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "config-invalid-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString("invalid: yaml: content:"); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpFile.Close()

	_, err = Load(tmpFile.Name())
	if err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestFindUser(t *testing.T) {
	cfg := &Config{
		Users: []User{
			{Username: "user1", Password: "pass1", KentemScope: "K-000123"},
			{Username: "user2", Password: "pass2"},
		},
	}

	// Test finding existing user
	user := cfg.FindUser("user1")
	if user == nil {
		t.Fatal("Expected to find user1")
	}
	if user.KentemScope != "K-000123" {
		t.Errorf("Expected kentem scope K-000123, got %s", user.KentemScope)
	}

	// Test finding non-existent user
	user = cfg.FindUser("nonexistent")
	if user != nil {
		t.Error("Expected nil for non-existent user")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	tests := []struct {
		name     string
		user     User
		password string
		expected bool
	}{
		{
			name:     "plain password match",
			user:     User{Username: "u", Password: "secret"},
			password: "secret",
			expected: true,
		},
		{
			name:     "plain password mismatch",
			user:     User{Username: "u", Password: "secret"},
			password: "wrong",
			expected: false,
		},
		{
			name:     "bcrypt hash match",
			user:     User{Username: "u", PasswordHash: string(hash)},
			password: "secret",
			expected: true,
		},
		{
			name:     "bcrypt hash mismatch",
			user:     User{Username: "u", PasswordHash: string(hash)},
			password: "wrong",
			expected: false,
		},
		{
			name:     "hash wins over plain",
			user:     User{Username: "u", Password: "wrong", PasswordHash: string(hash)},
			password: "secret",
			expected: true,
		},
		{
			name:     "no credential configured",
			user:     User{Username: "u"},
			password: "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.CheckPassword(tt.password); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
