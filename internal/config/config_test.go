package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FLASH_SECRET", "s3cret")
	t.Setenv("API_BASE_URL", "")
	t.Setenv("SESSION_STORE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.API.BaseURL != "http://localhost:5000/api" {
		t.Errorf("Unexpected base URL %s", cfg.API.BaseURL)
	}
	if cfg.Session.Store != StoreMemory || cfg.Session.CookieName != "bloggify_sid" {
		t.Errorf("Unexpected session config %+v", cfg.Session)
	}
	if cfg.View.PageSize != 9 || cfg.View.SearchDebounce != 500*time.Millisecond {
		t.Errorf("Unexpected view config %+v", cfg.View)
	}
	if cfg.Upload.MaxImageSize != 5*1024*1024 {
		t.Errorf("Expected 5MB image limit, got %d", cfg.Upload.MaxImageSize)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FLASH_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("SEARCH_DEBOUNCE", "250ms")
	t.Setenv("LIST_PAGE_SIZE", "12")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("MAX_IMAGE_SIZE", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.View.SearchDebounce != 250*time.Millisecond {
		t.Errorf("Expected 250ms debounce, got %v", cfg.View.SearchDebounce)
	}
	if cfg.View.PageSize != 12 {
		t.Errorf("Expected page size 12, got %d", cfg.View.PageSize)
	}
	if !cfg.Session.CookieSecure {
		t.Error("Expected secure cookies")
	}
	// Unparseable values fall back to the default
	if cfg.Upload.MaxImageSize != 5*1024*1024 {
		t.Errorf("Expected default image limit, got %d", cfg.Upload.MaxImageSize)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API:     APIConfig{BaseURL: "http://localhost:5000/api"},
			Session: SessionConfig{Store: StoreMemory, FlashSecret: "x"},
			View:    ViewConfig{PageSize: 9, SearchDebounce: time.Second},
			Upload:  UploadConfig{MaxImageSize: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"relative base url", func(c *Config) { c.API.BaseURL = "/api" }, "API_BASE_URL"},
		{"unknown store", func(c *Config) { c.Session.Store = "redis" }, "SESSION_STORE"},
		{"postgres without db name", func(c *Config) {
			c.Session.Store = StorePostgres
			c.Database.Host = "db"
		}, "DB_NAME"},
		{"missing flash secret", func(c *Config) { c.Session.FlashSecret = "" }, "FLASH_SECRET"},
		{"zero page size", func(c *Config) { c.View.PageSize = 0 }, "LIST_PAGE_SIZE"},
		{"zero debounce", func(c *Config) { c.View.SearchDebounce = 0 }, "SEARCH_DEBOUNCE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{Host: "h", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	want := "host=h port=5432 user=u password=p dbname=n sslmode=disable"
	if got := db.GetDSN(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
