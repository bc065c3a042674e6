package slack

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBotCache_GetSet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bots.json")

	cache := NewBotCache(path)

	// Initially empty
	if _, ok := cache.Get("B123"); ok {
		t.Error("expected miss for unknown bot")
	}

	cache.Set("B123", "deploybot")

	name, ok := cache.Get("B123")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if name != "deploybot" {
		t.Errorf("expected name deploybot, got %s", name)
	}
}

func TestBotCache_Persistence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "bots.json")

	// Create and populate cache
	cache1 := NewBotCache(path)
	cache1.Set("B123", "deploybot")
	if err := cache1.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	// Load in new instance
	cache2 := NewBotCache(path)
	if err := cache2.Load(); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	name, ok := cache2.Get("B123")
	if !ok {
		t.Fatal("expected hit after Load")
	}
	if name != "deploybot" {
		t.Errorf("expected name deploybot, got %s", name)
	}
}

func TestBotCache_LoadMissingFile(t *testing.T) {
	cache := NewBotCache(filepath.Join(t.TempDir(), "absent.json"))
	if err := cache.Load(); err != nil {
		t.Errorf("Load of missing file should be a no-op, got %v", err)
	}
}

func TestBotCache_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bots.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	cache := NewBotCache(path)
	if err := cache.Load(); err == nil {
		t.Error("expected error for corrupt cache file")
	}
}

func TestBotCache_MemoryOnly(t *testing.T) {
	cache := NewBotCache("")
	cache.Set("B1", "bot")

	if err := cache.Save(); err != nil {
		t.Errorf("Save without path should be a no-op, got %v", err)
	}
	if err := cache.Load(); err != nil {
		t.Errorf("Load without path should be a no-op, got %v", err)
	}
	if name, ok := cache.Get("B1"); !ok || name != "bot" {
		t.Error("in-memory entries should survive no-op Load")
	}
}
