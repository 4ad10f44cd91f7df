package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/mcp-training/parkserver/game/action"
	"github.com/wricardo/mcp-training/parkserver/game/engine"
)

func createTestConfig() *engine.ScenarioConfig {
	config := &engine.ScenarioConfig{
		Name:            "Test Park",
		Description:     "Small park for session tests",
		Width:           5,
		Height:          5,
		BaseLandHeight:  16,
		WaterHeight:     32,
		StartingCash:    50000,
		LandPrice:       900,
		TreeRemovalCost: 40,
		MaxElements:     256,
		Layout: []string{
			"NNNNN",
			"N..TS",
			"N.W.S",
			"N...S",
			"NSSSS",
		},
		Legend: map[string]string{
			".": "owned",
			"S": "for_sale",
			"N": "not_owned",
			"W": "water",
			"T": "tree",
		},
	}
	config.Messages.Welcome = "Welcome!"
	return config
}

func TestManager_Create(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	tests := []struct {
		name      string
		sessionID string
		wantErr   error
	}{
		{
			name:      "create with specific ID",
			sessionID: "test-session",
		},
		{
			name:      "create with empty ID generates one",
			sessionID: "",
		},
		{
			name:      "duplicate ID",
			sessionID: "test-session",
			wantErr:   ErrSessionAlreadyExists,
		},
		{
			name:      "duplicate ID with different case",
			sessionID: "TEST-SESSION",
			wantErr:   ErrSessionAlreadyExists,
		},
		{
			name:      "ID with path separator",
			sessionID: "../escape",
			wantErr:   ErrInvalidSessionID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := manager.Create(tt.sessionID, "test", config)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if tt.sessionID != "" && session.ID != tt.sessionID {
				t.Errorf("Expected ID %s, got %s", tt.sessionID, session.ID)
			}
			if session.ID == "" {
				t.Error("Expected a generated ID")
			}
			if session.ConfigName != "test" {
				t.Errorf("Expected config name test, got %s", session.ConfigName)
			}
			if session.Engine == nil || session.Queue == nil {
				t.Fatal("Expected engine and queue to be initialized")
			}
			if cash := session.Engine.GetState().Finance.Cash; cash != 50000 {
				t.Errorf("Expected starting cash 50000, got %d", cash)
			}
			if session.CreatedAt.IsZero() || session.LastAccessedAt.IsZero() {
				t.Error("Expected timestamps to be set")
			}
		})
	}
}

func TestManager_CreateInvalidConfig(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()
	config.Layout = config.Layout[:2]

	if _, err := manager.Create("bad", "test", config); err == nil {
		t.Fatal("Expected an error for an invalid scenario")
	}
	if manager.Count() != 0 {
		t.Errorf("Expected no sessions after failed create, got %d", manager.Count())
	}
}

func TestManager_Get(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	created, err := manager.Create("get-test", "test", config)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	t.Run("exact ID", func(t *testing.T) {
		session, err := manager.Get("get-test")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if session != created {
			t.Error("Expected the same session instance")
		}
	})

	t.Run("case-insensitive ID", func(t *testing.T) {
		session, err := manager.Get("GET-TEST")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if session != created {
			t.Error("Expected the same session instance")
		}
	})

	t.Run("missing session", func(t *testing.T) {
		if _, err := manager.Get("missing"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("invalid ID", func(t *testing.T) {
		if _, err := manager.Get("a/b"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestManager_GetOrCreate(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	first, err := manager.GetOrCreate("goc", "test", config)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	second, err := manager.GetOrCreate("goc", "test", config)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if first != second {
		t.Error("Expected GetOrCreate to return the existing session")
	}
	if manager.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", manager.Count())
	}
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	manager.Create("delete-me", "test", config)

	if err := manager.Delete("DELETE-ME"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := manager.Get("delete-me"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected session to be gone, got %v", err)
	}
	if err := manager.Delete("delete-me"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound on second delete, got %v", err)
	}
}

func TestManager_List(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	if len(manager.List()) != 0 {
		t.Fatal("Expected an empty list")
	}

	for i := 1; i <= 3; i++ {
		if _, err := manager.Create(fmt.Sprintf("list-%d", i), "test", config); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	found := make(map[string]bool)
	for _, s := range manager.List() {
		found[s.ID] = true
	}
	for i := 1; i <= 3; i++ {
		if id := fmt.Sprintf("list-%d", i); !found[id] {
			t.Errorf("Session %s not found in list", id)
		}
	}
}

func TestManager_CleanupExpired(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	active, _ := manager.Create("active", "test", config)
	expired, _ := manager.Create("expired", "test", config)

	expired.LastAccessedAt = time.Now().Add(-2 * time.Hour)
	active.LastAccessedAt = time.Now()

	deleted := manager.CleanupExpiredSessions(1 * time.Hour)
	if deleted != 1 {
		t.Errorf("Expected 1 session to be deleted, got %d", deleted)
	}

	if _, err := manager.Get("expired"); !errors.Is(err, ErrSessionNotFound) {
		t.Error("Expected expired session to be deleted")
	}
	if _, err := manager.Get("active"); err != nil {
		t.Error("Expected active session to still exist")
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	session, _ := manager.Create("access-test", "test", config)
	originalTime := session.LastAccessedAt

	time.Sleep(10 * time.Millisecond)

	if err := manager.UpdateLastAccessed("access-test"); err != nil {
		t.Fatalf("Failed to update last accessed: %v", err)
	}

	updated, _ := manager.Get("access-test")
	if !updated.LastAccessedAt.After(originalTime) {
		t.Error("Expected LastAccessedAt to be updated")
	}

	if err := manager.UpdateLastAccessed("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_Exists(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	manager.Create("exists-test", "test", config)

	t.Run("existing session", func(t *testing.T) {
		if !manager.sessionExists("exists-test") {
			t.Error("Expected session to exist")
		}
	})

	t.Run("case-insensitive existence check", func(t *testing.T) {
		if !manager.sessionExists("EXISTS-TEST") {
			t.Error("Expected session to exist regardless of case")
		}
	})

	t.Run("non-existent session", func(t *testing.T) {
		if manager.sessionExists("non-existent") {
			t.Error("Expected session not to exist")
		}
	})
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("c-%d", n%20)
			if _, err := manager.GetOrCreate(id, "test", config); err != nil && !errors.Is(err, ErrSessionAlreadyExists) {
				errs <- err
			}
			manager.UpdateLastAccessed(id)
			manager.List()
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent access: %v", err)
	}
	if manager.Count() != 20 {
		t.Errorf("Expected 20 sessions, got %d", manager.Count())
	}
}

func TestManager_SessionIsolation(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	session1, _ := manager.Create("iso-1", "test", config)
	session2, _ := manager.Create("iso-2", "test", config)

	res := action.Execute(session1.Engine.GetState(), action.NewRideCreate(engine.RideTypeMaze, "Hedges"))
	if !res.OK() {
		t.Fatalf("Expected ride create to succeed, got %+v", res)
	}
	session1.Engine.Tick()

	if n := len(session2.Engine.GetState().Rides); n != 0 {
		t.Errorf("Session 2 should have no rides, got %d", n)
	}
	if session2.Engine.CurrentTick() != 0 {
		t.Error("Session 2 clock should not advance with session 1")
	}
	if len(session1.Engine.GetState().Rides) != 1 {
		t.Error("Session 1 should have its ride")
	}
}

func TestManager_SessionIDGeneration(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	generatedIDs := make(map[string]bool)

	for i := 0; i < 50; i++ {
		session, err := manager.Create("", "test", config)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}

		if generatedIDs[session.ID] {
			t.Errorf("Duplicate session ID generated: %s", session.ID)
		}
		generatedIDs[session.ID] = true

		if len(session.ID) != 4 {
			t.Errorf("Expected 4-character ID, got %d", len(session.ID))
		}
		if strings.ToLower(session.ID) != session.ID {
			t.Errorf("Expected lowercase ID, got %s", session.ID)
		}
	}
}
