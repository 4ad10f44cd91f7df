package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wricardo/mcp-training/parkserver/api"
	"github.com/wricardo/mcp-training/parkserver/game/config"
	"github.com/wricardo/mcp-training/parkserver/game/engine"
	"github.com/wricardo/mcp-training/parkserver/game/service"
	"github.com/wricardo/mcp-training/parkserver/game/session"
)

// newParkAPI serves the real REST API over an in-memory service
func newParkAPI(t *testing.T) *httptest.Server {
	t.Helper()
	configs, err := config.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}
	svc := service.NewGameService(session.NewManager(), configs)
	server := httptest.NewServer(api.NewServer(svc, nil))
	t.Cleanup(server.Close)
	return server
}

func callTool(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("Expected result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text
}

func createSession(t *testing.T, client *Client) string {
	t.Helper()
	var session service.SessionInfo
	if err := client.apiCall(context.Background(), "POST", "/api/sessions", nil, &session); err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return session.ID
}

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080/"
	client := NewClient(baseURL)

	if client.baseURL != "http://localhost:8080" {
		t.Errorf("Expected trailing slash trimmed, got %s", client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
	if client.GetMCPServer() == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "ab12"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	if err := client.apiCall(context.Background(), "GET", "/api", nil, &response); err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}
	if response["id"] != "ab12" {
		t.Errorf("Expected id ab12, got %v", response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	if err := client.apiCall(context.Background(), "GET", "/api", nil, nil); err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"plain body", "Internal Server Error", "API error: 500"},
		{"json error", `{"error": "session not found", "code": 500}`, "session not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := NewClient(server.URL).apiCall(context.Background(), "GET", "/api", nil, nil)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected %q in error, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestClient_createSession(t *testing.T) {
	client := NewClient(newParkAPI(t).URL)

	result, err := client.handleCreateSession(context.Background(), callTool("create_session", map[string]interface{}{}))
	if err != nil {
		t.Fatalf("createSession failed: %v", err)
	}
	text := resultText(t, result)

	for _, want := range []string{"Created session:", "Config: default", "Cash: 10000.00"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in result, got: %s", want, text)
		}
	}

	result, _ = client.handleCreateSession(context.Background(), callTool("create_session", map[string]interface{}{"config_id": "missing"}))
	if !result.IsError {
		t.Error("Expected an error result for an unknown config")
	}
}

func TestClient_buildMaze(t *testing.T) {
	client := NewClient(newParkAPI(t).URL)
	ctx := context.Background()
	sessionID := createSession(t, client)

	execute := client.actionHandler("execute")

	result, err := execute(ctx, callTool("execute_action", map[string]interface{}{
		"session_id": sessionID,
		"type":       "ride_create",
		"params":     map[string]interface{}{"ride_type": "maze"},
		"intent":     "need a ride before placing hedges",
	}))
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if text := resultText(t, result); !strings.Contains(text, "ride_create executed") || !strings.Contains(text, "Ride ID: 0") {
		t.Errorf("Unexpected ride_create result: %s", text)
	}

	result, _ = execute(ctx, callTool("execute_action", map[string]interface{}{
		"session_id": sessionID,
		"type":       "maze_place_track",
		"params": map[string]interface{}{
			"loc":     map[string]interface{}{"x": 32, "y": 32, "z": 16},
			"ride_id": 0,
		},
	}))
	text := resultText(t, result)
	if !strings.Contains(text, "Cost: 13.00") || !strings.Contains(text, "Changed tiles: (1,1)") {
		t.Errorf("Unexpected placement result: %s", text)
	}

	t.Run("failure is localized", func(t *testing.T) {
		result, _ := execute(ctx, callTool("execute_action", map[string]interface{}{
			"session_id": sessionID,
			"type":       "maze_place_track",
			"params": map[string]interface{}{
				"loc":     map[string]interface{}{"x": 0, "y": 0, "z": 16},
				"ride_id": 0,
			},
			"lang": "de",
		}))
		text := resultText(t, result)
		if !strings.Contains(text, "not_owned") || !strings.Contains(text, "Land gehört nicht zum Park!") {
			t.Errorf("Expected localized not_owned failure, got: %s", text)
		}
	})

	t.Run("park state shows the hedge", func(t *testing.T) {
		result, _ := client.handleParkState(ctx, callTool("park_state", map[string]interface{}{"session_id": sessionID}))
		text := resultText(t, result)
		if !strings.Contains(text, " 1 NM") {
			t.Errorf("Expected maze at (1,1) in map, got: %s", text)
		}
		if !strings.Contains(text, "#0 Maze 1 (maze") {
			t.Errorf("Expected ride listing, got: %s", text)
		}
	})

	t.Run("describe tile", func(t *testing.T) {
		result, _ := client.handleDescribeTile(ctx, callTool("describe_tile", map[string]interface{}{
			"session_id": sessionID,
			"x":          float64(1),
			"y":          float64(1),
		}))
		text := resultText(t, result)
		if !strings.Contains(text, "Ownership: owned") || !strings.Contains(text, "track") {
			t.Errorf("Unexpected tile description: %s", text)
		}

		result, _ = client.handleDescribeTile(ctx, callTool("describe_tile", map[string]interface{}{
			"session_id": sessionID,
			"x":          float64(50),
			"y":          float64(1),
		}))
		if !result.IsError {
			t.Error("Expected an error for an off-map tile")
		}
	})

	t.Run("history", func(t *testing.T) {
		result, _ := client.handleActionHistory(ctx, callTool("action_history", map[string]interface{}{
			"session_id": sessionID,
			"limit":      float64(1),
		}))
		text := resultText(t, result)
		if !strings.Contains(text, "Total: 2") || !strings.Contains(text, "maze_place_track") {
			t.Errorf("Unexpected history: %s", text)
		}
	})
}

func TestClient_queryDoesNotSpend(t *testing.T) {
	client := NewClient(newParkAPI(t).URL)
	ctx := context.Background()
	sessionID := createSession(t, client)

	result, _ := client.actionHandler("query")(ctx, callTool("query_action", map[string]interface{}{
		"session_id": sessionID,
		"type":       "land_buy_rights",
		"params":     map[string]interface{}{"pos": map[string]interface{}{"x": 11, "y": 1}},
	}))
	text := resultText(t, result)
	if !strings.Contains(text, "would succeed") || !strings.Contains(text, "Cost: 90.00") {
		t.Errorf("Unexpected query result: %s", text)
	}
	if !strings.Contains(text, "Cash: 10000.00") {
		t.Errorf("Query must not spend, got: %s", text)
	}
}

func TestClient_submitAndAdvance(t *testing.T) {
	client := NewClient(newParkAPI(t).URL)
	ctx := context.Background()
	sessionID := createSession(t, client)

	result, _ := client.handleSubmitAction(ctx, callTool("submit_action", map[string]interface{}{
		"session_id": sessionID,
		"type":       "pause_toggle",
		"action_id":  "pause-1",
	}))
	if text := resultText(t, result); !strings.Contains(text, "Queued pause_toggle (id pause-1)") {
		t.Errorf("Unexpected submit result: %s", text)
	}

	result, _ = client.handleAdvanceTicks(ctx, callTool("advance_ticks", map[string]interface{}{
		"session_id": sessionID,
		"ticks":      float64(2),
	}))
	text := resultText(t, result)
	if !strings.Contains(text, "PAUSED") || !strings.Contains(text, "pause_toggle executed") {
		t.Errorf("Expected the queued pause to run, got: %s", text)
	}

	result, _ = client.handleAdvanceTicks(ctx, callTool("advance_ticks", map[string]interface{}{
		"session_id": sessionID,
		"ticks":      float64(0),
	}))
	if !result.IsError {
		t.Error("Expected an error for zero ticks")
	}
}

func TestClient_missingArguments(t *testing.T) {
	client := NewClient("http://localhost:0")
	ctx := context.Background()

	handlers := map[string]func() (*mcp.CallToolResult, error){
		"get_session": func() (*mcp.CallToolResult, error) {
			return client.handleGetSession(ctx, callTool("get_session", nil))
		},
		"execute_action": func() (*mcp.CallToolResult, error) {
			return client.actionHandler("execute")(ctx, callTool("execute_action", map[string]interface{}{"session_id": "ab12"}))
		},
		"describe_tile": func() (*mcp.CallToolResult, error) {
			return client.handleDescribeTile(ctx, callTool("describe_tile", map[string]interface{}{"session_id": "ab12"}))
		},
	}

	for name, call := range handlers {
		t.Run(name, func(t *testing.T) {
			result, err := call()
			if err != nil {
				t.Fatalf("Handlers report failures as results, got error: %v", err)
			}
			if !result.IsError {
				t.Error("Expected an error result")
			}
		})
	}
}

func TestClient_listConfigsAndTypes(t *testing.T) {
	client := NewClient(newParkAPI(t).URL)
	ctx := context.Background()

	result, _ := client.handleListActionTypes(ctx, callTool("list_action_types", nil))
	if text := resultText(t, result); !strings.Contains(text, "maze_place_track") {
		t.Errorf("Expected maze_place_track in types, got: %s", text)
	}

	result, _ = client.handleListConfigs(ctx, callTool("list_configs", nil))
	if text := resultText(t, result); !strings.Contains(text, "Available Scenarios") {
		t.Errorf("Unexpected configs output: %s", text)
	}
}

func TestClient_journalDisabled(t *testing.T) {
	client := NewClient(newParkAPI(t).URL)
	sessionID := createSession(t, client)

	result, _ := client.handleJournal(context.Background(), callTool("action_journal", map[string]interface{}{"session_id": sessionID}))
	if !result.IsError || !strings.Contains(resultText(t, result), "journal is not enabled") {
		t.Errorf("Expected journal disabled error, got %+v", result)
	}
}

func TestTileChar(t *testing.T) {
	tests := []struct {
		name string
		tile engine.Tile
		want string
	}{
		{"owned", engine.Tile{Surface: engine.Surface{Ownership: engine.Owned}}, "."},
		{"for sale", engine.Tile{Surface: engine.Surface{Ownership: engine.ForSale}}, "S"},
		{"not owned", engine.Tile{Surface: engine.Surface{Ownership: engine.NotOwned}}, "N"},
		{"water", engine.Tile{Surface: engine.Surface{BaseZ: 16, WaterHeight: 32, Ownership: engine.Owned}}, "W"},
		{"maze beats scenery", engine.Tile{Elements: []engine.TileElement{
			{Type: engine.SceneryElement}, {Type: engine.TrackElement},
		}}, "M"},
		{"ghost", engine.Tile{Elements: []engine.TileElement{{Type: engine.TrackElement, Ghost: true}}}, "g"},
		{"path", engine.Tile{Elements: []engine.TileElement{{Type: engine.PathElement}}}, "F"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tileChar(tt.tile); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormatParkState(t *testing.T) {
	if got := formatParkState(nil); got != "No park state" {
		t.Errorf("Unexpected nil output %q", got)
	}

	state := engine.InitParkStateFromConfig(engine.DefaultScenarioConfig())
	state.Paused = true
	result := formatParkState(state)

	for _, want := range []string{"Park: default (12x12)", "PAUSED", "Cash: 10000.00", " 0 NNNNNNNNNNNN"} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in formatted output, got: %s", want, result)
		}
	}
}
