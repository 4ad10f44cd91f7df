package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mcp-training/parkserver/game/action"
	"github.com/wricardo/mcp-training/parkserver/game/engine"
	"github.com/wricardo/mcp-training/parkserver/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Park Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Park Server - MCP Interface

This is a thin client that proxies all requests to the REST API server.

Each session is a small theme park on a tile grid. Land is owned, for sale
or not owned. Build rides on owned land and buy more land as cash allows.

AVAILABLE TOOLS:
- create_session / get_session / list_sessions / delete_session
- park_state: Map, cash and rides of a park
- describe_tile: Surface and elements of one tile
- query_action: Check an action and its cost without changing anything
- execute_action: Run an action now
- submit_action: Queue an action for the next tick
- advance_ticks: Move the park clock forward
- reset_park, action_history, action_journal, replay_journal
- list_configs, list_action_types, park_instructions

Positions for maze track are world coordinates: tile (x, y) at height z is
{"x": x*32, "y": y*32, "z": z}. Land height 16 is the usual ground level.`),
	)

	// Register all tools
	c.registerTools()
}

var sessionIDProperty = map[string]interface{}{
	"type":        "string",
	"description": "Session ID",
}

// actionProperties are shared by the query, execute and submit tools
func actionProperties() map[string]interface{} {
	return map[string]interface{}{
		"session_id": sessionIDProperty,
		"type": map[string]interface{}{
			"type":        "string",
			"enum":        action.Types(),
			"description": "Action type",
		},
		"params": map[string]interface{}{
			"type":        "object",
			"description": `Action parameters, e.g. {"loc": {"x": 32, "y": 32, "z": 16}, "ride_id": 0} for maze_place_track or {"ride_type": "maze"} for ride_create`,
		},
		"action_id": map[string]interface{}{
			"type":        "string",
			"description": "Optional client-chosen id; a repeated id is rejected",
		},
		"ghost": map[string]interface{}{
			"type":        "boolean",
			"description": "Place a preview that costs nothing",
		},
		"intent": map[string]interface{}{
			"type":        "string",
			"description": "Brief explanation of why you are taking this action",
		},
		"lang": map[string]interface{}{
			"type":        "string",
			"description": "Language for error messages (en, de)",
		},
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new park session with optional scenario selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Scenario to start from (see list_configs)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active park sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDProperty},
			Required:   []string{"session_id"},
		},
	}, c.handleGetSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_session",
		Description: "Delete a session and its journal",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDProperty},
			Required:   []string{"session_id"},
		},
	}, c.handleDeleteSession)

	// Park
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "park_state",
		Description: "Get the park map, cash, clock and rides",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDProperty},
			Required:   []string{"session_id"},
		},
	}, c.handleParkState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_tile",
		Description: "Get the surface, ownership and stacked elements of one tile",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty,
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "Tile column (0-based)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Tile row (0-based)",
				},
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleDescribeTile)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_park",
		Description: "Rebuild the park from its scenario",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDProperty},
			Required:   []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "action_history",
		Description: "Get the executed actions of a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty,
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleActionHistory)

	// Actions
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "query_action",
		Description: "Validate an action and report its cost without changing the park",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: actionProperties(),
			Required:   []string{"session_id", "type"},
		},
	}, c.actionHandler("query"))

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "execute_action",
		Description: "Run an action at the current tick",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: actionProperties(),
			Required:   []string{"session_id", "type"},
		},
	}, c.actionHandler("execute"))

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "submit_action",
		Description: "Queue an action to run when the park clock next advances",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: actionProperties(),
			Required:   []string{"session_id", "type"},
		},
	}, c.handleSubmitAction)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "advance_ticks",
		Description: "Advance the park clock, running queued actions as they come due",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty,
				"ticks": map[string]interface{}{
					"type":        "integer",
					"description": fmt.Sprintf("Ticks to advance (1-%d, default 1)", service.MaxTicksPerCall),
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleAdvanceTicks)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_action_types",
		Description: "List the action types the server accepts",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListActionTypes)

	// Journal
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "action_journal",
		Description: "Read the persistent action journal of a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty,
				"after": map[string]interface{}{
					"type":        "integer",
					"description": "Only entries after this sequence number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum entries to return",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleJournal)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "replay_journal",
		Description: "Replay the journal from the scenario and compare with the live park",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDProperty},
			Required:   []string{"session_id"},
		},
	}, c.handleReplay)

	// Configuration
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available park scenarios",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "park_instructions",
		Description: "Get the building rules and map legend",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleParkInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// arguments returns the tool call arguments, never nil
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		args = map[string]interface{}{}
	}
	return args
}

func sessionPath(args map[string]interface{}, suffix string) (string, error) {
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return "", fmt.Errorf("session_id is required")
	}
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix, nil
}

// intArg reads a JSON number argument
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

// envelopeFromArgs builds the request body for the action endpoints
func envelopeFromArgs(args map[string]interface{}) (*action.Envelope, error) {
	typ, _ := args["type"].(string)
	if typ == "" {
		return nil, fmt.Errorf("type is required")
	}

	env := &action.Envelope{Type: typ}
	if id, ok := args["action_id"].(string); ok {
		env.Header.ID = id
	}
	if ghost, _ := args["ghost"].(bool); ghost {
		env.Header.Flags |= action.FlagGhost
	}
	if params, ok := args["params"]; ok && params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("params: %w", err)
		}
		env.Params = data
	}
	return env, nil
}

func langQuery(args map[string]interface{}) string {
	if lang, _ := args["lang"].(string); lang != "" {
		return "?lang=" + url.QueryEscape(lang)
	}
	return ""
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName, formatParkState(session.ParkState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		tick, cash := uint32(0), engine.Money(0)
		if s.ParkState != nil {
			tick, cash = s.ParkState.Tick, s.ParkState.Finance.Cash
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Tick: %d, Cash: %s, Created: %s)\n",
			s.ID, s.ConfigName, tick, engine.FormatMoney(cash), s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", path, nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var response struct {
		Message string `json:"message"`
	}
	if err := c.apiCall(ctx, "DELETE", path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(response.Message), nil
}

func (c *Client) handleParkState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/state")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.ParkState
	if err := c.apiCall(ctx, "GET", path, nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatParkState(&state)), nil
}

func (c *Client) handleDescribeTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	x, okX := intArg(args, "x")
	y, okY := intArg(args, "y")
	if !okX || !okY {
		return mcp.NewToolResultError("x and y are required"), nil
	}

	path, err := sessionPath(args, fmt.Sprintf("/tiles/%d/%d", x, y))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var tile service.TileInfo
	if err := c.apiCall(ctx, "GET", path, nil, &tile); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatTile(&tile)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/reset")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var response struct {
		Message string            `json:"message"`
		State   *engine.ParkState `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatParkState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleActionHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	query := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		query.Set("page", fmt.Sprint(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		query.Set("limit", fmt.Sprint(limit))
	}

	suffix := "/history"
	if len(query) > 0 {
		suffix += "?" + query.Encode()
	}
	path, err := sessionPath(args, suffix)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

// actionOutcome is the wire shape of query and execute responses
type actionOutcome struct {
	service.ActionOutcome
	Title   string `json:"title"`
	Message string `json:"message"`
}

// actionHandler proxies to /actions/query or /actions/execute
func (c *Client) actionHandler(mode string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(request)
		env, err := envelopeFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		path, err := sessionPath(args, "/actions/"+mode+langQuery(args))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var outcome actionOutcome
		if err := c.apiCall(ctx, "POST", path, env, &outcome); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(formatOutcome(mode, &outcome)), nil
	}
}

func (c *Client) handleSubmitAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	env, err := envelopeFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path, err := sessionPath(args, "/actions/submit")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var receipt service.SubmitReceipt
	if err := c.apiCall(ctx, "POST", path, env, &receipt); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Queued %s (id %s) at tick %d. Pending actions: %d\nUse advance_ticks to run it.",
		receipt.ActionType, receipt.ActionID, receipt.Tick, receipt.Pending)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleAdvanceTicks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/ticks")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ticks := 1
	if n, ok := intArg(args, "ticks"); ok {
		ticks = n
	}

	var report struct {
		Tick     uint32          `json:"tick"`
		Advanced int             `json:"advanced"`
		Paused   bool            `json:"paused"`
		Executed []actionOutcome `json:"executed"`
	}
	if err := c.apiCall(ctx, "POST", path, map[string]int{"ticks": ticks}, &report); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d (advanced %d)", report.Tick, report.Advanced)
	if report.Paused {
		b.WriteString(" - PAUSED")
	}
	b.WriteString("\n")
	if len(report.Executed) == 0 {
		b.WriteString("No queued actions ran.\n")
	}
	for i := range report.Executed {
		b.WriteString("\n" + formatOutcome("execute", &report.Executed[i]))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleListActionTypes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		ActionTypes []string `json:"action_types"`
	}
	if err := c.apiCall(ctx, "GET", "/api/action-types", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Action types:\n- " + strings.Join(response.ActionTypes, "\n- ")), nil
}

func (c *Client) handleJournal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	query := url.Values{}
	if after, ok := intArg(args, "after"); ok {
		query.Set("after", fmt.Sprint(after))
	}
	if limit, ok := intArg(args, "limit"); ok {
		query.Set("limit", fmt.Sprint(limit))
	}
	suffix := "/journal"
	if len(query) > 0 {
		suffix += "?" + query.Encode()
	}
	path, err := sessionPath(args, suffix)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var page service.JournalPage
	if err := c.apiCall(ctx, "GET", path, nil, &page); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Journal for %s (%d entries total)\n\n", page.SessionID, page.Total)
	for _, e := range page.Entries {
		fmt.Fprintf(&b, "#%d tick %d %s (%s) %s cost %s\n",
			e.Seq, e.Tick, e.ActionType, e.ActionID, e.Status, engine.FormatMoney(engine.Money(e.Cost)))
	}
	if len(page.Entries) > 0 {
		fmt.Fprintf(&b, "\nNext page: after=%d\n", page.NextAfter)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleReplay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/replay")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var report service.ReplayReport
	if err := c.apiCall(ctx, "POST", path, nil, &report); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if report.Consistent {
		return mcp.NewToolResultText(fmt.Sprintf("Replayed %d entries: the park matches its journal.", report.Entries)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Replayed %d entries: MISMATCH\n%s", report.Entries, report.Error)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Scenarios:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&b, "• %s (config_id: %s)\n  %s\n  Map: %dx%d, Cash: %s\n\n",
			config.Name, config.ConfigID, config.Description,
			config.Width, config.Height, engine.FormatMoney(config.StartingCash))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleParkInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Park Server - Building Rules

COORDINATES:
• Tiles are addressed by (x, y). World coordinates are 32 units per tile.
• Heights step by 8; land sits on multiples of 16.

LAND:
• Build only on land the park owns.
• land_buy_rights {"pos": {"x": 11, "y": 1}} buys a for-sale tile.
• Tiles marked not owned can never be bought.

MAZES:
• ride_create {"ride_type": "maze"} creates a ride and reports its ride_id.
• maze_place_track {"loc": {"x": 32, "y": 32, "z": 16}, "ride_id": 0} lays one hedge tile.
• Trees and rocks in the way are cleared for their removal cost.
• maze_remove_track removes a hedge tile again.
• Set ghost to preview a placement without paying.

CLOCK:
• execute_action runs at the current tick.
• submit_action queues for the next tick; advance_ticks runs it.
• pause_toggle pauses the park. Most building is refused while paused.

MAP LEGEND (park_state):
  .  owned land      S  for sale     N  not owned
  W  water           F  footpath     T  scenery
  M  maze track      g  ghost preview

Every action reports a status. Anything but "ok" changed nothing.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\nPending actions: %d\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		session.PendingActions,
		formatParkState(session.ParkState))
}

func formatParkState(state *engine.ParkState) string {
	if state == nil {
		return "No park state"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Park: %s (%dx%d)\n", state.Name, state.Width, state.Height)
	fmt.Fprintf(&b, "Tick: %d", state.Tick)
	if state.Paused {
		b.WriteString(" - PAUSED")
	}
	fmt.Fprintf(&b, "\nCash: %s\n", engine.FormatMoney(state.Finance.Cash))
	fmt.Fprintf(&b, "Land price: %s\n", engine.FormatMoney(state.LandPrice))
	fmt.Fprintf(&b, "Owned tiles: %d, for sale: %d\n",
		engine.CountOwnership(state.Tiles, engine.Owned),
		engine.CountOwnership(state.Tiles, engine.ForSale))
	fmt.Fprintf(&b, "Elements: %d/%d\n", state.ElementCount, state.MaxElements)

	b.WriteString("\nMap:\n")
	b.WriteString(renderMap(state))

	if len(state.Rides) > 0 {
		b.WriteString("\nRides:\n")
		for _, ride := range state.Rides {
			fmt.Fprintf(&b, "- #%d %s (%s, %s, %d tiles)\n", ride.ID, ride.Name, ride.Type, ride.Status, ride.MazeTiles)
		}
	}
	if state.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", state.Message)
	}
	return b.String()
}

// renderMap draws one character per tile, row 0 at the top
func renderMap(state *engine.ParkState) string {
	var b strings.Builder
	b.WriteString("   ")
	for x := 0; x < state.Width; x++ {
		b.WriteByte(byte('0' + x%10))
	}
	b.WriteString("\n")
	for y, row := range state.Tiles {
		fmt.Fprintf(&b, "%2d ", y)
		for _, tile := range row {
			b.WriteString(tileChar(tile))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func tileChar(tile engine.Tile) string {
	for _, el := range tile.Elements {
		if el.Type == engine.TrackElement {
			if el.Ghost {
				return "g"
			}
			return "M"
		}
	}
	for _, el := range tile.Elements {
		switch el.Type {
		case engine.PathElement:
			return "F"
		case engine.SceneryElement:
			return "T"
		}
	}
	if tile.Surface.WaterHeight > tile.Surface.BaseZ {
		return "W"
	}
	switch tile.Surface.Ownership {
	case engine.Owned:
		return "."
	case engine.ForSale:
		return "S"
	default:
		return "N"
	}
}

func formatTile(tile *service.TileInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tile (%d, %d):\n", tile.Position.X, tile.Position.Y)
	b.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&b, "Ownership: %s\n", tile.Surface.Ownership)
	fmt.Fprintf(&b, "Land height: %d\n", tile.Surface.BaseZ)
	if tile.Surface.WaterHeight > tile.Surface.BaseZ {
		fmt.Fprintf(&b, "Water height: %d\n", tile.Surface.WaterHeight)
	}
	fmt.Fprintf(&b, "World origin: {\"x\": %d, \"y\": %d}\n",
		tile.Position.X*engine.CoordsXYStep, tile.Position.Y*engine.CoordsXYStep)

	if len(tile.Elements) == 0 {
		b.WriteString("Elements: none\n")
		return b.String()
	}
	b.WriteString("Elements:\n")
	for _, el := range tile.Elements {
		fmt.Fprintf(&b, "- %s z %d-%d quadrants %04b", el.Type, el.BaseZ, el.ClearanceZ, el.Quadrants)
		switch el.Type {
		case engine.TrackElement:
			fmt.Fprintf(&b, " ride #%d (%s)", el.RideID, el.TrackType)
		case engine.SceneryElement:
			fmt.Fprintf(&b, " %s", el.Name)
			if el.Removable {
				fmt.Fprintf(&b, " (removal %s)", engine.FormatMoney(el.RemovalCost))
			}
		}
		if el.Ghost {
			b.WriteString(" [ghost]")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatOutcome(mode string, outcome *actionOutcome) string {
	var b strings.Builder
	res := outcome.Result

	if res.OK() {
		verb := "would succeed"
		if mode == "execute" {
			verb = "executed"
		}
		fmt.Fprintf(&b, "✅ %s %s at tick %d\n", outcome.ActionType, verb, outcome.Tick)
	} else {
		fmt.Fprintf(&b, "❌ %s failed: %s\n", outcome.ActionType, res.Status)
		if outcome.Title != "" || outcome.Message != "" {
			fmt.Fprintf(&b, "%s %s\n", outcome.Title, outcome.Message)
		}
	}
	if outcome.ActionID != "" {
		fmt.Fprintf(&b, "Action ID: %s\n", outcome.ActionID)
	}
	fmt.Fprintf(&b, "Cost: %s\n", engine.FormatMoney(res.Cost))
	fmt.Fprintf(&b, "Cash: %s\n", engine.FormatMoney(outcome.Cash))
	if rideID, ok := res.Data["ride_id"]; ok {
		fmt.Fprintf(&b, "Ride ID: %v\n", rideID)
	}
	if len(outcome.Invalidated) > 0 {
		tiles := make([]string, len(outcome.Invalidated))
		for i, pos := range outcome.Invalidated {
			tiles[i] = fmt.Sprintf("(%d,%d)", pos.X, pos.Y)
		}
		fmt.Fprintf(&b, "Changed tiles: %s\n", strings.Join(tiles, " "))
	}
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Action History (Page %d/%d, Total: %d)\n\n",
		history.Page, history.TotalPages, history.TotalActions)

	for _, entry := range history.Actions {
		fmt.Fprintf(&b, "#%d tick %d %s at (%d,%d,%d) cost %s\n",
			entry.ActionNumber, entry.Tick, entry.ActionType,
			entry.Position.X, entry.Position.Y, entry.Position.Z,
			engine.FormatMoney(entry.Cost))
	}

	if history.HasNext {
		b.WriteString("\n(More actions available on next page)")
	}
	return b.String()
}
