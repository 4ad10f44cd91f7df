// Command parkserver starts the park server.
//
// It supports two modes:
//  1. "server" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Settings come from the environment (and a .env file), and flags override
// them. The park clock advances on a fixed interval; every executed action
// is journaled to SQLite unless the journal path is empty.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/mcp-training/parkserver/api"
	"github.com/wricardo/mcp-training/parkserver/game/config"
	"github.com/wricardo/mcp-training/parkserver/game/journal"
	"github.com/wricardo/mcp-training/parkserver/game/service"
	"github.com/wricardo/mcp-training/parkserver/game/session"
	"github.com/wricardo/mcp-training/parkserver/transport/mcp"
	"github.com/wricardo/mcp-training/parkserver/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Park Server"
)

// Settings control how the server starts and which services are enabled
type Settings struct {
	Host         string        `env:"PARK_HOST" envDefault:"localhost"`
	Port         int           `env:"PARK_PORT" envDefault:"8080"`
	ConfigDir    string        `env:"CONFIG_DIR" envDefault:"configs"`
	SessionsDir  string        `env:"SESSIONS_DIR" envDefault:"sessions"`
	JournalPath  string        `env:"JOURNAL_PATH" envDefault:"data/journal.db"`
	TickInterval time.Duration `env:"TICK_INTERVAL" envDefault:"1s"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	Debug        bool          `env:"DEBUG"`
	NgrokEnabled bool          `env:"NGROK_ENABLED"`
	NgrokAuth    string        `env:"NGROK_AUTHTOKEN"`
	NgrokDomain  string        `env:"NGROK_DOMAIN"`

	Version bool
}

// loadSettings reads the environment, then applies command line flags.
// It returns the remaining arguments.
func loadSettings(args []string) (Settings, []string, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return s, nil, fmt.Errorf("parse environment: %w", err)
	}
	// env treats an empty value as unset; an explicitly empty JOURNAL_PATH disables the journal
	if path, ok := os.LookupEnv("JOURNAL_PATH"); ok && path == "" {
		s.JournalPath = ""
	}
	if s.NgrokAuth == "" {
		s.NgrokAuth = os.Getenv("NGROK_AUTH_TOKEN") // Also support underscore version
	}

	fs := flag.NewFlagSet(AppName, flag.ContinueOnError)
	fs.IntVar(&s.Port, "port", s.Port, "HTTP server port")
	fs.StringVar(&s.Host, "host", s.Host, "HTTP server host")
	fs.StringVar(&s.ConfigDir, "config-dir", s.ConfigDir, "Directory containing park scenarios")
	fs.StringVar(&s.SessionsDir, "sessions-dir", s.SessionsDir, "Directory for persisted sessions")
	fs.StringVar(&s.JournalPath, "journal", s.JournalPath, "SQLite action journal path (empty disables the journal)")
	fs.DurationVar(&s.TickInterval, "tick", s.TickInterval, "Park clock interval (0 disables the clock)")
	fs.DurationVar(&s.SessionTTL, "session-ttl", s.SessionTTL, "Drop sessions idle for longer than this from memory")
	fs.BoolVar(&s.Debug, "debug", s.Debug, "Enable debug logging")
	fs.BoolVar(&s.Version, "version", false, "Show version information")
	fs.BoolVar(&s.NgrokEnabled, "ngrok", s.NgrokEnabled, "Enable ngrok tunnel")
	fs.StringVar(&s.NgrokAuth, "ngrok-auth", s.NgrokAuth, "Ngrok auth token (or use NGROK_AUTHTOKEN env var)")
	fs.StringVar(&s.NgrokDomain, "ngrok-domain", s.NgrokDomain, "Custom ngrok domain (optional)")
	fs.Usage = func() { usage(fs) }

	if err := fs.Parse(args); err != nil {
		return s, nil, err
	}
	return s, fs.Args(), nil
}

func usage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintf(out, "Usage: %s [OPTIONS] [MODE]\n\n", os.Args[0])
	fmt.Fprintf(out, "%s v%s\n\n", AppName, Version)
	fmt.Fprintf(out, "Available modes:\n")
	fmt.Fprintf(out, "  server, http     Run HTTP server with API, WebSocket, and MCP endpoint (default)\n")
	fmt.Fprintf(out, "  stdio-mcp        Run MCP stdio server with internal HTTP server\n")
	fmt.Fprintf(out, "  mcp-stdio        Alias for stdio-mcp\n")
	fmt.Fprintf(out, "  mcp              Alias for stdio-mcp\n")
	fmt.Fprintf(out, "\nOptions:\n")
	fs.PrintDefaults()
	fmt.Fprintf(out, "\nExamples:\n")
	fmt.Fprintf(out, "  %s                    # Run HTTP server on default port 8080\n", os.Args[0])
	fmt.Fprintf(out, "  %s -port 9090         # Run HTTP server on port 9090\n", os.Args[0])
	fmt.Fprintf(out, "  %s -tick 250ms        # Advance every park four times a second\n", os.Args[0])
	fmt.Fprintf(out, "  %s stdio-mcp          # Run MCP stdio server\n", os.Args[0])
}

// main loads settings, initializes services, and starts the selected mode.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	settings, args, err := loadSettings(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("Invalid settings: %v", err)
	}

	if settings.Version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	if settings.Debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}

	mode := "server" // default
	if len(args) > 0 {
		mode = args[0]
	}

	log.Printf("Starting %s v%s (mode: %s)", AppName, Version, mode)

	svcs, err := initializeServices(settings)
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}
	defer svcs.Close()

	switch mode {
	case "stdio-mcp", "mcp-stdio", "mcp":
		// MCP stdio owns stdout, so everything else logs to stderr
		log.SetOutput(os.Stderr)
		runStdioMCPWithInternalServer(settings, svcs)

	case "server", "http":
		runHTTPServer(settings, svcs)

	default:
		log.Fatalf("Unknown mode: %s. Use 'server' (default) or 'stdio-mcp'", mode)
	}
}

// services holds everything that outlives a single request
type services struct {
	game        service.GameService
	sessions    *session.Manager
	persistence *session.FilePersistence
	journal     *journal.Store
}

// Close persists every session and closes the journal
func (s *services) Close() {
	if err := s.sessions.SaveAllSessions(); err != nil {
		log.Printf("Warning: failed to save sessions on shutdown: %v", err)
	}
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			log.Printf("Warning: failed to close journal: %v", err)
		}
	}
}

// initializeServices wires config, session persistence, the journal and the game service
func initializeServices(settings Settings) (*services, error) {
	// Create config manager first (needed for persistence)
	configManager, err := config.NewManager(settings.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	persistence, err := session.NewFilePersistence(settings.SessionsDir, configManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create session persistence: %w", err)
	}

	sessionManager := session.NewManagerWithPersistence(persistence)
	if err := sessionManager.LoadPersistedSessions(); err != nil {
		log.Printf("Warning: Failed to load persisted sessions: %v", err)
	}

	svcs := &services{
		sessions:    sessionManager,
		persistence: persistence,
	}

	if settings.JournalPath == "" {
		log.Println("Action journal disabled")
		svcs.game = service.NewGameService(sessionManager, configManager)
		return svcs, nil
	}

	if err := os.MkdirAll(filepath.Dir(settings.JournalPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}
	store, err := journal.Open(settings.JournalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	log.Printf("Action journal: %s", settings.JournalPath)

	svcs.journal = store
	svcs.game = service.NewGameServiceWithJournal(sessionManager, configManager, store)
	return svcs, nil
}

// startBackground runs the hub, the park clock and session housekeeping until ctx is done
func startBackground(ctx context.Context, settings Settings, svcs *services, hub *websocket.Hub, apiServer *api.Server) *sync.WaitGroup {
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		hub.Run(ctx)
	}()

	if settings.TickInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tickLoop(ctx, svcs.game, apiServer, settings.TickInterval)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		sessionCleanupRoutine(ctx, svcs.sessions, settings.SessionTTL)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		filesystemSyncRoutine(ctx, svcs.sessions, svcs.persistence)
	}()

	return &wg
}

// tickLoop advances every park once per interval and pushes the results to clients
func tickLoop(ctx context.Context, game service.GameService, apiServer *api.Server, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, report := range game.TickAll(ctx) {
				for _, outcome := range report.Executed {
					log.Printf("[TICK] session=%s tick=%d type=%s id=%s status=%s",
						report.SessionID, outcome.Tick, outcome.ActionType, outcome.ActionID, outcome.Result.Status)
				}
				if apiServer != nil {
					apiServer.BroadcastTick(ctx, report)
				}
			}
		}
	}
}

// sessionCleanupRoutine periodically drops sessions that have not been accessed
// within the retention window. Their files stay on disk.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, maxAge time.Duration) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(maxAge); removed > 0 {
				log.Printf("Cleaned up %d expired sessions", removed)
			}
		}
	}
}

// filesystemSyncRoutine removes sessions from memory when their files are deleted
func filesystemSyncRoutine(ctx context.Context, manager *session.Manager, persistence session.SessionPersistence) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		pruned := 0
		for _, sess := range manager.List() {
			if !persistence.Exists(sess.ID) {
				if err := manager.DeleteFromMemory(sess.ID); err == nil {
					pruned++
					log.Printf("Pruned session %s from memory (file deleted)", sess.ID)
				}
			}
		}

		if pruned > 0 {
			log.Printf("Filesystem sync: pruned %d orphaned sessions from memory", pruned)
		}
	}
}

// newRouter mounts the API at the root and the MCP proxy at /mcp
func newRouter(apiServer http.Handler, mcpClient *mcp.Client) *http.ServeMux {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)

	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})
	return mainRouter
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled, it also provisions a public tunnel.
func runHTTPServer(settings Settings, svcs *services) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := websocket.NewHub()
	apiServer := api.NewServer(svcs.game, hub)
	background := startBackground(ctx, settings, svcs, hub, apiServer)

	addr := fmt.Sprintf("%s:%d", settings.Host, settings.Port)
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))
	mainRouter := newRouter(apiServer, mcpClient)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)
		if settings.TickInterval > 0 {
			log.Printf("Park clock: one tick every %s", settings.TickInterval)
		}

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	if settings.NgrokEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrok(ctx, settings, mainRouter)
		}()
	}

	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	background.Wait()
	log.Println("Server stopped")
}

// runNgrok serves the router through an ngrok tunnel until ctx is done
func runNgrok(ctx context.Context, settings Settings, handler http.Handler) {
	if settings.NgrokAuth == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if settings.NgrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(settings.NgrokDomain))
		log.Printf("Using custom ngrok domain: %s", settings.NgrokDomain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(settings.NgrokAuth))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Printf("🚀 Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It reuses an external API on the configured port when one answers; otherwise
// it starts an internal HTTP API on a random loopback port and targets that.
func runStdioMCPWithInternalServer(settings Settings, svcs *services) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	externalURL := fmt.Sprintf("http://%s:%d", settings.Host, settings.Port)
	log.Printf("Checking for external API server at %s...", externalURL)

	baseURL := externalURL
	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Printf("External API server found at %s, using it for MCP", externalURL)
	} else {
		log.Printf("No external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			log.Fatalf("Failed to get available port: %v", err)
		}
		internalAddr := listener.Addr().String()

		hub := websocket.NewHub()
		apiServer := api.NewServer(svcs.game, hub)
		background := startBackground(ctx, settings, svcs, hub, apiServer)
		defer background.Wait()

		httpServer := &http.Server{Handler: apiServer}
		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()
		defer httpServer.Close()

		baseURL = fmt.Sprintf("http://%s", internalAddr)
		log.Printf("Internal HTTP server on %s for MCP stdio", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Printf("MCP stdio server ready (API at %s)", baseURL)

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		log.Printf("MCP stdio server error: %v", err)
	}
	cancel()
}
