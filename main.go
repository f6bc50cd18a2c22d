// Command ferryman solves river-crossing puzzles.
//
// It supports four modes:
//  1. "solve"     – runs a single search from the command line and prints the plan
//  2. "scenarios" – lists the scenario files available on disk
//  3. "serve"     – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  4. "mcp"       – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags control puzzle parameters, search strategy, host/port, scenario
// directory, debug logging, and optional ngrok tunneling for easy
// external access during development.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rivercrossing/ferryman/api"
	"github.com/rivercrossing/ferryman/puzzle/bridgetorch"
	"github.com/rivercrossing/ferryman/puzzle/humanszombies"
	"github.com/rivercrossing/ferryman/puzzle/wolfgoatcabbage"
	"github.com/rivercrossing/ferryman/search"
	"github.com/rivercrossing/ferryman/solve/catalog"
	"github.com/rivercrossing/ferryman/solve/scenario"
	"github.com/rivercrossing/ferryman/solve/service"
	"github.com/rivercrossing/ferryman/solve/session"
	"github.com/rivercrossing/ferryman/transport/mcp"
	"github.com/rivercrossing/ferryman/transport/websocket"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Ferryman River Crossing Solver"
)

// main loads the environment and dispatches to the selected command.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		// Only log if it's not a "file not found" error
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	if err := rootCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func rootCommand() *cli.Command {
	return &cli.Command{
		Name:    "ferryman",
		Usage:   "river-crossing puzzle solver",
		Version: Version,
		Commands: []*cli.Command{
			solveCommand(),
			scenariosCommand(),
			serveCommand(),
			mcpCommand(),
		},
	}
}

// searchFlags are shared by every solve subcommand.
func searchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "strategy",
			Aliases: []string{"s"},
			Value:   "bfs",
			Usage:   "frontier discipline: bfs (shortest plans) or dfs",
		},
		&cli.BoolFlag{
			Name:  "trace",
			Usage: "print the exploration trace while searching",
		},
		&cli.IntFlag{
			Name:  "max-nodes",
			Value: 0,
			Usage: "abort after this many expansions (0 = unlimited)",
		},
	}
}

func scenarioDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "scenarios",
		Value:   "scenarios",
		Usage:   "directory containing scenario definitions",
		Sources: cli.EnvVars("SCENARIO_DIR"),
	}
}

func solveCommand() *cli.Command {
	return &cli.Command{
		Name:  "solve",
		Usage: "search a puzzle's state space and print the plan",
		Commands: []*cli.Command{
			{
				Name:  "humans-and-zombies",
				Usage: "ferry humans and zombies across the river",
				Flags: append(searchFlags(),
					&cli.IntFlag{Name: "humans", Aliases: []string{"H"}, Value: 3, Usage: "the number of humans on the river bank"},
					&cli.IntFlag{Name: "zombies", Aliases: []string{"Z"}, Value: 3, Usage: "the number of zombies on the river bank"},
					&cli.IntFlag{Name: "boat", Aliases: []string{"B"}, Value: 2, Usage: "the capacity of the boat"},
				),
				Action: solveHumansZombies,
			},
			{
				Name:  "wolf-goat-cabbage",
				Usage: "ferry the farmer's wolf, goat, and cabbage across the river",
				Flags: append(searchFlags(),
					&cli.IntFlag{Name: "farmers", Value: 1, Usage: "the number of farmers on the river bank"},
					&cli.IntFlag{Name: "wolves", Value: 1, Usage: "the number of wolves on the river bank"},
					&cli.IntFlag{Name: "goats", Value: 1, Usage: "the number of goats on the river bank"},
					&cli.IntFlag{Name: "cabbages", Value: 1, Usage: "the number of cabbages on the river bank"},
					&cli.IntFlag{Name: "boat", Aliases: []string{"B"}, Value: 2, Usage: "the capacity of the boat"},
				),
				Action: solveWolfGoatCabbage,
			},
			{
				Name:  "bridge-and-torch",
				Usage: "walk everyone across the bridge before the torch burns out",
				Flags: append(searchFlags(),
					&cli.IntSliceFlag{Name: "times", Value: []int{1, 2, 5, 8}, Usage: "crossing time of each person, in minutes"},
					&cli.IntFlag{Name: "fuel", Value: 15, Usage: "minutes of torch fuel"},
					&cli.IntFlag{Name: "capacity", Value: 2, Usage: "how many people the bridge holds at once"},
				),
				Action: solveBridgeTorch,
			},
			{
				Name:      "scenario",
				Usage:     "solve a named scenario from the scenario directory",
				ArgsUsage: "NAME",
				Flags:     append(searchFlags(), scenarioDirFlag()),
				Action:    solveScenario,
			},
		},
	}
}

func solveHumansZombies(ctx context.Context, cmd *cli.Command) error {
	cfg := humanszombies.Config{
		Humans:       cmd.Int("humans"),
		Zombies:      cmd.Int("zombies"),
		BoatCapacity: cmd.Int("boat"),
	}
	opts, err := solverOptions[humanszombies.WorldState, humanszombies.Move](cmd)
	if err != nil {
		return err
	}
	result, err := humanszombies.Solve(ctx, cfg, opts)
	if err != nil {
		return err
	}
	return printResult(result, humanszombies.RenderState, humanszombies.RenderAction)
}

func solveWolfGoatCabbage(ctx context.Context, cmd *cli.Command) error {
	cfg := wolfgoatcabbage.Config{
		Farmers:      cmd.Int("farmers"),
		Wolves:       cmd.Int("wolves"),
		Goats:        cmd.Int("goats"),
		Cabbages:     cmd.Int("cabbages"),
		BoatCapacity: cmd.Int("boat"),
	}
	opts, err := solverOptions[wolfgoatcabbage.WorldState, wolfgoatcabbage.Move](cmd)
	if err != nil {
		return err
	}
	result, err := wolfgoatcabbage.Solve(ctx, cfg, opts)
	if err != nil {
		return err
	}
	return printResult(result, wolfgoatcabbage.RenderState, wolfgoatcabbage.RenderAction)
}

func solveBridgeTorch(ctx context.Context, cmd *cli.Command) error {
	cfg := bridgetorch.Config{
		WalkingTimes:   cmd.IntSlice("times"),
		TorchFuel:      cmd.Int("fuel"),
		BridgeCapacity: cmd.Int("capacity"),
	}
	opts, err := solverOptions[bridgetorch.WorldState, bridgetorch.Move](cmd)
	if err != nil {
		return err
	}
	result, err := bridgetorch.Solve(ctx, cfg, opts)
	if err != nil {
		return err
	}
	return printResult(result, bridgetorch.RenderState, bridgetorch.RenderAction)
}

func solveScenario(ctx context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		return fmt.Errorf("scenario name required (list them with: ferryman scenarios)")
	}

	manager, err := catalog.NewManager(cmd.String("scenarios"))
	if err != nil {
		return err
	}
	sc, err := manager.Load(name)
	if err != nil {
		return err
	}

	// Command-line flags override what the scenario file says.
	order, err := sc.Order()
	if err != nil {
		return err
	}
	if cmd.IsSet("strategy") {
		if order, err = search.ParseOrder(cmd.String("strategy")); err != nil {
			return err
		}
	}
	maxNodes := sc.MaxNodes
	if cmd.IsSet("max-nodes") {
		maxNodes = cmd.Int("max-nodes")
	}
	trace := cmd.Bool("trace")

	switch sc.Puzzle {
	case scenario.PuzzleHumansZombies:
		result, err := humanszombies.Solve(ctx, *sc.HumansZombies,
			buildOptions[humanszombies.WorldState, humanszombies.Move](order, maxNodes, trace))
		if err != nil {
			return err
		}
		return printResult(result, humanszombies.RenderState, humanszombies.RenderAction)
	case scenario.PuzzleWolfGoatCabbage:
		result, err := wolfgoatcabbage.Solve(ctx, *sc.WolfGoatCabbage,
			buildOptions[wolfgoatcabbage.WorldState, wolfgoatcabbage.Move](order, maxNodes, trace))
		if err != nil {
			return err
		}
		return printResult(result, wolfgoatcabbage.RenderState, wolfgoatcabbage.RenderAction)
	case scenario.PuzzleBridgeTorch:
		result, err := bridgetorch.Solve(ctx, *sc.BridgeTorch,
			buildOptions[bridgetorch.WorldState, bridgetorch.Move](order, maxNodes, trace))
		if err != nil {
			return err
		}
		return printResult(result, bridgetorch.RenderState, bridgetorch.RenderAction)
	default:
		return fmt.Errorf("unknown puzzle %q in scenario %q", sc.Puzzle, name)
	}
}

// solverOptions builds search options from the shared solve flags.
func solverOptions[S, A any](cmd *cli.Command) (search.Options[S, A], error) {
	order, err := search.ParseOrder(cmd.String("strategy"))
	if err != nil {
		return search.Options[S, A]{}, err
	}
	return buildOptions[S, A](order, cmd.Int("max-nodes"), cmd.Bool("trace")), nil
}

func buildOptions[S, A any](order search.Order, maxNodes int, trace bool) search.Options[S, A] {
	opts := search.Options[S, A]{Order: order, MaxNodes: maxNodes}
	if trace {
		opts.Observer = traceObserver[S, A]{w: os.Stdout}
	}
	return opts
}

// traceObserver narrates the search: every popped state, every admitted
// or discarded move, dead ends, and the goal.
type traceObserver[S, A any] struct {
	w io.Writer
}

func (t traceObserver[S, A]) NodePopped(entry *search.Entry[S, A]) {
	fmt.Fprintf(t.w, "Exploring state %d: %v\n", entry.ID, entry.State)
}

func (t traceObserver[S, A]) ChildDiscovered(entry *search.Entry[S, A]) {
	fmt.Fprintf(t.w, "  Applicable: move %v leads to state %v\n", *entry.Action, entry.State)
}

func (t traceObserver[S, A]) ChildDiscarded(_ *search.Entry[S, A], action A, _ S) {
	fmt.Fprintf(t.w, "  Ignored:    move %v (already seen)\n", action)
}

func (t traceObserver[S, A]) DeadEnd(entry *search.Entry[S, A]) {
	fmt.Fprintf(t.w, "  Dead end: state %d could not be expanded.\n", entry.ID)
}

func (t traceObserver[S, A]) GoalReached(*search.Entry[S, A]) {
	fmt.Fprintln(t.w, "  Goal reached.")
}

// printResult prints the plan the search found, or reports the failure
// to stderr with a non-zero exit code.
func printResult[S, A any](result *search.Result[S, A], renderState func(S) string, renderAction func(A, S) string) error {
	if !result.Solved {
		return cli.Exit("No solution found.", 1)
	}

	fmt.Println("\nSolution:")
	fmt.Println()
	for _, step := range result.Plan {
		if step.Action != nil {
			fmt.Println("  " + renderAction(*step.Action, step.State))
		}
		fmt.Println("  " + renderState(step.State))
	}
	return nil
}

func scenariosCommand() *cli.Command {
	return &cli.Command{
		Name:  "scenarios",
		Usage: "list the scenarios available in the scenario directory",
		Flags: []cli.Flag{scenarioDirFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			manager, err := catalog.NewManager(cmd.String("scenarios"))
			if err != nil {
				return err
			}
			infos, err := manager.List()
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Println("No scenarios found.")
				return nil
			}
			fmt.Printf("%-24s %-20s %s\n", "SCENARIO", "PUZZLE", "DESCRIPTION")
			for _, info := range infos {
				fmt.Printf("%-24s %-20s %s\n", info.ScenarioID, info.Puzzle, info.Description)
			}
			return nil
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP server with REST API, WebSocket, and MCP endpoint",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "HTTP server port", Sources: cli.EnvVars("PORT")},
			&cli.StringFlag{Name: "host", Value: "localhost", Usage: "HTTP server host", Sources: cli.EnvVars("HOST")},
			scenarioDirFlag(),
			&cli.StringFlag{Name: "sessions-dir", Value: "sessions", Usage: "directory for persisted sessions", Sources: cli.EnvVars("SESSIONS_DIR")},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
			&cli.BoolFlag{Name: "ngrok", Usage: "enable ngrok tunnel", Sources: cli.EnvVars("NGROK_ENABLED")},
			&cli.StringFlag{Name: "ngrok-auth", Usage: "ngrok auth token", Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN")},
			&cli.StringFlag{Name: "ngrok-domain", Usage: "custom ngrok domain (optional)", Sources: cli.EnvVars("NGROK_DOMAIN")},
		},
		Action: serveAction,
	}
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("debug") {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	log.Printf("Starting %s v%s", AppName, Version)

	solverService, hub, sessionManager, err := initializeServices(cmd.String("scenarios"), cmd.String("sessions-dir"))
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	runHTTPServer(solverService, hub, sessionManager, serveConfig{
		host:        cmd.String("host"),
		port:        cmd.Int("port"),
		ngrok:       cmd.Bool("ngrok"),
		ngrokAuth:   cmd.String("ngrok-auth"),
		ngrokDomain: cmd.String("ngrok-domain"),
	})
	return nil
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "run an MCP stdio server backed by the REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api-url", Value: "http://localhost:8080", Usage: "external API server to proxy; an internal one is started when unreachable", Sources: cli.EnvVars("API_URL")},
			scenarioDirFlag(),
			&cli.StringFlag{Name: "sessions-dir", Value: "sessions", Usage: "directory for persisted sessions", Sources: cli.EnvVars("SESSIONS_DIR")},
		},
		Action: mcpAction,
	}
}

func mcpAction(ctx context.Context, cmd *cli.Command) error {
	solverService, hub, _, err := initializeServices(cmd.String("scenarios"), cmd.String("sessions-dir"))
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	runStdioMCP(solverService, hub, cmd.String("api-url"))
	return nil
}

// serveConfig carries the serve command's flag values.
type serveConfig struct {
	host        string
	port        int
	ngrok       bool
	ngrokAuth   string
	ngrokDomain string
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled (via flag or environment), it also provisions a public tunnel.
func runHTTPServer(solverService service.SolverService, hub *websocket.Hub, sessions *session.Manager, cfg serveConfig) {
	// Create API server
	apiServer := api.NewServer(solverService, hub)

	// Setup HTTP server address
	addr := fmt.Sprintf("%s:%d", cfg.host, cfg.port)

	// Create MCP client for /mcp endpoint
	baseURL := fmt.Sprintf("http://%s", addr)
	mcpClient := mcp.NewClient(baseURL)

	// Create main router that combines API and MCP
	mainRouter := http.NewServeMux()

	// Mount API server at root
	mainRouter.Handle("/", apiServer)

	// Always add MCP endpoint for HTTP server
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

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Setup graceful shutdown context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	// Start regular HTTP server
	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Start ngrok tunnel if enabled
	if cfg.ngrok {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if cfg.ngrokAuth == "" {
				log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
				return
			}

			log.Println("Starting ngrok tunnel...")

			// Configure ngrok endpoint
			var tunnel ngrokConfig.Tunnel
			if cfg.ngrokDomain != "" {
				tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(cfg.ngrokDomain))
				log.Printf("Using custom ngrok domain: %s", cfg.ngrokDomain)
			} else {
				tunnel = ngrokConfig.HTTPEndpoint()
			}

			// Start ngrok tunnel
			tun, err := ngrok.Listen(ctx,
				tunnel,
				ngrok.WithAuthtoken(cfg.ngrokAuth),
			)
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

			// Serve HTTP through ngrok tunnel
			if err := http.Serve(tun, mainRouter); err != nil && err != http.ErrServerClosed {
				log.Printf("Ngrok server error: %v", err)
			}
			log.Println("Ngrok tunnel closed")
		}()
	}

	// Wait for shutdown signal
	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Flush any session state that missed its auto-save
	if err := sessions.SaveAllSessions(); err != nil {
		log.Printf("Session flush on shutdown: %v", err)
	}

	// Wait for all goroutines to finish
	wg.Wait()
	log.Println("Server stopped")
}

// initializeServices wires the scenario catalog, session persistence,
// WebSocket hub, and the solver service. It also starts background
// routines to prune stale sessions.
func initializeServices(scenarioDir, sessionsDir string) (service.SolverService, *websocket.Hub, *session.Manager, error) {
	// Create scenario catalog first (sessions validate against it)
	catalogManager, err := catalog.NewManager(scenarioDir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create scenario catalog: %w", err)
	}

	// Create session persistence
	persistence, err := session.NewFilePersistence(sessionsDir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create session persistence: %w", err)
	}

	// Create session manager with persistence
	sessionManager := session.NewManagerWithPersistence(persistence)

	// Load persisted sessions on startup
	if err := sessionManager.LoadPersistedSessions(); err != nil {
		log.Printf("Warning: Failed to load persisted sessions: %v", err)
	}

	// Create WebSocket hub so live solves can stream progress
	hub := websocket.NewHub()
	go hub.Run()

	// Create solver service
	solverService := service.NewSolverServiceWithNotifier(sessionManager, catalogManager, websocket.NewNotifier(hub))

	// Start session cleanup routine
	go sessionCleanupRoutine(sessionManager)

	// Start filesystem sync routine
	go filesystemSyncRoutine(sessionManager, persistence)

	return solverService, hub, sessionManager, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been accessed
// within the provided retention window.
func sessionCleanupRoutine(manager *session.Manager) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		removed := manager.CleanupExpiredSessions(24 * time.Hour)
		if removed > 0 {
			log.Printf("Cleaned up %d expired sessions", removed)
		}
	}
}

// filesystemSyncRoutine periodically syncs in-memory sessions with filesystem state.
// It removes sessions from memory when their corresponding files are deleted.
func filesystemSyncRoutine(manager *session.Manager, persistence session.SessionPersistence) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		// Skip if no persistence configured
		if persistence == nil {
			continue
		}

		// Get all sessions from memory
		memorySessions := manager.List()

		// Check each memory session against filesystem
		pruned := 0
		for _, sess := range memorySessions {
			if !persistence.Exists(sess.ID) {
				// File deleted, remove from memory
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

// runStdioMCP runs an MCP stdio server.
// It tries to reuse an external API at apiURL; if unavailable, it
// starts a minimal internal HTTP API bound to a random loopback port
// and targets that.
func runStdioMCP(solverService service.SolverService, hub *websocket.Hub, apiURL string) {
	var baseURL string

	log.Printf("Checking for external API server at %s...", apiURL)

	// Test if external server is running
	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(apiURL + "/api")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Printf("External API server found at %s, using it for MCP", apiURL)
		baseURL = apiURL
	} else {
		// No external server found, start internal one
		log.Printf("No external API server found, starting internal HTTP server")

		// Start internal HTTP server on a random available port
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			log.Fatalf("Failed to get available port: %v", err)
		}

		// Get the actual port that was assigned
		internalPort := listener.Addr().(*net.TCPAddr).Port
		internalAddr := fmt.Sprintf("127.0.0.1:%d", internalPort)

		log.Printf("Starting internal HTTP server on %s for MCP stdio", internalAddr)

		// Create API server
		apiServer := api.NewServer(solverService, hub)

		// Start internal HTTP server in background
		httpServer := &http.Server{
			Handler: apiServer,
		}

		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()

		// Wait a moment for the server to be ready
		time.Sleep(100 * time.Millisecond)

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	// Create MCP client pointing to the selected server
	mcpClient := mcp.NewClient(baseURL)

	if baseURL == apiURL {
		log.Println("MCP stdio server ready (using external HTTP server)")
	} else {
		log.Println("MCP stdio server ready (using internal HTTP server)")
	}

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		log.Fatalf("MCP stdio server error: %v", err)
	}
}
