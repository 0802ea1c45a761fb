package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/hkaanengin/opendota-mcp-server/internal/config"
	"github.com/hkaanengin/opendota-mcp-server/internal/opendota"
	"github.com/hkaanengin/opendota-mcp-server/internal/ratelimit"
	"github.com/hkaanengin/opendota-mcp-server/internal/refdata"
)

const serverVersion = "0.3.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "opendota-server",
		Short: "MCP server exposing Dota 2 esports statistics from the OpenDota API",
		Long: `opendota-server speaks the Model Context Protocol over streamable HTTP
or stdio and exposes OpenDota hero, player and match statistics as tools.
Names are resolved fuzzily, so 'rubik' finds Rubick and 'bkb' finds
Black King Bar.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}

	config.SetDefaults()

	flags := cmd.Flags()
	flags.String("addr", ":8080", "HTTP listen address")
	flags.String("path", "/mcp", "HTTP path for the MCP endpoint")
	flags.String("transport", "http", "transport: http or stdio")
	flags.String("base-url", "https://api.opendota.com/api", "OpenDota API base URL")
	flags.String("ref-data", "constants", "directory with dotaconstants JSON files")
	flags.Int("rate-limit", 50, "max OpenDota calls per minute")
	flags.Bool("require-auth", false, "require an API key on incoming HTTP requests")
	flags.String("auth-header", "X-API-Key", "HTTP header to read the inbound API key from")
	flags.BoolP("verbose", "v", false, "debug logging")

	viper.BindPFlag("server.addr", flags.Lookup("addr"))
	viper.BindPFlag("server.mcp_path", flags.Lookup("path"))
	viper.BindPFlag("server.transport", flags.Lookup("transport"))
	viper.BindPFlag("opendota.base_url", flags.Lookup("base-url"))
	viper.BindPFlag("refdata.dir", flags.Lookup("ref-data"))
	viper.BindPFlag("opendota.rate_limit_rpm", flags.Lookup("rate-limit"))
	viper.BindPFlag("server.require_auth", flags.Lookup("require-auth"))
	viper.BindPFlag("server.auth_header", flags.Lookup("auth-header"))
	viper.BindPFlag("verbose", flags.Lookup("verbose"))

	return cmd
}

func run(ctx context.Context) error {
	// Local .env is a convenience for development; absence is fine.
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg)

	catalog := refdata.Load(cfg.RefDataDir)
	limiter := ratelimit.New(cfg.RateLimitRPM)
	client := opendota.NewClient(cfg, limiter)
	defer client.Close()

	a := newApp(cfg, catalog, client)

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "opendota-mcp",
			Version: serverVersion,
		},
		nil,
	)

	registry := make([]toolInfo, 0, 32)
	registerHeroTools(server, a, &registry)
	registerLookupTools(server, a, &registry)
	registerPlayerTools(server, a, &registry)
	registerMatchTools(server, a, &registry)
	registerMiscTools(server, a, &registry)

	slog.Info("server configured",
		"tools", len(registry),
		"transport", cfg.Transport,
		"heroes_cached", catalog.HasHeroes(),
		"rate_limit_rpm", cfg.RateLimitRPM)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Transport == "stdio" {
		return server.Run(ctx, &mcp.StdioTransport{})
	}
	return serveHTTP(ctx, cfg, server, registry)
}

func serveHTTP(ctx context.Context, cfg *config.Config, server *mcp.Server, registry []toolInfo) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	serverKey := strings.TrimSpace(cfg.ServerKey)
	if cfg.RequireAuth && serverKey == "" {
		return errors.New("auth required but no server key set (OPENDOTA_SERVER_API_KEY or server.api_key)")
	}

	withAuth := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if serverKey == "" {
				next(w, r)
				return
			}
			key := strings.TrimSpace(r.Header.Get(cfg.AuthHeader))
			if key == "" {
				if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
					key = strings.TrimSpace(authz[7:])
				}
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(serverKey)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next(w, r)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("/tools", withAuth(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		b, _ := json.MarshalIndent(map[string]any{"tools": registry}, "", "  ")
		w.Write(b)
	}))
	mux.HandleFunc(cfg.MCPPath, withAuth(handler.ServeHTTP))

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("MCP HTTP server listening", "addr", cfg.Addr, "path", cfg.MCPPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
