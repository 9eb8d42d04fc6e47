package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jass-lite/apps/server/internal/auth"
	"jass-lite/apps/server/internal/gateway"
	"jass-lite/apps/server/internal/ledger"
	"jass-lite/apps/server/internal/lobby"
	"jass-lite/jass/bot"
)

// serverVersion is checked by clients; a mismatch triggers a forced
// reload on their side.
const serverVersion = "1.0.0"

func main() {
	ledgerService, ledgerMode, err := ledger.NewServiceFromEnv()
	if err != nil {
		log.Fatalf("[Server] Failed to init ledger service: %v", err)
	}
	defer ledgerService.Close()

	registry := bot.NewRegistry()
	if path := os.Getenv("BOT_PERSONAS_FILE"); path != "" {
		if err := registry.LoadFromFile(path); err != nil {
			log.Fatalf("[Server] Failed to load bot personas: %v", err)
		}
	}

	authManager := auth.NewManager()
	mm := lobby.NewMatchmaker(bot.NewManager(registry), ledgerService)
	gw := gateway.New(mm, authManager, serverVersion)
	ledgerHTTP := ledger.NewHTTPHandler(ledgerService)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", gw.HandleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	ledgerHTTP.RegisterRoutes(mux)

	stop := make(chan os.Signal, 1)
	if token := os.Getenv("ADMIN_TOKEN"); token != "" {
		mux.HandleFunc("/shutdown", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("token") != token {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			log.Printf("[Server] Shutdown requested via admin endpoint")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("shutting down"))
			stop <- syscall.SIGTERM
		})
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		log.Printf("[Server] Version: %s", serverVersion)
		log.Printf("[Server] Ledger mode: %s", ledgerMode)
		log.Printf("[Server] Bot personas: %d", registry.Count())
		log.Printf("[Server] Starting WebSocket server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[Server] Failed to start: %v", err)
		}
	}()

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Printf("[Server] Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[Server] Shutdown error: %v", err)
	}
}
