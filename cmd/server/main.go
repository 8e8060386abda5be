/*
main.go - Reconciliation service entry point

PURPOSE:
  Boots the HTTP service: opens the run archive, wires the handler and
  router, and runs until interrupted.

COMMAND-LINE FLAGS:
  -port    HTTP listen port (default: 8080)
  -db      Run archive path (default: receivables.db); ":memory:" keeps
           the archive for the process lifetime only

SHUTDOWN:
  SIGINT/SIGTERM stops the listener, drains in-flight requests for up to
  30 seconds, then closes the archive. Reconciliations in progress finish;
  nothing is persisted mid-run, so an aborted request simply never appears
  in the archive.

EXAMPLES:
  # Ephemeral archive for local development
  ./server -db=":memory:"

  # Production-ish: durable archive, non-default port
  ./server -port=9090 -db=/var/lib/receivables/runs.db

SEE ALSO:
  - api/server.go: Router and middleware
  - cmd/reconcile: Batch flow without the HTTP surface
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/receivables-engine/api"
	"github.com/warp/receivables-engine/store/sqlite"
)

func main() {
	port := flag.Int("port", 8080, "HTTP listen port")
	dbPath := flag.String("db", "receivables.db", "run archive path")
	flag.Parse()

	archive, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open run archive %s: %v", *dbPath, err)
	}
	defer archive.Close()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      api.NewRouter(api.NewHandler(archive)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Reconciliation service listening on :%d (archive: %s)", *port, *dbPath)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down, draining in-flight requests")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
