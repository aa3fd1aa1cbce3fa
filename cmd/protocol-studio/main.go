package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"

	"github.com/joelkehle/protocol-studio/internal/aitext"
	"github.com/joelkehle/protocol-studio/internal/draftstore"
	"github.com/joelkehle/protocol-studio/internal/httpapi"
)

func main() {
	var (
		addr   = flag.String("addr", ":8080", "API listen address")
		dbPath = flag.String("db", "./protocol-studio.db", "SQLite database path")
	)
	flag.Parse()

	store, err := draftstore.Open(*dbPath)
	if err != nil {
		log.Fatalf("open draft store: %v", err)
	}
	defer store.Close()

	ai, err := aitext.NewClientFromEnv()
	if err != nil {
		log.Printf("warning: text generation disabled: %v", err)
		ai = nil
	} else {
		log.Printf("text generation enabled model=%s", ai.ModelName())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	handler := httpapi.NewServer(store, ai)

	log.Printf("protocol-studio listening on %s (db=%s)", *addr, *dbPath)
	srv := &http.Server{Addr: *addr, Handler: handler}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
