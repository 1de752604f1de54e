// Package main starts the prisoner contacts web service.
//
// Configuration comes from the environment; the process runs until an
// interrupt or termination signal drains the HTTP server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/platform/config"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web"
)

func main() {
	var cfg web.Config
	if err := config.ParseEnv(&cfg); err != nil {
		config.Exitf("parse environment: %v", err)
	}
	log.SetPrefix("[CONTACTS] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := web.NewServer(cfg)
	if err != nil {
		config.Exitf("initialize web server: %v", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
