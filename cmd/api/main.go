package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	_ "github.com/Flarenzy/ipam-engine/docs"
	"github.com/Flarenzy/ipam-engine/internal/app"
)

//	@title			IPAM Engine API
//	@version		1.0
//	@description	Address-space model and allocation engine for IPv4 and IPv6 networks.

//	@contact.name	API Support

//	@host		localhost:4040
//	@BasePath	/api/v1

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := app.LoadConfig()

	if err := app.Run(ctx, cfg); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
