package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kalaicenter/kalaiweb/config"
	"github.com/kalaicenter/kalaiweb/internal/app"
	"github.com/kalaicenter/kalaiweb/internal/webserver"
)

var configFile = flag.String("c", "/etc/kalaiweb.yml", "config file path")

func main() {
	flag.Parse()

	cfg := config.LoadConfig(*configFile)
	application := app.NewApplication(cfg)
	application.Init()
	defer application.Release()

	server := webserver.NewServer(cfg, application.API(), application.Probe())

	go func() {
		if err := server.Start(); err != nil {
			zap.S().Errorf("web server stopped: %s", err.Error())
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	zap.S().Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zap.S().Errorf("shutdown error: %s", err.Error())
	}
}
