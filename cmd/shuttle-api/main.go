// README: Entry point; loads config, wires services, starts HTTP server and the dispatch refresher.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shuttle/internal/config"
	httptransport "shuttle/internal/http"
	"shuttle/internal/infra"
	"shuttle/internal/maps"
	"shuttle/internal/modules/booking"
	"shuttle/internal/modules/dispatch"
	"shuttle/internal/modules/driver"
	"shuttle/internal/modules/fare"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	routeSvc, err := maps.NewRouteService(cfg.Maps.APIKey, cfg.Maps.Region)
	if err != nil {
		log.Fatalf("maps init: %v", err)
	}

	fareStore := fare.NewStore(dbPool)
	fareSvc := fare.NewService(fareStore, routeSvc)

	driverStore := driver.NewStore(dbPool)
	driverSvc := driver.NewService(driverStore)

	bookingStore := booking.NewStore(dbPool)
	bookingSvc := booking.NewService(bookingStore, fareSvc, driverSvc)

	estimateTTL := time.Duration(cfg.Dispatch.EstimateCacheMin) * time.Minute
	dispatchStore := dispatch.NewStore(redisClient, estimateTTL)
	dispatchSvc, err := dispatch.NewService(bookingStore, routeSvc, dispatchStore, cfg.Dispatch)
	if err != nil {
		log.Fatalf("dispatch init: %v", err)
	}

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Fare:     fareSvc,
		Booking:  bookingSvc,
		Dispatch: dispatchSvc,
		Driver:   driverSvc,
		OpsKey:   cfg.HTTP.OpsKey,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go dispatchSvc.RunQueueRefresher(ctx)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("shuttle-api listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
