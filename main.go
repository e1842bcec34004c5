package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"card-orderbook/internal/config"
	"card-orderbook/internal/events"
	"card-orderbook/internal/market"
	"card-orderbook/internal/orderbook"
	"card-orderbook/internal/server"
	"card-orderbook/internal/snapshot"
	"card-orderbook/utils"

	"github.com/cockroachdb/pebble/vfs"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.Fatal("failed to load config", map[string]any{"error": err.Error()})
	}
	if err := cfg.Validate(); err != nil {
		utils.Fatal("invalid config", map[string]any{"error": err.Error()})
	}
	utils.SetLevel(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	book := orderbook.NewMemoryBook(orderbook.Config{
		MinIncreasePercent:  cfg.Orderbook.MinIncreasePercent,
		MaxSearchIterations: cfg.Orderbook.MaxSearchIterations,
		MaxCascade:          cfg.Orderbook.MaxCascade,
		MaxDeletions:        cfg.Orderbook.MaxDeletions,
	})

	store := openSnapshot(cfg.Snapshot, book)
	if store != nil {
		defer store.Close()
		go saveEvery(ctx, store, book, cfg.Snapshot.Interval)
	}

	publisher, err := newPublisher(ctx, cfg.Events)
	if err != nil {
		utils.Fatal("failed to set up event publisher", map[string]any{
			"backend": cfg.Events.Backend,
			"error":   err.Error(),
		})
	}
	defer publisher.Close()

	rentalSvc := market.NewRentalService(book, market.NewTreasury(), publisher, market.Params{
		RentPeriod:        cfg.Rent.Period,
		MinRentalDuration: cfg.Rent.MinRentalDuration,
	})

	router := server.SetupRouter(rentalSvc)

	srv := &http.Server{
		Addr:              getPort(cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Info("starting orderbook server", map[string]any{
			"addr":   srv.Addr,
			"events": cfg.Events.Backend,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Error("server stopped", map[string]any{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Error("graceful shutdown failed", map[string]any{"error": err.Error()})
	}

	if store != nil {
		if err := store.Save(book); err != nil {
			utils.Error("final snapshot failed", map[string]any{"error": err.Error()})
		}
	}
	utils.Info("orderbook server stopped", nil)
}

// openSnapshot opens the snapshot store and restores book from it. It
// returns nil when snapshots are disabled.
func openSnapshot(cfg config.SnapshotConfig, book *orderbook.MemoryBook) *snapshot.Store {
	if cfg.Dir == "" {
		return nil
	}

	store, err := snapshot.Open(cfg.Dir, vfs.Default)
	if err != nil {
		utils.Fatal("failed to open snapshot store", map[string]any{"dir": cfg.Dir, "error": err.Error()})
	}

	n, err := store.RestoreInto(book)
	if err != nil {
		utils.Fatal("failed to restore orderbook", map[string]any{"dir": cfg.Dir, "error": err.Error()})
	}
	utils.Info("orderbook restored from snapshot", map[string]any{"dir": cfg.Dir, "bids": n})
	return store
}

func saveEvery(ctx context.Context, store *snapshot.Store, book *orderbook.MemoryBook, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := store.Save(book); err != nil {
				utils.Error("periodic snapshot failed", map[string]any{"error": err.Error()})
			}
		}
	}
}

func newPublisher(ctx context.Context, cfg config.EventsConfig) (events.Publisher, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		client := events.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := events.PingRedis(ctx, client); err != nil {
			_ = client.Close()
			return nil, err
		}
		return events.NewRedisPublisher(client), nil
	case config.BackendKafka:
		return events.NewKafkaPublisher(events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic)), nil
	default:
		return events.LogPublisher{}, nil
	}
}

// getPort returns the listen address for port, defaulting to ":8080"
func getPort(port string) string {
	if port != "" {
		return fmt.Sprintf(":%s", port)
	}
	return ":8080"
}
