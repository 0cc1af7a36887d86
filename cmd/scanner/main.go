// Command scanner runs a scan session over decoded QR payloads read one per
// line from stdin, as a camera decoder would feed them.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/QRHunt_Go/internal/bootstrap"
	"github.com/osse101/QRHunt_Go/internal/config"
	"github.com/osse101/QRHunt_Go/internal/domain"
	"github.com/osse101/QRHunt_Go/internal/logger"
	"github.com/osse101/QRHunt_Go/internal/scan"
	"github.com/osse101/QRHunt_Go/internal/session"
)

func main() {
	_ = godotenv.Load()

	var (
		userID   = flag.String("user", os.Getenv("QRHUNT_USER_ID"), "signed-in user ID")
		email    = flag.String("email", os.Getenv("QRHUNT_USER_EMAIL"), "signed-in user email")
		backend  = flag.String("store", envOr("STORE_BACKEND", config.BackendSQLite), "store backend: postgres, sqlite or memory")
		catalog  = flag.String("catalog", os.Getenv("CATALOG_PATH"), "catalog JSON file (built-in catalog when empty)")
		debounce = flag.Duration("debounce", config.DefaultScanDebounce, "quiet period after each outcome")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := logger.LogLevelWarn
	if *verbose {
		level = logger.LogLevelDebug
	}
	logger.InitLoggerWithWriter(logger.NewConfig(level, logger.LogFormatText, "qrhunt-scanner", logger.DefaultVersion, logger.EnvironmentDev, false), os.Stderr)

	cfg := &config.Config{
		StoreBackend:      *backend,
		SQLitePath:        envOr("SQLITE_PATH", config.DefaultSQLitePath),
		CatalogPath:       *catalog,
		RedemptionTimeout: config.DefaultRedemptionTimeout,
		DBUser:            envOr("DB_USER", "postgres"),
		DBPassword:        envOr("DB_PASSWORD", "postgres"),
		DBHost:            envOr("DB_HOST", "localhost"),
		DBPort:            envOr("DB_PORT", "5432"),
		DBName:            envOr("DB_NAME", "qrhunt"),
		DBMaxConns:        config.DefaultDBMaxConns,
		DBMaxConnIdleTime: config.DefaultDBMaxConnIdleTime,
		DBMaxConnLifetime: config.DefaultDBMaxConnLifetime,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, domain.Identity{UserID: *userID, Email: *email}, *debounce, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("scanner: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, id domain.Identity, debounce time.Duration, in io.Reader, out io.Writer) error {
	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	events, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}
	defer events.Shutdown(context.WithoutCancel(ctx))

	bus := events.Bus
	svcs, err := bootstrap.InitializeServices(ctx, cfg, store, bus)
	if err != nil {
		return err
	}

	auth := session.New()
	if id.UserID != "" {
		auth = session.NewSignedIn(id)
	}

	sess := scan.New(svcs.Engine, auth,
		scan.WithBus(bus),
		scan.WithDebounce(debounce),
		scan.WithListener(func(o domain.Outcome) {
			fmt.Fprintln(out, o.Message())
		}))
	defer sess.Close()

	frames := make(chan string)
	go func() {
		defer close(frames)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case frames <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			slog.Warn("stdin read failed", "error", err)
		}
	}()

	err = sess.Run(ctx, frames)
	sess.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
