package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/tokenestate/internal/catalog"
	"github.com/jask/tokenestate/internal/clipboard"
	"github.com/jask/tokenestate/internal/config"
	"github.com/jask/tokenestate/internal/database"
	"github.com/jask/tokenestate/internal/logging"
	"github.com/jask/tokenestate/internal/prefs"
	"github.com/jask/tokenestate/internal/tui"
	"github.com/jask/tokenestate/internal/wallet"
	"github.com/jask/tokenestate/internal/wallet/solanakey"
)

func main() {
	propertyID := flag.String("property", "", "open the detail view for this property id")
	initConfig := flag.Bool("init-config", false, "write the effective configuration to the config file and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *initConfig {
		if err := config.Save(cfg); err != nil {
			log.Fatalf("save config: %v", err)
		}
		fmt.Println("wrote", config.Path())
		return
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	seed, err := catalog.LoadSeed(cfg.Catalog.SeedPath)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	if err := database.SeedCatalog(ctx, db, seed); err != nil {
		log.Fatalf("seed catalog: %v", err)
	}
	cat, err := database.LoadCatalog(ctx, db)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}
	logger.Info("catalog loaded", zap.Int("properties", cat.Len()), zap.String("db", cfg.Database.Path))

	store, err := prefs.DefaultStore()
	if err != nil {
		logger.Warn("preferences disabled", zap.Error(err))
		store = prefs.Store{Dir: filepath.Join(filepath.Dir(cfg.Database.Path), "prefs")}
	}

	app := tui.New(ctx, cfg, tui.Deps{
		Catalog:   cat,
		Provider:  walletProvider(cfg.Wallet),
		Clipboard: clipboard.NewChain(logger, clipboard.System{}, clipboard.NewOSC52(os.Stderr)),
		Prefs:     store,
		Logger:    logger,
	})
	if *propertyID != "" {
		app.OpenProperty(*propertyID)
	}
	defer app.Session().Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("ui exited", zap.Error(err))
		log.Fatalf("tui: %v", err)
	}
}

// walletProvider returns nil for "none"; the session then reports the wallet
// as unavailable.
func walletProvider(cfg config.WalletConfig) wallet.Provider {
	switch cfg.Provider {
	case config.ProviderSolanaKeyfile:
		return solanakey.New(cfg.Keyfile)
	default:
		return nil
	}
}
