package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/AdamBeresnev/brisa-tee-times/internal/catalog"
	"github.com/AdamBeresnev/brisa-tee-times/internal/config"
	"github.com/AdamBeresnev/brisa-tee-times/internal/db"
	"github.com/AdamBeresnev/brisa-tee-times/internal/store"
)

// seed prepares a backend before the first start: it writes the catalog's tee times into SQLite
// and the column header into the reservations worksheet.
func main() {
	sqlite := flag.Bool("sqlite", true, "seed catalog tee times into SQLITE_PATH")
	sheet := flag.Bool("sheet", false, "write the header row of SPREADSHEET")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.MustLoad()
	ctx := context.Background()

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		var err error
		if cat, err = catalog.LoadFile(cfg.CatalogPath); err != nil {
			logger.Error("Failed to load catalog", "error", err)
			os.Exit(1)
		}
	}

	if *sqlite {
		if err := seedSQLite(ctx, cfg, cat); err != nil {
			logger.Error("Failed to seed database", "error", err)
			os.Exit(1)
		}
		logger.Info("Seeded tee times", "path", cfg.Store.SQLitePath, "slots", len(cat.Slots()))
	}

	if *sheet {
		if err := seedSheet(ctx, cfg); err != nil {
			logger.Error("Failed to prepare worksheet", "error", err)
			os.Exit(1)
		}
		logger.Info("Worksheet ready", "worksheet", cfg.Sheets.Worksheet)
	}
}

func seedSQLite(ctx context.Context, cfg *config.Config, cat *catalog.Catalog) error {
	database, err := db.InitDB(cfg.Store.SQLitePath)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.RunMigrations(database.DB, cfg.Store.MigrationsDir); err != nil {
		return err
	}
	return store.NewSQLStore(database).SeedSlots(ctx, cat.Slots())
}

func seedSheet(ctx context.Context, cfg *config.Config) error {
	svc, err := store.NewSheetsService(ctx, cfg.Sheets.CredentialsFile)
	if err != nil {
		return err
	}
	id, err := store.ParseSpreadsheetID(cfg.Sheets.Spreadsheet)
	if err != nil {
		return err
	}
	return store.NewSheetsStore(svc, id, cfg.Sheets.Worksheet).EnsureHeader(ctx)
}
