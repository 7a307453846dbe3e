package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"pos-checkout/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// migrate applies migrations/ to the configured database with the atlas CLI.
// atlas.sum is maintained with `atlas migrate hash --dir file://migrations`.
func main() {
	dir := flag.String("dir", "migrations", "migration directory")
	dryRun := flag.Bool("dry-run", false, "print pending migrations without applying them")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	var dbCfg config.DBConfig
	if err := envconfig.Process("", &dbCfg); err != nil {
		slog.Error("failed to process env config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx, dbCfg.BuildDSN(), *dir, *dryRun); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dsn, dir string, dryRun bool) error {
	workdir, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(os.DirFS(dir)))
	if err != nil {
		return err
	}
	defer workdir.Close()

	client, err := atlasexec.NewClient(workdir.Path(), "atlas")
	if err != nil {
		return err
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    dsn,
		DryRun: dryRun,
	})
	if err != nil {
		return err
	}

	applied := make([]string, 0, len(res.Applied))
	for _, f := range res.Applied {
		applied = append(applied, f.Name)
	}
	slog.Info("migrations applied",
		"count", len(res.Applied),
		"files", applied,
		"current", res.Current,
		"target", res.Target,
		"dry_run", dryRun)
	return nil
}
