package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
	"golang.org/x/crypto/bcrypt"

	"github.com/mclindenhomes/website/internal"
	"github.com/mclindenhomes/website/internal/store"
	pkgconfig "github.com/mclindenhomes/website/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func hashPassword(_ context.Context, cmd *cli.Command) error {
	pw := cmd.Args().First()
	if pw == "" {
		return fmt.Errorf("usage: hash-password <password>")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	fmt.Println(string(hash))
	return nil
}

func exportLeads(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	leads, err := st.ListLeads(ctx)
	if err != nil {
		return fmt.Errorf("list leads: %w", err)
	}

	w := csv.NewWriter(os.Stdout)
	if err := w.Write([]string{"created_at", "full_name", "email", "phone", "address", "property_type", "timeframe", "notes"}); err != nil {
		return err
	}
	for _, l := range leads {
		if err := w.Write([]string{
			l.CreatedAt.UTC().Format(time.RFC3339),
			l.FullName, l.Email, l.Phone, l.Address, l.PropertyType, l.Timeframe, l.Notes,
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}
}

func main() {
	cmd := &cli.Command{
		Name:   "website",
		Usage:  "Marketing site with home-evaluation lead capture and a Markdown blog",
		Action: serve,
		Flags:  []cli.Flag{configFlag()},
		Commands: []*cli.Command{
			{
				Name:      "hash-password",
				Usage:     "Generate a bcrypt hash for the admin password",
				ArgsUsage: "<password>",
				Action:    hashPassword,
			},
			{
				Name:   "export-leads",
				Usage:  "Write all captured leads to stdout as CSV",
				Flags:  []cli.Flag{configFlag()},
				Action: exportLeads,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
