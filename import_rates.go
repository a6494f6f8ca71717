package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"transdom/config"
	"transdom/database"
	"transdom/entities/rates"
	"transdom/logger"
	"transdom/schemas"
)

func importRatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-rates <file.json|file.yaml>",
		Short: "Upsert every rate card in a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if cfg.Mongo.URI == "" {
				return fmt.Errorf("MONGODB_URI is required")
			}
			log := logger.Init(cfg.LogLevel)

			cards, err := loadRateFile(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			client, err := database.ConnectMongo(ctx, cfg.Mongo)
			if err != nil {
				return err
			}
			defer client.Disconnect(context.Background())

			store := rates.NewMongoStore(client.Database(database.GetDB(cfg)))
			if err := store.EnsureIndexes(ctx); err != nil {
				return err
			}

			for _, card := range cards {
				upsertCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.Timeout())
				stored, err := store.UpsertRate(upsertCtx, card)
				cancel()
				if err != nil {
					return fmt.Errorf("upsert %s: %w", card.Zone, err)
				}
				log.Info("rate card imported", "zone", stored.Zone, "entries", len(stored.Rates))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d rate cards\n", len(cards))
			return nil
		},
	}
}

// loadRateFile reads a list of add-rates bodies and validates each one.
// Files ending in .yaml or .yml are parsed as YAML, anything else as JSON.
func loadRateFile(path string) ([]schemas.RateCard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var reqs []schemas.RateCardRequest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &reqs)
	default:
		err = json.Unmarshal(data, &reqs)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%s contains no rate cards", path)
	}

	cards := make([]schemas.RateCard, 0, len(reqs))
	for i, req := range reqs {
		card, err := rates.NewRateCard(req)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}
