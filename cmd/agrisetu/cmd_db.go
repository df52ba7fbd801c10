package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/agrisetu/agrisetu/config"
	"github.com/agrisetu/agrisetu/database/seeders"
	"github.com/agrisetu/agrisetu/pkg/database"
)

// agrisetu seed — insert demo marketplace data.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all registered database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := database.Connect(ctx, config.MongoURI(), config.MongoDB())
		if err != nil {
			return err
		}
		defer db.Close(context.Background())

		fmt.Println("Seeding database…")
		return seeders.RunAll(ctx, db)
	},
}
