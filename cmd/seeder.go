package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silcast/crane-admin/internal/auth"
	"github.com/silcast/crane-admin/internal/seed"
	"github.com/silcast/crane-admin/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed permissions, roles and the super-admin account",
	Long:  `Install the permission catalog, re-sync every role grant and make sure the bootstrap super-admin user exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		initLogger(cfg)

		conn, err := openDatabase(cfg.Database)
		if err != nil {
			return err
		}
		defer conn.Close()

		hasher := auth.BcryptHasher{Cost: cfg.Security.BCryptCost}
		res, err := seed.NewSeeder(conn.Gorm, hasher, logger.LoggerWrapper()).
			Run(context.Background(), seed.Options{Clear: clearData})
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}

		fmt.Printf("Seeded %d permissions and %d roles\n", res.Permissions, res.Roles)
		if res.AdminCreated {
			fmt.Println("Created super-admin user:", seed.AdminEmail)
		}
		return nil
	},
}
