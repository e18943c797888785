// Command quillctl bundles operational tasks for the Quill backend:
// schema migration, demo data seeding, and admin promotion.
package main

import (
	"fmt"
	"os"

	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/models"
	"quill/internal/seed"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "quillctl",
		Short:   "Operational tooling for the Quill backend",
		Version: version,
	}

	root.AddCommand(migrateCmd(), seedCmd(), promoteAdminCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openDB loads config and connects using the configured driver.
func openDB() (*gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run schema migrations against the configured database",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("running migrations: %w", err)
			}
			fmt.Println("Migrations complete")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	opts := seed.DefaultOptions()
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with demo users, posts, and comments",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("running migrations: %w", err)
			}
			return seed.NewFactory(db, opts).Run()
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.Users, "users", opts.Users, "Number of users to create")
	f.IntVar(&opts.Posts, "posts", opts.Posts, "Number of posts to create")
	f.IntVar(&opts.Comments, "comments", opts.Comments, "Number of comments to create")
	f.IntVar(&opts.MaxDays, "max-days", opts.MaxDays, "Spread created_at over this many days")
	f.BoolVar(&opts.SkipBcrypt, "skip-bcrypt", false, "Store plaintext demo passwords (fast local seeding only)")
	return cmd
}

func promoteAdminCmd() *cobra.Command {
	var demote bool
	cmd := &cobra.Command{
		Use:   "promote-admin <email>",
		Short: "Grant (or revoke with --demote) admin rights for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}

			email := args[0]
			res := db.Model(&models.User{}).
				Where("email = ?", email).
				Update("is_admin", !demote)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("no account with email %q", email)
			}

			if demote {
				fmt.Printf("Revoked admin rights for %s\n", email)
			} else {
				fmt.Printf("Granted admin rights to %s\n", email)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&demote, "demote", false, "Revoke admin rights instead of granting them")
	return cmd
}
