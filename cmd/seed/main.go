package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"userapi/internal/config"
	"userapi/internal/db"
	apperrors "userapi/internal/errors"
	"userapi/internal/handler"
	"userapi/internal/logging"
	"userapi/internal/repository"
	"userapi/internal/service"
	"userapi/internal/validation"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		file   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create users from a JSON file",
		Long: `Reads a JSON array of {"name","email","password"} objects and creates
each user. Entries whose email is already registered are skipped.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("open seed file: %w", err)
				}
				defer f.Close()
				in = f
			}

			entries, err := readEntries(in)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := logging.New(cmd.ErrOrStderr(), "text", cfg.LogLevel)

			if dryRun {
				res := validateEntries(entries)
				fmt.Fprintf(cmd.OutOrStdout(), "%d valid, %d invalid\n", len(entries)-len(res.Invalid), len(res.Invalid))
				return nil
			}

			gormDB, err := db.NewMySQL(cfg.MySQLDSN)
			if err != nil {
				return err
			}
			if err := db.Migrate(gormDB, false); err != nil {
				return err
			}

			users := service.NewUserService(repository.NewUserRepository(gormDB), nil, 0)
			res, err := seedUsers(cmd.Context(), users, entries, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d, skipped %d, invalid %d\n", res.Created, res.Skipped, len(res.Invalid))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "seed file path, - for stdin")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate entries without touching the database")
	return cmd
}

// Result summarizes a seed run.
type Result struct {
	Created int
	Skipped int
	Invalid []string
}

func readEntries(r io.Reader) ([]handler.CreateUserRequest, error) {
	var entries []handler.CreateUserRequest
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return entries, nil
}

func validateEntries(entries []handler.CreateUserRequest) Result {
	v := validation.New()
	var res Result
	for i := range entries {
		if err := v.Validate(&entries[i]); err != nil {
			res.Invalid = append(res.Invalid, fmt.Sprintf("#%d %s: %v", i, entries[i].Email, err))
		}
	}
	return res
}

// seedUsers creates every valid entry. Taken emails are skipped; any other
// failure aborts the run.
func seedUsers(ctx context.Context, users service.UserService, entries []handler.CreateUserRequest, logger logging.Logger) (Result, error) {
	v := validation.New()
	var res Result

	for i, entry := range entries {
		if err := v.Validate(&entry); err != nil {
			res.Invalid = append(res.Invalid, fmt.Sprintf("#%d %s: %v", i, entry.Email, err))
			logger.Warn(ctx, "invalid seed entry", "index", i, "error", err.Error())
			continue
		}

		_, err := users.CreateUser(ctx, entry.Name, entry.Email, entry.Password)
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, apperrors.ErrEmailTaken):
			res.Skipped++
			logger.Debug(ctx, "email already registered", "email", entry.Email)
		default:
			return res, fmt.Errorf("create %s: %w", entry.Email, err)
		}
	}
	return res, nil
}
