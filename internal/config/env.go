package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// LocalCommit labels reports produced outside a pull request.
const LocalCommit = "local"

// PRContext is the pull request under audit, as GitHub Actions exposes it.
type PRContext struct {
	Repository string `env:"GITHUB_REPOSITORY, required"`
	PRNumber   int    `env:"PR_NUMBER, required"`
	CommitSHA  string `env:"COMMIT_SHA, required"`
	Token      string `env:"GITHUB_TOKEN"`
}

// LocalContext is the subset used when auditing files from disk.
type LocalContext struct {
	CommitSHA string `env:"COMMIT_SHA, default=local"`
}

// LoadPRContext reads the pull request context. A nil lookuper reads the
// process environment.
func LoadPRContext(ctx context.Context, lookuper envconfig.Lookuper) (PRContext, error) {
	var pr PRContext
	if err := process(ctx, &pr, lookuper); err != nil {
		return PRContext{}, fmt.Errorf("load pull request env: %w", err)
	}
	if pr.PRNumber <= 0 {
		return PRContext{}, fmt.Errorf("PR_NUMBER must be positive, got %d", pr.PRNumber)
	}
	return pr, nil
}

func LoadLocalContext(ctx context.Context, lookuper envconfig.Lookuper) (LocalContext, error) {
	var local LocalContext
	if err := process(ctx, &local, lookuper); err != nil {
		return LocalContext{}, fmt.Errorf("load local env: %w", err)
	}
	return local, nil
}

func process(ctx context.Context, target any, lookuper envconfig.Lookuper) error {
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}
	return envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   target,
		Lookuper: lookuper,
	})
}

// LoadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
