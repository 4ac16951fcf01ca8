// Package identity resolves the current user from git configuration.
package identity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"

	"github.com/runoshun/issues/internal/domain"
)

// Ensure Resolver implements domain.IdentityResolver.
var _ domain.IdentityResolver = (*Resolver)(nil)

// Resolver reads user.name from the repository containing dir,
// falling back to the global git config outside a repository.
type Resolver struct {
	dir string
}

// NewResolver creates a new Resolver rooted at dir.
func NewResolver(dir string) *Resolver {
	return &Resolver{dir: dir}
}

// UserName returns the configured git user.name.
func (r *Resolver) UserName() (string, error) {
	cfg, err := r.loadConfig()
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(cfg.User.Name)
	if name == "" {
		return "", domain.ErrNoIdentity
	}
	return name, nil
}

func (r *Resolver) loadConfig() (*config.Config, error) {
	if r.dir != "" {
		repo, err := git.PlainOpenWithOptions(r.dir, &git.PlainOpenOptions{DetectDotGit: true})
		if err == nil {
			// Local settings merged over global ones.
			cfg, err := repo.ConfigScoped(config.GlobalScope)
			if err != nil {
				return nil, fmt.Errorf("read git config: %w", err)
			}
			return cfg, nil
		}
		if !errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("open git repository: %w", err)
		}
	}

	cfg, err := config.LoadConfig(config.GlobalScope)
	if err != nil {
		return nil, fmt.Errorf("read global git config: %w", err)
	}
	return cfg, nil
}
