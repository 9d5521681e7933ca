package github

import (
	"github.com/orchestra-automation/orchestra/internal/domain"
	"github.com/orchestra-automation/orchestra/internal/infra/gitinfo"
)

// Ensure Factory implements domain.GatewayFactory.
var _ domain.GatewayFactory = (*Factory)(nil)

// Factory builds a gateway per repository checkout.
type Factory struct {
	log domain.Logger
}

// NewFactory creates a Factory.
func NewFactory(log domain.Logger) *Factory {
	return &Factory{log: log}
}

// ForRepo returns a gateway rooted at the repository's local path, backed
// by gh for platform data and go-git for local branch state.
func (f *Factory) ForRepo(repo domain.RepoConfig) domain.RepoGateway {
	return NewClient(repo.Name, repo.Path, gitinfo.New(repo.Path), f.log)
}
