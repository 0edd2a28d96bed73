package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/vidtube/vidtube_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository onto the shared pool.
func NewRepositoryProvider(db *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		UserRepo:         NewUserRepository(db),
		SubscriptionRepo: NewSubscriptionRepository(db),
		VideoRepo:        NewVideoRepository(db),
	}
}
