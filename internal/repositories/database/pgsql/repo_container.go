package pgsql

import (
	portsrepo "github.com/SscSPs/currency_conversion_service/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the Postgres repositories over db and bundles
// them with the cache store.
func NewRepositoryProvider(db DBTX, cache portsrepo.CacheStore) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:       newPgxUserRepository(db),
		RequestLogRepo: newPgxRequestLogRepository(db),
		Cache:          cache,
	}
}
