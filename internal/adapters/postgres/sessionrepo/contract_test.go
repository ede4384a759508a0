package sessionrepo

import (
	"testing"

	"github.com/hobbyhub-app/hobby-directory-api/internal/adapters/contracttest"
	pgidentityrepo "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/postgres/identityrepo"
	"github.com/hobbyhub-app/hobby-directory-api/internal/adapters/postgres/testutil"
	identityrepoport "github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/identityrepo"
	sessionrepoport "github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/sessionrepo"
)

func TestContract_PostgresSessionRepo(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)

	contracttest.RunSessionRepo(
		t,
		func(t *testing.T) (identityrepoport.Repository, func()) {
			t.Helper()
			return pgidentityrepo.NewRepo(pool), nil
		},
		func(t *testing.T) (sessionrepoport.Repository, func()) {
			t.Helper()
			return NewRepo(pool), nil
		},
	)
}
