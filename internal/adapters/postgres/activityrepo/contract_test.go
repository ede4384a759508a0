package activityrepo

import (
	"testing"

	"github.com/hobbyhub-app/hobby-directory-api/internal/adapters/contracttest"
	"github.com/hobbyhub-app/hobby-directory-api/internal/adapters/postgres/testutil"
	activityrepoport "github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/activityrepo"
)

func TestContract_PostgresActivityRepo(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)

	contracttest.RunActivityRepo(t, func(t *testing.T) (activityrepoport.Repository, func()) {
		t.Helper()
		return NewRepo(pool), nil
	})
}
