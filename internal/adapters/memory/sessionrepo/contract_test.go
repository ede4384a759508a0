package sessionrepo

import (
	"testing"

	"github.com/hobbyhub-app/hobby-directory-api/internal/adapters/contracttest"
	memidentityrepo "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/memory/identityrepo"
	identityrepoport "github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/identityrepo"
	sessionrepoport "github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/sessionrepo"
)

func TestContract_SessionRepo(t *testing.T) {
	contracttest.RunSessionRepo(
		t,
		func(t *testing.T) (identityrepoport.Repository, func()) {
			t.Helper()
			return memidentityrepo.NewRepo(), nil
		},
		func(t *testing.T) (sessionrepoport.Repository, func()) {
			t.Helper()
			return NewRepo(), nil
		},
	)
}
