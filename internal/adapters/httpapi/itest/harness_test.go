package itest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/hobbyhub-app/hobby-directory-api/internal/adapters/httpapi"
	memactivityrepo "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/memory/activityrepo"
	memidentityrepo "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/memory/identityrepo"
	memobjectstore "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/memory/objectstore"
	memrefdatarepo "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/memory/refdatarepo"
	memsessionrepo "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/memory/sessionrepo"
	pgactivityrepo "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/postgres/activityrepo"
	pgidentityrepo "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/postgres/identityrepo"
	pgrefdatarepo "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/postgres/refdatarepo"
	pgsessionrepo "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/postgres/sessionrepo"
	pgtestutil "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/postgres/testutil"
	"github.com/hobbyhub-app/hobby-directory-api/internal/app/accounts"
	"github.com/hobbyhub-app/hobby-directory-api/internal/app/activities"
	"github.com/hobbyhub-app/hobby-directory-api/internal/platform/auth/tokens"
	platformclock "github.com/hobbyhub-app/hobby-directory-api/internal/platform/clock"
)

// backendsFromEnv picks which storage backends the integration tests run
// against. ITEST_BACKEND=memory|postgres|all, default memory. The postgres
// backend additionally requires TEST_DATABASE_URL and skips without it.
func backendsFromEnv(t *testing.T) []string {
	t.Helper()
	switch v := os.Getenv("ITEST_BACKEND"); v {
	case "", "memory":
		return []string{"memory"}
	case "postgres":
		return []string{"postgres"}
	case "all":
		return []string{"memory", "postgres"}
	default:
		t.Fatalf("unknown ITEST_BACKEND %q", v)
		return nil
	}
}

type testServer struct {
	t       *testing.T
	handler http.Handler
}

func newTestServer(t *testing.T, backend string) *testServer {
	t.Helper()

	clk := platformclock.NewSystemClock()
	tokenCfg := tokens.Config{Secret: "itest-secret", Issuer: "itest", TTL: time.Hour}
	images := memobjectstore.NewStore("/uploads", 1<<20)

	var (
		accountSvc  *accounts.Service
		activitySvc *activities.Service
		deps        httpapi.Deps
	)

	switch backend {
	case "memory":
		refdata := memrefdatarepo.NewSeeded()
		accountSvc = accounts.NewService(memidentityrepo.NewRepo(), memsessionrepo.NewRepo(), clk, tokenCfg)
		activitySvc = activities.NewService(memactivityrepo.NewRepo(), refdata, images, clk, nil)
		deps = httpapi.Deps{Accounts: accountSvc, Activities: activitySvc, RefData: refdata}
	case "postgres":
		pool := pgtestutil.OpenMigratedPool(t)
		refdata := pgrefdatarepo.NewRepo(pool)
		accountSvc = accounts.NewService(pgidentityrepo.NewRepo(pool), pgsessionrepo.NewRepo(pool), clk, tokenCfg)
		activitySvc = activities.NewService(pgactivityrepo.NewRepo(pool), refdata, images, clk, nil)
		deps = httpapi.Deps{Accounts: accountSvc, Activities: activitySvc, RefData: refdata}
	default:
		t.Fatalf("unknown backend %q", backend)
	}

	return &testServer{t: t, handler: httpapi.NewRouter(deps)}
}

func (s *testServer) doJSON(method, path, token string, body any) (int, []byte) {
	s.t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec.Code, rec.Body.Bytes()
}

func (s *testServer) doRaw(method, path, token, contentType string, body io.Reader) (int, []byte) {
	s.t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec.Code, rec.Body.Bytes()
}

func mustUnmarshal[T any](t *testing.T, b []byte) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v\nbody=%s", err, string(b))
	}
	return out
}

type errEnvelope struct {
	Error struct {
		Code      string         `json:"code"`
		Message   string         `json:"message"`
		Details   map[string]any `json:"details"`
		RequestID string         `json:"requestId"`
	} `json:"error"`
}

func requireErrorCode(t *testing.T, status int, body []byte, wantStatus int, wantCode string) {
	t.Helper()
	if status != wantStatus {
		t.Fatalf("status=%d want=%d body=%s", status, wantStatus, string(body))
	}
	env := mustUnmarshal[errEnvelope](t, body)
	if env.Error.Code != wantCode {
		t.Fatalf("error.code=%q want=%q body=%s", env.Error.Code, wantCode, string(body))
	}
}

type credentials struct {
	Token string `json:"token"`
	User  struct {
		ID          string `json:"id"`
		Email       string `json:"email"`
		Role        string `json:"role"`
		DisplayName string `json:"displayName"`
	} `json:"user"`
}

func (s *testServer) signUp(email, role string) credentials {
	s.t.Helper()
	status, body := s.doJSON(http.MethodPost, "/v1/auth/signup", "", map[string]any{
		"email":       email,
		"password":    "sturdy pass 1",
		"displayName": "Itest User",
		"role":        role,
	})
	if status != http.StatusCreated {
		s.t.Fatalf("signup status=%d body=%s", status, string(body))
	}
	return mustUnmarshal[credentials](s.t, body)
}

var emailSeq int

func uniqueEmail(prefix string) string {
	emailSeq++
	return fmt.Sprintf("%s-%d@example.com", prefix, emailSeq)
}
