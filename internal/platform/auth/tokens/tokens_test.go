package tokens

import (
	"errors"
	"testing"
	"time"

	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
)

var testCfg = Config{Secret: "test-secret", Issuer: "hobby-directory-test", TTL: time.Hour}

func TestIssueAndParse(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	tok, err := Issue(testCfg, "id-1", "sess-1", domain.RoleOrganizer, now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := Parse(tok, testCfg)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.IdentityID != "id-1" || claims.SessionID != "sess-1" || claims.Role != domain.RoleOrganizer {
		t.Fatalf("claims=%+v", claims)
	}
}

func TestParse_RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := Issue(testCfg, "id-1", "sess-1", domain.RoleUser, time.Now().UTC())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	bad := testCfg
	bad.Secret = "other-secret"
	if _, err := Parse(tok, bad); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err=%v, want ErrInvalidToken", err)
	}
}

func TestParse_RejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	other := testCfg
	other.Issuer = "someone-else"
	tok, err := Issue(other, "id-1", "sess-1", domain.RoleUser, time.Now().UTC())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := Parse(tok, testCfg); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err=%v, want ErrInvalidToken", err)
	}
}

func TestParse_RejectsExpired(t *testing.T) {
	t.Parallel()

	tok, err := Issue(testCfg, "id-1", "sess-1", domain.RoleUser, time.Now().Add(-2*time.Hour).UTC())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := Parse(tok, testCfg); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err=%v, want ErrInvalidToken", err)
	}
}

func TestParse_MissingToken(t *testing.T) {
	t.Parallel()

	if _, err := Parse("  ", testCfg); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("err=%v, want ErrMissingToken", err)
	}
}
