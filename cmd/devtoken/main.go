package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
	"github.com/hobbyhub-app/hobby-directory-api/internal/platform/auth/tokens"
)

// Dev-only token minter.
//
// Mints a bearer token the API will accept for local poking, without going
// through signup. Note the API still checks the session server-side, so
// STORAGE_BACKEND=memory restarts invalidate previously minted tokens.
func main() {
	var (
		sub    = flag.String("sub", "", "identity id (defaults to a fresh uuid)")
		sid    = flag.String("sid", "", "session id (defaults to a fresh uuid)")
		role   = flag.String("role", "organizer", "role: user, organizer, or admin")
		issuer = flag.String("issuer", getenv("TOKEN_ISSUER", "hobby-directory"), "token issuer")
		secret = flag.String("secret", os.Getenv("TOKEN_SECRET"), "signing secret")
		ttl    = flag.Duration("ttl", 24*time.Hour, "token lifetime")
	)
	flag.Parse()

	if *secret == "" {
		log.Fatal("missing signing secret (set TOKEN_SECRET or pass -secret)")
	}
	parsedRole, err := domain.ParseRole(*role)
	if err != nil {
		log.Fatalf("invalid role: %v", err)
	}
	if *sub == "" {
		*sub = uuid.NewString()
	}
	if *sid == "" {
		*sid = uuid.NewString()
	}

	cfg := tokens.Config{Secret: *secret, Issuer: *issuer, TTL: *ttl}
	token, err := tokens.Issue(cfg, domain.IdentityID(*sub), domain.SessionID(*sid), parsedRole, time.Now().UTC())
	if err != nil {
		log.Fatalf("mint token: %v", err)
	}

	fmt.Printf("sub:   %s\nsid:   %s\nrole:  %s\ntoken: %s\n", *sub, *sid, parsedRole, token)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
