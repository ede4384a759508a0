package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	memclock "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/memory/clock"
	memidentityrepo "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/memory/identityrepo"
	memsessionrepo "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/memory/sessionrepo"
	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
	"github.com/hobbyhub-app/hobby-directory-api/internal/platform/auth/tokens"
)

var testTokenCfg = tokens.Config{Secret: "test-secret", Issuer: "hobby-directory-test", TTL: time.Hour}

func newTestService(t *testing.T) (*Service, *memclock.ManualClock) {
	t.Helper()
	clk := memclock.NewManualClock(time.Date(2031, 3, 10, 12, 0, 0, 0, time.UTC))
	svc := NewService(memidentityrepo.NewRepo(), memsessionrepo.NewRepo(), clk, testTokenCfg)
	return svc, clk
}

func signUp(t *testing.T, svc *Service, email string) Credentials {
	t.Helper()
	creds, err := svc.SignUp(context.Background(), SignUpInput{
		Email:       email,
		Password:    "sturdy pass 1",
		DisplayName: "Pat Example",
		Role:        domain.RoleOrganizer,
	})
	require.NoError(t, err)
	return creds
}

func TestSignUp_IssuesWorkingToken(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	creds := signUp(t, svc, "pat@example.com")
	require.NotEmpty(t, creds.Token)
	require.Equal(t, domain.RoleOrganizer, creds.Identity.Role)

	identity, session, err := svc.Authenticate(context.Background(), creds.Token)
	require.NoError(t, err)
	require.Equal(t, creds.Identity.ID, identity.ID)
	require.Equal(t, creds.Session, session)
}

func TestSignUp_NormalizesDisplayName(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	creds, err := svc.SignUp(context.Background(), SignUpInput{
		Email:       "pat@example.com",
		Password:    "sturdy pass 1",
		DisplayName: "  Pat   Q   Example  ",
	})
	require.NoError(t, err)
	require.Equal(t, "Pat Q Example", creds.Identity.DisplayName)
	require.Equal(t, domain.RoleUser, creds.Identity.Role)
}

func TestSignUp_RejectsDuplicateEmailCaseInsensitive(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	signUp(t, svc, "pat@example.com")
	_, err := svc.SignUp(context.Background(), SignUpInput{
		Email:       "PAT@example.com",
		Password:    "sturdy pass 1",
		DisplayName: "Other Pat",
	})
	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 409, appErr.Status)
	require.Equal(t, "EMAIL_ALREADY_IN_USE", appErr.Code)
}

func TestSignUp_Validation(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	_, err := svc.SignUp(context.Background(), SignUpInput{
		Email:       "not-an-email",
		Password:    "short",
		DisplayName: " ",
		Role:        domain.RoleAdmin,
	})
	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 422, appErr.Status)
	require.Contains(t, appErr.Details, "email")
	require.Contains(t, appErr.Details, "password")
	require.Contains(t, appErr.Details, "displayName")
	require.Contains(t, appErr.Details, "role")
}

func TestSignIn_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	signUp(t, svc, "pat@example.com")

	_, errWrongPass := svc.SignIn(context.Background(), "pat@example.com", "bad password 1")
	_, errUnknown := svc.SignIn(context.Background(), "ghost@example.com", "whatever pass 1")

	var e1, e2 *Error
	require.ErrorAs(t, errWrongPass, &e1)
	require.ErrorAs(t, errUnknown, &e2)
	require.Equal(t, e1.Code, e2.Code)
	require.Equal(t, "INVALID_CREDENTIALS", e1.Code)
	require.Equal(t, 401, e1.Status)
}

func TestSignOut_RevokesOutstandingToken(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	creds := signUp(t, svc, "pat@example.com")

	require.NoError(t, svc.SignOut(context.Background(), creds.Session))

	_, _, err := svc.Authenticate(context.Background(), creds.Token)
	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "UNAUTHORIZED", appErr.Code)

	// Signing out twice still succeeds.
	require.NoError(t, svc.SignOut(context.Background(), creds.Session))
}

func TestAuthenticate_RejectsExpiredSession(t *testing.T) {
	t.Parallel()
	svc, clk := newTestService(t)
	creds := signUp(t, svc, "pat@example.com")

	clk.Advance(2 * time.Hour)

	_, _, err := svc.Authenticate(context.Background(), creds.Token)
	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 401, appErr.Status)
}

func TestUpdateProfile_TriState(t *testing.T) {
	t.Parallel()
	svc, clk := newTestService(t)
	creds := signUp(t, svc, "pat@example.com")

	org := "Hobby Hub"
	_, err := svc.UpdateProfile(context.Background(), creds.Identity.ID, UpdateProfileInput{
		OrganizationName: Some(org),
		Phone:            Some("555-0100"),
	})
	require.NoError(t, err)

	clk.Advance(time.Minute)
	updated, err := svc.UpdateProfile(context.Background(), creds.Identity.ID, UpdateProfileInput{
		DisplayName: Some("New  Name"),
		Phone:       Null[string](),
	})
	require.NoError(t, err)
	require.Equal(t, "New Name", updated.DisplayName)
	require.Nil(t, updated.Phone)
	require.NotNil(t, updated.OrganizationName) // unspecified keeps value
	require.Equal(t, org, *updated.OrganizationName)

	_, err = svc.UpdateProfile(context.Background(), creds.Identity.ID, UpdateProfileInput{
		DisplayName: Null[string](),
	})
	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 422, appErr.Status)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	creds := signUp(t, svc, "pat@example.com")
	ctx := context.Background()

	err := svc.ChangePassword(ctx, creds.Identity.ID, "wrong old 1", "fresh pass 2")
	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "INVALID_CREDENTIALS", appErr.Code)

	err = svc.ChangePassword(ctx, creds.Identity.ID, "sturdy pass 1", "weak")
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 422, appErr.Status)

	require.NoError(t, svc.ChangePassword(ctx, creds.Identity.ID, "sturdy pass 1", "fresh pass 2"))

	_, err = svc.SignIn(ctx, "pat@example.com", "sturdy pass 1")
	require.Error(t, err)
	_, err = svc.SignIn(ctx, "pat@example.com", "fresh pass 2")
	require.NoError(t, err)
}
