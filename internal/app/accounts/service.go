// Package accounts implements registration, authentication, sessions, and
// profile management.
package accounts

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
	"github.com/hobbyhub-app/hobby-directory-api/internal/observability"
	"github.com/hobbyhub-app/hobby-directory-api/internal/platform/auth/passwords"
	"github.com/hobbyhub-app/hobby-directory-api/internal/platform/auth/tokens"
	clockport "github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/clock"
	"github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/identityrepo"
	"github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/sessionrepo"
)

type Service struct {
	identities identityrepo.Repository
	sessions   sessionrepo.Repository
	clk        clockport.Clock
	tokenCfg   tokens.Config

	newIdentityID func() domain.IdentityID
	newSessionID  func() domain.SessionID
}

func NewService(identities identityrepo.Repository, sessions sessionrepo.Repository, clk clockport.Clock, tokenCfg tokens.Config) *Service {
	return &Service{
		identities: identities,
		sessions:   sessions,
		clk:        clk,
		tokenCfg:   tokenCfg,
		newIdentityID: func() domain.IdentityID {
			return domain.IdentityID(uuid.NewString())
		},
		newSessionID: func() domain.SessionID {
			return domain.SessionID(uuid.NewString())
		},
	}
}

// SetIDGeneratorsForTest overrides ID generation for deterministic tests.
// It should not be used in production code.
func (s *Service) SetIDGeneratorsForTest(identity func() domain.IdentityID, session func() domain.SessionID) {
	if identity != nil {
		s.newIdentityID = identity
	}
	if session != nil {
		s.newSessionID = session
	}
}

// SignUp registers a new account and opens its first session.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (Credentials, error) {
	if details := validateSignUp(in); len(details) > 0 {
		observability.RecordSignup("rejected")
		return Credentials{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid signup", Details: details}
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}

	hash, err := passwords.Hash(in.Password)
	if err != nil {
		return Credentials{}, err
	}

	now := s.clk.Now()
	rec := identityrepo.Identity{
		ID:               s.newIdentityID(),
		Email:            strings.TrimSpace(in.Email),
		Role:             role,
		DisplayName:      domain.NormalizeHumanName(in.DisplayName),
		OrganizationName: cloneStringPtr(in.OrganizationName),
		Phone:            cloneStringPtr(in.Phone),
		PasswordHash:     hash,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.identities.Create(ctx, rec); err != nil {
		if errors.Is(err, identityrepo.ErrEmailTaken) {
			observability.RecordSignup("conflict")
			return Credentials{}, &Error{Status: 409, Code: "EMAIL_ALREADY_IN_USE", Message: "an account with this email already exists"}
		}
		return Credentials{}, err
	}

	creds, err := s.openSession(ctx, rec)
	if err != nil {
		return Credentials{}, err
	}
	observability.RecordSignup("ok")
	return creds, nil
}

// SignIn verifies credentials and opens a session. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) SignIn(ctx context.Context, email, password string) (Credentials, error) {
	rec, err := s.identities.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, identityrepo.ErrNotFound) {
			observability.RecordLogin("invalid")
			return Credentials{}, invalidCredentials()
		}
		return Credentials{}, err
	}
	if !passwords.Check(password, rec.PasswordHash) {
		observability.RecordLogin("invalid")
		return Credentials{}, invalidCredentials()
	}

	creds, err := s.openSession(ctx, rec)
	if err != nil {
		return Credentials{}, err
	}
	observability.RecordLogin("ok")
	return creds, nil
}

// SignOut revokes the session so any outstanding token minted for it stops
// working. Signing out an already-revoked session succeeds.
func (s *Service) SignOut(ctx context.Context, sessionID domain.SessionID) error {
	err := s.sessions.Revoke(ctx, sessionID, s.clk.Now())
	if err != nil && !errors.Is(err, sessionrepo.ErrNotFound) {
		return err
	}
	return nil
}

// Authenticate resolves a bearer token to a live identity. It rejects tokens
// whose session has been revoked or has expired, even when the token's own
// signature and expiry still check out.
func (s *Service) Authenticate(ctx context.Context, rawToken string) (domain.Identity, domain.SessionID, error) {
	claims, err := tokens.Parse(rawToken, s.tokenCfg)
	if err != nil {
		return domain.Identity{}, "", unauthorized()
	}

	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, sessionrepo.ErrNotFound) {
			return domain.Identity{}, "", unauthorized()
		}
		return domain.Identity{}, "", err
	}
	now := s.clk.Now()
	if sess.RevokedAt != nil || now.After(sess.ExpiresAt) {
		return domain.Identity{}, "", unauthorized()
	}
	if sess.IdentityID != claims.IdentityID {
		return domain.Identity{}, "", unauthorized()
	}

	rec, err := s.identities.GetByID(ctx, claims.IdentityID)
	if err != nil {
		if errors.Is(err, identityrepo.ErrNotFound) {
			return domain.Identity{}, "", unauthorized()
		}
		return domain.Identity{}, "", err
	}
	return toDomain(rec), sess.ID, nil
}

// GetProfile returns the identity without its password hash.
func (s *Service) GetProfile(ctx context.Context, id domain.IdentityID) (domain.Identity, error) {
	rec, err := s.identities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, identityrepo.ErrNotFound) {
			return domain.Identity{}, &Error{Status: 404, Code: "IDENTITY_NOT_FOUND", Message: "account not found"}
		}
		return domain.Identity{}, err
	}
	return toDomain(rec), nil
}

// UpdateProfile applies a partial update to the caller's own profile.
func (s *Service) UpdateProfile(ctx context.Context, id domain.IdentityID, in UpdateProfileInput) (domain.Identity, error) {
	rec, err := s.identities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, identityrepo.ErrNotFound) {
			return domain.Identity{}, &Error{Status: 404, Code: "IDENTITY_NOT_FOUND", Message: "account not found"}
		}
		return domain.Identity{}, err
	}

	if in.DisplayName.IsSpecified() {
		if in.DisplayName.IsNull() {
			return domain.Identity{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid displayName", Details: map[string]any{"displayName": "cannot be null"}}
		}
		name := domain.NormalizeHumanName(in.DisplayName.Value())
		if name == "" {
			return domain.Identity{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid displayName", Details: map[string]any{"displayName": "must be non-empty"}}
		}
		rec.DisplayName = name
	}
	if in.OrganizationName.IsSpecified() {
		if in.OrganizationName.IsNull() {
			rec.OrganizationName = nil
		} else {
			v := strings.TrimSpace(in.OrganizationName.Value())
			rec.OrganizationName = &v
		}
	}
	if in.Phone.IsSpecified() {
		if in.Phone.IsNull() {
			rec.Phone = nil
		} else {
			v := strings.TrimSpace(in.Phone.Value())
			rec.Phone = &v
		}
	}

	rec.UpdatedAt = s.clk.Now()
	if err := s.identities.Update(ctx, rec); err != nil {
		return domain.Identity{}, err
	}
	return toDomain(rec), nil
}

// ChangePassword verifies the current password before storing the new hash.
func (s *Service) ChangePassword(ctx context.Context, id domain.IdentityID, current, next string) error {
	rec, err := s.identities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, identityrepo.ErrNotFound) {
			return &Error{Status: 404, Code: "IDENTITY_NOT_FOUND", Message: "account not found"}
		}
		return err
	}
	if !passwords.Check(current, rec.PasswordHash) {
		return invalidCredentials()
	}
	if err := passwords.ValidateNew(next); err != nil {
		return &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid password", Details: map[string]any{"newPassword": err.Error()}}
	}

	hash, err := passwords.Hash(next)
	if err != nil {
		return err
	}
	rec.PasswordHash = hash
	rec.UpdatedAt = s.clk.Now()
	return s.identities.Update(ctx, rec)
}

func (s *Service) openSession(ctx context.Context, rec identityrepo.Identity) (Credentials, error) {
	now := s.clk.Now()
	sess := sessionrepo.Session{
		ID:         s.newSessionID(),
		IdentityID: rec.ID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.tokenCfg.TTL),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return Credentials{}, err
	}

	token, err := tokens.Issue(s.tokenCfg, rec.ID, sess.ID, rec.Role, now)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{Identity: toDomain(rec), Token: token, Session: sess.ID}, nil
}

func validateSignUp(in SignUpInput) map[string]any {
	details := map[string]any{}
	if err := validateEmail(strings.TrimSpace(in.Email)); err != nil {
		details["email"] = err.Error()
	}
	if err := passwords.ValidateNew(in.Password); err != nil {
		details["password"] = err.Error()
	}
	if domain.NormalizeHumanName(in.DisplayName) == "" {
		details["displayName"] = "must be non-empty"
	}
	if in.Role != "" {
		if !in.Role.IsValid() {
			details["role"] = "must be user or organizer"
		} else if in.Role == domain.RoleAdmin {
			details["role"] = "admin accounts cannot be self-registered"
		}
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New("must be non-empty")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return err
	}
	// Ensure no "Name <email@x>" format sneaks in.
	if addr.Address != email {
		return errors.New("must be a bare email address")
	}
	return nil
}

func invalidCredentials() *Error {
	return &Error{Status: 401, Code: "INVALID_CREDENTIALS", Message: "email or password is incorrect"}
}

func unauthorized() *Error {
	return &Error{Status: 401, Code: "UNAUTHORIZED", Message: "authentication required"}
}

func toDomain(rec identityrepo.Identity) domain.Identity {
	return domain.Identity{
		ID:               rec.ID,
		Email:            rec.Email,
		Role:             rec.Role,
		DisplayName:      rec.DisplayName,
		OrganizationName: cloneStringPtr(rec.OrganizationName),
		Phone:            cloneStringPtr(rec.Phone),
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
