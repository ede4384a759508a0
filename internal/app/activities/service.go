package activities

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
	"github.com/hobbyhub-app/hobby-directory-api/internal/events"
	"github.com/hobbyhub-app/hobby-directory-api/internal/observability"
	"github.com/hobbyhub-app/hobby-directory-api/internal/pagination"
	"github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/activityrepo"
	clockport "github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/clock"
	"github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/objectstore"
	"github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/refdatarepo"
)

type Service struct {
	repo    activityrepo.Repository
	refdata refdatarepo.Repository
	images  objectstore.Store
	clk     clockport.Clock
	events  events.Publisher

	newActivityID func() domain.ActivityID

	// OwnerFallback preserves a legacy client behavior: owner-scoped listings
	// and stats fall back to the unrestricted set when the organizer has no
	// records at all. See DESIGN.md.
	OwnerFallback bool
}

func NewService(repo activityrepo.Repository, refdata refdatarepo.Repository, images objectstore.Store, clk clockport.Clock, pub events.Publisher) *Service {
	if pub == nil {
		pub = events.Noop{}
	}
	return &Service{
		repo:    repo,
		refdata: refdata,
		images:  images,
		clk:     clk,
		events:  pub,
		newActivityID: func() domain.ActivityID {
			return domain.ActivityID(uuid.NewString())
		},
		OwnerFallback: true,
	}
}

// SetNewActivityIDForTest overrides ID generation for deterministic tests.
// It should not be used in production code.
func (s *Service) SetNewActivityIDForTest(fn func() domain.ActivityID) {
	if fn != nil {
		s.newActivityID = fn
	}
}

// List returns one page of the public directory. Soft-deleted records are
// never included.
func (s *Service) List(ctx context.Context, f ListFilters, page, limit int) (pagination.Page[domain.Activity], error) {
	page, limit = pagination.Clamp(page, limit)
	items, total, err := s.repo.List(ctx, repoFilters(f), page, limit)
	if err != nil {
		return pagination.Page[domain.Activity]{}, err
	}
	return pagination.New(items, page, limit, total), nil
}

// ListForOwner returns one page of the organizer's own listings. When the
// organizer owns no records at all and OwnerFallback is on, the unrestricted
// listing is returned instead.
func (s *Service) ListForOwner(ctx context.Context, organizerID domain.IdentityID, page, limit int) (pagination.Page[domain.Activity], error) {
	page, limit = pagination.Clamp(page, limit)

	if s.OwnerFallback {
		n, err := s.repo.CountByOrganizer(ctx, organizerID)
		if err != nil {
			return pagination.Page[domain.Activity]{}, err
		}
		if n == 0 {
			return s.List(ctx, ListFilters{}, page, limit)
		}
	}

	items, total, err := s.repo.List(ctx, activityrepo.Filters{OrganizerID: organizerID}, page, limit)
	if err != nil {
		return pagination.Page[domain.Activity]{}, err
	}
	return pagination.New(items, page, limit, total), nil
}

// GetByID returns the activity, soft-deleted or not.
func (s *Service) GetByID(ctx context.Context, id domain.ActivityID) (domain.Activity, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, activityrepo.ErrNotFound) {
			return domain.Activity{}, &Error{Status: 404, Code: "ACTIVITY_NOT_FOUND", Message: "activity not found"}
		}
		return domain.Activity{}, err
	}
	return a, nil
}

func (s *Service) Create(ctx context.Context, organizerID domain.IdentityID, in CreateActivityInput) (domain.Activity, error) {
	if details := s.validateCreate(ctx, in); len(details) > 0 {
		return domain.Activity{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid activity", Details: details}
	}

	now := s.clk.Now()
	a := domain.Activity{
		ID:              s.newActivityID(),
		Title:           strings.TrimSpace(in.Title),
		Description:     strings.TrimSpace(in.Description),
		Type:            in.Type,
		CategoryID:      in.CategoryID,
		Location:        strings.TrimSpace(in.Location),
		Price:           in.Price,
		Currency:        strings.ToUpper(strings.TrimSpace(in.Currency)),
		StartDate:       cloneTimePtr(in.StartDate),
		EndDate:         cloneTimePtr(in.EndDate),
		MaxParticipants: cloneIntPtr(in.MaxParticipants),
		AgeRange:        cloneStringPtr(in.AgeRange),
		OrganizerID:     organizerID,
		ContactEmail:    strings.TrimSpace(in.ContactEmail),
		ContactPhone:    cloneStringPtr(in.ContactPhone),
		Tags:            domain.NormalizeTagIDs(in.Tags),
		IsDeleted:       false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return domain.Activity{}, err
	}

	observability.RecordActivityCreated()
	_ = s.events.PublishActivity(ctx, events.ActivityEvent{
		Kind:        events.ActivityCreated,
		ActivityID:  a.ID,
		OrganizerID: a.OrganizerID,
		Title:       a.Title,
		OccurredAt:  now,
	})
	return a, nil
}

func (s *Service) Update(ctx context.Context, callerID domain.IdentityID, callerRole domain.Role, id domain.ActivityID, in UpdateActivityInput) (domain.Activity, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, activityrepo.ErrNotFound) {
			return domain.Activity{}, &Error{Status: 404, Code: "ACTIVITY_NOT_FOUND", Message: "activity not found"}
		}
		return domain.Activity{}, err
	}
	if a.OrganizerID != callerID && callerRole != domain.RoleAdmin {
		return domain.Activity{}, &Error{Status: 403, Code: "PERMISSION_DENIED", Message: "only the owning organizer may modify this activity"}
	}

	if err := applyPatch(&a, in, s.categoryExists(ctx)); err != nil {
		return domain.Activity{}, err
	}

	a.UpdatedAt = s.clk.Now()
	if err := s.repo.Update(ctx, a); err != nil {
		return domain.Activity{}, err
	}

	_ = s.events.PublishActivity(ctx, events.ActivityEvent{
		Kind:        events.ActivityUpdated,
		ActivityID:  a.ID,
		OrganizerID: a.OrganizerID,
		Title:       a.Title,
		OccurredAt:  a.UpdatedAt,
	})
	return a, nil
}

// SoftDelete marks the activity deleted. Idempotent: deleting an
// already-deleted record succeeds and advances UpdatedAt.
func (s *Service) SoftDelete(ctx context.Context, callerID domain.IdentityID, callerRole domain.Role, id domain.ActivityID) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, activityrepo.ErrNotFound) {
			return &Error{Status: 404, Code: "ACTIVITY_NOT_FOUND", Message: "activity not found"}
		}
		return err
	}
	if a.OrganizerID != callerID && callerRole != domain.RoleAdmin {
		return &Error{Status: 403, Code: "PERMISSION_DENIED", Message: "only the owning organizer may delete this activity"}
	}

	a.IsDeleted = true
	a.UpdatedAt = s.clk.Now()
	if err := s.repo.Update(ctx, a); err != nil {
		return err
	}

	observability.RecordActivitySoftDeleted()
	_ = s.events.PublishActivity(ctx, events.ActivityEvent{
		Kind:        events.ActivityDeleted,
		ActivityID:  a.ID,
		OrganizerID: a.OrganizerID,
		Title:       a.Title,
		OccurredAt:  a.UpdatedAt,
	})
	return nil
}

// Stats aggregates the organizer's listings. The owner fallback mirrors
// ListForOwner.
func (s *Service) Stats(ctx context.Context, organizerID domain.IdentityID) (OwnerStats, error) {
	f := activityrepo.Filters{OrganizerID: organizerID, IncludeDeleted: true}
	if s.OwnerFallback {
		n, err := s.repo.CountByOrganizer(ctx, organizerID)
		if err != nil {
			return OwnerStats{}, err
		}
		if n == 0 {
			f.OrganizerID = ""
		}
	}

	all, err := s.repo.ListAll(ctx, f)
	if err != nil {
		return OwnerStats{}, err
	}

	now := s.clk.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var st OwnerStats
	for _, a := range all {
		st.Total++
		if a.IsDeleted {
			continue
		}
		st.Active++
		if a.StartDate != nil && a.StartDate.After(now) {
			st.Pending++
		}
		if a.MaxParticipants != nil {
			st.Participants += *a.MaxParticipants
		}
		if !a.CreatedAt.Before(monthStart) {
			st.ThisMonth++
		}
	}
	return st, nil
}

// AttachImage uploads a listing image and stores its URL on the activity.
// Ownership rules match Update.
func (s *Service) AttachImage(ctx context.Context, callerID domain.IdentityID, callerRole domain.Role, id domain.ActivityID, contentType string, r io.Reader) (domain.Activity, error) {
	if s.images == nil {
		return domain.Activity{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "image uploads are not enabled"}
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, activityrepo.ErrNotFound) {
			return domain.Activity{}, &Error{Status: 404, Code: "ACTIVITY_NOT_FOUND", Message: "activity not found"}
		}
		return domain.Activity{}, err
	}
	if a.OrganizerID != callerID && callerRole != domain.RoleAdmin {
		return domain.Activity{}, &Error{Status: 403, Code: "PERMISSION_DENIED", Message: "only the owning organizer may modify this activity"}
	}

	key := fmt.Sprintf("activities/%s/%s", a.ID, uuid.NewString())
	url, err := s.images.Upload(ctx, key, contentType, r)
	if err != nil {
		if errors.Is(err, objectstore.ErrTooLarge) {
			return domain.Activity{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "image too large"}
		}
		return domain.Activity{}, err
	}

	a.ImageURL = &url
	a.UpdatedAt = s.clk.Now()
	if err := s.repo.Update(ctx, a); err != nil {
		return domain.Activity{}, err
	}
	return a, nil
}

// --- validation and patching ---

func (s *Service) validateCreate(ctx context.Context, in CreateActivityInput) map[string]any {
	details := map[string]any{}
	if strings.TrimSpace(in.Title) == "" {
		details["title"] = "must be non-empty"
	}
	if strings.TrimSpace(in.Description) == "" {
		details["description"] = "must be non-empty"
	}
	if !in.Type.IsValid() {
		details["type"] = "must be one of activity, event, hobby_opportunity, club, competition"
	}
	if in.CategoryID == "" {
		details["categoryId"] = "must be non-empty"
	} else if s.refdata != nil {
		if _, err := s.refdata.GetCategory(ctx, in.CategoryID); err != nil {
			details["categoryId"] = "unknown category"
		}
	}
	if in.Price < 0 {
		details["price"] = "must be >= 0"
	}
	if in.Price > 0 && strings.TrimSpace(in.Currency) == "" {
		details["currency"] = "required for priced listings"
	}
	if err := validateEmail(strings.TrimSpace(in.ContactEmail)); err != nil {
		details["contactEmail"] = err.Error()
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		details["endDate"] = "must not precede startDate"
	}
	if in.MaxParticipants != nil && *in.MaxParticipants < 1 {
		details["maxParticipants"] = "must be >= 1"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

func (s *Service) categoryExists(ctx context.Context) func(domain.CategoryID) bool {
	return func(id domain.CategoryID) bool {
		if s.refdata == nil {
			return true
		}
		_, err := s.refdata.GetCategory(ctx, id)
		return err == nil
	}
}

func applyPatch(a *domain.Activity, in UpdateActivityInput, categoryExists func(domain.CategoryID) bool) error {
	invalid := func(field, msg string) error {
		return &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid " + field, Details: map[string]any{field: msg}}
	}

	if in.Title.IsSpecified() {
		if in.Title.IsNull() {
			return invalid("title", "cannot be null")
		}
		t := strings.TrimSpace(in.Title.Value())
		if t == "" {
			return invalid("title", "must be non-empty")
		}
		a.Title = t
	}
	if in.Description.IsSpecified() {
		if in.Description.IsNull() {
			return invalid("description", "cannot be null")
		}
		d := strings.TrimSpace(in.Description.Value())
		if d == "" {
			return invalid("description", "must be non-empty")
		}
		a.Description = d
	}
	if in.Type.IsSpecified() {
		if in.Type.IsNull() || !in.Type.Value().IsValid() {
			return invalid("type", "must be a known activity type")
		}
		a.Type = in.Type.Value()
	}
	if in.CategoryID.IsSpecified() {
		if in.CategoryID.IsNull() || in.CategoryID.Value() == "" {
			return invalid("categoryId", "cannot be null")
		}
		if categoryExists != nil && !categoryExists(in.CategoryID.Value()) {
			return invalid("categoryId", "unknown category")
		}
		a.CategoryID = in.CategoryID.Value()
	}
	if in.Location.IsSpecified() {
		if in.Location.IsNull() {
			return invalid("location", "cannot be null")
		}
		a.Location = strings.TrimSpace(in.Location.Value())
	}
	if in.Price.IsSpecified() {
		if in.Price.IsNull() || in.Price.Value() < 0 {
			return invalid("price", "must be >= 0")
		}
		a.Price = in.Price.Value()
	}
	if in.Currency.IsSpecified() {
		if in.Currency.IsNull() {
			return invalid("currency", "cannot be null")
		}
		a.Currency = strings.ToUpper(strings.TrimSpace(in.Currency.Value()))
	}
	if in.StartDate.IsSpecified() {
		if in.StartDate.IsNull() {
			a.StartDate = nil
		} else {
			v := in.StartDate.Value()
			a.StartDate = &v
		}
	}
	if in.EndDate.IsSpecified() {
		if in.EndDate.IsNull() {
			a.EndDate = nil
		} else {
			v := in.EndDate.Value()
			a.EndDate = &v
		}
	}
	if a.StartDate != nil && a.EndDate != nil && a.EndDate.Before(*a.StartDate) {
		return invalid("endDate", "must not precede startDate")
	}
	if in.MaxParticipants.IsSpecified() {
		if in.MaxParticipants.IsNull() {
			a.MaxParticipants = nil
		} else {
			v := in.MaxParticipants.Value()
			if v < 1 {
				return invalid("maxParticipants", "must be >= 1")
			}
			a.MaxParticipants = &v
		}
	}
	if in.AgeRange.IsSpecified() {
		if in.AgeRange.IsNull() {
			a.AgeRange = nil
		} else {
			v := strings.TrimSpace(in.AgeRange.Value())
			a.AgeRange = &v
		}
	}
	if in.ContactEmail.IsSpecified() {
		if in.ContactEmail.IsNull() {
			return invalid("contactEmail", "cannot be null")
		}
		e := strings.TrimSpace(in.ContactEmail.Value())
		if err := validateEmail(e); err != nil {
			return invalid("contactEmail", err.Error())
		}
		a.ContactEmail = e
	}
	if in.ContactPhone.IsSpecified() {
		if in.ContactPhone.IsNull() {
			a.ContactPhone = nil
		} else {
			v := strings.TrimSpace(in.ContactPhone.Value())
			a.ContactPhone = &v
		}
	}
	if in.Tags.IsSpecified() {
		if in.Tags.IsNull() {
			a.Tags = nil
		} else {
			a.Tags = domain.NormalizeTagIDs(in.Tags.Value())
		}
	}
	return nil
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

func repoFilters(f ListFilters) activityrepo.Filters {
	return activityrepo.Filters{
		Search:     strings.TrimSpace(f.Search),
		Type:       f.Type,
		CategoryID: f.CategoryID,
		Location:   strings.TrimSpace(f.Location),
		MinPrice:   f.MinPrice,
		MaxPrice:   f.MaxPrice,
	}
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTimePtr(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
