package httpapi

import (
	"time"

	"github.com/oapi-codegen/nullable"
	"github.com/oapi-codegen/runtime/types"

	"github.com/hobbyhub-app/hobby-directory-api/internal/app/accounts"
	"github.com/hobbyhub-app/hobby-directory-api/internal/app/activities"
	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
	"github.com/hobbyhub-app/hobby-directory-api/internal/pagination"
)

// --- accounts ---

type signUpRequest struct {
	Email            types.Email `json:"email"`
	Password         string      `json:"password"`
	DisplayName      string      `json:"displayName"`
	Role             string      `json:"role,omitempty"`
	OrganizationName *string     `json:"organizationName,omitempty"`
	Phone            *string     `json:"phone,omitempty"`
}

type loginRequest struct {
	Email    types.Email `json:"email"`
	Password string      `json:"password"`
}

type identityResponse struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	DisplayName      string    `json:"displayName"`
	OrganizationName *string   `json:"organizationName,omitempty"`
	Phone            *string   `json:"phone,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type credentialsResponse struct {
	Token string           `json:"token"`
	User  identityResponse `json:"user"`
}

type updateProfileRequest struct {
	DisplayName      nullable.Nullable[string] `json:"displayName,omitempty"`
	OrganizationName nullable.Nullable[string] `json:"organizationName,omitempty"`
	Phone            nullable.Nullable[string] `json:"phone,omitempty"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func toIdentityResponse(id domain.Identity) identityResponse {
	return identityResponse{
		ID:               string(id.ID),
		Email:            id.Email,
		Role:             string(id.Role),
		DisplayName:      id.DisplayName,
		OrganizationName: id.OrganizationName,
		Phone:            id.Phone,
		CreatedAt:        id.CreatedAt,
		UpdatedAt:        id.UpdatedAt,
	}
}

func toUpdateProfileInput(req updateProfileRequest) accounts.UpdateProfileInput {
	return accounts.UpdateProfileInput{
		DisplayName:      accountOptional(req.DisplayName),
		OrganizationName: accountOptional(req.OrganizationName),
		Phone:            accountOptional(req.Phone),
	}
}

func accountOptional[T any](n nullable.Nullable[T]) accounts.Optional[T] {
	if !n.IsSpecified() {
		return accounts.Unspecified[T]()
	}
	if n.IsNull() {
		return accounts.Null[T]()
	}
	return accounts.Some(n.MustGet())
}

// --- activities ---

type createActivityRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	CategoryID  string `json:"categoryId"`

	Location string  `json:"location"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`

	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`

	MaxParticipants *int    `json:"maxParticipants,omitempty"`
	AgeRange        *string `json:"ageRange,omitempty"`

	ContactEmail types.Email `json:"contactEmail"`
	ContactPhone *string     `json:"contactPhone,omitempty"`

	Tags []string `json:"tags,omitempty"`
}

type updateActivityRequest struct {
	Title       nullable.Nullable[string] `json:"title,omitempty"`
	Description nullable.Nullable[string] `json:"description,omitempty"`
	Type        nullable.Nullable[string] `json:"type,omitempty"`
	CategoryID  nullable.Nullable[string] `json:"categoryId,omitempty"`

	Location nullable.Nullable[string]  `json:"location,omitempty"`
	Price    nullable.Nullable[float64] `json:"price,omitempty"`
	Currency nullable.Nullable[string]  `json:"currency,omitempty"`

	StartDate nullable.Nullable[time.Time] `json:"startDate,omitempty"`
	EndDate   nullable.Nullable[time.Time] `json:"endDate,omitempty"`

	MaxParticipants nullable.Nullable[int]    `json:"maxParticipants,omitempty"`
	AgeRange        nullable.Nullable[string] `json:"ageRange,omitempty"`

	ContactEmail nullable.Nullable[types.Email] `json:"contactEmail,omitempty"`
	ContactPhone nullable.Nullable[string]      `json:"contactPhone,omitempty"`

	Tags nullable.Nullable[[]string] `json:"tags,omitempty"`
}

type activityResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	CategoryID  string `json:"categoryId"`

	Location string  `json:"location"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`

	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`

	MaxParticipants *int    `json:"maxParticipants,omitempty"`
	AgeRange        *string `json:"ageRange,omitempty"`

	OrganizerID  string  `json:"organizerId"`
	ContactEmail string  `json:"contactEmail"`
	ContactPhone *string `json:"contactPhone,omitempty"`

	Tags []string `json:"tags"`

	ImageURL *string `json:"imageUrl,omitempty"`

	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type pageMeta struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int   `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
	Pages       []int `json:"pages"`
}

type activityListResponse struct {
	Items []activityResponse `json:"items"`
	Meta  pageMeta           `json:"meta"`
}

type statsResponse struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Pending      int `json:"pending"`
	Participants int `json:"participants"`
	ThisMonth    int `json:"thisMonth"`
}

func toActivityResponse(a domain.Activity) activityResponse {
	tags := make([]string, 0, len(a.Tags))
	for _, t := range a.Tags {
		tags = append(tags, string(t))
	}
	return activityResponse{
		ID:              string(a.ID),
		Title:           a.Title,
		Description:     a.Description,
		Type:            string(a.Type),
		CategoryID:      string(a.CategoryID),
		Location:        a.Location,
		Price:           a.Price,
		Currency:        a.Currency,
		StartDate:       a.StartDate,
		EndDate:         a.EndDate,
		MaxParticipants: a.MaxParticipants,
		AgeRange:        a.AgeRange,
		OrganizerID:     string(a.OrganizerID),
		ContactEmail:    a.ContactEmail,
		ContactPhone:    a.ContactPhone,
		Tags:            tags,
		ImageURL:        a.ImageURL,
		IsDeleted:       a.IsDeleted,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func toActivityListResponse(p pagination.Page[domain.Activity]) activityListResponse {
	items := make([]activityResponse, 0, len(p.Items))
	for _, a := range p.Items {
		items = append(items, toActivityResponse(a))
	}
	return activityListResponse{
		Items: items,
		Meta: pageMeta{
			Page:        p.Page,
			Limit:       p.Limit,
			Total:       p.Total,
			TotalPages:  p.TotalPages,
			HasNext:     p.HasNext,
			HasPrevious: p.HasPrevious,
			Pages:       pagination.Window(p.Page, p.TotalPages, pagination.DefaultWindowSize),
		},
	}
}

func toCreateActivityInput(req createActivityRequest) activities.CreateActivityInput {
	typ, err := domain.ParseActivityType(req.Type)
	if err != nil {
		// Carry the raw value through; the service reports the closed set.
		typ = domain.ActivityType(req.Type)
	}
	tags := make([]domain.TagID, 0, len(req.Tags))
	for _, t := range req.Tags {
		tags = append(tags, domain.TagID(t))
	}
	return activities.CreateActivityInput{
		Title:           req.Title,
		Description:     req.Description,
		Type:            typ,
		CategoryID:      domain.CategoryID(req.CategoryID),
		Location:        req.Location,
		Price:           req.Price,
		Currency:        req.Currency,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		MaxParticipants: req.MaxParticipants,
		AgeRange:        req.AgeRange,
		ContactEmail:    string(req.ContactEmail),
		ContactPhone:    req.ContactPhone,
		Tags:            tags,
	}
}

func toUpdateActivityInput(req updateActivityRequest) activities.UpdateActivityInput {
	return activities.UpdateActivityInput{
		Title:       optionalFromNullable[string, string](req.Title, func(s string) string { return s }),
		Description: optionalFromNullable[string, string](req.Description, func(s string) string { return s }),
		Type: optionalFromNullable[string, domain.ActivityType](req.Type, func(s string) domain.ActivityType {
			if typ, err := domain.ParseActivityType(s); err == nil {
				return typ
			}
			return domain.ActivityType(s)
		}),
		CategoryID: optionalFromNullable[string, domain.CategoryID](req.CategoryID, func(s string) domain.CategoryID {
			return domain.CategoryID(s)
		}),
		Location:        optionalFromNullable[string, string](req.Location, func(s string) string { return s }),
		Price:           optionalFromNullable[float64, float64](req.Price, func(v float64) float64 { return v }),
		Currency:        optionalFromNullable[string, string](req.Currency, func(s string) string { return s }),
		StartDate:       optionalFromNullable[time.Time, time.Time](req.StartDate, func(t time.Time) time.Time { return t }),
		EndDate:         optionalFromNullable[time.Time, time.Time](req.EndDate, func(t time.Time) time.Time { return t }),
		MaxParticipants: optionalFromNullable[int, int](req.MaxParticipants, func(v int) int { return v }),
		AgeRange:        optionalFromNullable[string, string](req.AgeRange, func(s string) string { return s }),
		ContactEmail:    optionalFromNullable[types.Email, string](req.ContactEmail, func(e types.Email) string { return string(e) }),
		ContactPhone:    optionalFromNullable[string, string](req.ContactPhone, func(s string) string { return s }),
		Tags: optionalFromNullable[[]string, []domain.TagID](req.Tags, func(ts []string) []domain.TagID {
			out := make([]domain.TagID, 0, len(ts))
			for _, t := range ts {
				out = append(out, domain.TagID(t))
			}
			return out
		}),
	}
}

// optionalFromNullable translates the wire-level tri-state into the
// application-level one.
func optionalFromNullable[W any, T any](n nullable.Nullable[W], conv func(W) T) activities.Optional[T] {
	if !n.IsSpecified() {
		return activities.Unspecified[T]()
	}
	if n.IsNull() {
		return activities.Null[T]()
	}
	return activities.Some(conv(n.MustGet()))
}

// --- reference data ---

type categoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type tagResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
