package domain

// IdentityID is an internal identifier for an identity (account) record.
type IdentityID string

// ActivityID is an internal identifier for an activity listing.
type ActivityID string

// SessionID identifies an issued session; it is embedded in tokens so that
// sign-out can revoke outstanding credentials.
type SessionID string

// CategoryID identifies a reference-data category.
type CategoryID string

// TagID identifies a reference-data tag.
type TagID string
