package model

// Issue is the canonical issue record returned by every issue query.
//
// Creator, Resolver and Verifier hold usernames joined from the user
// table; the *ID fields keep the raw references. Resolver and Verifier
// are optional.
type Issue struct {
	IssueID     int64   `db:"issue_id" json:"issue_id"`
	Title       string  `db:"title" json:"title"`
	CreatorID   int64   `db:"creator_id" json:"creator_id"`
	Creator     string  `db:"creator" json:"creator"`
	ResolverID  *int64  `db:"resolver_id" json:"resolver_id"`
	Resolver    *string `db:"resolver" json:"resolver"`
	VerifierID  *int64  `db:"verifier_id" json:"verifier_id"`
	Verifier    *string `db:"verifier" json:"verifier"`
	Description *string `db:"description" json:"description"`
}

// IssueInput carries the writable fields of an issue.
//
// Title and CreatorID are required by the schema; a zero value is sent
// as NULL so the store, not this layer, rejects it.
type IssueInput struct {
	Title       string
	CreatorID   int64
	ResolverID  *int64
	VerifierID  *int64
	Description *string
}

// Args returns the statement arguments in column order
// (title, creator, resolver, verifier, description).
func (in IssueInput) Args() []any {
	var title, creator any
	if in.Title != "" {
		title = in.Title
	}
	if in.CreatorID != 0 {
		creator = in.CreatorID
	}
	return []any{title, creator, in.ResolverID, in.VerifierID, in.Description}
}
