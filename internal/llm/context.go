package llm

import "context"

// PurposeCoach tags requests made for results coaching.
const PurposeCoach = "coach"

// purposeUnset is reported for calls made without WithPurpose.
const purposeUnset = "unknown"

type purposeCtxKey struct{}

// WithPurpose tags ctx so observed calls record why they were made.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	if purpose == "" {
		return ctx
	}
	return context.WithValue(ctx, purposeCtxKey{}, purpose)
}

// PurposeFrom returns the tag set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	purpose, _ := ctx.Value(purposeCtxKey{}).(string)
	if purpose == "" {
		return purposeUnset
	}
	return purpose
}
