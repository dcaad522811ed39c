package models

// PhoneUnspecified is the value carried through the pipeline when no
// confident contact number could be resolved for a website. It is a
// normal outcome, not an error.
const PhoneUnspecified = "unspecified"

// SMSRequest is the input for draft generation.
type SMSRequest struct {
	WebsiteURL     string       `json:"websiteUrl" binding:"required"`
	PhoneNumber    string       `json:"phoneNumber"`
	Products       []string     `json:"products" binding:"required,min=1"`
	DiscountRate   int          `json:"discountRate"`
	StartDate      CalendarDate `json:"startDate"`
	EndDate        CalendarDate `json:"endDate"`
	TargetAudience string       `json:"targetAudience"`
	DraftCount     int          `json:"draftCount"`
}

// SMSDraft is a single generated SMS candidate. Exactly one draft per
// batch carries IsRecommended, the one with the highest score (first
// occurrence wins on ties).
type SMSDraft struct {
	Tone          Tone   `json:"tone"`
	Content       string `json:"content"`
	Score         int    `json:"score"`
	IsRecommended bool   `json:"isRecommended"`
}

// SMSResponse wraps a batch of generated drafts.
type SMSResponse struct {
	Drafts []SMSDraft `json:"drafts"`
}

// RefineKind selects how an existing draft is rewritten.
type RefineKind string

const (
	RefineShorten     RefineKind = "shorten"
	RefineClarify     RefineKind = "clarify"
	RefineMoreExcited RefineKind = "more-exciting"
	RefineMoreFormal  RefineKind = "more-formal"
)

// RefineRequest is the payload for refining an existing draft.
type RefineRequest struct {
	Content string     `json:"content" binding:"required"`
	Kind    RefineKind `json:"kind" binding:"required"`
}
