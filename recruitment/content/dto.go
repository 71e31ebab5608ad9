package content

// UpdateContentRequest - body of PUT /api/content. The required sections are
// pointers so that an absent section can be told apart from an empty one.
type UpdateContentRequest struct {
	Hero         *Hero         `json:"hero"`
	Services     []Card        `json:"services"`
	Features     []Card        `json:"features"`
	Testimonials []Testimonial `json:"testimonials"`
	Footer       *Footer       `json:"footer"`
	CTA          *CTA          `json:"cta"`
}

// HasRequiredSections reports whether hero, footer and cta are present
func (r UpdateContentRequest) HasRequiredSections() bool {
	return r.Hero != nil && r.Footer != nil && r.CTA != nil
}

// ToContent builds the document. Call HasRequiredSections first.
func (r UpdateContentRequest) ToContent() *Content {
	return &Content{
		ID:           SiteContentID,
		Hero:         *r.Hero,
		Services:     r.Services,
		Features:     r.Features,
		Testimonials: r.Testimonials,
		Footer:       *r.Footer,
		CTA:          *r.CTA,
	}
}

// ContentResponse - envelope for GET and PUT /api/content
type ContentResponse struct {
	Success bool     `json:"success"`
	Data    *Content `json:"data"`
	Message string   `json:"message,omitempty"`
}
