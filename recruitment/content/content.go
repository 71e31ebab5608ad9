package content

import (
	"strings"
	"time"

	"github.com/talencee/careers/pkg/errx"
	"github.com/talencee/careers/pkg/kernel"
)

// SiteContentID is the id of the single landing page document
const SiteContentID kernel.ContentID = "site"

type Hero struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	ButtonText string `json:"buttonText"`
}

// Card is a service or feature tile
type Card struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

type Testimonial struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Message string `json:"message"`
	Avatar  string `json:"avatar,omitempty"`
}

type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

type Social struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type Footer struct {
	Links     []Link   `json:"links"`
	Social    []Social `json:"social"`
	Copyright string   `json:"copyright"`
}

type CTA struct {
	ButtonText string `json:"buttonText"`
	ModalTitle string `json:"modalTitle"`
}

// Content is the landing page document. There is at most one.
type Content struct {
	ID           kernel.ContentID `json:"id"`
	Hero         Hero             `json:"hero"`
	Services     []Card           `json:"services"`
	Features     []Card           `json:"features"`
	Testimonials []Testimonial    `json:"testimonials"`
	Footer       Footer           `json:"footer"`
	CTA          CTA              `json:"cta"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// Normalize trims every text value and replaces nil lists with empty ones
func (c *Content) Normalize() {
	trim := func(s *string) { *s = strings.TrimSpace(*s) }

	trim(&c.Hero.Title)
	trim(&c.Hero.Subtitle)
	trim(&c.Hero.ButtonText)
	for i := range c.Services {
		trim(&c.Services[i].Title)
		trim(&c.Services[i].Description)
		trim(&c.Services[i].Icon)
	}
	for i := range c.Features {
		trim(&c.Features[i].Title)
		trim(&c.Features[i].Description)
		trim(&c.Features[i].Icon)
	}
	for i := range c.Testimonials {
		trim(&c.Testimonials[i].Name)
		trim(&c.Testimonials[i].Role)
		trim(&c.Testimonials[i].Message)
		trim(&c.Testimonials[i].Avatar)
	}
	for i := range c.Footer.Links {
		trim(&c.Footer.Links[i].Text)
		trim(&c.Footer.Links[i].URL)
	}
	for i := range c.Footer.Social {
		trim(&c.Footer.Social[i].Platform)
		trim(&c.Footer.Social[i].URL)
	}
	trim(&c.Footer.Copyright)
	trim(&c.CTA.ButtonText)
	trim(&c.CTA.ModalTitle)

	if c.Services == nil {
		c.Services = []Card{}
	}
	if c.Features == nil {
		c.Features = []Card{}
	}
	if c.Testimonials == nil {
		c.Testimonials = []Testimonial{}
	}
	if c.Footer.Links == nil {
		c.Footer.Links = []Link{}
	}
	if c.Footer.Social == nil {
		c.Footer.Social = []Social{}
	}
}

// Validate reports every missing required value
func (c *Content) Validate() error {
	var fields []errx.FieldError
	require := func(field, value, message string) {
		if value == "" {
			fields = append(fields, errx.FieldError{Field: field, Message: message})
		}
	}

	require("hero.title", c.Hero.Title, "Hero title is required")
	require("hero.subtitle", c.Hero.Subtitle, "Hero subtitle is required")
	require("hero.buttonText", c.Hero.ButtonText, "Hero button text is required")
	for _, s := range c.Services {
		require("services.title", s.Title, "Service title is required")
		require("services.description", s.Description, "Service description is required")
	}
	for _, f := range c.Features {
		require("features.title", f.Title, "Feature title is required")
		require("features.description", f.Description, "Feature description is required")
	}
	for _, t := range c.Testimonials {
		require("testimonials.name", t.Name, "Testimonial name is required")
		require("testimonials.role", t.Role, "Testimonial role is required")
		require("testimonials.message", t.Message, "Testimonial message is required")
	}
	for _, l := range c.Footer.Links {
		require("footer.links.text", l.Text, "Footer link text is required")
		require("footer.links.url", l.URL, "Footer link url is required")
	}
	for _, s := range c.Footer.Social {
		require("footer.social.platform", s.Platform, "Social platform is required")
		require("footer.social.url", s.URL, "Social url is required")
	}
	require("footer.copyright", c.Footer.Copyright, "Footer copyright is required")
	require("cta.buttonText", c.CTA.ButtonText, "CTA button text is required")
	require("cta.modalTitle", c.CTA.ModalTitle, "CTA modal title is required")

	if len(fields) > 0 {
		return ErrValidationFailed().WithFields(fields...)
	}
	return nil
}
