// Package present builds the view models for search results and the
// catalogue listing. It knows nothing about terminals.
package present

import (
	"fmt"
	"time"

	"github.com/five82/lostfound/internal/catalogue"
	"github.com/five82/lostfound/internal/workflow"
)

const (
	NoDescription = "No description"
	EmptyCatalog  = "No found items catalogued yet"
	DateLayout    = "2006-01-02 15:04:05"

	// Deleted is the banner shown after a successful delete.
	Deleted = "Deleted"
)

// DeleteFailed is the banner text for a failed delete.
func DeleteFailed(err error) string {
	reason := catalogue.Reason(err, catalogue.OpDelete)
	if reason == catalogue.OpDelete.Fallback() {
		return reason
	}
	return "Delete failed: " + reason
}

// Locator resolves asset references to absolute URLs.
type Locator interface {
	AssetURL(e catalogue.Entry) string
	ResolveURL(ref string) string
}

// Renderer turns catalogue data into views. A nil Zone formats dates in
// local time.
type Renderer struct {
	URLs Locator
	Zone *time.Location
}

// ResultView is one rendered search match.
type ResultView struct {
	Percent     string
	Tier        workflow.Tier
	Label       string
	Filename    string
	Description string
	Date        string
	ImageURL    string
}

// Lines returns the result as plain text lines.
func (v ResultView) Lines() []string {
	lines := []string{
		"Similarity: " + v.Label,
		"File: " + v.Filename,
		"Description: " + v.Description,
	}
	if v.Date != "" {
		lines = append(lines, "Uploaded: "+v.Date)
	}
	return append(lines, "Image: "+v.ImageURL)
}

// Card is one catalogue entry in the listing.
type Card struct {
	ID          int64
	Filename    string
	Description string
	Date        string
	ImageURL    string
}

// ListView is the rendered catalogue. When Cards is empty the UI shows
// Placeholder instead.
type ListView struct {
	Cards       []Card
	Placeholder string
}

// Empty reports whether the listing has no cards.
func (v ListView) Empty() bool {
	return len(v.Cards) == 0
}

// Percent formats a similarity score as a percentage with two decimals.
func Percent(score float64) string {
	return fmt.Sprintf("%.2f%%", score*100)
}

// Result renders a search match.
func (r Renderer) Result(m catalogue.Match) ResultView {
	tier := workflow.Classify(m.Similarity)
	percent := Percent(m.Similarity)
	imageURL := m.ImageURL
	if r.URLs != nil {
		if imageURL != "" {
			imageURL = r.URLs.ResolveURL(imageURL)
		} else if m.Image.UUID != "" {
			imageURL = r.URLs.AssetURL(m.Image)
		}
	}
	return ResultView{
		Percent:     percent,
		Tier:        tier,
		Label:       fmt.Sprintf("%s (%s)", percent, tier),
		Filename:    m.Image.Filename,
		Description: describe(m.Image),
		Date:        r.date(m.Image),
		ImageURL:    imageURL,
	}
}

// List renders the whole catalogue. Every call builds a fresh view; nothing
// is carried over from earlier listings.
func (r Renderer) List(entries []catalogue.Entry) ListView {
	if len(entries) == 0 {
		return ListView{Placeholder: EmptyCatalog}
	}
	cards := make([]Card, 0, len(entries))
	for _, e := range entries {
		card := Card{
			ID:          e.ID,
			Filename:    e.Filename,
			Description: describe(e),
			Date:        r.date(e),
		}
		if r.URLs != nil {
			card.ImageURL = r.URLs.AssetURL(e)
		}
		cards = append(cards, card)
	}
	return ListView{Cards: cards}
}

func (r Renderer) date(e catalogue.Entry) string {
	t := e.ParsedCreatedAt()
	if t.IsZero() {
		return ""
	}
	zone := r.Zone
	if zone == nil {
		zone = time.Local
	}
	return t.In(zone).Format(DateLayout)
}

func describe(e catalogue.Entry) string {
	if d := e.Description(); d != "" {
		return d
	}
	return NoDescription
}
