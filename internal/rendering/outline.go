package rendering

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Outline is the undecorated content of rendered markup: the heading block
// followed by each section's title and item texts in order.
type Outline struct {
	Name     string           `json:"name"`
	Header   []string         `json:"header"`
	Sections []SectionOutline `json:"sections"`
}

// SectionOutline is one rendered section.
type SectionOutline struct {
	Key   string   `json:"key"`
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// ExtractOutline reads the content back out of preview markup, ignoring decoration.
func ExtractOutline(markup Markup) (*Outline, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(markup)))
	if err != nil {
		return nil, &RenderError{
			Stage:   StageOutline,
			Message: "failed to parse markup",
			Cause:   err,
		}
	}

	outline := &Outline{
		Name:     normalizeSpace(doc.Find("h1").First().Text()),
		Header:   []string{},
		Sections: []SectionOutline{},
	}

	doc.Find(".job-title, .contact-info span").Each(func(_ int, s *goquery.Selection) {
		if text := normalizeSpace(s.Text()); text != "" {
			outline.Header = append(outline.Header, text)
		}
	})

	doc.Find(".section").Each(func(_ int, s *goquery.Selection) {
		key, _ := s.Attr("data-section")
		section := SectionOutline{
			Key:   key,
			Title: normalizeSpace(s.Find(".section-title").First().Text()),
			Items: []string{},
		}

		items := s.Find(".item")
		if items.Length() == 0 {
			items = s.Find("p")
		}
		items.Each(func(_ int, item *goquery.Selection) {
			if text := itemText(item); text != "" {
				section.Items = append(section.Items, text)
			}
		})

		outline.Sections = append(outline.Sections, section)
	})

	return outline, nil
}

// itemText flattens an item to text, turning block children and <br> into " / ".
func itemText(item *goquery.Selection) string {
	parts := []string{}
	children := item.Children()
	if children.Length() == 0 || item.Is("p") {
		item.Find("br").ReplaceWithHtml(" / ")
		return normalizeSpace(item.Text())
	}
	children.Each(func(_ int, child *goquery.Selection) {
		child.Find("br").ReplaceWithHtml(" / ")
		if text := normalizeSpace(child.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " / ")
}

// normalizeSpace collapses runs of whitespace to single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
