package sitemap

import (
	"context"
	"encoding/xml"
	"strings"
	"time"

	repo "cinestash/src/modules/catalog/repository"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

var staticPaths = []string{"/", "/movie", "/series", "/search"}

type URL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// SlugSource lists the slugs of one catalog kind.
type SlugSource interface {
	Slugs(ctx context.Context) ([]repo.SlugRef, error)
}

// Section maps a slug source onto a path prefix such as "/movie".
type Section struct {
	Prefix string
	Source SlugSource
}

type Builder struct {
	baseURL  string
	sections []Section
}

func NewBuilder(baseURL string, sections ...Section) *Builder {
	return &Builder{baseURL: strings.TrimRight(baseURL, "/"), sections: sections}
}

func (b *Builder) Build(ctx context.Context) (*URLSet, error) {
	set := &URLSet{Xmlns: xmlns}
	for _, p := range staticPaths {
		set.URLs = append(set.URLs, URL{Loc: b.baseURL + p})
	}
	for _, section := range b.sections {
		refs, err := section.Source.Slugs(ctx)
		if err != nil {
			return nil, err
		}
		for _, ref := range refs {
			set.URLs = append(set.URLs, URL{
				Loc:     b.baseURL + section.Prefix + "/" + ref.Slug,
				LastMod: ref.UpdatedAt.UTC().Format(time.RFC3339),
			})
		}
	}
	return set, nil
}

// Render encodes the sitemap with the XML declaration.
func (b *Builder) Render(ctx context.Context) ([]byte, error) {
	set, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}
	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
