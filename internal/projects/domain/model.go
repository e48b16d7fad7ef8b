package domain

import (
	"github.com/GoSim-25-26J-441/portfolio-api/internal/storage/mongodb"
	"go.mongodb.org/mongo-driver/bson"
)

// ProjectInput is a portfolio project as submitted by a client. It never
// carries an id; the store assigns one on insert.
type ProjectInput struct {
	Title        string   `json:"title" validate:"required,notblank"`
	Subtitle     *string  `json:"subtitle"`
	Description  string   `json:"description" validate:"required,notblank"`
	ImageURL     *string  `json:"image_url" validate:"omitnil,http_url"`
	Tags         []string `json:"tags"`
	PlaystoreURL *string  `json:"playstore_url" validate:"omitnil,http_url"`
	MediafireURL *string  `json:"mediafire_url" validate:"omitnil,http_url"`
	WebsiteURL   *string  `json:"website_url" validate:"omitnil,http_url"`
	Featured     bool     `json:"featured"`
}

// Project is a stored portfolio project.
type Project struct {
	ID string `json:"id"`
	ProjectInput
}

// Normalize applies defaults: a missing tag list becomes empty.
func (p *ProjectInput) Normalize() {
	if p.Tags == nil {
		p.Tags = []string{}
	}
}

// Document renders the input as a store document. Absent optional fields are
// kept as explicit nulls.
func (p ProjectInput) Document() bson.M {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return bson.M{
		"title":         p.Title,
		"subtitle":      nullable(p.Subtitle),
		"description":   p.Description,
		"image_url":     nullable(p.ImageURL),
		"tags":          tags,
		"playstore_url": nullable(p.PlaystoreURL),
		"mediafire_url": nullable(p.MediafireURL),
		"website_url":   nullable(p.WebsiteURL),
		"featured":      p.Featured,
	}
}

// FromDocument maps a stored document onto a Project. Documents written
// outside this API are tolerated: a missing tag list becomes empty and a
// missing featured flag becomes false.
func FromDocument(doc bson.M) Project {
	return Project{
		ID: mongodb.IDString(doc["_id"]),
		ProjectInput: ProjectInput{
			Title:        stringField(doc, "title"),
			Subtitle:     optionalString(doc, "subtitle"),
			Description:  stringField(doc, "description"),
			ImageURL:     optionalString(doc, "image_url"),
			Tags:         stringList(doc["tags"]),
			PlaystoreURL: optionalString(doc, "playstore_url"),
			MediafireURL: optionalString(doc, "mediafire_url"),
			WebsiteURL:   optionalString(doc, "website_url"),
			Featured:     boolField(doc, "featured"),
		},
	}
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func stringField(doc bson.M, key string) string {
	s, _ := doc[key].(string)
	return s
}

func optionalString(doc bson.M, key string) *string {
	s, ok := doc[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func boolField(doc bson.M, key string) bool {
	b, _ := doc[key].(bool)
	return b
}

func stringList(v any) []string {
	out := []string{}
	switch list := v.(type) {
	case []string:
		out = append(out, list...)
	case bson.A:
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	case []any:
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}
