package mongodb

import "go.mongodb.org/mongo-driver/bson"

// Document is a loosely typed stored document.
type Document = bson.M

// OneOf matches when the field equals any of the values. Against an array
// field it matches when any element equals any of the values.
type OneOf []any

// Filter maps a field name to either an exact value or a OneOf constraint.
// All entries must hold. An empty filter matches every document.
type Filter map[string]any

// BSON renders the filter as a query document.
func (f Filter) BSON() bson.M {
	q := bson.M{}
	for field, cond := range f {
		switch c := cond.(type) {
		case OneOf:
			q[field] = bson.M{"$in": []any(c)}
		default:
			q[field] = c
		}
	}
	return q
}
