// Package entity defines the domain entities for the quotes feature.
package entity

import "time"

// Quote is one saved entry. It has no identity of its own; two entries
// with the same Category and Text are indistinguishable.
type Quote struct {
	Category string `json:"category" bson:"category"`
	Text     string `json:"text" bson:"text"`
}

// QuoteCollection is the ordered list of quotes owned by a single user.
type QuoteCollection struct {
	UserID    string    `bson:"_id"`
	Quotes    []Quote   `bson:"quotes"`
	UpdatedAt time.Time `bson:"updatedAt"`
}
