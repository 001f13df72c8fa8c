// Package models defines the wire types exchanged with the Revume backend.
package models

import "strings"

// ReviewType classifies what a review is about.
type ReviewType string

const (
	TypePlace   ReviewType = "place"
	TypeFood    ReviewType = "food"
	TypeMovie   ReviewType = "movie"
	TypeBook    ReviewType = "book"
	TypeProduct ReviewType = "product"
)

// ReviewTypes lists every valid type in display order.
var ReviewTypes = []ReviewType{TypePlace, TypeFood, TypeMovie, TypeBook, TypeProduct}

// ValidReviewType reports whether s names a known review type.
func ValidReviewType(s string) bool {
	for _, t := range ReviewTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// Review is a single rated note. The id and timestamps are assigned by the
// server; created/updated/date travel as opaque strings and are compared
// lexicographically, matching the backend's storage format.
type Review struct {
	ID           string     `json:"id,omitempty"`
	Title        string     `json:"title"`
	Type         ReviewType `json:"type"`
	Category     string     `json:"category"`
	Rating       int        `json:"rating"`
	Address      string     `json:"address"`
	Website      string     `json:"website"`
	Date         string     `json:"date"`
	Notes        string     `json:"notes"`
	PhotoDataURL string     `json:"photoDataUrl,omitempty"`
	Created      string     `json:"created,omitempty"`
	Updated      string     `json:"updated,omitempty"`
}

// CategoryTokens splits the comma-separated category field into trimmed,
// non-empty tags, preserving their original spelling.
func (r Review) CategoryTokens() []string {
	var tokens []string
	for _, part := range strings.Split(r.Category, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tokens = append(tokens, tag)
		}
	}
	return tokens
}

// HasCategory reports whether the review carries the given tag, compared
// trimmed and lowercased.
func (r Review) HasCategory(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range r.CategoryTokens() {
		if strings.ToLower(t) == tag {
			return true
		}
	}
	return false
}

// SearchText is the haystack for free-text search: title, notes, address,
// category and website joined with spaces.
func (r Review) SearchText() string {
	return strings.Join([]string{r.Title, r.Notes, r.Address, r.Category, r.Website}, " ")
}
