package domain

import "time"

// Book is the catalog aggregate root. ISBN is stored in normalized form
// (see NormalizeISBN) and is unique across the collection.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	ISBN          string    `json:"isbn"`
	PublishedDate time.Time `json:"published_date"`
	Description   string    `json:"description,omitempty"`
	// CreatedBy is the creating user's identity (email). Empty for records
	// created before ownership tracking existed; those are admin-editable only.
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
