package handler

import "time"

type createBookRequest struct {
	Title         string    `json:"title"          validate:"required,max=255"`
	Author        string    `json:"author"         validate:"required,max=255"`
	ISBN          string    `json:"isbn"           validate:"required"`
	PublishedDate time.Time `json:"published_date" validate:"required"`
	Description   string    `json:"description"`
}

type updateBookRequest struct {
	Title         *string    `json:"title,omitempty"          validate:"omitempty,max=255"`
	Author        *string    `json:"author,omitempty"         validate:"omitempty,max=255"`
	ISBN          *string    `json:"isbn,omitempty"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
	Description   *string    `json:"description,omitempty"`
}

type bookResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	ISBN          string    `json:"isbn"`
	PublishedDate time.Time `json:"published_date"`
	Description   string    `json:"description,omitempty"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type listBooksResponse struct {
	Items      []bookResponse `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}
