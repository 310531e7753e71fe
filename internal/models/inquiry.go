package models

import "time"

// InquiryStatus represents the handling state of a customer inquiry
type InquiryStatus string

const (
	InquiryStatusOpen    InquiryStatus = "open"
	InquiryStatusReplied InquiryStatus = "replied"
	InquiryStatusClosed  InquiryStatus = "closed"
)

// Inquiry represents a customer message to a store about a listing
type Inquiry struct {
	ID        string        `json:"id" db:"id"`
	StoreID   string        `json:"store_id" db:"store_id"`
	UserID    string        `json:"user_id" db:"user_id"`
	CarID     *string       `json:"car_id,omitempty" db:"car_id"`
	Subject   string        `json:"subject" db:"subject"`
	Message   string        `json:"message" db:"message"`
	Status    InquiryStatus `json:"status" db:"status"`
	Reply     *string       `json:"reply,omitempty" db:"reply"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// CreateInquiryRequest represents the request to send an inquiry
type CreateInquiryRequest struct {
	StoreID string  `json:"store_id" binding:"required"`
	CarID   *string `json:"car_id,omitempty"`
	Subject string  `json:"subject" binding:"required"`
	Message string  `json:"message" binding:"required"`
}

// ReplyInquiryRequest represents a store owner's reply
type ReplyInquiryRequest struct {
	Reply string `json:"reply" binding:"required"`
}
