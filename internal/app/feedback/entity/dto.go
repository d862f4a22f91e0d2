package entity

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// Validation errors. The error text is the API contract: handlers return it
// verbatim in the response body.
var (
	ErrMissingFields  = errors.New("Missing required fields")
	ErrBadRating      = errors.New("Rating must be an integer between 1 and 5")
	ErrNoUpdateFields = errors.New("No fields provided for update")
)

// Rating accepts a JSON number or a numeric string. The public API has always
// allowed both, so the coercion is part of the contract.
type Rating struct {
	value   int
	present bool
	valid   bool
}

func (r *Rating) UnmarshalJSON(data []byte) error {
	r.present = true

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		if v, err := strconv.Atoi(n.String()); err == nil {
			r.value = v
			r.valid = true
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			r.value = v
			r.valid = true
		}
		return nil
	}

	// Any other JSON shape is kept as present-but-invalid so validation can
	// report the rating error instead of a generic decode failure.
	return nil
}

func (r Rating) Int() int {
	return r.value
}

func (r Rating) Present() bool {
	return r.present
}

// InBounds reports whether the rating parsed as an integer in [1,5].
func (r Rating) InBounds() bool {
	return r.valid && r.value >= 1 && r.value <= 5
}

// SubmitFeedbackRequest is the create payload. Pointer fields distinguish
// absent keys from zero values.
type SubmitFeedbackRequest struct {
	ProductID    *string `json:"product_id"`
	Rating       Rating  `json:"rating"`
	ReviewText   *string `json:"review_text"`
	CustomerName *string `json:"customer_name"`
}

func (r *SubmitFeedbackRequest) Validate() error {
	if r.ProductID == nil || !r.Rating.Present() || r.ReviewText == nil || r.CustomerName == nil {
		return ErrMissingFields
	}
	if !r.Rating.InBounds() {
		return ErrBadRating
	}
	return nil
}

// UpdateFeedbackRequest is the partial-update payload. Only rating and
// review_text are mutable; unknown fields are ignored by the decoder.
type UpdateFeedbackRequest struct {
	Rating     Rating  `json:"rating"`
	ReviewText *string `json:"review_text"`
}

func (r *UpdateFeedbackRequest) Validate() error {
	if r.Rating.Present() && !r.Rating.InBounds() {
		return ErrBadRating
	}
	if !r.Rating.Present() && r.ReviewText == nil {
		return ErrNoUpdateFields
	}
	return nil
}

// Fields converts the validated payload into the repository update set.
func (r *UpdateFeedbackRequest) Fields() FeedbackUpdate {
	var update FeedbackUpdate
	if r.Rating.Present() {
		v := r.Rating.Int()
		update.Rating = &v
	}
	if r.ReviewText != nil {
		update.ReviewText = r.ReviewText
	}
	return update
}

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type SubmitFeedbackResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// FeedbackStats is the aggregate block on the admin listing view.
type FeedbackStats struct {
	Total         int     `json:"total"`
	AverageRating float64 `json:"average_rating"`
}

// AdminFeedbackResponse is the admin listing view: the full ordered list plus
// aggregate statistics.
type AdminFeedbackResponse struct {
	Feedback []Feedback    `json:"feedback"`
	Stats    FeedbackStats `json:"stats"`
}
