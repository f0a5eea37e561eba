package domain

import (
	"strings"
	"time"
)

// Client is a person managed by a consultant. A client always belongs to
// exactly one consultant; birth data is optional because charts are recorded
// separately and a client can exist before any chart is calculated.
type Client struct {
	ID           string `json:"id" bson:"_id"`
	ConsultantID string `json:"consultant_id" bson:"consultant_id"`
	UserID       string `json:"user_id,omitempty" bson:"user_id,omitempty"` // optional login account

	FirstName string `json:"first_name" bson:"first_name"`
	LastName  string `json:"last_name" bson:"last_name"`
	Email     string `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string `json:"phone,omitempty" bson:"phone,omitempty"`

	BirthData *BirthData `json:"birth_data,omitempty" bson:"birth_data,omitempty"`

	// Notes are the consultant's private notes about the client.
	Notes string `json:"notes" bson:"notes"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// NewClient validates and builds a Client owned by consultantID.
func NewClient(id, consultantID, firstName, lastName string, now time.Time) (*Client, error) {
	if consultantID == "" {
		return nil, NewValidationError("client must be associated with a consultant", "consultant_id")
	}
	if firstName == "" {
		return nil, NewValidationError("first name is required", "first_name")
	}
	return &Client{
		ID:           id,
		ConsultantID: consultantID,
		FirstName:    firstName,
		LastName:     lastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (c *Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// HasAccount reports whether the client has a linked login user.
func (c *Client) HasAccount() bool { return c.UserID != "" }

// BelongsToConsultant is the ownership check every client-scoped use case
// runs before touching data.
func (c *Client) BelongsToConsultant(consultantID string) bool {
	return c.ConsultantID == consultantID
}

func (c *Client) UpdateNotes(notes string, now time.Time) {
	c.Notes = notes
	c.UpdatedAt = now
}

// UpdateContactInfo overwrites only the fields that are provided.
func (c *Client) UpdateContactInfo(email, phone *string, now time.Time) {
	if email != nil {
		c.Email = *email
	}
	if phone != nil {
		c.Phone = *phone
	}
	c.UpdatedAt = now
}

// SetBirthData records the birth data once known.
func (c *Client) SetBirthData(b BirthData, now time.Time) {
	c.BirthData = &b
	c.UpdatedAt = now
}
