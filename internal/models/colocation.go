package models

// Colocation represents a shared-housing listing. Expenses, chat and
// reviews are all scoped to one colocation; this backend only consumes
// the identity and ownership fields.
type Colocation struct {
	// ID is the unique identifier for the colocation (UUID format).
	ID string `json:"id"`

	// Name is the display name of the listing.
	Name string `json:"name"`

	// Address is the street address.
	Address string `json:"address"`

	// Description is free text provided by the publisher.
	Description string `json:"description"`

	// Price is the monthly rent for the listing.
	Price float64 `json:"price"`

	// PublisherID identifies the user who published the listing.
	// The publisher sees every expense of the colocation.
	PublisherID string `json:"publisherId"`

	// CreatedAt is the Unix timestamp when the listing was created.
	CreatedAt int64 `json:"createdAt"`
}
