package resource

import "go.mongodb.org/mongo-driver/bson"

// Document is a schemaless job or bid. Client-supplied fields are stored as
// they arrive; "_id" is owned by the store.
type Document = bson.M

// IDField is the store-assigned identifier key.
const IDField = "_id"

// Equality filter fields used by the identity-scoped listings.
const (
	BuyerEmailField  = "buyer.email"
	BidderEmailField = "email"
)

// Filter is an optional single-field equality match. The zero value matches
// every document. Field may be a dotted path into nested documents.
type Filter struct {
	Field string
	Value interface{}
}

// Eq builds a Filter matching documents whose field equals value.
func Eq(field string, value interface{}) Filter {
	return Filter{Field: field, Value: value}
}

// IsZero reports whether f matches everything.
func (f Filter) IsZero() bool { return f.Field == "" }

// InsertResult mirrors the acknowledgement returned on create.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// UpdateResult mirrors the acknowledgement returned on replace and patch.
// UpsertedID is nil unless the write created a document.
type UpdateResult struct {
	Acknowledged  bool    `json:"acknowledged"`
	MatchedCount  int64   `json:"matchedCount"`
	ModifiedCount int64   `json:"modifiedCount"`
	UpsertedCount int64   `json:"upsertedCount"`
	UpsertedID    *string `json:"upsertedId"`
}

// DeleteResult mirrors the acknowledgement returned on delete.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
