package scrum

import "time"

// ItemRelation is an undirected "related to" edge between two items.
// Storage keys it by (FirstItemID, SecondItemID), so the same edge may be
// recorded in either direction.
type ItemRelation struct {
	FirstItemID  string    `json:"first_item_id" db:"first_item_id"`
	SecondItemID string    `json:"second_item_id" db:"second_item_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Other returns the id on the opposite end from itemID
func (r *ItemRelation) Other(itemID string) string {
	if r.FirstItemID == itemID {
		return r.SecondItemID
	}
	return r.FirstItemID
}
