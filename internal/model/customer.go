package model

// Customer represents a row in the `customers` table. Customers are
// referenced by rentals only through an embedded snapshot, so editing or
// deleting a customer never rewrites rental history.
//
// Fields:
//  ID     – primary key identifier.
//  Name   – display name (5–50 chars).
//  Phone  – contact phone (5–50 chars).
//  IsGold – whether the customer is on the gold plan.
type Customer struct {
	ID     uint64 `json:"id"`     // customers.id
	Name   string `json:"name"`   // customers.name
	Phone  string `json:"phone"`  // customers.phone
	IsGold bool   `json:"isGold"` // customers.is_gold
}
