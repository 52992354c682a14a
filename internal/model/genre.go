package model

// Genre represents a row in the `genres` table. Movies embed a
// {id, name} snapshot of their genre at creation time rather than a
// live reference.
type Genre struct {
	ID   uint64 `json:"id"`   // genres.id
	Name string `json:"name"` // genres.name
}
