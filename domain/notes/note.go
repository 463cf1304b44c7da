// Package notes holds the note domain model and the key derivation scheme
// used by the persistence layer.
package notes

// Note is the domain shape of a note as seen by handlers and API clients.
// Storage-internal key fields never appear here.
type Note struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Update carries the mutable fields of a note for a partial update.
// A nil field leaves the stored value unchanged; a pointer to the empty
// string is an explicit overwrite.
type Update struct {
	Title   *string
	Content *string
}

// IsEmpty reports whether the update carries no fields at all.
func (u Update) IsEmpty() bool {
	return u.Title == nil && u.Content == nil
}
