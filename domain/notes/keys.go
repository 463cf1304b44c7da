package notes

const (
	pkPrefix = "USER#"
	skPrefix = "NOTE#"
)

// PartitionKey derives the table partition key for a user. All notes
// belonging to one user share this key.
func PartitionKey(userID string) string {
	return pkPrefix + userID
}

// SortKey derives the table sort key for a single note.
func SortKey(noteID string) string {
	return skPrefix + noteID
}

// IndexPartitionKey derives the partition key of the ByUpdatedAt index.
// It is identical to the table partition key.
func IndexPartitionKey(userID string) string {
	return PartitionKey(userID)
}

// IndexSortKey derives the sort key of the ByUpdatedAt index. With
// fixed-width ISO-8601 UTC timestamps, lexicographic order over these keys
// matches chronological order; the note id suffix keeps the key unique when
// two notes share a timestamp.
func IndexSortKey(updatedAt, noteID string) string {
	return updatedAt + "#" + noteID
}
