package dynamodb

import (
	"context"

	"soulink-backend/application/ports"
	"soulink-backend/domain/notes"
	apperrors "soulink-backend/pkg/errors"
	"soulink-backend/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// NotesRepository implements ports.NotesRepository over a single DynamoDB
// table. It owns key derivation and the record-to-domain mapping; callers
// never see the storage key fields.
type NotesRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewNotesRepository creates a new NotesRepository
func NewNotesRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.NotesRepository {
	return &NotesRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// noteItem is the persisted record layout. The attribute names are a
// compatibility contract and must not change.
type noteItem struct {
	PK        string `dynamodbav:"PK"`
	SK        string `dynamodbav:"SK"`
	GSIPK     string `dynamodbav:"GSI_PK"`
	GSISK     string `dynamodbav:"GSI_SK"`
	ID        string `dynamodbav:"id"`
	UserID    string `dynamodbav:"userId"`
	Title     string `dynamodbav:"title"`
	Content   string `dynamodbav:"content"`
	CreatedAt string `dynamodbav:"createdAt"`
	UpdatedAt string `dynamodbav:"updatedAt"`
}

// newNoteItem derives the full record, index entry included, from domain fields.
func newNoteItem(userID, noteID, title, content, createdAt, updatedAt string) noteItem {
	return noteItem{
		PK:        notes.PartitionKey(userID),
		SK:        notes.SortKey(noteID),
		GSIPK:     notes.IndexPartitionKey(userID),
		GSISK:     notes.IndexSortKey(updatedAt, noteID),
		ID:        noteID,
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// toNote maps a stored record to the domain shape, dropping key fields.
func (i noteItem) toNote() *notes.Note {
	return &notes.Note{
		ID:        i.ID,
		UserID:    i.UserID,
		Title:     i.Title,
		Content:   i.Content,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// CreateNote writes a fresh note unconditionally. noteID is caller-supplied
// and assumed globally unique, so overwrite semantics are safe.
func (r *NotesRepository) CreateNote(ctx context.Context, userID, noteID, title, content string) (*notes.Note, error) {
	now := utils.NowISO8601()
	item := newNoteItem(userID, noteID, title, content, now, now)

	if err := r.putItem(ctx, item); err != nil {
		r.logger.Error("Failed to create note",
			zap.String("userID", userID),
			zap.String("noteID", noteID),
			zap.Error(err),
		)
		return nil, apperrors.NewDatabaseError("CreateNote", err)
	}

	r.logger.Debug("Note created",
		zap.String("userID", userID),
		zap.String("noteID", noteID),
	)

	return item.toNote(), nil
}

// GetNote performs an exact-key point lookup. Absence returns (nil, nil).
func (r *NotesRepository) GetNote(ctx context.Context, userID, noteID string) (*notes.Note, error) {
	item, found, err := r.getItem(ctx, userID, noteID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("GetNote", err)
	}
	if !found {
		return nil, nil
	}

	return item.toNote(), nil
}

// ListNotes queries the ByUpdatedAt index for the full per-user range,
// descending, so the most-recently-updated note comes first. The index
// sort key embeds the note id, which makes the order total even when two
// notes share an updatedAt timestamp.
func (r *NotesRepository) ListNotes(ctx context.Context, userID string) ([]*notes.Note, error) {
	keyCond := expression.Key("GSI_PK").Equal(expression.Value(notes.IndexPartitionKey(userID)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("ListNotes", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		r.logger.Error("Failed to list notes",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return nil, apperrors.NewDatabaseError("ListNotes", err)
	}

	out := make([]*notes.Note, 0, len(result.Items))
	for _, raw := range result.Items {
		var item noteItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, apperrors.NewDatabaseError("ListNotes", err)
		}
		out = append(out, item.toNote())
	}

	return out, nil
}

// UpdateNote is a read-modify-write: it loads the existing record to
// preserve createdAt and any field the caller left unset, stamps a fresh
// updatedAt, re-derives the index sort key, and rewrites the whole record.
// The sequence is not atomic; concurrent updates to the same note resolve
// as last-writer-wins.
func (r *NotesRepository) UpdateNote(ctx context.Context, userID, noteID string, update notes.Update) (*notes.Note, error) {
	existing, found, err := r.getItem(ctx, userID, noteID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("UpdateNote", err)
	}
	if !found {
		return nil, nil
	}

	title := existing.Title
	if update.Title != nil {
		title = *update.Title
	}
	content := existing.Content
	if update.Content != nil {
		content = *update.Content
	}

	now := utils.NowISO8601()
	item := newNoteItem(userID, noteID, title, content, existing.CreatedAt, now)

	if err := r.putItem(ctx, item); err != nil {
		r.logger.Error("Failed to update note",
			zap.String("userID", userID),
			zap.String("noteID", noteID),
			zap.Error(err),
		)
		return nil, apperrors.NewDatabaseError("UpdateNote", err)
	}

	return item.toNote(), nil
}

// DeleteNote removes a note by exact key. DynamoDB deletes are idempotent,
// so removing an absent key succeeds.
func (r *NotesRepository) DeleteNote(ctx context.Context, userID, noteID string) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       noteKey(userID, noteID),
	}

	if _, err := r.client.DeleteItem(ctx, input); err != nil {
		r.logger.Error("Failed to delete note",
			zap.String("userID", userID),
			zap.String("noteID", noteID),
			zap.Error(err),
		)
		return apperrors.NewDatabaseError("DeleteNote", err)
	}

	return nil
}

// noteKey builds the primary key attribute map for a note.
func noteKey(userID, noteID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: notes.PartitionKey(userID)},
		"SK": &types.AttributeValueMemberS{Value: notes.SortKey(noteID)},
	}
}

// getItem fetches the raw stored record for a note.
func (r *NotesRepository) getItem(ctx context.Context, userID, noteID string) (noteItem, bool, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       noteKey(userID, noteID),
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return noteItem{}, false, err
	}
	if result.Item == nil {
		return noteItem{}, false, nil
	}

	var item noteItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return noteItem{}, false, err
	}

	return item, true, nil
}

// putItem writes a full record, overwriting any existing one.
func (r *NotesRepository) putItem(ctx context.Context, item noteItem) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}
