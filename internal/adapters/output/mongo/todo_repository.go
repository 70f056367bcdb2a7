package mongo

import (
	"context"
	"errors"
	"fmt"

	"todo-htmx/internal/domain"
	"todo-htmx/internal/ports/output"
	"todo-htmx/pkg/database_driver/mongodb"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var _ output.TodoRepository = (*TodoRepository)(nil)

// todoDocument struct - Stored shape of a todo
type todoDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Text       string             `bson:"text"`
	IsComplete bool               `bson:"isComplete"`
}

func (d todoDocument) toDomain() *domain.Todo {
	return &domain.Todo{
		ID:         d.ID.Hex(),
		Text:       d.Text,
		IsComplete: d.IsComplete,
	}
}

// TodoRepository struct - Secondary/Driven adapter for a MongoDB collection
type TodoRepository struct {
	coll *mongo.Collection
}

// NewTodoRepository func
func NewTodoRepository(coll *mongo.Collection) *TodoRepository {
	return &TodoRepository{coll: coll}
}

// Create func - Inserts a document with a fresh ObjectID
func (r *TodoRepository) Create(ctx context.Context, todo domain.Todo) (*domain.Todo, error) {
	if err := todo.Validate(); err != nil {
		return nil, err
	}
	doc := todoDocument{
		ID:         primitive.NewObjectID(),
		Text:       todo.Text,
		IsComplete: todo.IsComplete,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		logrus.Errorln(err)
		return nil, translate(err)
	}
	return doc.toDomain(), nil
}

// FindAll func - ObjectIDs grow with insertion time, so sorting on _id keeps insertion order
func (r *TodoRepository) FindAll(ctx context.Context) ([]domain.Todo, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		logrus.Errorln(err)
		return nil, translate(err)
	}
	var docs []todoDocument
	if err := cursor.All(ctx, &docs); err != nil {
		logrus.Errorln(err)
		return nil, translate(err)
	}
	todos := make([]domain.Todo, 0, len(docs))
	for _, doc := range docs {
		todos = append(todos, *doc.toDomain())
	}
	return todos, nil
}

// FindByID func
func (r *TodoRepository) FindByID(ctx context.Context, id string) (*domain.Todo, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var doc todoDocument
	if err := r.coll.FindOne(ctx, byID(oid)).Decode(&doc); err != nil {
		return nil, translateFor(id, err)
	}
	return doc.toDomain(), nil
}

// FindByIDAndUpdate func - $set the patched fields, returning the new document
func (r *TodoRepository) FindByIDAndUpdate(ctx context.Context, id string, patch domain.TodoPatch) (*domain.Todo, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "text", Value: *patch.Text}}}}
	return r.findOneAndUpdate(ctx, id, oid, update)
}

// FindByIDAndToggle func - Flips isComplete server side with an aggregation pipeline update
func (r *TodoRepository) FindByIDAndToggle(ctx context.Context, id string) (*domain.Todo, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return r.findOneAndUpdate(ctx, id, oid, toggleUpdate())
}

// FindByIDAndDelete func - A missing document is a silent success
func (r *TodoRepository) FindByIDAndDelete(ctx context.Context, id string) (*domain.Todo, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc todoDocument
	err = r.coll.FindOneAndDelete(ctx, byID(oid)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		logrus.Errorln(err)
		return nil, translate(err)
	}
	return doc.toDomain(), nil
}

// Ping func
func (r *TodoRepository) Ping(ctx context.Context) error {
	if err := r.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Close func
func (r *TodoRepository) Close(ctx context.Context) error {
	return mongodb.DisconnectMongo(ctx, r.coll.Database().Client())
}

func (r *TodoRepository) findOneAndUpdate(ctx context.Context, id string, oid primitive.ObjectID, update interface{}) (*domain.Todo, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc todoDocument
	if err := r.coll.FindOneAndUpdate(ctx, byID(oid), update, opts).Decode(&doc); err != nil {
		return nil, translateFor(id, err)
	}
	return doc.toDomain(), nil
}

func toggleUpdate() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "isComplete", Value: bson.D{{Key: "$not", Value: bson.A{"$isComplete"}}}}}}},
	}
}

func byID(oid primitive.ObjectID) bson.D {
	return bson.D{{Key: "_id", Value: oid}}
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("todo %q: %w", id, domain.ErrNotFound)
	}
	return oid, nil
}

func translateFor(id string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("todo %q: %w", id, domain.ErrNotFound)
	}
	logrus.Errorln(err)
	return translate(err)
}

// translate maps driver errors onto domain error kinds
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	case mongo.IsTimeout(err), mongo.IsNetworkError(err),
		errors.Is(err, mongo.ErrClientDisconnected), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) && writeErr.HasErrorCode(121) {
		// document failed collection schema validation
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return err
}
