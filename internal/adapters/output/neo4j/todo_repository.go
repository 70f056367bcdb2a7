package neo4j

import (
	"context"
	"errors"
	"fmt"

	"todo-htmx/internal/domain"
	"todo-htmx/internal/ports/output"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/sirupsen/logrus"
)

var _ output.TodoRepository = (*TodoRepository)(nil)

const returnTodo = " RETURN t.id AS id, t.text AS text, t.isComplete AS isComplete"

const (
	constraintQuery         = "CREATE CONSTRAINT todo_id IF NOT EXISTS FOR (t:Todo) REQUIRE t.id IS UNIQUE"
	sequenceConstraintQuery = "CREATE CONSTRAINT todo_sequence IF NOT EXISTS FOR (s:TodoSequence) REQUIRE s.name IS UNIQUE"

	// seq comes from a counter node locked by the write, so list order is creation order
	createQuery = "MERGE (s:TodoSequence {name: 'todo'}) ON CREATE SET s.value = 0 " +
		"SET s.value = s.value + 1 " +
		"CREATE (t:Todo {id: $id, text: $text, isComplete: $isComplete, seq: s.value})" + returnTodo

	findAllQuery    = "MATCH (t:Todo)" + returnTodo + " ORDER BY t.seq"
	findByIDQuery   = "MATCH (t:Todo {id: $id})" + returnTodo
	updateTextQuery = "MATCH (t:Todo {id: $id}) SET t.text = $text" + returnTodo
	toggleQuery     = "MATCH (t:Todo {id: $id}) SET t.isComplete = NOT t.isComplete" + returnTodo
	deleteQuery     = "MATCH (t:Todo {id: $id}) " +
		"WITH t, t.id AS id, t.text AS text, t.isComplete AS isComplete " +
		"DETACH DELETE t RETURN id, text, isComplete"
)

// TodoRepository struct - Secondary/Driven adapter storing todos as (:Todo) nodes
type TodoRepository struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewTodoRepository func
func NewTodoRepository(driver neo4j.DriverWithContext, database string) *TodoRepository {
	return &TodoRepository{driver: driver, database: database}
}

// Migrate func - Ensures ids and the sequence counter are unique
func (r *TodoRepository) Migrate(ctx context.Context) error {
	for _, query := range []string{constraintQuery, sequenceConstraintQuery} {
		if _, err := r.write(ctx, query, nil); err != nil {
			return err
		}
	}
	return nil
}

// Create func
func (r *TodoRepository) Create(ctx context.Context, todo domain.Todo) (*domain.Todo, error) {
	if err := todo.Validate(); err != nil {
		return nil, err
	}
	records, err := r.write(ctx, createQuery, map[string]any{
		"id":         uuid.New().String(),
		"text":       todo.Text,
		"isComplete": todo.IsComplete,
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("create returned no record")
	}
	return decodeTodo(records[0])
}

// FindAll func
func (r *TodoRepository) FindAll(ctx context.Context) ([]domain.Todo, error) {
	records, err := r.read(ctx, findAllQuery, nil)
	if err != nil {
		return nil, err
	}
	todos := make([]domain.Todo, 0, len(records))
	for _, record := range records {
		todo, err := decodeTodo(record)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *todo)
	}
	return todos, nil
}

// FindByID func
func (r *TodoRepository) FindByID(ctx context.Context, id string) (*domain.Todo, error) {
	records, err := r.read(ctx, findByIDQuery, map[string]any{"id": id})
	return single(records, err, id)
}

// FindByIDAndUpdate func
func (r *TodoRepository) FindByIDAndUpdate(ctx context.Context, id string, patch domain.TodoPatch) (*domain.Todo, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}
	records, err := r.write(ctx, updateTextQuery, map[string]any{"id": id, "text": *patch.Text})
	return single(records, err, id)
}

// FindByIDAndToggle func - The flip happens inside one write transaction
func (r *TodoRepository) FindByIDAndToggle(ctx context.Context, id string) (*domain.Todo, error) {
	records, err := r.write(ctx, toggleQuery, map[string]any{"id": id})
	return single(records, err, id)
}

// FindByIDAndDelete func
func (r *TodoRepository) FindByIDAndDelete(ctx context.Context, id string) (*domain.Todo, error) {
	records, err := r.write(ctx, deleteQuery, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return decodeTodo(records[0])
}

// Ping func
func (r *TodoRepository) Ping(ctx context.Context) error {
	if err := r.driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Close func
func (r *TodoRepository) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}

func (r *TodoRepository) read(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead, DatabaseName: r.database})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, collect(ctx, query, params))
	if err != nil {
		logrus.Errorln(err)
		return nil, translate(err)
	}
	return result.([]*neo4j.Record), nil
}

func (r *TodoRepository) write(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite, DatabaseName: r.database})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, collect(ctx, query, params))
	if err != nil {
		logrus.Errorln(err)
		return nil, translate(err)
	}
	return result.([]*neo4j.Record), nil
}

func collect(ctx context.Context, query string, params map[string]any) neo4j.ManagedTransactionWork {
	return func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	}
}

func single(records []*neo4j.Record, err error, id string) (*domain.Todo, error) {
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("todo %q: %w", id, domain.ErrNotFound)
	}
	return decodeTodo(records[0])
}

func decodeTodo(record *neo4j.Record) (*domain.Todo, error) {
	id, _, err := neo4j.GetRecordValue[string](record, "id")
	if err != nil {
		return nil, err
	}
	text, _, err := neo4j.GetRecordValue[string](record, "text")
	if err != nil {
		return nil, err
	}
	isComplete, _, err := neo4j.GetRecordValue[bool](record, "isComplete")
	if err != nil {
		return nil, err
	}
	return &domain.Todo{ID: id, Text: text, IsComplete: isComplete}, nil
}

// translate maps driver errors onto domain error kinds
func translate(err error) error {
	if neo4j.IsConnectivityError(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	var neoErr *neo4j.Neo4jError
	if errors.As(err, &neoErr) && neoErr.Code == "Neo.ClientError.Schema.ConstraintValidationFailed" {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return err
}
