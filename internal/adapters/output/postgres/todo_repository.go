package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"todo-htmx/internal/domain"
	"todo-htmx/internal/ports/output"
	gormDriver "todo-htmx/pkg/database_driver/gorm"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ output.TodoRepository = (*TodoRepository)(nil)

// todoRecord struct - Row layout of the todos table
type todoRecord struct {
	ID         *uuid.UUID `gorm:"type:uuid;primary_key;"`
	Text       string     `gorm:"type:text;not null;"`
	IsComplete bool       `gorm:"not null;"`
	CreatedAt  time.Time  `gorm:"type:timestamp;index"`
}

// TableName func
func (t *todoRecord) TableName() string {
	return "todos"
}

// BeforeCreate hook - generates UUID before creating
func (t *todoRecord) BeforeCreate(tx *gorm.DB) (err error) {
	id, err := uuid.NewRandom() // v4
	if err != nil {
		return err
	}
	t.ID = &id
	return nil
}

func (t *todoRecord) toDomain() *domain.Todo {
	todo := &domain.Todo{
		Text:       t.Text,
		IsComplete: t.IsComplete,
	}
	if t.ID != nil {
		todo.ID = t.ID.String()
	}
	return todo
}

// Migrate func - Auto-migrate the todos table
func Migrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("an error when connect database")
	}
	return db.AutoMigrate(&todoRecord{})
}

// TodoRepository struct - Secondary/Driven adapter for PostgreSQL
type TodoRepository struct {
	dbGorm *gorm.DB
}

// NewTodoRepository func - Creates new PostgreSQL repository, migrating the schema first
func NewTodoRepository(dbGorm *gorm.DB) (*TodoRepository, error) {
	logrus.Info("Migrate database ...")
	if err := Migrate(dbGorm); err != nil {
		logrus.Errorln(err)
		return nil, translate(err)
	}
	return &TodoRepository{
		dbGorm: dbGorm,
	}, nil
}

// Create func - Inserts a new todo
func (p *TodoRepository) Create(ctx context.Context, todo domain.Todo) (*domain.Todo, error) {
	if err := todo.Validate(); err != nil {
		return nil, err
	}
	record := todoRecord{
		Text:       todo.Text,
		IsComplete: todo.IsComplete,
	}
	if err := p.dbGorm.WithContext(ctx).Create(&record).Error; err != nil {
		logrus.Errorln(err)
		return nil, translate(err)
	}
	return record.toDomain(), nil
}

// FindAll func - Lists every todo in insertion order
func (p *TodoRepository) FindAll(ctx context.Context) ([]domain.Todo, error) {
	var records []todoRecord
	if err := p.dbGorm.WithContext(ctx).Order("created_at ASC, id ASC").Find(&records).Error; err != nil {
		logrus.Errorln(err)
		return nil, translate(err)
	}
	todos := make([]domain.Todo, 0, len(records))
	for i := range records {
		todos = append(todos, *records[i].toDomain())
	}
	return todos, nil
}

// FindByID func
func (p *TodoRepository) FindByID(ctx context.Context, id string) (*domain.Todo, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var record todoRecord
	if err := p.dbGorm.WithContext(ctx).Where("id = ?", uid).First(&record).Error; err != nil {
		return nil, translate(err)
	}
	return record.toDomain(), nil
}

// FindByIDAndUpdate func - Updates the patched columns and returns the new row
func (p *TodoRepository) FindByIDAndUpdate(ctx context.Context, id string, patch domain.TodoPatch) (*domain.Todo, error) {
	if patch.IsEmpty() {
		return p.FindByID(ctx, id)
	}
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var record todoRecord
	tx := updateQuery(p.dbGorm.WithContext(ctx), uid, patch, &record)
	return returned(tx, &record, id)
}

// FindByIDAndToggle func - Flips is_complete in a single UPDATE ... RETURNING
func (p *TodoRepository) FindByIDAndToggle(ctx context.Context, id string) (*domain.Todo, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var record todoRecord
	tx := toggleQuery(p.dbGorm.WithContext(ctx), uid, &record)
	return returned(tx, &record, id)
}

// FindByIDAndDelete func - Hard deletes a todo, returning its prior state
func (p *TodoRepository) FindByIDAndDelete(ctx context.Context, id string) (*domain.Todo, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	var records []todoRecord
	tx := p.dbGorm.WithContext(ctx).Clauses(clause.Returning{}).Where("id = ?", uid).Delete(&records)
	if tx.Error != nil {
		logrus.Errorln(tx.Error)
		return nil, translate(tx.Error)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0].toDomain(), nil
}

// Ping func
func (p *TodoRepository) Ping(ctx context.Context) error {
	sqlDB, err := p.dbGorm.DB()
	if err != nil {
		return translate(err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Close func
func (p *TodoRepository) Close(_ context.Context) error {
	return gormDriver.DisconnectPostgres(p.dbGorm)
}

func toggleQuery(tx *gorm.DB, uid uuid.UUID, record *todoRecord) *gorm.DB {
	return tx.Model(record).
		Clauses(clause.Returning{}).
		Where("id = ?", uid).
		Update("is_complete", gorm.Expr("NOT is_complete"))
}

func updateQuery(tx *gorm.DB, uid uuid.UUID, patch domain.TodoPatch, record *todoRecord) *gorm.DB {
	columns := make(map[string]interface{})
	if patch.Text != nil {
		columns["text"] = *patch.Text
	}
	return tx.Model(record).
		Clauses(clause.Returning{}).
		Where("id = ?", uid).
		Updates(columns)
}

func returned(tx *gorm.DB, record *todoRecord, id string) (*domain.Todo, error) {
	if tx.Error != nil {
		logrus.Errorln(tx.Error)
		return nil, translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, notFound(id)
	}
	return record.toDomain(), nil
}

// parseID maps a malformed id to NotFound: it can never resolve to a row
func parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, notFound(id)
	}
	return uid, nil
}

func notFound(id string) error {
	return fmt.Errorf("todo %q: %w", id, domain.ErrNotFound)
}

// translate maps driver errors onto domain error kinds
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}
	var netErr net.Error
	if pgconn.Timeout(err) || errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return err
}
