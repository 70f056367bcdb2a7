package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"todo-htmx/internal/domain"

	"pgregory.net/rapid"
)

// TestCreateAssignsIDAndStartsIncomplete tests that Create assigns an id and keeps the text
func TestCreateAssignsIDAndStartsIncomplete(t *testing.T) {
	store := NewTodoRepository()

	todo, err := store.Create(context.Background(), domain.NewTodo("buy milk"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if todo.ID == "" {
		t.Error("expected a non-empty id")
	}
	if todo.Text != "buy milk" || todo.IsComplete {
		t.Errorf("expected {buy milk false}, got {%s %v}", todo.Text, todo.IsComplete)
	}
}

// TestCreateRejectsEmptyText tests that the store refuses a todo without text
func TestCreateRejectsEmptyText(t *testing.T) {
	store := NewTodoRepository()

	_, err := store.Create(context.Background(), domain.NewTodo(""))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	todos, _ := store.FindAll(context.Background())
	if len(todos) != 0 {
		t.Errorf("expected empty store, got %d todos", len(todos))
	}
}

// TestFindAllKeepsInsertionOrder tests list order after creates and a delete
func TestFindAllKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewTodoRepository()

	a, _ := store.Create(ctx, domain.NewTodo("a"))
	b, _ := store.Create(ctx, domain.NewTodo("b"))
	c, _ := store.Create(ctx, domain.NewTodo("c"))

	if _, err := store.FindByIDAndDelete(ctx, b.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	todos, err := store.FindAll(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(todos) != 2 || todos[0].ID != a.ID || todos[1].ID != c.ID {
		t.Errorf("expected [a c], got %+v", todos)
	}
}

// TestFindByIDUnknownReturnsNotFound tests the NotFound kind on lookups
func TestFindByIDUnknownReturnsNotFound(t *testing.T) {
	store := NewTodoRepository()
	ctx := context.Background()

	if _, err := store.FindByID(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("FindByID: expected ErrNotFound, got %v", err)
	}
	if _, err := store.FindByIDAndToggle(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("FindByIDAndToggle: expected ErrNotFound, got %v", err)
	}
	text := "x"
	if _, err := store.FindByIDAndUpdate(ctx, "missing", domain.TodoPatch{Text: &text}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("FindByIDAndUpdate: expected ErrNotFound, got %v", err)
	}
}

// TestFindByIDAndDeleteMissingIsNoop tests that deleting an unknown id is a silent success
func TestFindByIDAndDeleteMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	store := NewTodoRepository()
	_, _ = store.Create(ctx, domain.NewTodo("keep me"))

	deleted, err := store.FindByIDAndDelete(ctx, "missing")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if deleted != nil {
		t.Errorf("expected nil todo, got %+v", deleted)
	}

	todos, _ := store.FindAll(ctx)
	if len(todos) != 1 {
		t.Errorf("expected collection unchanged, got %d todos", len(todos))
	}
}

// TestReturnedTodosAreCopies tests that callers cannot mutate stored state
func TestReturnedTodosAreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewTodoRepository()
	created, _ := store.Create(ctx, domain.NewTodo("original"))

	created.Text = "mutated"
	found, _ := store.FindByID(ctx, created.ID)
	if found.Text != "original" {
		t.Errorf("expected stored text 'original', got %q", found.Text)
	}
}

// TestConcurrentTogglesDoNotLoseUpdates tests that the toggle is atomic
func TestConcurrentTogglesDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	store := NewTodoRepository()
	todo, _ := store.Create(ctx, domain.NewTodo("race"))

	const toggles = 100
	var wg sync.WaitGroup
	wg.Add(toggles)
	for i := 0; i < toggles; i++ {
		go func() {
			defer wg.Done()
			_, _ = store.FindByIDAndToggle(ctx, todo.ID)
		}()
	}
	wg.Wait()

	found, _ := store.FindByID(ctx, todo.ID)
	if found.IsComplete {
		t.Error("expected an even number of toggles to leave the todo incomplete")
	}
}

// TestToggleTwiceRestoresState checks the toggle involution for any sequence of todos
func TestToggleTwiceRestoresState(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		store := NewTodoRepository()
		texts := rapid.SliceOfN(rapid.StringMatching(`[a-z ]{1,20}`), 1, 10).Draw(t, "texts")

		var ids []string
		for _, text := range texts {
			todo, err := store.Create(ctx, domain.NewTodo(text))
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			ids = append(ids, todo.ID)
		}
		id := rapid.SampledFrom(ids).Draw(t, "id")
		before, _ := store.FindByID(ctx, id)

		if _, err := store.FindByIDAndToggle(ctx, id); err != nil {
			t.Fatalf("toggle: %v", err)
		}
		after, err := store.FindByIDAndToggle(ctx, id)
		if err != nil {
			t.Fatalf("toggle: %v", err)
		}
		if *after != *before {
			t.Fatalf("expected %+v after two toggles, got %+v", before, after)
		}
	})
}

// TestCreateThenListContainsExactlyOneNewRecord checks create/list for arbitrary text
func TestCreateThenListContainsExactlyOneNewRecord(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		store := NewTodoRepository()
		existing := rapid.IntRange(0, 5).Draw(t, "existing")
		for i := 0; i < existing; i++ {
			_, _ = store.Create(ctx, domain.NewTodo("seed"))
		}
		text := rapid.StringMatching(`[A-Za-z0-9]{1,30}`).Draw(t, "text")

		created, err := store.Create(ctx, domain.NewTodo(text))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		todos, _ := store.FindAll(ctx)
		if len(todos) != existing+1 {
			t.Fatalf("expected %d todos, got %d", existing+1, len(todos))
		}
		matches := 0
		for _, todo := range todos {
			if todo.ID == created.ID {
				matches++
				if todo.Text != text || todo.IsComplete {
					t.Fatalf("expected {%s false}, got {%s %v}", text, todo.Text, todo.IsComplete)
				}
			}
		}
		if matches != 1 {
			t.Fatalf("expected exactly one new record, got %d", matches)
		}
	})
}
