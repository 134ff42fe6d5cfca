package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/geocoder89/taskhub/internal/domain/task"
	"github.com/google/uuid"
)

func TestTasksRepo_ListNewestFirst(t *testing.T) {
	repo := NewTasksRepo()
	ctx := context.Background()
	base := time.Now().UTC()

	for i := 0; i < 3; i++ {
		err := repo.Insert(ctx, task.Task{
			ID:        uuid.NewString(),
			UserID:    "u1",
			Title:     "t",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	out, err := repo.ListByUser(ctx, "u1")

	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(out) != 3 {
		t.Fatalf("got %d tasks, want 3", len(out))
	}

	for i := 1; i < len(out); i++ {
		if out[i].CreatedAt.After(out[i-1].CreatedAt) {
			t.Fatalf("tasks not newest-first: %v before %v", out[i-1].CreatedAt, out[i].CreatedAt)
		}
	}
}

func TestTasksRepo_OwnershipPredicate(t *testing.T) {
	repo := NewTasksRepo()
	ctx := context.Background()

	owned := task.Task{ID: uuid.NewString(), UserID: "u1", Title: "mine", CreatedAt: time.Now().UTC()}

	if err := repo.Insert(ctx, owned); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// wrong user: same answer as a missing task
	_, err := repo.SetDone(ctx, "u2", owned.ID, true)

	if !errors.Is(err, task.ErrNotFound) {
		t.Fatalf("SetDone by non-owner: got %v, want ErrNotFound", err)
	}

	err = repo.Delete(ctx, "u2", owned.ID)

	if !errors.Is(err, task.ErrNotFound) {
		t.Fatalf("Delete by non-owner: got %v, want ErrNotFound", err)
	}

	// owner succeeds
	updated, err := repo.SetDone(ctx, "u1", owned.ID, true)

	if err != nil {
		t.Fatalf("SetDone by owner: %v", err)
	}

	if !updated.Done {
		t.Fatalf("expected done=true, got %+v", updated)
	}

	if err := repo.Delete(ctx, "u1", owned.ID); err != nil {
		t.Fatalf("Delete by owner: %v", err)
	}
}
