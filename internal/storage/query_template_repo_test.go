package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestQueryTemplateRepo_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewQueryTemplateRepo(db)
	ctx := context.Background()

	root, err := repo.Create(ctx, nil, "first", "p1", `{"query":{}}`)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if root.ID == "" {
		t.Fatal("Create() should assign an ID")
	}
	if root.ParentID != nil {
		t.Errorf("Create() root ParentID = %v, want nil", *root.ParentID)
	}

	child, err := repo.Create(ctx, &root.ID, "second", "p1", `{"query":{"match_all":{}}}`)
	if err != nil {
		t.Fatalf("Create() child error = %v", err)
	}

	got, err := repo.GetByID(ctx, child.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.ParentID == nil || *got.ParentID != root.ID {
		t.Errorf("GetByID() ParentID = %v, want %s", got.ParentID, root.ID)
	}
	if got.Query != child.Query || got.Description != "second" || got.ProjectID != "p1" {
		t.Errorf("GetByID() = %+v, want %+v", got, child)
	}

	// The parent row is untouched by creating a child
	again, err := repo.GetByID(ctx, root.ID)
	if err != nil {
		t.Fatalf("GetByID() root error = %v", err)
	}
	if again.Query != `{"query":{}}` {
		t.Errorf("root query mutated: %s", again.Query)
	}
}

func TestQueryTemplateRepo_GetByID_NotFound(t *testing.T) {
	repo := NewQueryTemplateRepo(newTestDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestQueryTemplateRepo_Latest(t *testing.T) {
	db := newTestDB(t)
	useClock(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	repo := NewQueryTemplateRepo(db)
	ctx := context.Background()

	if _, err := repo.Latest(ctx, "p1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Latest() on empty project error = %v, want ErrNotFound", err)
	}

	root, _ := repo.Create(ctx, nil, "", "p1", "a")
	branchA, _ := repo.Create(ctx, &root.ID, "", "p1", "b")
	// Fork: a second edit from the root, created last, wins
	branchB, err := repo.Create(ctx, &root.ID, "", "p1", "c")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := repo.Create(ctx, nil, "", "other", "x"); err != nil {
		t.Fatalf("Create() other project error = %v", err)
	}

	latest, err := repo.Latest(ctx, "p1")
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest.ID != branchB.ID {
		t.Errorf("Latest() = %s, want %s (not %s)", latest.ID, branchB.ID, branchA.ID)
	}
}

func TestQueryTemplateRepo_ListByProject(t *testing.T) {
	db := newTestDB(t)
	useClock(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	repo := NewQueryTemplateRepo(db)
	ctx := context.Background()

	empty, err := repo.ListByProject(ctx, "p1")
	if err != nil {
		t.Fatalf("ListByProject() error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("ListByProject() = %v, want empty slice", empty)
	}

	first, _ := repo.Create(ctx, nil, "", "p1", "a")
	second, _ := repo.Create(ctx, &first.ID, "", "p1", "b")

	list, err := repo.ListByProject(ctx, "p1")
	if err != nil {
		t.Fatalf("ListByProject() error = %v", err)
	}
	if len(list) != 2 || list[0].ID != first.ID || list[1].ID != second.ID {
		t.Errorf("ListByProject() = %+v, want [%s %s]", list, first.ID, second.ID)
	}
}
