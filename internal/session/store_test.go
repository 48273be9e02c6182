package session

import (
	"testing"

	"github.com/google/uuid"

	"github.com/jinwoohan/insuragraph/internal/domain"
)

func TestStoreCreateAndGet(t *testing.T) {
	store := NewStore()

	created := store.Create("P-001")
	if created.ID == uuid.Nil {
		t.Fatal("session has no id")
	}
	if created.ProductID != "P-001" {
		t.Fatalf("ProductID = %q", created.ProductID)
	}

	got, err := store.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != created.ID || got.ProductID != "P-001" {
		t.Fatalf("Get = %+v", got)
	}
}

func TestStoreGetUnknownID(t *testing.T) {
	store := NewStore()
	if _, err := store.Get(uuid.New()); err == nil {
		t.Fatal("expected error for unknown session")
	}
}

func TestStoreAppendTurns(t *testing.T) {
	store := NewStore()
	sess := store.Create("P-001")

	for _, q := range []string{"첫 질문", "두번째 질문"} {
		if err := store.Append(sess.ID, domain.Turn{ID: uuid.New(), Question: q}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := store.Get(sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Turns) != 2 {
		t.Fatalf("Turns = %d, want 2", len(got.Turns))
	}
	if got.Turns[0].Question != "첫 질문" || got.Turns[1].Question != "두번째 질문" {
		t.Fatalf("turn order wrong: %+v", got.Turns)
	}
}

func TestStoreAppendUnknownID(t *testing.T) {
	store := NewStore()
	if err := store.Append(uuid.New(), domain.Turn{}); err == nil {
		t.Fatal("expected error for unknown session")
	}
}

// Get returns a copy; mutating it must not touch stored history.
func TestStoreGetReturnsSnapshot(t *testing.T) {
	store := NewStore()
	sess := store.Create("P-001")
	if err := store.Append(sess.ID, domain.Turn{Question: "원본"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	snap, err := store.Get(sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	snap.Turns[0].Question = "변조"

	again, err := store.Get(sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if again.Turns[0].Question != "원본" {
		t.Fatalf("stored turn mutated: %q", again.Turns[0].Question)
	}
}
