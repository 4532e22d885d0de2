package database

import (
	"context"
	"testing"
	"time"

	"github.com/rpupo63/hospitality-studio-backend/models"
)

type deadlineRecorder struct {
	*MemoryGateway
	hadDeadline bool
	collection  string
}

func (d *deadlineRecorder) Insert(ctx context.Context, collection string, record models.Document) (string, error) {
	_, d.hadDeadline = ctx.Deadline()
	d.collection = collection
	return d.MemoryGateway.Insert(ctx, collection, record)
}

func strPtr(s string) *string { return &s }

func TestInquiryRepo_AddAndFindRecent(t *testing.T) {
	db := New(NewMemoryGateway())
	repo := db.InquiryRepo()
	ctx := context.Background()

	inquiry := models.Inquiry{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Message: "We need a new seasonal menu.",
		Phone:   strPtr("+1 555 0100"),
	}
	id, err := repo.Add(ctx, inquiry)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	docs, err := repo.FindRecent(ctx, 5)
	if err != nil {
		t.Fatalf("FindRecent: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("len(docs) = %d, want 1", len(docs))
	}
	doc := docs[0]
	if doc.ID() != id {
		t.Errorf("ID() = %q, want %q", doc.ID(), id)
	}
	if doc[models.FieldEmail] != "ada@example.com" {
		t.Errorf("email = %v", doc[models.FieldEmail])
	}
	for _, field := range models.InquiryFields {
		if _, ok := doc[field]; !ok {
			t.Errorf("stored document is missing %q", field)
		}
	}
	if doc[models.FieldBudgetRange] != nil {
		t.Errorf("budget_range = %v, want nil", doc[models.FieldBudgetRange])
	}
}

func TestInquiryRepo_AppliesTimeoutAndCollection(t *testing.T) {
	rec := &deadlineRecorder{MemoryGateway: NewMemoryGateway()}
	db := New(rec, WithInquiryCollection("leads"), WithOperationTimeout(time.Second))

	if _, err := db.InquiryRepo().Add(context.Background(), models.Inquiry{Name: "Ada"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !rec.hadDeadline {
		t.Error("gateway call had no deadline")
	}
	if rec.collection != "leads" {
		t.Errorf("collection = %q, want leads", rec.collection)
	}
	if db.InquiryRepo().Collection() != "leads" {
		t.Errorf("Collection() = %q, want leads", db.InquiryRepo().Collection())
	}
}

func TestNew_Defaults(t *testing.T) {
	db := New(NewMemoryGateway(), WithInquiryCollection(""), WithOperationTimeout(0))
	if got := db.InquiryRepo().Collection(); got != models.InquiryCollection {
		t.Errorf("Collection() = %q, want %q", got, models.InquiryCollection)
	}
	if db.InquiryRepo().timeout != defaultOperationTimeout {
		t.Errorf("timeout = %v, want %v", db.InquiryRepo().timeout, defaultOperationTimeout)
	}
}
