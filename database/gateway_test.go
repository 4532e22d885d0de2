package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/rpupo63/hospitality-studio-backend/errs"
	"github.com/rpupo63/hospitality-studio-backend/models"
)

// runGatewayContract exercises the behaviour every Gateway adapter shares.
func runGatewayContract(t *testing.T, newGateway func(t *testing.T) Gateway) {
	t.Helper()
	ctx := context.Background()

	t.Run("insert returns unique non-empty ids", func(t *testing.T) {
		g := newGateway(t)
		seen := map[string]bool{}
		for i := 0; i < 5; i++ {
			id, err := g.Insert(ctx, "inquiry", models.Document{"n": i})
			if err != nil {
				t.Fatalf("Insert: %v", err)
			}
			if id == "" {
				t.Fatal("Insert returned empty id")
			}
			if seen[id] {
				t.Fatalf("duplicate id %q", id)
			}
			seen[id] = true
		}
	})

	t.Run("fetch returns newest first and honours limit", func(t *testing.T) {
		g := newGateway(t)
		var ids []string
		for i := 0; i < 5; i++ {
			id, err := g.Insert(ctx, "inquiry", models.Document{"name": fmt.Sprintf("guest-%d", i)})
			if err != nil {
				t.Fatalf("Insert: %v", err)
			}
			ids = append(ids, id)
		}

		docs, err := g.FetchRecent(ctx, "inquiry", 3)
		if err != nil {
			t.Fatalf("FetchRecent: %v", err)
		}
		if len(docs) != 3 {
			t.Fatalf("len(docs) = %d, want 3", len(docs))
		}
		for i, doc := range docs {
			want := ids[len(ids)-1-i]
			if doc.ID() != want {
				t.Errorf("docs[%d].ID() = %q, want %q", i, doc.ID(), want)
			}
		}
		if docs[0]["name"] != "guest-4" {
			t.Errorf("docs[0][name] = %v, want guest-4", docs[0]["name"])
		}
	})

	t.Run("fetch with fewer documents than limit returns all", func(t *testing.T) {
		g := newGateway(t)
		for i := 0; i < 2; i++ {
			if _, err := g.Insert(ctx, "inquiry", models.Document{"n": i}); err != nil {
				t.Fatalf("Insert: %v", err)
			}
		}
		docs, err := g.FetchRecent(ctx, "inquiry", 10)
		if err != nil {
			t.Fatalf("FetchRecent: %v", err)
		}
		if len(docs) != 2 {
			t.Errorf("len(docs) = %d, want 2", len(docs))
		}
	})

	t.Run("successive fetches return the same order", func(t *testing.T) {
		g := newGateway(t)
		for i := 0; i < 8; i++ {
			if _, err := g.Insert(ctx, "inquiry", models.Document{"n": i}); err != nil {
				t.Fatalf("Insert: %v", err)
			}
		}

		first, err := g.FetchRecent(ctx, "inquiry", 8)
		if err != nil {
			t.Fatalf("FetchRecent: %v", err)
		}
		second, err := g.FetchRecent(ctx, "inquiry", 8)
		if err != nil {
			t.Fatalf("FetchRecent: %v", err)
		}
		if len(first) != 8 || len(second) != 8 {
			t.Fatalf("lengths = %d, %d, want 8", len(first), len(second))
		}
		for i := range first {
			if first[i].ID() != second[i].ID() {
				t.Errorf("position %d: first fetch %q, second fetch %q", i, first[i].ID(), second[i].ID())
			}
		}
	})

	t.Run("missing collection yields empty slice", func(t *testing.T) {
		g := newGateway(t)
		docs, err := g.FetchRecent(ctx, "does-not-exist", 5)
		if err != nil {
			t.Fatalf("FetchRecent: %v", err)
		}
		if docs == nil || len(docs) != 0 {
			t.Errorf("docs = %#v, want empty non-nil slice", docs)
		}
	})

	t.Run("round trip preserves fields and adds timestamps", func(t *testing.T) {
		g := newGateway(t)
		in := models.Document{"name": "Ada", "phone": nil}
		id, err := g.Insert(ctx, "inquiry", in)
		if err != nil {
			t.Fatalf("Insert: %v", err)
		}
		if _, ok := in[models.IDField]; ok {
			t.Error("Insert mutated the caller's document")
		}

		docs, err := g.FetchRecent(ctx, "inquiry", 1)
		if err != nil {
			t.Fatalf("FetchRecent: %v", err)
		}
		if len(docs) != 1 {
			t.Fatalf("len(docs) = %d, want 1", len(docs))
		}
		got := docs[0]
		if got.ID() != id {
			t.Errorf("ID() = %q, want %q", got.ID(), id)
		}
		if got["name"] != "Ada" {
			t.Errorf("name = %v, want Ada", got["name"])
		}
		if v, ok := got["phone"]; !ok || v != nil {
			t.Errorf("phone = %v (present=%v), want explicit nil", v, ok)
		}
		if _, ok := got[models.CreatedAtField]; !ok {
			t.Error("created_at missing")
		}
		if _, ok := got[models.UpdatedAtField]; !ok {
			t.Error("updated_at missing")
		}
	})

	t.Run("collections are isolated", func(t *testing.T) {
		g := newGateway(t)
		if _, err := g.Insert(ctx, "a", models.Document{"k": "a"}); err != nil {
			t.Fatalf("Insert: %v", err)
		}
		if _, err := g.Insert(ctx, "b", models.Document{"k": "b"}); err != nil {
			t.Fatalf("Insert: %v", err)
		}
		docs, err := g.FetchRecent(ctx, "a", 10)
		if err != nil {
			t.Fatalf("FetchRecent: %v", err)
		}
		if len(docs) != 1 || docs[0]["k"] != "a" {
			t.Errorf("docs = %v, want one document from collection a", docs)
		}
	})

	t.Run("health lists collections", func(t *testing.T) {
		g := newGateway(t)
		if _, err := g.Insert(ctx, "inquiry", models.Document{"k": 1}); err != nil {
			t.Fatalf("Insert: %v", err)
		}
		status := g.HealthCheck(ctx)
		if !status.Configured || !status.Reachable || !status.CollectionsListed {
			t.Fatalf("status = %+v, want configured, reachable and listed", status)
		}
		found := false
		for _, name := range status.Collections {
			if name == "inquiry" {
				found = true
			}
		}
		if !found {
			t.Errorf("Collections = %v, want to contain inquiry", status.Collections)
		}
	})

	t.Run("closed store reports unavailable", func(t *testing.T) {
		g := newGateway(t)
		if err := g.Close(ctx); err != nil {
			t.Fatalf("Close: %v", err)
		}
		_, err := g.Insert(ctx, "inquiry", models.Document{"k": 1})
		if !errs.IsStorageUnavailable(err) {
			t.Errorf("Insert after Close = %v, want storage unavailable", err)
		}
		_, err = g.FetchRecent(ctx, "inquiry", 1)
		if !errs.IsStorageUnavailable(err) {
			t.Errorf("FetchRecent after Close = %v, want storage unavailable", err)
		}
		if status := g.HealthCheck(ctx); status.Reachable || status.ConnectError == "" {
			t.Errorf("status = %+v, want unreachable with connect error", status)
		}
	})
}

func TestNormalizeLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultFetchLimit},
		{-3, DefaultFetchLimit},
		{1, 1},
		{500, 500},
	}
	for _, tt := range tests {
		if got := normalizeLimit(tt.in); got != tt.want {
			t.Errorf("normalizeLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCapCollections(t *testing.T) {
	if got := capCollections(nil); got == nil || len(got) != 0 {
		t.Errorf("capCollections(nil) = %#v, want empty slice", got)
	}
	names := make([]string, 15)
	for i := range names {
		names[i] = fmt.Sprintf("c%02d", i)
	}
	if got := capCollections(names); len(got) != MaxReportedCollections {
		t.Errorf("len = %d, want %d", len(got), MaxReportedCollections)
	}
}
