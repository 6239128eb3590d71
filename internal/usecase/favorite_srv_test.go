package usecase

import (
	"context"
	"errors"
	"testing"

	"reelrate/internal/data/entity"
	"reelrate/internal/data/repository"
	"reelrate/internal/dto/request"
)

func TestAddFavoriteIdempotent(t *testing.T) {
	store, repo := newTestEnv()
	svc := NewFavoriteService(repo, testLogger())
	ctx := context.Background()

	user := store.addUser("alice")
	store.addSubject(entity.KindSerie, 3, "The Wire")

	for i := 0; i < 2; i++ {
		if err := svc.Add(ctx, user.ID, entity.KindSerie, 3); err != nil {
			t.Fatalf("add %d: %v", i+1, err)
		}
	}

	if len(store.favorites) != 1 {
		t.Fatalf("favorite rows=%d, want 1", len(store.favorites))
	}
}

func TestAddFavoriteUnknownSubject(t *testing.T) {
	store, repo := newTestEnv()
	svc := NewFavoriteService(repo, testLogger())

	user := store.addUser("alice")
	err := svc.Add(context.Background(), user.ID, entity.KindMovie, 99)
	if !errors.Is(err, repository.ErrSubjectNotFound) {
		t.Fatalf("got %v, want ErrSubjectNotFound", err)
	}
}

func TestRemoveFavorite(t *testing.T) {
	store, repo := newTestEnv()
	svc := NewFavoriteService(repo, testLogger())
	ctx := context.Background()

	user := store.addUser("alice")
	store.addSubject(entity.KindMovie, 1, "The Departed")

	if err := svc.Add(ctx, user.ID, entity.KindMovie, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Remove(ctx, user.ID, entity.KindMovie, 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(store.favorites) != 0 {
		t.Fatalf("favorite rows=%d after remove, want 0", len(store.favorites))
	}

	// Removing again is a no-op
	if err := svc.Remove(ctx, user.ID, entity.KindMovie, 1); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestListMineLabelsSubjects(t *testing.T) {
	store, repo := newTestEnv()
	svc := NewFavoriteService(repo, testLogger())
	ctx := context.Background()

	user := store.addUser("alice")
	other := store.addUser("bob")
	store.addSubject(entity.KindMovie, 1, "The Departed")
	store.addSubject(entity.KindActor, 2, "Philip Seymour Hoffman")

	if err := svc.Add(ctx, user.ID, entity.KindMovie, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Add(ctx, user.ID, entity.KindActor, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Add(ctx, other.ID, entity.KindMovie, 1); err != nil {
		t.Fatalf("add for other: %v", err)
	}

	resp, err := svc.ListMine(ctx, user.ID, &request.PaginatedRequest{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.Pagination.Total != 2 || len(resp.Data) != 2 {
		t.Fatalf("got %d/%d favorites, want 2/2", len(resp.Data), resp.Pagination.Total)
	}
	for _, item := range resp.Data {
		if item.Title == "" {
			t.Errorf("favorite %s/%d missing title", item.SubjectKind, item.SubjectID)
		}
	}
}

func TestFavoriteAnonymous(t *testing.T) {
	_, repo := newTestEnv()
	svc := NewFavoriteService(repo, testLogger())

	if err := svc.Add(context.Background(), 0, entity.KindMovie, 1); !errors.Is(err, repository.ErrUnauthorized) {
		t.Fatalf("add: got %v, want ErrUnauthorized", err)
	}
	if _, err := svc.ListMine(context.Background(), 0, &request.PaginatedRequest{Page: 1, PerPage: 10}); !errors.Is(err, repository.ErrUnauthorized) {
		t.Fatalf("list: got %v, want ErrUnauthorized", err)
	}
}
