package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"reelrate/internal/data/entity"
	"reelrate/internal/data/repository"
	"reelrate/internal/dto/request"
)

func TestSubmitReviewRejectsDuplicate(t *testing.T) {
	store, repo := newTestEnv()
	svc := NewReviewService(repo, testLogger())
	ctx := context.Background()

	user := store.addUser("alice")
	store.addSubject(entity.KindMovie, 1, "The Departed")

	req := &request.SubmitReviewRequest{Content: "great movie", Rating: 8}
	if _, err := svc.Submit(ctx, user.ID, entity.KindMovie, 1, req); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	_, err := svc.Submit(ctx, user.ID, entity.KindMovie, 1, req)
	if !errors.Is(err, repository.ErrDuplicateReview) {
		t.Fatalf("second submit: got %v, want ErrDuplicateReview", err)
	}

	// Same user may still review a different subject of the same kind
	store.addSubject(entity.KindMovie, 2, "Heat")
	if _, err := svc.Submit(ctx, user.ID, entity.KindMovie, 2, req); err != nil {
		t.Fatalf("submit on other subject: %v", err)
	}
}

func TestSubmitReviewUnknownSubject(t *testing.T) {
	store, repo := newTestEnv()
	svc := NewReviewService(repo, testLogger())

	user := store.addUser("alice")
	req := &request.SubmitReviewRequest{Content: "who dis", Rating: 5}

	_, err := svc.Submit(context.Background(), user.ID, entity.KindMovie, 99, req)
	if !errors.Is(err, repository.ErrSubjectNotFound) {
		t.Fatalf("got %v, want ErrSubjectNotFound", err)
	}
}

func TestSubmitReviewAnonymous(t *testing.T) {
	_, repo := newTestEnv()
	svc := NewReviewService(repo, testLogger())

	req := &request.SubmitReviewRequest{Content: "drive-by", Rating: 5}
	_, err := svc.Submit(context.Background(), 0, entity.KindMovie, 1, req)
	if !errors.Is(err, repository.ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}
}

func TestSubmitReviewRatingOutOfRange(t *testing.T) {
	store, repo := newTestEnv()
	svc := NewReviewService(repo, testLogger())

	user := store.addUser("alice")
	store.addSubject(entity.KindMovie, 1, "The Departed")

	req := &request.SubmitReviewRequest{Content: "over the top", Rating: 11}
	if _, err := svc.Submit(context.Background(), user.ID, entity.KindMovie, 1, req); err == nil {
		t.Fatal("rating 11 accepted, want error")
	}
}

func TestUpdateReviewWithoutExisting(t *testing.T) {
	store, repo := newTestEnv()
	svc := NewReviewService(repo, testLogger())

	user := store.addUser("alice")
	store.addSubject(entity.KindMovie, 1, "The Departed")

	req := &request.UpdateReviewRequest{Content: "changed my mind", Rating: 3}
	_, err := svc.Update(context.Background(), user.ID, entity.KindMovie, 1, req)
	if !errors.Is(err, repository.ErrReviewNotFound) {
		t.Fatalf("got %v, want ErrReviewNotFound", err)
	}
}

func TestUpdateReviewOverwrites(t *testing.T) {
	store, repo := newTestEnv()
	svc := NewReviewService(repo, testLogger())
	ctx := context.Background()

	user := store.addUser("alice")
	store.addSubject(entity.KindSerie, 7, "The Wire")
	store.addReview(user.ID, entity.KindSerie, 7, 4)

	req := &request.UpdateReviewRequest{Content: "it grew on me", Rating: 9}
	resp, err := svc.Update(ctx, user.ID, entity.KindSerie, 7, req)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if resp.Review == nil {
		t.Fatal("update response missing review")
	}
	if resp.Review.Rating != 9 || resp.Review.Content != "it grew on me" {
		t.Fatalf("review not overwritten: rating=%d content=%q", resp.Review.Rating, resp.Review.Content)
	}
	if resp.Aggregate.AverageRating != 9.0 {
		t.Fatalf("aggregate not refreshed: avg=%v", resp.Aggregate.AverageRating)
	}
}

func TestRemoveReviewCascadesVotes(t *testing.T) {
	store, repo := newTestEnv()
	svc := NewReviewService(repo, testLogger())
	votes := NewVoteService(repo, testLogger())
	ctx := context.Background()

	author := store.addUser("alice")
	store.addSubject(entity.KindMovie, 1, "The Departed")
	review := store.addReview(author.ID, entity.KindMovie, 1, 8)

	for i := 0; i < 3; i++ {
		voter := store.addUser(fmt.Sprintf("voter%d", i))
		if _, err := votes.Upvote(ctx, voter.ID, review.ID); err != nil {
			t.Fatalf("seed vote: %v", err)
		}
	}

	resp, err := svc.Remove(ctx, author.ID, entity.KindMovie, 1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if resp.Review != nil {
		t.Fatal("remove response should not carry a review")
	}
	if resp.Aggregate.TotalReviews != 0 {
		t.Fatalf("aggregate after remove: total=%d, want 0", resp.Aggregate.TotalReviews)
	}

	// No orphaned votes may survive the review
	if len(store.votes) != 0 {
		t.Fatalf("votes left after cascade: %d", len(store.votes))
	}
}

func TestStatsIncludesZeroRatings(t *testing.T) {
	store, repo := newTestEnv()
	svc := NewReviewService(repo, testLogger())

	store.addSubject(entity.KindMovie, 1, "The Departed")
	for i, rating := range []int{8, 6, 0, 10} {
		user := store.addUser(fmt.Sprintf("user%d", i))
		store.addReview(user.ID, entity.KindMovie, 1, rating)
	}

	stats, err := svc.Stats(context.Background(), entity.KindMovie, 1)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalReviews != 4 {
		t.Fatalf("total=%d, want 4", stats.TotalReviews)
	}
	if stats.AverageRating != 6.0 {
		t.Fatalf("average=%v, want 6.0 (zero ratings count)", stats.AverageRating)
	}
}

func TestStatsEmptySubject(t *testing.T) {
	store, repo := newTestEnv()
	svc := NewReviewService(repo, testLogger())

	store.addSubject(entity.KindEpisode, 42, "Ozymandias")

	stats, err := svc.Stats(context.Background(), entity.KindEpisode, 42)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalReviews != 0 || stats.AverageRating != 0 {
		t.Fatalf("empty subject stats: %+v", stats)
	}
}

func TestListSubjectReviewsPaginationBoundary(t *testing.T) {
	store, repo := newTestEnv()
	svc := NewReviewService(repo, testLogger())
	ctx := context.Background()

	store.addSubject(entity.KindMovie, 1, "The Departed")
	for i := 0; i < 12; i++ {
		user := store.addUser(fmt.Sprintf("user%d", i))
		store.addReview(user.ID, entity.KindMovie, 1, i%11)
	}

	cases := []struct {
		page      int
		wantItems int
	}{
		{1, 5},
		{2, 5},
		{3, 2},
		{4, 0},
	}
	for _, tc := range cases {
		req := &request.PaginatedRequest{Page: tc.page, PerPage: 5}
		resp, err := svc.ListSubjectReviews(ctx, entity.KindMovie, 1, 0, req)
		if err != nil {
			t.Fatalf("page %d: %v", tc.page, err)
		}
		if len(resp.Data) != tc.wantItems {
			t.Errorf("page %d: got %d items, want %d", tc.page, len(resp.Data), tc.wantItems)
		}
		if resp.Pagination.Total != 12 {
			t.Errorf("page %d: total=%d, want 12", tc.page, resp.Pagination.Total)
		}
		if resp.Pagination.TotalPages != 3 {
			t.Errorf("page %d: total_pages=%d, want 3", tc.page, resp.Pagination.TotalPages)
		}
	}
}

func TestListSubjectReviewsViewerAnnotation(t *testing.T) {
	store, repo := newTestEnv()
	svc := NewReviewService(repo, testLogger())
	votes := NewVoteService(repo, testLogger())
	favorites := NewFavoriteService(repo, testLogger())
	ctx := context.Background()

	viewer := store.addUser("viewer")
	other := store.addUser("other")
	store.addSubject(entity.KindMovie, 1, "The Departed")

	otherReview := store.addReview(other.ID, entity.KindMovie, 1, 7)
	store.addReview(viewer.ID, entity.KindMovie, 1, 9)

	if _, err := votes.Upvote(ctx, viewer.ID, otherReview.ID); err != nil {
		t.Fatalf("upvote: %v", err)
	}
	if err := favorites.Add(ctx, viewer.ID, entity.KindMovie, 1); err != nil {
		t.Fatalf("favorite: %v", err)
	}

	req := &request.PaginatedRequest{Page: 1, PerPage: 10}
	resp, err := svc.ListSubjectReviews(ctx, entity.KindMovie, 1, viewer.ID, req)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if !resp.IsBookmarked {
		t.Error("IsBookmarked false for bookmarked subject")
	}
	if !resp.IsReviewed {
		t.Error("IsReviewed false for reviewed subject")
	}

	for _, item := range resp.Data {
		switch item.ID {
		case otherReview.ID:
			if !item.IsUpvoted {
				t.Error("viewer upvote not flagged")
			}
			if item.IsMine {
				t.Error("other user's review flagged as mine")
			}
			if item.Upvotes != 1 {
				t.Errorf("upvotes=%d, want 1", item.Upvotes)
			}
			if item.Username != "other" {
				t.Errorf("username=%q, want other", item.Username)
			}
		default:
			if !item.IsMine {
				t.Error("viewer's own review not flagged as mine")
			}
		}
	}

	// Anonymous view of the same data keeps every flag down
	anon, err := svc.ListSubjectReviews(ctx, entity.KindMovie, 1, 0, req)
	if err != nil {
		t.Fatalf("anonymous list: %v", err)
	}
	if anon.IsBookmarked || anon.IsReviewed {
		t.Error("subject flags set for anonymous viewer")
	}
	for _, item := range anon.Data {
		if item.IsUpvoted || item.IsDownvoted || item.IsMine {
			t.Errorf("review %d carries viewer flags for anonymous viewer", item.ID)
		}
	}
}

func TestListSubjectReviewsVoterPreviewTruncated(t *testing.T) {
	store, repo := newTestEnv()
	svc := NewReviewService(repo, testLogger())
	votes := NewVoteService(repo, testLogger())
	ctx := context.Background()

	author := store.addUser("alice")
	store.addSubject(entity.KindMovie, 1, "The Departed")
	review := store.addReview(author.ID, entity.KindMovie, 1, 8)

	for i := 0; i < 5; i++ {
		voter := store.addUser(fmt.Sprintf("voter%d", i))
		if _, err := votes.Upvote(ctx, voter.ID, review.ID); err != nil {
			t.Fatalf("seed vote: %v", err)
		}
	}

	req := &request.PaginatedRequest{Page: 1, PerPage: 10}
	resp, err := svc.ListSubjectReviews(ctx, entity.KindMovie, 1, 0, req)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("got %d reviews, want 1", len(resp.Data))
	}

	preview := resp.Data[0].Upvoters
	if len(preview.Items) != voterPreviewSize {
		t.Fatalf("preview size=%d, want %d", len(preview.Items), voterPreviewSize)
	}
	if preview.Total != 5 {
		t.Fatalf("preview total=%d, want 5", preview.Total)
	}
	if !preview.HasMore {
		t.Fatal("preview HasMore false with voters beyond the preview")
	}

	down := resp.Data[0].Downvoters
	if down.Total != 0 || down.HasMore || len(down.Items) != 0 {
		t.Fatalf("empty downvoter preview wrong: %+v", down)
	}
}

func TestListUserReviews(t *testing.T) {
	store, repo := newTestEnv()
	svc := NewReviewService(repo, testLogger())
	ctx := context.Background()

	user := store.addUser("alice")
	other := store.addUser("bob")
	store.addSubject(entity.KindMovie, 1, "The Departed")
	store.addSubject(entity.KindSerie, 2, "The Wire")
	store.addReview(user.ID, entity.KindMovie, 1, 8)
	store.addReview(user.ID, entity.KindSerie, 2, 9)
	store.addReview(other.ID, entity.KindMovie, 1, 2)

	resp, err := svc.ListUserReviews(ctx, user.ID, &request.PaginatedRequest{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.Pagination.Total != 2 || len(resp.Data) != 2 {
		t.Fatalf("got %d/%d reviews, want 2/2", len(resp.Data), resp.Pagination.Total)
	}
	for _, item := range resp.Data {
		if item.UserID != user.ID {
			t.Errorf("foreign review %d in user listing", item.ID)
		}
		if !item.IsMine {
			t.Errorf("review %d not flagged as mine in own listing", item.ID)
		}
	}
}
