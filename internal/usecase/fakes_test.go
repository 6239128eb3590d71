package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"reelrate/internal/data/entity"
	"reelrate/internal/data/repository"

	"go.uber.org/zap"
)

// fakeStore is the shared in-memory backing for all fake repositories.
// It mirrors the database constraints the real repositories lean on:
// one review per (user, subject), one vote per (user, review).
type fakeStore struct {
	userSeq   int64
	reviewSeq int64
	voteSeq   int64
	favSeq    int64

	users     map[int64]*entity.User
	subjects  map[string]*entity.Subject
	reviews   map[int64]*entity.Review
	votes     map[string]*entity.Vote
	favorites map[string]*entity.Favorite
	sessions  map[string]*entity.Session
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[int64]*entity.User),
		subjects:  make(map[string]*entity.Subject),
		reviews:   make(map[int64]*entity.Review),
		votes:     make(map[string]*entity.Vote),
		favorites: make(map[string]*entity.Favorite),
		sessions:  make(map[string]*entity.Session),
	}
}

func subjectKey(kind entity.Kind, id int64) string {
	return fmt.Sprintf("%s/%d", kind, id)
}

func voteKey(userID, reviewID int64) string {
	return fmt.Sprintf("%d/%d", userID, reviewID)
}

func favoriteKey(userID int64, kind entity.Kind, subjectID int64) string {
	return fmt.Sprintf("%d/%s/%d", userID, kind, subjectID)
}

// newTestEnv wires every fake behind the repository aggregate the
// services expect.
func newTestEnv() (*fakeStore, *repository.Repository) {
	store := newFakeStore()
	repo := &repository.Repository{
		User:     &fakeUserRepo{store},
		Session:  &fakeSessionRepo{store},
		Subject:  &fakeSubjectRepo{store},
		Review:   &fakeReviewRepo{store},
		Vote:     &fakeVoteRepo{store},
		Favorite: &fakeFavoriteRepo{store},
	}
	return store, repo
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// ==================== SEED HELPERS ====================

func (s *fakeStore) addUser(username string) *entity.User {
	s.userSeq++
	user := &entity.User{
		Base:     entity.Base{ID: s.userSeq, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Username: username,
		Email:    username + "@example.com",
		IsActive: true,
	}
	s.users[user.ID] = user
	return user
}

func (s *fakeStore) addSubject(kind entity.Kind, id int64, title string) *entity.Subject {
	subject := &entity.Subject{
		ID:        id,
		Kind:      kind,
		Title:     title,
		CreatedAt: time.Now(),
	}
	s.subjects[subjectKey(kind, id)] = subject
	return subject
}

func (s *fakeStore) addReview(userID int64, kind entity.Kind, subjectID int64, rating int) *entity.Review {
	s.reviewSeq++
	review := &entity.Review{
		Base:        entity.Base{ID: s.reviewSeq, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		SubjectKind: kind,
		SubjectID:   subjectID,
		UserID:      userID,
		Content:     "seeded review",
		Rating:      rating,
	}
	s.reviews[review.ID] = review
	return review
}

func paginate[T any](items []T, q repository.PageQuery) repository.Page[T] {
	total := int64(len(items))
	offset := q.Offset()
	limit := q.Limit()
	if offset >= len(items) {
		return repository.Page[T]{Total: total}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return repository.Page[T]{Items: items[offset:end], Total: total}
}

// ==================== USER ====================

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.userSeq++
	user.ID = r.store.userSeq
	r.store.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.store.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.store.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, user := range r.store.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByIDs(ctx context.Context, ids []int64) (map[int64]*entity.User, error) {
	found := make(map[int64]*entity.User)
	for _, id := range ids {
		if user, ok := r.store.users[id]; ok {
			found[id] = user
		}
	}
	return found, nil
}

// ==================== SESSION ====================

type fakeSessionRepo struct {
	store *fakeStore
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.store.sessions[session.Token.String()] = session
	return nil
}

func (r *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	session, ok := r.store.sessions[token]
	if !ok || session.RevokedAt != nil || session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return session, nil
}

func (r *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	if session, ok := r.store.sessions[token]; ok {
		now := time.Now()
		session.RevokedAt = &now
	}
	return nil
}

func (r *fakeSessionRepo) RevokeAllUserSessions(ctx context.Context, userID int64) error {
	now := time.Now()
	for _, session := range r.store.sessions {
		if session.UserID == userID {
			session.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeSessionRepo) CleanExpiredSessions(ctx context.Context) error {
	return nil
}

// ==================== SUBJECT ====================

type fakeSubjectRepo struct {
	store *fakeStore
}

func (r *fakeSubjectRepo) FindByID(ctx context.Context, kind entity.Kind, id int64) (*entity.Subject, error) {
	return r.store.subjects[subjectKey(kind, id)], nil
}

func (r *fakeSubjectRepo) PageByKind(ctx context.Context, kind entity.Kind, q repository.PageQuery) (repository.Page[*entity.Subject], error) {
	var matched []*entity.Subject
	for _, subject := range r.store.subjects {
		if subject.Kind == kind {
			matched = append(matched, subject)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return paginate(matched, q), nil
}

// ==================== REVIEW ====================

type fakeReviewRepo struct {
	store *fakeStore
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	for _, existing := range r.store.reviews {
		if existing.UserID == review.UserID &&
			existing.SubjectKind == review.SubjectKind &&
			existing.SubjectID == review.SubjectID {
			return repository.ErrDuplicateReview
		}
	}
	r.store.reviewSeq++
	review.ID = r.store.reviewSeq
	stored := *review
	r.store.reviews[review.ID] = &stored
	return nil
}

func (r *fakeReviewRepo) FindByID(ctx context.Context, id int64) (*entity.Review, error) {
	return r.store.reviews[id], nil
}

func (r *fakeReviewRepo) FindByUserAndSubject(ctx context.Context, userID int64, kind entity.Kind, subjectID int64) (*entity.Review, error) {
	for _, review := range r.store.reviews {
		if review.UserID == userID && review.SubjectKind == kind && review.SubjectID == subjectID {
			return review, nil
		}
	}
	return nil, nil
}

func (r *fakeReviewRepo) PageBySubject(ctx context.Context, kind entity.Kind, subjectID int64, q repository.PageQuery) (repository.Page[*entity.Review], error) {
	var matched []*entity.Review
	for _, review := range r.store.reviews {
		if review.SubjectKind == kind && review.SubjectID == subjectID {
			matched = append(matched, review)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return paginate(matched, q), nil
}

func (r *fakeReviewRepo) PageByUser(ctx context.Context, userID int64, q repository.PageQuery) (repository.Page[*entity.Review], error) {
	var matched []*entity.Review
	for _, review := range r.store.reviews {
		if review.UserID == userID {
			matched = append(matched, review)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return paginate(matched, q), nil
}

func (r *fakeReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	if _, ok := r.store.reviews[review.ID]; !ok {
		return repository.ErrReviewNotFound
	}
	stored := *review
	r.store.reviews[review.ID] = &stored
	return nil
}

func (r *fakeReviewRepo) DeleteCascade(ctx context.Context, id int64) error {
	if _, ok := r.store.reviews[id]; !ok {
		return repository.ErrReviewNotFound
	}
	for key, vote := range r.store.votes {
		if vote.ReviewID == id {
			delete(r.store.votes, key)
		}
	}
	delete(r.store.reviews, id)
	return nil
}

func (r *fakeReviewRepo) Stats(ctx context.Context, kind entity.Kind, subjectID int64) (entity.ReviewStats, error) {
	var stats entity.ReviewStats
	var sum int64
	for _, review := range r.store.reviews {
		if review.SubjectKind == kind && review.SubjectID == subjectID {
			stats.TotalReviews++
			sum += int64(review.Rating)
		}
	}
	if stats.TotalReviews > 0 {
		stats.AverageRating = float64(sum) / float64(stats.TotalReviews)
	}
	return stats, nil
}

// ==================== VOTE ====================

type fakeVoteRepo struct {
	store *fakeStore
}

func (r *fakeVoteRepo) Cast(ctx context.Context, userID, reviewID int64, polarity entity.Polarity) error {
	if _, ok := r.store.reviews[reviewID]; !ok {
		return repository.ErrReviewNotFound
	}
	key := voteKey(userID, reviewID)
	if vote, ok := r.store.votes[key]; ok {
		vote.Polarity = polarity
		return nil
	}
	r.store.voteSeq++
	r.store.votes[key] = &entity.Vote{
		BaseSimple: entity.BaseSimple{ID: r.store.voteSeq, CreatedAt: time.Now()},
		ReviewID:   reviewID,
		UserID:     userID,
		Polarity:   polarity,
	}
	return nil
}

func (r *fakeVoteRepo) Retract(ctx context.Context, userID, reviewID int64, polarity entity.Polarity) error {
	key := voteKey(userID, reviewID)
	if vote, ok := r.store.votes[key]; ok && vote.Polarity == polarity {
		delete(r.store.votes, key)
	}
	return nil
}

func (r *fakeVoteRepo) FindByUserAndReview(ctx context.Context, userID, reviewID int64) (*entity.Vote, error) {
	return r.store.votes[voteKey(userID, reviewID)], nil
}

func (r *fakeVoteRepo) FindByUserForReviews(ctx context.Context, userID int64, reviewIDs []int64) (map[int64]entity.Polarity, error) {
	found := make(map[int64]entity.Polarity)
	for _, reviewID := range reviewIDs {
		if vote, ok := r.store.votes[voteKey(userID, reviewID)]; ok {
			found[reviewID] = vote.Polarity
		}
	}
	return found, nil
}

func (r *fakeVoteRepo) Counts(ctx context.Context, reviewID int64) (entity.VoteCounts, error) {
	var counts entity.VoteCounts
	for _, vote := range r.store.votes {
		if vote.ReviewID != reviewID {
			continue
		}
		if vote.Polarity == entity.PolarityUp {
			counts.Upvotes++
		} else {
			counts.Downvotes++
		}
	}
	return counts, nil
}

func (r *fakeVoteRepo) PageVoters(ctx context.Context, reviewID int64, polarity entity.Polarity, q repository.PageQuery) (repository.Page[*entity.User], error) {
	var matched []*entity.Vote
	for _, vote := range r.store.votes {
		if vote.ReviewID == reviewID && vote.Polarity == polarity {
			matched = append(matched, vote)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	page := paginate(matched, q)
	voters := make([]*entity.User, 0, len(page.Items))
	for _, vote := range page.Items {
		if user, ok := r.store.users[vote.UserID]; ok {
			voters = append(voters, user)
		}
	}
	return repository.Page[*entity.User]{Items: voters, Total: page.Total}, nil
}

// ==================== FAVORITE ====================

type fakeFavoriteRepo struct {
	store *fakeStore
}

func (r *fakeFavoriteRepo) Add(ctx context.Context, favorite *entity.Favorite) error {
	key := favoriteKey(favorite.UserID, favorite.SubjectKind, favorite.SubjectID)
	if _, ok := r.store.favorites[key]; ok {
		return nil
	}
	r.store.favSeq++
	favorite.ID = r.store.favSeq
	stored := *favorite
	r.store.favorites[key] = &stored
	return nil
}

func (r *fakeFavoriteRepo) Remove(ctx context.Context, userID int64, kind entity.Kind, subjectID int64) error {
	delete(r.store.favorites, favoriteKey(userID, kind, subjectID))
	return nil
}

func (r *fakeFavoriteRepo) Exists(ctx context.Context, userID int64, kind entity.Kind, subjectID int64) (bool, error) {
	_, ok := r.store.favorites[favoriteKey(userID, kind, subjectID)]
	return ok, nil
}

func (r *fakeFavoriteRepo) PageByUser(ctx context.Context, userID int64, q repository.PageQuery) (repository.Page[*entity.Favorite], error) {
	var matched []*entity.Favorite
	for _, favorite := range r.store.favorites {
		if favorite.UserID == userID {
			matched = append(matched, favorite)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return paginate(matched, q), nil
}
