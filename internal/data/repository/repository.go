package repository

import (
	"reelrate/pkg/database"

	"go.uber.org/zap"
)

// Repository groups all repositories behind one injection point.
type Repository struct {
	User     UserRepository
	Session  SessionRepository
	Subject  SubjectRepository
	Review   ReviewRepository
	Vote     VoteRepository
	Favorite FavoriteRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Session:  NewSessionRepository(db, log),
		Subject:  NewSubjectRepository(db, log),
		Review:   NewReviewRepository(db, log),
		Vote:     NewVoteRepository(db, log),
		Favorite: NewFavoriteRepository(db, log),
	}
}
