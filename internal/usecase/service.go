package usecase

import (
	"reelrate/internal/data/repository"
	"reelrate/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	Subject  SubjectService
	Review   ReviewService
	Vote     VoteService
	Favorite FavoriteService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo, config, log),
		Subject:  NewSubjectService(repo, log),
		Review:   NewReviewService(repo, log),
		Vote:     NewVoteService(repo, log),
		Favorite: NewFavoriteService(repo, log),
	}
}
