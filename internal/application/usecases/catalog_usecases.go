package usecases

import (
	"context"

	"microquiz/internal/domain/catalog"
	"microquiz/internal/domain/quiz"
	"microquiz/internal/ports"
)

// ------ CATALOG METHODS ------

type CatalogUseCases struct {
	catalogRepo ports.CatalogRepository
}

func NewCatalogUseCases(catalogRepo ports.CatalogRepository) *CatalogUseCases {
	return &CatalogUseCases{catalogRepo: catalogRepo}
}

func (uc *CatalogUseCases) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	return uc.catalogRepo.ListCategories(ctx)
}

func (uc *CatalogUseCases) ListQuizzes(ctx context.Context, categoryID string) ([]catalog.QuizSummary, error) {
	return uc.catalogRepo.ListQuizzesByCategory(ctx, categoryID)
}

func (uc *CatalogUseCases) GetQuiz(ctx context.Context, quizID string) (*quiz.Quiz, error) {
	return uc.catalogRepo.FindQuizByID(ctx, quizID)
}
