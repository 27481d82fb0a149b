package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"microquiz/internal/domain/catalog"
	"microquiz/internal/domain/quiz"
	"microquiz/internal/infra/logger"
	"microquiz/internal/ports"

	"github.com/redis/go-redis/v9"
)

const (
	catalogCategoriesKey   = "catalog:categories"
	catalogCategoryKeyFmt  = "catalog:category:%s:quizzes"
	catalogQuizKeyFmt      = "catalog:quiz:%s"
	defaultCatalogCacheTTL = 60 * time.Second
)

// RedisCachedCatalog decora um ports.CatalogRepository com cache-aside no Redis.
// Falhas do Redis são registradas e a leitura segue para o repositório de origem.
// Respostas "não encontrado" não são cacheadas.
type RedisCachedCatalog struct {
	next   ports.CatalogRepository
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCachedCatalog cria o decorator. ttl <= 0 usa o padrão de 60s.
func NewRedisCachedCatalog(next ports.CatalogRepository, client *redis.Client, ttl time.Duration) *RedisCachedCatalog {
	if ttl <= 0 {
		ttl = defaultCatalogCacheTTL
	}
	return &RedisCachedCatalog{next: next, client: client, ttl: ttl}
}

func (r *RedisCachedCatalog) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var cached []catalog.Category
	if r.get(ctx, catalogCategoriesKey, &cached) {
		return cached, nil
	}

	categories, err := r.next.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	r.set(ctx, catalogCategoriesKey, categories)
	return categories, nil
}

func (r *RedisCachedCatalog) ListQuizzesByCategory(ctx context.Context, categoryID string) ([]catalog.QuizSummary, error) {
	key := fmt.Sprintf(catalogCategoryKeyFmt, categoryID)

	var cached []catalog.QuizSummary
	if r.get(ctx, key, &cached) {
		return cached, nil
	}

	summaries, err := r.next.ListQuizzesByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	r.set(ctx, key, summaries)
	return summaries, nil
}

func (r *RedisCachedCatalog) FindQuizByID(ctx context.Context, id string) (*quiz.Quiz, error) {
	key := fmt.Sprintf(catalogQuizKeyFmt, id)

	var cached quiz.Quiz
	if r.get(ctx, key, &cached) {
		return &cached, nil
	}

	q, err := r.next.FindQuizByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.set(ctx, key, q)
	return q, nil
}

// get retorna true apenas em cache hit decodificado com sucesso.
func (r *RedisCachedCatalog) get(ctx context.Context, key string, dest interface{}) bool {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		logger.Warn("Falha ao ler cache do catálogo", "chave", key, "erro", err)
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		logger.Warn("Cache do catálogo corrompido", "chave", key, "erro", err)
		return false
	}
	return true
}

func (r *RedisCachedCatalog) set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Warn("Falha ao serializar cache do catálogo", "chave", key, "erro", err)
		return
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		logger.Warn("Falha ao gravar cache do catálogo", "chave", key, "erro", err)
	}
}
