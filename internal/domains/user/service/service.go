package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"rental/config"
	"rental/infras/otel"
	"rental/internal/domains/user/model"
	"rental/internal/domains/user/repository"
	"rental/shared"
	"rental/shared/cache"
	"rental/shared/constant"
	"rental/shared/failure"

	"github.com/rs/zerolog/log"
)

const cacheGetUser = "user:get"

// Directory resolves operator identities for routing bookings.
type Directory interface {
	// Lookup returns the user with id. model.ErrNotFound is returned for an
	// unknown id. Storage failures satisfy failure.IsDependency.
	Lookup(ctx context.Context, id string) (model.User, error)
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Directory {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Lookup(ctx context.Context, id string) (user model.User, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".directory.Lookup")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetUser, id)

	if err = s.cache.Get(ctx, cacheKey, &user); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for user")

		return user, nil
	}

	user, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to get user")

		return user, failure.Dependency("directory", err)
	}

	if user.ID == constant.Empty {
		return user, model.ErrNotFound
	}

	if err := s.cache.Save(ctx, cacheKey, user, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save user to cache")
	}

	return user, nil
}
