package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bikefine/internal/cache"
	"bikefine/internal/repository"
)

const statsCacheTTL = 60 * time.Second

// StatsSummary bundles the per-entity summaries. Only the requested sections
// are populated.
type StatsSummary struct {
	Users   *repository.UserStats  `json:"users,omitempty"`
	Cases   *repository.CaseStats  `json:"cases,omitempty"`
	Queries *repository.QueryStats `json:"queries,omitempty"`
}

// StatsService multiplexes the entity statistics behind a short-lived cache.
// Summaries reflect the data at query time, not real time.
type StatsService interface {
	Get(ctx context.Context, kind string) (*StatsSummary, error)
}

type statsService struct {
	userRepo  repository.UserRepository
	caseRepo  repository.CaseRepository
	queryRepo repository.QueryRepository
	cache     *cache.Client
}

// NewStatsService creates a new stats service.
func NewStatsService(
	userRepo repository.UserRepository,
	caseRepo repository.CaseRepository,
	queryRepo repository.QueryRepository,
	cache *cache.Client,
) StatsService {
	return &statsService{
		userRepo:  userRepo,
		caseRepo:  caseRepo,
		queryRepo: queryRepo,
		cache:     cache,
	}
}

// Get returns the summary for kind, one of users|cases|queries|all.
func (s *statsService) Get(ctx context.Context, kind string) (*StatsSummary, error) {
	key := "stats:" + kind
	if data, err := s.cache.Get(ctx, key); err == nil && data != nil {
		var summary StatsSummary
		if err := json.Unmarshal(data, &summary); err == nil {
			return &summary, nil
		}
	}

	summary := &StatsSummary{}
	var err error
	switch kind {
	case "users":
		summary.Users, err = s.userRepo.Stats(ctx)
	case "cases":
		summary.Cases, err = s.caseRepo.Stats(ctx)
	case "queries":
		summary.Queries, err = s.queryRepo.Stats(ctx)
	case "all":
		if summary.Users, err = s.userRepo.Stats(ctx); err != nil {
			return nil, err
		}
		if summary.Cases, err = s.caseRepo.Stats(ctx); err != nil {
			return nil, err
		}
		summary.Queries, err = s.queryRepo.Stats(ctx)
	default:
		return nil, fmt.Errorf("unknown stats type %q", kind)
	}
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(summary); err == nil {
		_ = s.cache.Set(ctx, key, payload, statsCacheTTL)
	}

	return summary, nil
}
