package settings

import (
	"context"
	"errors"
	"log/slog"
	"sort"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// All merges stored settings over the defaults so every known key is
// present in the response.
func (s *Service) All(ctx context.Context) ([]Setting, error) {
	stored, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]Setting, len(Defaults)+len(stored))
	for k, v := range Defaults {
		merged[k] = v
	}
	for _, v := range stored {
		merged[v.Key] = v
	}

	out := make([]Setting, 0, len(merged))
	for _, v := range merged {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}

func (s *Service) Get(ctx context.Context, key string) (Setting, error) {
	stored, err := s.repo.Get(ctx, key)
	if err == nil {
		return stored, nil
	}
	if errors.Is(err, ErrNotFound) {
		if def, ok := Defaults[key]; ok {
			return def, nil
		}
	}
	return Setting{}, err
}

func (s *Service) Upsert(ctx context.Context, key string, req UpsertSettingRequest) (Setting, error) {
	category := req.Category
	if category == "" {
		if def, ok := Defaults[key]; ok {
			category = def.Category
		} else {
			category = "general"
		}
	}
	saved, err := s.repo.Upsert(ctx, Setting{Key: key, Value: req.Value, Category: category})
	if err != nil {
		return Setting{}, err
	}
	s.logger.Info("setting updated", slog.String("key", key))
	return saved, nil
}

// DocumentPrefix returns the configured prefix for a numbering key,
// falling back to the shipped default. Lookup failures fall back too: a
// missing prefix must never block document creation.
func (s *Service) DocumentPrefix(ctx context.Context, key string) string {
	setting, err := s.Get(ctx, key)
	if err != nil || setting.Value == "" {
		if def, ok := Defaults[key]; ok {
			return def.Value
		}
		return ""
	}
	return setting.Value
}
