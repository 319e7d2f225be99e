package storage

import (
	"context"

	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
)

var DefaultScoreWeights = ScoreWeights{Judges: 70, Audience: 30}

type SettingsStorage interface {
	Read(ctx context.Context) (*Settings, error)
	Write(ctx context.Context, settings *Settings) error
}

func (s *Settings) normalize() {
	if s.CategoryScoringCriteria == nil {
		s.CategoryScoringCriteria = map[string][]*Criterion{}
	}
	if s.Results.Winners == nil {
		s.Results.Winners = map[string]*WinnerEntry{}
	}
}

// Criteria returns the criteria of a category, never nil.
func (s *Settings) Criteria(categoryID string) []*Criterion {
	if c := s.CategoryScoringCriteria[categoryID]; c != nil {
		return c
	}
	return []*Criterion{}
}

type DocumentSettingsStorage struct {
	Store DocumentStore

	// Defaults seeds the score weights when no settings document exists yet.
	Defaults ScoreWeights
}

func (s *DocumentSettingsStorage) Read(ctx context.Context) (*Settings, error) {
	settings := &Settings{}
	err := s.Store.Read(ctx, CollectionSettings, settings)
	switch {
	case err == nil:
	case isNotFound(err):
		settings.ScoreWeights = s.defaults()
	default:
		logging.Log.Errorf("SETTINGS: failed to load settings: %v", err)
		return nil, err
	}
	settings.normalize()
	return settings, nil
}

func (s *DocumentSettingsStorage) Write(ctx context.Context, settings *Settings) error {
	settings.normalize()
	if err := s.Store.Write(ctx, CollectionSettings, settings); err != nil {
		logging.Log.Errorf("SETTINGS: failed to write settings: %v", err)
		return err
	}
	return nil
}

func (s *DocumentSettingsStorage) defaults() ScoreWeights {
	if s.Defaults.Judges+s.Defaults.Audience == 100 {
		return s.Defaults
	}
	return DefaultScoreWeights
}
