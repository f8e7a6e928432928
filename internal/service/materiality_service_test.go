package service

import (
	"testing"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"

	"github.com/google/uuid"
)

func rated(importance int, influence string) model.MaterialityRating {
	return model.MaterialityRating{
		ID:          uuid.New(),
		Importance:  importance,
		Stakeholder: &model.Stakeholder{Influence: influence},
	}
}

func TestRankTopicsWeightsByInfluence(t *testing.T) {
	water := model.MaterialityTopic{
		ID:     uuid.New(),
		Name:   "Water use",
		Pillar: "environmental",
		Ratings: []model.MaterialityRating{
			rated(5, model.LevelHigh),
			rated(1, model.LevelLow),
		},
	}
	labor := model.MaterialityTopic{
		ID:     uuid.New(),
		Name:   "Labor practices",
		Pillar: "social",
		Ratings: []model.MaterialityRating{
			rated(3, model.LevelMedium),
			rated(3, model.LevelMedium),
		},
	}

	rankings := RankTopics([]model.MaterialityTopic{labor, water})

	if len(rankings) != 2 {
		t.Fatalf("rankings = %d, want 2", len(rankings))
	}

	// Water: (5*3 + 1*1) / (3+1) = 4. Labor: 3.
	if rankings[0].TopicName != "Water use" {
		t.Errorf("top topic = %q, want Water use", rankings[0].TopicName)
	}
	if got := rankings[0].WeightedScore.String(); got != "4" {
		t.Errorf("water score = %s, want 4", got)
	}
	if got := rankings[1].WeightedScore.String(); got != "3" {
		t.Errorf("labor score = %s, want 3", got)
	}
}

func TestRankTopicsUnratedTopicScoresZero(t *testing.T) {
	topic := model.MaterialityTopic{ID: uuid.New(), Name: "Biodiversity", Pillar: "environmental"}

	rankings := RankTopics([]model.MaterialityTopic{topic})

	if len(rankings) != 1 {
		t.Fatalf("rankings = %d, want 1", len(rankings))
	}
	if !rankings[0].WeightedScore.IsZero() {
		t.Errorf("score = %s, want 0", rankings[0].WeightedScore)
	}
	if rankings[0].RatingCount != 0 {
		t.Errorf("rating count = %d, want 0", rankings[0].RatingCount)
	}
}

func TestRankTopicsMissingStakeholderDefaultsToMediumWeight(t *testing.T) {
	// A rating whose stakeholder relation was not loaded still counts,
	// at medium influence.
	topic := model.MaterialityTopic{
		ID:   uuid.New(),
		Name: "Energy",
		Ratings: []model.MaterialityRating{
			{ID: uuid.New(), Importance: 4},
		},
	}

	rankings := RankTopics([]model.MaterialityTopic{topic})

	if got := rankings[0].WeightedScore.String(); got != "4" {
		t.Errorf("score = %s, want 4", got)
	}
}

func TestRankTopicsRoundsToTwoDecimals(t *testing.T) {
	topic := model.MaterialityTopic{
		ID:   uuid.New(),
		Name: "Emissions",
		Ratings: []model.MaterialityRating{
			rated(5, model.LevelHigh),
			rated(2, model.LevelMedium),
			rated(1, model.LevelLow),
		},
	}

	rankings := RankTopics([]model.MaterialityTopic{topic})

	// (15 + 4 + 1) / 6 = 3.333... -> 3.33
	if got := rankings[0].WeightedScore.String(); got != "3.33" {
		t.Errorf("score = %s, want 3.33", got)
	}
}
