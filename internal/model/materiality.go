package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Materiality assessment status constants
const (
	AssessmentDraft  = "draft"
	AssessmentActive = "active"
	AssessmentClosed = "closed"
)

// MaterialityAssessment is a stakeholder survey ranking ESG topics by
// importance for one enterprise.
type MaterialityAssessment struct {
	ID           uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EnterpriseID uuid.UUID          `gorm:"type:uuid;not null;index" json:"enterprise_id"`
	Title        string             `gorm:"type:varchar(255);not null" json:"title"`
	Period       string             `gorm:"type:varchar(20);not null" json:"period"`
	Status       string             `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	Topics       []MaterialityTopic `gorm:"foreignKey:AssessmentID;constraint:OnDelete:CASCADE" json:"topics,omitempty"`
	CreatedAt    time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt     `gorm:"index" json:"-"`
}

// MaterialityTopic is one ESG topic under assessment, e.g. "Water use".
type MaterialityTopic struct {
	ID           uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AssessmentID uuid.UUID           `gorm:"type:uuid;not null;index" json:"assessment_id"`
	Name         string              `gorm:"type:varchar(255);not null" json:"name"`
	Pillar       string              `gorm:"type:varchar(20);not null" json:"pillar"` // environmental, social, governance
	Ratings      []MaterialityRating `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"ratings,omitempty"`
}

// MaterialityRating is a single stakeholder's importance rating (1..5)
// for a topic. One rating per stakeholder per topic.
type MaterialityRating struct {
	ID            uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TopicID       uuid.UUID    `gorm:"type:uuid;not null;index:idx_rating_topic_stakeholder,unique" json:"topic_id"`
	StakeholderID uuid.UUID    `gorm:"type:uuid;not null;index:idx_rating_topic_stakeholder,unique" json:"stakeholder_id"`
	Stakeholder   *Stakeholder `gorm:"foreignKey:StakeholderID" json:"stakeholder,omitempty"`
	Importance    int          `gorm:"not null" json:"importance"` // 1..5
	CreatedAt     time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

// TopicRanking is the computed weighted score for a topic.
type TopicRanking struct {
	TopicID       uuid.UUID       `json:"topic_id"`
	TopicName     string          `json:"topic_name"`
	Pillar        string          `json:"pillar"`
	WeightedScore decimal.Decimal `json:"weighted_score"`
	RatingCount   int             `json:"rating_count"`
}
