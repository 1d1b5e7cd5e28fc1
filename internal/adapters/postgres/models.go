package postgres

import (
	"time"

	"github.com/google/uuid"
)

type userModel struct {
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	Matricule  string    `gorm:"column:matricule"`
	FullName   string    `gorm:"column:full_name"`
	Department string    `gorm:"column:department"`
	Level      string    `gorm:"column:level"`
	Role       string    `gorm:"column:role"`
	TrustScore int       `gorm:"column:trust_score"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

type postModel struct {
	PostID        uuid.UUID `gorm:"column:post_id;type:uuid;primaryKey"`
	AuthorID      uuid.UUID `gorm:"column:author_id"`
	Title         string    `gorm:"column:title"`
	Content       string    `gorm:"column:content"`
	Category      string    `gorm:"column:category"`
	Status        string    `gorm:"column:status"`
	Source        string    `gorm:"column:source"`
	ExternalID    *string   `gorm:"column:external_id"`
	OriginName    string    `gorm:"column:origin_name"`
	Establishment *string   `gorm:"column:visibility_establishment"`
	Department    *string   `gorm:"column:visibility_department"`
	Version       int       `gorm:"column:version"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (postModel) TableName() string { return "posts" }

type reportModel struct {
	ReportID   uuid.UUID `gorm:"column:report_id;type:uuid;primaryKey"`
	ReporterID uuid.UUID `gorm:"column:reporter_id"`
	PostID     uuid.UUID `gorm:"column:post_id"`
	Reason     string    `gorm:"column:reason"`
	Details    string    `gorm:"column:details"`
	Status     string    `gorm:"column:status"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (reportModel) TableName() string { return "reports" }

type validationModel struct {
	ValidationID uuid.UUID `gorm:"column:validation_id;type:uuid;primaryKey"`
	PostID       uuid.UUID `gorm:"column:post_id"`
	ValidatorID  uuid.UUID `gorm:"column:validator_id"`
	Type         string    `gorm:"column:type"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (validationModel) TableName() string { return "validations" }

type outboxModel struct {
	OutboxID     uuid.UUID  `gorm:"column:outbox_id;type:uuid;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      string     `gorm:"column:payload"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	FirstSeenAt  time.Time  `gorm:"column:first_seen_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
	RetryCount   int        `gorm:"column:retry_count"`
	LastError    *string    `gorm:"column:last_error"`
	LastErrorAt  *time.Time `gorm:"column:last_error_at"`
}

func (outboxModel) TableName() string { return "events_outbox" }
