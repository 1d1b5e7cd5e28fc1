package application

import (
	"time"

	"github.com/nde-labs/campusecho/internal/domain"
)

type Config struct {
	ServiceName string
	// StatusWriteRetries bounds the optimistic-concurrency retry loop on
	// post status recomputes.
	StatusWriteRetries int
	FeedCacheTTL       time.Duration
	FeedPageSize       int
}

type RegisterUserRequest struct {
	Matricule  string `json:"matricule"`
	FullName   string `json:"full_name"`
	Department string `json:"department"`
	Level      string `json:"level"`
}

type CreatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

type CastVoteRequest struct {
	Type string `json:"type"`
}

type SubmitReportRequest struct {
	Reason  string `json:"reason"`
	Details string `json:"details,omitempty"`
}

type UserResponse struct {
	UserID     string `json:"user_id"`
	Matricule  string `json:"matricule"`
	FullName   string `json:"full_name"`
	Department string `json:"department"`
	Level      string `json:"level"`
	Role       string `json:"role"`
	TrustScore int    `json:"trust_score"`
}

type PostResponse struct {
	PostID        string    `json:"post_id"`
	AuthorID      string    `json:"author_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Category      string    `json:"category"`
	Status        string    `json:"status"`
	Source        string    `json:"source"`
	OriginName    string    `json:"origin_name,omitempty"`
	Establishment string    `json:"establishment,omitempty"`
	Department    string    `json:"department,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type ValidationResponse struct {
	ValidationID string `json:"validation_id"`
	PostID       string `json:"post_id"`
	Type         string `json:"type"`
	PostStatus   string `json:"post_status"`
}

type ReportResponse struct {
	ReportID string `json:"report_id"`
	PostID   string `json:"post_id"`
	Reason   string `json:"reason"`
	Status   string `json:"status"`
}

type SyncResult struct {
	Ingested int `json:"ingested"`
	Skipped  int `json:"skipped"`
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{
		UserID:     u.UserID.String(),
		Matricule:  u.Matricule,
		FullName:   u.FullName,
		Department: string(u.Department),
		Level:      u.Level,
		Role:       string(u.Role),
		TrustScore: u.TrustScore.Value(),
	}
}

func toPostResponse(p domain.Post) PostResponse {
	resp := PostResponse{
		PostID:     p.PostID.String(),
		AuthorID:   p.AuthorID.String(),
		Title:      p.Title,
		Content:    p.Content,
		Category:   string(p.Category),
		Status:     string(p.Status),
		Source:     string(p.Source),
		OriginName: p.OriginName,
		CreatedAt:  p.CreatedAt,
	}
	if p.Visibility.Establishment != nil {
		resp.Establishment = string(*p.Visibility.Establishment)
	}
	if p.Visibility.Department != nil {
		resp.Department = string(*p.Visibility.Department)
	}
	return resp
}
