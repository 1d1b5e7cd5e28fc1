package postgres

import "github.com/nde-labs/campusecho/internal/domain"

func toDomainUser(m userModel) domain.User {
	return domain.User{
		UserID: m.UserID, Matricule: m.Matricule, FullName: m.FullName,
		Department: domain.Department(m.Department), Level: m.Level,
		Role: domain.Role(m.Role), TrustScore: domain.TrustScore(m.TrustScore),
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func toUserModel(u domain.User) userModel {
	return userModel{
		UserID: u.UserID, Matricule: u.Matricule, FullName: u.FullName,
		Department: string(u.Department), Level: u.Level,
		Role: string(u.Role), TrustScore: u.TrustScore.Value(),
		CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
}

func toDomainPost(m postModel) domain.Post {
	post := domain.Post{
		PostID: m.PostID, AuthorID: m.AuthorID, Title: m.Title, Content: m.Content,
		Category: domain.PostCategory(m.Category), Status: domain.PostStatus(m.Status),
		Source: domain.PostSource(m.Source), OriginName: m.OriginName,
		Version: m.Version, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
	if m.ExternalID != nil {
		post.ExternalID = *m.ExternalID
	}
	if m.Establishment != nil {
		est := domain.Establishment(*m.Establishment)
		post.Visibility.Establishment = &est
	}
	if m.Department != nil {
		dept := domain.Department(*m.Department)
		post.Visibility.Department = &dept
	}
	return post
}

func toPostModel(p domain.Post) postModel {
	m := postModel{
		PostID: p.PostID, AuthorID: p.AuthorID, Title: p.Title, Content: p.Content,
		Category: string(p.Category), Status: string(p.Status), Source: string(p.Source),
		OriginName: p.OriginName, Version: p.Version,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
	if p.ExternalID != "" {
		ext := p.ExternalID
		m.ExternalID = &ext
	}
	if p.Visibility.Establishment != nil {
		est := string(*p.Visibility.Establishment)
		m.Establishment = &est
	}
	if p.Visibility.Department != nil {
		dept := string(*p.Visibility.Department)
		m.Department = &dept
	}
	return m
}

func toDomainReport(m reportModel) domain.Report {
	return domain.Report{
		ReportID: m.ReportID, ReporterID: m.ReporterID, PostID: m.PostID,
		Reason: domain.ReportReason(m.Reason), Details: m.Details,
		Status: domain.ReportStatus(m.Status), CreatedAt: m.CreatedAt,
	}
}

func toDomainValidation(m validationModel) domain.Validation {
	return domain.Validation{
		ValidationID: m.ValidationID, PostID: m.PostID, ValidatorID: m.ValidatorID,
		Type: domain.ValidationType(m.Type), CreatedAt: m.CreatedAt,
	}
}
