package repository

import (
	"context"

	trialdomain "github.com/markproof/portal/internal/trial/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() trialdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, lead *trialdomain.Lead) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO trial_signups (
			id, first_name, last_name, email, company, ai_use_case, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		lead.ID,
		lead.FirstName,
		lead.LastName,
		lead.Email,
		lead.Company,
		lead.AIUseCase,
		lead.CreatedAt,
	).Error
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*trialdomain.Lead, error) {
	var lead trialdomain.Lead
	err := db.WithContext(ctx).
		Where("email = ?", email).
		First(&lead).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}
