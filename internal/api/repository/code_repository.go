package repository

import (
	"reviewhub/internal/api/models"

	"gorm.io/gorm"
)

// CodeRepository stores confirmation codes, keyed uniquely by email.
type CodeRepository interface {
	// Replace removes any live code for the email and stores the new one.
	Replace(code *models.ConfirmationCode) error
	FindByEmail(email string) (*models.ConfirmationCode, error)
	DeleteByEmail(email string) error
}

type codeRepository struct {
	db *gorm.DB
}

func NewCodeRepository(db *gorm.DB) CodeRepository {
	return &codeRepository{db: db}
}

func (r *codeRepository) Replace(code *models.ConfirmationCode) error {
	// delete-then-insert inside one transaction; last write wins on a
	// concurrent reissue, which keeps the one-live-code invariant
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", code.Email).Delete(&models.ConfirmationCode{}).Error; err != nil {
			return err
		}
		return tx.Create(code).Error
	})
}

func (r *codeRepository) FindByEmail(email string) (*models.ConfirmationCode, error) {
	var code models.ConfirmationCode
	if err := r.db.Where("email = ?", email).First(&code).Error; err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *codeRepository) DeleteByEmail(email string) error {
	return r.db.Where("email = ?", email).Delete(&models.ConfirmationCode{}).Error
}
