package account

import (
	"Go-Recipe-Admin/entities"
	"context"

	"gorm.io/gorm"
)

type (
	AccountRepository interface {
		SearchAccounts(ctx context.Context, query string, limit int) ([]*entities.Account, error)
	}

	accountRepository struct {
		db *gorm.DB
	}
)

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) SearchAccounts(ctx context.Context, query string, limit int) ([]*entities.Account, error) {
	var accounts []*entities.Account
	tx := r.db.WithContext(ctx).Model(&entities.Account{})
	if query != "" {
		tx = tx.Where("name ILIKE ?", "%"+query+"%")
	}
	if err := tx.Order("name asc").Limit(limit).Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}
