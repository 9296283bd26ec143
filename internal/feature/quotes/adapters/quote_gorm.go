// Package adapters はquotesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quote_backend/internal/feature/quotes/domain/entity"
	"quote_backend/internal/feature/quotes/usecase"
)

// quoteGorm はQuoteRepositoryのGORM実装です（PostgreSQL / SQLite）。
// 追加は行の挿入、削除は単一のDELETE文で行い、読み取り→書き戻しは行いません。
type quoteGorm struct {
	db  *gorm.DB
	now func() time.Time
}

var _ usecase.QuoteRepository = (*quoteGorm)(nil)

// NewQuoteGorm は指定されたgorm.DB接続でquoteGormを生成します。
func NewQuoteGorm(db *gorm.DB) *quoteGorm {
	return &quoteGorm{db: db, now: time.Now}
}

// Append はコレクション行をupsertし、エントリをまとめてINSERTします。
// 戻り値はコミット直前のコレクション全体です。
func (r *quoteGorm) Append(ctx context.Context, userID string, quotes []entity.Quote) (*entity.QuoteCollection, error) {
	now := r.now().UTC()
	var rows []QuoteEntryModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		col := QuoteCollectionModel{UserID: userID, CreatedAt: now, UpdatedAt: now}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{"updated_at": now}),
		}).Create(&col).Error; err != nil {
			return err
		}

		if len(quotes) > 0 {
			entries := make([]QuoteEntryModel, 0, len(quotes))
			for _, q := range quotes {
				entries = append(entries, QuoteEntryModel{
					UserID:    userID,
					Category:  q.Category,
					Text:      q.Text,
					CreatedAt: now,
				})
			}
			if err := tx.Create(&entries).Error; err != nil {
				return err
			}
		}

		return tx.Where("user_id = ?", userID).Order("id").Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}

	return &entity.QuoteCollection{
		UserID:    userID,
		Quotes:    toQuotes(rows),
		UpdatedAt: now,
	}, nil
}

// List はユーザーの名言を挿入順で返します。
func (r *quoteGorm) List(ctx context.Context, userID string) ([]entity.Quote, error) {
	var rows []QuoteEntryModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toQuotes(rows), nil
}

// Remove はcategoryとtextが完全一致するエントリをすべて削除します。
// 1件も削除されなかった場合は usecase.ErrQuoteNotFound を返します。
func (r *quoteGorm) Remove(ctx context.Context, userID string, target entity.Quote) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND category = ? AND text = ?", userID, target.Category, target.Text).
			Delete(&QuoteEntryModel{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		if removed == 0 {
			return usecase.ErrQuoteNotFound
		}
		return tx.Model(&QuoteCollectionModel{}).
			Where("user_id = ?", userID).
			Update("updated_at", r.now().UTC()).Error
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func toQuotes(rows []QuoteEntryModel) []entity.Quote {
	quotes := make([]entity.Quote, 0, len(rows))
	for _, row := range rows {
		quotes = append(quotes, entity.Quote{Category: row.Category, Text: row.Text})
	}
	return quotes
}
