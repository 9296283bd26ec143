package adapters

import "time"

// QuoteCollectionModel はユーザーごとのコレクション行です。エントリの有無に関わらず
// 最初のAppendで作成され、updated_atは変更のたびに更新されます。
type QuoteCollectionModel struct {
	UserID    string `gorm:"primaryKey;size:36"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName はGORMのテーブル名を返します。
func (QuoteCollectionModel) TableName() string { return "quote_collections" }

// QuoteEntryModel は1件の名言を表します。自動採番IDが挿入順を決めます。
type QuoteEntryModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	UserID    string `gorm:"size:36;not null;index:idx_quote_entries_user_id"`
	Category  string `gorm:"size:255;not null"`
	Text      string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// TableName はGORMのテーブル名を返します。
func (QuoteEntryModel) TableName() string { return "quote_entries" }
