package stores

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Azeezfasasi/lasu-mba-cloth/models"
)

// QuoteStore persists quote requests and their reply threads
type QuoteStore struct {
	db *gorm.DB
}

func NewQuoteStore(db *gorm.DB) *QuoteStore {
	return &QuoteStore{db: db}
}

func (s *QuoteStore) Create(ctx context.Context, quote *models.Quote) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(quote).Error)
}

func (s *QuoteStore) Save(ctx context.Context, quote *models.Quote) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Save(quote).Error)
}

func (s *QuoteStore) withThread(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("AssignedTo").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
}

func (s *QuoteStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var quote models.Quote
	if err := s.withThread(ctx).First(&quote, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &quote, nil
}

// List returns every quote newest first
func (s *QuoteStore) List(ctx context.Context) ([]models.Quote, error) {
	var quotes []models.Quote
	if err := s.withThread(ctx).Order("created_at DESC").Find(&quotes).Error; err != nil {
		return nil, translate(err)
	}
	return quotes, nil
}

// AppendReply stores reply and moves the quote to the replied state atomically
func (s *QuoteStore) AppendReply(ctx context.Context, quote *models.Quote, reply *models.QuoteReply) error {
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reply.QuoteID = quote.ID
		if err := tx.Create(reply).Error; err != nil {
			return err
		}
		quote.Status = models.QuoteStatusReplied
		quote.ReplyMessage = reply.Message
		return tx.Model(&models.Quote{}).
			Where("id = ?", quote.ID).
			Updates(map[string]any{
				"status":        quote.Status,
				"reply_message": quote.ReplyMessage,
				"updated_at":    tx.NowFunc(),
			}).Error
	}))
}

// Delete removes the quote and its replies
func (s *QuoteStore) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quote_id = ?", id).Delete(&models.QuoteReply{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Quote{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}
