// OnlineBookExchange - Peer-to-Peer Book Exchange Platform
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/guruvardhan-tech-village/web-OnlineBookExchange

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/guruvardhan-tech-village/web-OnlineBookExchange/internal/models"
	"github.com/guruvardhan-tech-village/web-OnlineBookExchange/internal/recommend"
)

// ErrBookNotFound is returned when a referenced book does not exist.
var ErrBookNotFound = errors.New("book not found")

// viewDedupWindow suppresses duplicate view records: repeated views of
// the same book within this window count once, so page reloads do not
// inflate the preference signal.
const viewDedupWindow = 5 * time.Minute

// GetBooks returns the full catalog as the engine's read-only view,
// available listings and not. Implements recommend.DataProvider.
func (s *Store) GetBooks(ctx context.Context) ([]recommend.Book, error) {
	var rows []models.Book
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}

	books := make([]recommend.Book, 0, len(rows))
	for i := range rows {
		books = append(books, toEngineBook(&rows[i]))
	}
	return books, nil
}

// GetUserInteractions returns one user's interaction log entries.
// Implements recommend.DataProvider.
func (s *Store) GetUserInteractions(ctx context.Context, userID int) ([]recommend.Interaction, error) {
	var rows []models.Interaction
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}

	interactions := make([]recommend.Interaction, 0, len(rows))
	for i := range rows {
		interactions = append(interactions, toEngineInteraction(&rows[i]))
	}
	return interactions, nil
}

// GetBook returns one catalog listing, or ErrBookNotFound.
func (s *Store) GetBook(ctx context.Context, bookID int) (*models.Book, error) {
	var book models.Book
	err := s.db.WithContext(ctx).First(&book, bookID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrBookNotFound, bookID)
	}
	if err != nil {
		return nil, fmt.Errorf("query book %d: %w", bookID, err)
	}
	return &book, nil
}

// RecordInteraction appends one interaction to the log. A repeated view
// of the same book inside the dedup window is dropped and reported as
// recorded=false; all other types always append.
func (s *Store) RecordInteraction(ctx context.Context, userID, bookID int, typ recommend.InteractionType) (bool, error) {
	if !typ.Valid() {
		return false, fmt.Errorf("%w: %q", recommend.ErrInvalidInteractionType, string(typ))
	}
	if _, err := s.GetBook(ctx, bookID); err != nil {
		return false, err
	}

	if typ == recommend.InteractionView {
		var count int64
		cutoff := time.Now().Add(-viewDedupWindow)
		err := s.db.WithContext(ctx).
			Model(&models.Interaction{}).
			Where("user_id = ? AND book_id = ? AND interaction_type = ? AND created_at > ?",
				userID, bookID, string(recommend.InteractionView), cutoff).
			Count(&count).Error
		if err != nil {
			return false, fmt.Errorf("check recent views: %w", err)
		}
		if count > 0 {
			s.logger.Debug().
				Int("user_id", userID).
				Int("book_id", bookID).
				Msg("duplicate view suppressed")
			return false, nil
		}
	}

	row := models.Interaction{
		UserID:    userID,
		BookID:    bookID,
		Type:      string(typ),
		CreatedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return false, fmt.Errorf("record interaction: %w", err)
	}
	return true, nil
}

// toEngineBook converts a persistent book into the engine's view.
func toEngineBook(b *models.Book) recommend.Book {
	return recommend.Book{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		Title:       b.Title,
		Author:      b.Author,
		Category:    b.Category,
		Condition:   b.Condition,
		Description: b.Description,
		Available:   b.Available,
		CreatedAt:   b.CreatedAt,
	}
}

// toEngineInteraction converts a persistent interaction into the engine's
// view.
func toEngineInteraction(i *models.Interaction) recommend.Interaction {
	return recommend.Interaction{
		UserID:    i.UserID,
		BookID:    i.BookID,
		Type:      recommend.InteractionType(i.Type),
		CreatedAt: i.CreatedAt,
	}
}
