package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/madhava-poojari/swimschool-api/internal/models"
	"github.com/madhava-poojari/swimschool-api/internal/utils"
)

/* ------------------ Refresh token methods ------------------ */

// SaveRefreshToken stores a hashed token and its expiry.
func (s *Store) SaveRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	rt := models.RefreshToken{
		ID:        utils.GenerateID(),
		UserID:    userID,
		TokenHash: tokenHash,
		IssuedAt:  time.Now(),
		ExpiresAt: expiresAt,
	}
	return s.DB.WithContext(ctx).Create(&rt).Error
}

// RevokeRefreshToken marks token revoked
func (s *Store) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	return s.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).Update("revoked", true).Error
}

// RotateRefreshToken revokes the old token and creates a new one for the same user.
func (s *Store) RotateRefreshToken(ctx context.Context, oldHash, newHash string, newExpiry time.Time) (string, error) {
	var userID string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var old models.RefreshToken
		if err := tx.Where("token_hash = ? AND revoked = false AND expires_at > ?", oldHash, time.Now()).First(&old).Error; err != nil {
			return notFound(err)
		}
		// the revoked = false guard loses the race for a concurrent rotation of the same token
		res := tx.Model(&models.RefreshToken{}).Where("id = ? AND revoked = false", old.ID).Update("revoked", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound(gorm.ErrRecordNotFound)
		}
		newRT := models.RefreshToken{
			ID:        utils.GenerateID(),
			UserID:    old.UserID,
			TokenHash: newHash,
			IssuedAt:  time.Now(),
			ExpiresAt: newExpiry,
		}
		if err := tx.Create(&newRT).Error; err != nil {
			return err
		}
		userID = old.UserID
		return nil
	})
	return userID, err
}

func (s *Store) DeleteExpiredTokens(ctx context.Context) error {
	return s.DB.WithContext(ctx).Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{}).Error
}
