package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrStoryNotFound = errors.New("success story not found")
	ErrStoryExists   = errors.New("success story already exists for this campaign")
)

type SuccessStory struct {
	ID         uint            `gorm:"primaryKey"`
	CampaignID uint            `gorm:"unique;not null"`
	Campaign   Campaign        `gorm:"foreignKey:CampaignID"`
	Updates    string          `gorm:"not null"`
	FundRaised decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Image      []byte
	CreatedAt  time.Time `gorm:"not null"`
}

type Comment struct {
	ID         uint   `gorm:"primaryKey"`
	CampaignID uint   `gorm:"not null;index"`
	Author     string `gorm:"not null"`
	Content    string `gorm:"not null"`
	CreatedAt  time.Time
}

type StoryDAO struct {
	db *gorm.DB
}

func NewStoryDAO(db *gorm.DB) *StoryDAO {
	return &StoryDAO{
		db: db,
	}
}

func (d *StoryDAO) Insert(ctx context.Context, story SuccessStory) (SuccessStory, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&SuccessStory{}).
		Where("campaign_id = ?", story.CampaignID).
		Count(&count).Error; err != nil {
		return SuccessStory{}, err
	}
	if count > 0 {
		return SuccessStory{}, ErrStoryExists
	}

	result := d.db.WithContext(ctx).Create(&story)
	if result.Error != nil {
		return SuccessStory{}, result.Error
	}

	return story, nil
}

// FindRecent returns the newest stories first, with campaign and
// creator preloaded for the listing projection.
func (d *StoryDAO) FindRecent(ctx context.Context, limit int) ([]SuccessStory, error) {
	var stories []SuccessStory

	result := d.db.WithContext(ctx).
		Preload("Campaign.User").
		Order("id DESC").
		Limit(limit).
		Find(&stories)
	if result.Error != nil {
		return nil, result.Error
	}

	return stories, nil
}

func (d *StoryDAO) FindByID(ctx context.Context, id uint) (SuccessStory, error) {
	var story SuccessStory

	result := d.db.WithContext(ctx).First(&story, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return SuccessStory{}, ErrStoryNotFound
		}

		return SuccessStory{}, result.Error
	}

	return story, nil
}

func (d *StoryDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&SuccessStory{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrStoryNotFound
	}

	return nil
}

// FindCompletedCampaignsWithoutStory lists completed campaigns that do
// not yet have a success story attached.
func (d *StoryDAO) FindCompletedCampaignsWithoutStory(ctx context.Context) ([]Campaign, error) {
	var campaigns []Campaign

	result := d.db.WithContext(ctx).
		Where("status = ?", "completed").
		Where("id NOT IN (?)", d.db.Model(&SuccessStory{}).Select("campaign_id")).
		Find(&campaigns)
	if result.Error != nil {
		return nil, result.Error
	}

	return campaigns, nil
}

type CommentDAO struct {
	db *gorm.DB
}

func NewCommentDAO(db *gorm.DB) *CommentDAO {
	return &CommentDAO{
		db: db,
	}
}

func (d *CommentDAO) Insert(ctx context.Context, comment Comment) (Comment, error) {
	result := d.db.WithContext(ctx).Create(&comment)
	if result.Error != nil {
		return Comment{}, result.Error
	}

	return comment, nil
}

func (d *CommentDAO) FindByCampaignID(ctx context.Context, campaignID uint) ([]Comment, error) {
	var comments []Comment

	result := d.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("created_at DESC").
		Find(&comments)
	if result.Error != nil {
		return nil, result.Error
	}

	return comments, nil
}
