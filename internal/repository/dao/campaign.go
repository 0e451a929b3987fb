package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCampaignNotFound   = errors.New("campaign not found")
	ErrCampaignNotPending = errors.New("campaign is not pending")
	ErrDocumentNotFound   = errors.New("document not found")
)

type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"unique;not null"`
}

type Wallet struct {
	ID           uint            `gorm:"primaryKey"`
	UserID       uint            `gorm:"not null"`
	Amount       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CurBalance   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreationDate time.Time       `gorm:"type:date;not null"`
}

type Document struct {
	ID          uint   `gorm:"primaryKey"`
	Content     []byte `gorm:"not null"`
	ContentType string
	FileName    string
}

type Campaign struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Description string
	StartDate   time.Time       `gorm:"type:date;not null"`
	EndDate     time.Time       `gorm:"type:date;not null"`
	TargetAmt   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status      string          `gorm:"not null;default:pending"`

	UserID     uint     `gorm:"not null"`
	User       User     `gorm:"foreignKey:UserID"`
	CategoryID uint     `gorm:"not null"`
	Category   Category `gorm:"foreignKey:CategoryID"`
	WalletID   uint     `gorm:"not null"`
	Wallet     Wallet   `gorm:"foreignKey:WalletID"`
	DocumentID uint     `gorm:"not null"`
	Document   Document `gorm:"foreignKey:DocumentID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type CampaignDAO struct {
	db *gorm.DB
}

func NewCampaignDAO(db *gorm.DB) *CampaignDAO {
	return &CampaignDAO{
		db: db,
	}
}

// InsertCampaignGraph writes the whole campaign creation in one
// transaction: the creator's role promotion, the document, a zero
// wallet and the pending campaign row. Any failure rolls back all of it.
func (d *CampaignDAO) InsertCampaignGraph(ctx context.Context, userID, creatorRoleID uint, doc Document, campaign Campaign) (Campaign, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&User{}).Where("id = ?", userID).Update("role_id", creatorRoleID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		if err := tx.Create(&doc).Error; err != nil {
			return err
		}

		wallet := Wallet{
			UserID:       userID,
			Amount:       decimal.Zero,
			CurBalance:   decimal.Zero,
			CreationDate: time.Now(),
		}
		if err := tx.Create(&wallet).Error; err != nil {
			return err
		}

		campaign.UserID = userID
		campaign.WalletID = wallet.ID
		campaign.DocumentID = doc.ID
		campaign.Status = "pending"
		if err := tx.Create(&campaign).Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return Campaign{}, err
	}

	return d.FindByID(ctx, campaign.ID)
}

func (d *CampaignDAO) FindByID(ctx context.Context, id uint) (Campaign, error) {
	var campaign Campaign

	result := d.db.WithContext(ctx).
		Preload("User.Role").
		Preload("Category").
		Preload("Wallet").
		First(&campaign, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Campaign{}, ErrCampaignNotFound
		}

		return Campaign{}, result.Error
	}

	return campaign, nil
}

func (d *CampaignDAO) FindByStatus(ctx context.Context, status string) ([]Campaign, error) {
	var campaigns []Campaign

	result := d.db.WithContext(ctx).
		Preload("User.Role").
		Preload("Category").
		Preload("Wallet").
		Where("status = ?", status).
		Find(&campaigns)
	if result.Error != nil {
		return nil, result.Error
	}

	return campaigns, nil
}

// UpdateStatus moves a campaign from one status to another. The guard
// on the current status keeps a concurrent approve/reject from racing.
func (d *CampaignDAO) UpdateStatus(ctx context.Context, id uint, from, to string) error {
	result := d.db.WithContext(ctx).
		Model(&Campaign{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := d.db.WithContext(ctx).Model(&Campaign{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrCampaignNotFound
		}

		return ErrCampaignNotPending
	}

	return nil
}

func (d *CampaignDAO) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Campaign{}).Where("status = ?", status).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// SumRaisedFunds totals every campaign wallet's amount.
func (d *CampaignDAO) SumRaisedFunds(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal

	row := d.db.WithContext(ctx).Model(&Wallet{}).Select("COALESCE(SUM(amount), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

func (d *CampaignDAO) FindCategoryByID(ctx context.Context, id uint) (Category, error) {
	var category Category

	result := d.db.WithContext(ctx).First(&category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Category{}, ErrCategoryNotFound
		}

		return Category{}, result.Error
	}

	return category, nil
}

func (d *CampaignDAO) FindDocumentByID(ctx context.Context, id uint) (Document, error) {
	var doc Document

	result := d.db.WithContext(ctx).First(&doc, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Document{}, ErrDocumentNotFound
		}

		return Document{}, result.Error
	}

	return doc, nil
}
