package repository

import (
	"context"
	"fmt"

	"github.com/betterfund/betterfund-api/internal/domain"
	"github.com/betterfund/betterfund-api/internal/repository/dao"
)

type StoryDAO interface {
	Insert(ctx context.Context, story dao.SuccessStory) (dao.SuccessStory, error)
	FindRecent(ctx context.Context, limit int) ([]dao.SuccessStory, error)
	FindByID(ctx context.Context, id uint) (dao.SuccessStory, error)
	Delete(ctx context.Context, id uint) error
	FindCompletedCampaignsWithoutStory(ctx context.Context) ([]dao.Campaign, error)
}

type StoryRepository struct {
	dao StoryDAO
}

func NewStoryRepository(dao StoryDAO) *StoryRepository {
	return &StoryRepository{
		dao: dao,
	}
}

func (r *StoryRepository) Create(ctx context.Context, story domain.SuccessStory) (domain.SuccessStory, error) {
	created, err := r.dao.Insert(ctx, dao.SuccessStory{
		CampaignID: story.CampaignID,
		Updates:    story.Updates,
		FundRaised: story.FundRaised,
		Image:      story.Image,
	})
	if err != nil {
		return domain.SuccessStory{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

// FindRecent returns summaries of the newest stories, already joined
// with their campaign and creator.
func (r *StoryRepository) FindRecent(ctx context.Context, limit int) ([]domain.StorySummary, error) {
	found, err := r.dao.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRecent -> %w", err)
	}

	summaries := make([]domain.StorySummary, 0, len(found))
	for _, s := range found {
		summaries = append(summaries, domain.StorySummary{
			SuccessID:         s.ID,
			CampaignID:        s.CampaignID,
			CampaignTitle:     s.Campaign.Title,
			CampaignStartDate: s.Campaign.StartDate,
			CampaignEndDate:   s.Campaign.EndDate,
			UserName:          s.Campaign.User.Username,
			Updates:           s.Updates,
			FundRaised:        s.FundRaised,
			ImageURL:          fmt.Sprintf("/api/successstories/image/%d", s.ID),
		})
	}

	return summaries, nil
}

func (r *StoryRepository) FindByID(ctx context.Context, id uint) (domain.SuccessStory, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.SuccessStory{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StoryRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *StoryRepository) FindCompletedCampaignsWithoutStory(ctx context.Context) ([]domain.Campaign, error) {
	found, err := r.dao.FindCompletedCampaignsWithoutStory(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindCompletedCampaignsWithoutStory -> %w", err)
	}

	campaigns := make([]domain.Campaign, 0, len(found))
	for _, c := range found {
		campaigns = append(campaigns, domain.Campaign{
			ID:     c.ID,
			Title:  c.Title,
			Status: c.Status,
		})
	}

	return campaigns, nil
}

func (r *StoryRepository) daoToDomain(s dao.SuccessStory) domain.SuccessStory {
	return domain.SuccessStory{
		ID:         s.ID,
		CampaignID: s.CampaignID,
		Updates:    s.Updates,
		FundRaised: s.FundRaised,
		Image:      s.Image,
		CreatedAt:  s.CreatedAt,
	}
}

type CommentDAO interface {
	Insert(ctx context.Context, comment dao.Comment) (dao.Comment, error)
	FindByCampaignID(ctx context.Context, campaignID uint) ([]dao.Comment, error)
}

type CommentRepository struct {
	dao CommentDAO
}

func NewCommentRepository(dao CommentDAO) *CommentRepository {
	return &CommentRepository{
		dao: dao,
	}
}

func (r *CommentRepository) Create(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	created, err := r.dao.Insert(ctx, dao.Comment{
		CampaignID: comment.CampaignID,
		Author:     comment.Author,
		Content:    comment.Content,
	})
	if err != nil {
		return domain.Comment{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.commentDaoToDomain(created), nil
}

func (r *CommentRepository) FindByCampaignID(ctx context.Context, campaignID uint) ([]domain.Comment, error) {
	found, err := r.dao.FindByCampaignID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByCampaignID -> %w", err)
	}

	comments := make([]domain.Comment, 0, len(found))
	for _, c := range found {
		comments = append(comments, r.commentDaoToDomain(c))
	}

	return comments, nil
}

func (r *CommentRepository) commentDaoToDomain(c dao.Comment) domain.Comment {
	return domain.Comment{
		ID:         c.ID,
		CampaignID: c.CampaignID,
		Author:     c.Author,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
	}
}
