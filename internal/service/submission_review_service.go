package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/dto"
	"github.com/chenaniah/academy-api/internal/models"
	"github.com/chenaniah/academy-api/internal/repository"
)

// ErrSubmissionNotFound indicates the submission does not exist.
var ErrSubmissionNotFound = errors.New("submission not found")

const submissionStatsCacheKey = "stats:submissions"

// SubmissionReviewService handles admin review of applicant submissions.
type SubmissionReviewService interface {
	List(ctx context.Context, query dto.SubmissionListQuery) ([]models.Submission, dto.Pagination, error)
	Get(ctx context.Context, id uint) (models.Submission, error)
	UpdateStatus(ctx context.Context, id uint, payload dto.SubmissionStatusUpdateRequest, reviewer string) (models.Submission, error)
	Stats(ctx context.Context) (dto.SubmissionStatsResponse, error)
}

type submissionReviewService struct {
	submissions repository.SubmissionRepository
	validator   *validator.Validate
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewSubmissionReviewService constructs the submission review service.
func NewSubmissionReviewService(submissionRepo repository.SubmissionRepository, validate *validator.Validate, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) SubmissionReviewService {
	return &submissionReviewService{
		submissions: submissionRepo,
		validator:   validate,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger.With().Str("component", "submission_review_service").Logger(),
	}
}

func (s *submissionReviewService) List(ctx context.Context, query dto.SubmissionListQuery) ([]models.Submission, dto.Pagination, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, dto.Pagination{}, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := repository.SubmissionFilter{
		Status: query.Status,
		Search: query.Search,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	total, err := s.submissions.Count(ctx, filter)
	if err != nil {
		return nil, dto.Pagination{}, err
	}

	submissions, err := s.submissions.List(ctx, filter)
	if err != nil {
		return nil, dto.Pagination{}, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	pagination := dto.Pagination{
		Page:       page,
		Limit:      limit,
		TotalCount: total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}

	return submissions, pagination, nil
}

func (s *submissionReviewService) Get(ctx context.Context, id uint) (models.Submission, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Submission{}, ErrSubmissionNotFound
		}
		return models.Submission{}, err
	}

	return submission, nil
}

func (s *submissionReviewService) UpdateStatus(ctx context.Context, id uint, payload dto.SubmissionStatusUpdateRequest, reviewer string) (models.Submission, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Submission{}, NewBusinessError("Status must be one of pending, approved or rejected", CodeValidationError)
	}

	if _, err := s.Get(ctx, id); err != nil {
		return models.Submission{}, err
	}

	var reviewedBy *string
	if reviewer != "" {
		reviewedBy = &reviewer
	}

	if err := s.submissions.UpdateStatus(ctx, id, payload.Status, payload.Comments, reviewedBy); err != nil {
		return models.Submission{}, err
	}

	s.invalidateStats(ctx)
	s.logger.Info().Uint("submission_id", id).Str("status", payload.Status).Msg("submission reviewed")

	return s.Get(ctx, id)
}

func (s *submissionReviewService) Stats(ctx context.Context) (dto.SubmissionStatsResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, submissionStatsCacheKey).Result(); err == nil {
			var stats dto.SubmissionStatsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &stats); unmarshalErr == nil {
				return stats, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read stats cache")
		}
	}

	counts, err := s.submissions.CountByStatus(ctx)
	if err != nil {
		return dto.SubmissionStatsResponse{}, err
	}

	stats := dto.SubmissionStatsResponse{
		Pending:  counts[models.SubmissionStatusPending],
		Approved: counts[models.SubmissionStatusApproved],
		Rejected: counts[models.SubmissionStatusRejected],
	}
	stats.Total = stats.Pending + stats.Approved + stats.Rejected

	if s.cache != nil {
		if payload, marshalErr := json.Marshal(stats); marshalErr == nil {
			if err := s.cache.Set(ctx, submissionStatsCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store stats cache")
			}
		}
	}

	return stats, nil
}

func (s *submissionReviewService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, submissionStatsCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate stats cache")
	}
}
