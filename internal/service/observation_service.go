package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"weekly-planner/backend/internal/dto"
	"weekly-planner/backend/internal/model"
	"weekly-planner/backend/internal/repository"
)

// ObservationService 周备注业务接口
type ObservationService interface {
	ListByWeek(ctx context.Context, weekID uint) ([]dto.ObservationResponse, error)
	// Get 不存在时返回 nil, nil
	Get(ctx context.Context, weekID, personID uint) (*dto.ObservationResponse, error)
	// Upsert 文本去空白后为空则删除并返回 nil
	Upsert(ctx context.Context, weekID, personID uint, req *dto.UpsertObservationRequest) (*dto.ObservationResponse, error)
}

type observationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewObservationService 创建 ObservationService 实例
func NewObservationService(repo *repository.Repository, logger *zap.Logger) ObservationService {
	return &observationService{repo: repo, logger: logger}
}

// ────────────────────── ListByWeek ──────────────────────

func (s *observationService) ListByWeek(ctx context.Context, weekID uint) ([]dto.ObservationResponse, error) {
	if _, err := findWeek(ctx, s.repo, weekID); err != nil {
		if !errors.Is(err, ErrWeekNotFound) {
			s.logger.Error("查询周失败", zap.Uint("week_id", weekID), zap.Error(err))
		}
		return nil, err
	}

	obs, err := s.repo.Observation.ListByWeek(ctx, weekID)
	if err != nil {
		s.logger.Error("查询周备注失败", zap.Uint("week_id", weekID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ObservationResponse, 0, len(obs))
	for i := range obs {
		result = append(result, toObservationResponse(&obs[i]))
	}
	return result, nil
}

// ────────────────────── Get ──────────────────────

func (s *observationService) Get(ctx context.Context, weekID, personID uint) (*dto.ObservationResponse, error) {
	obs, err := s.repo.Observation.GetByWeekAndPerson(ctx, weekID, personID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("查询备注失败", zap.Uint("week_id", weekID), zap.Uint("person_id", personID), zap.Error(err))
		return nil, err
	}
	resp := toObservationResponse(obs)
	return &resp, nil
}

// ────────────────────── Upsert ──────────────────────

func (s *observationService) Upsert(ctx context.Context, weekID, personID uint, req *dto.UpsertObservationRequest) (*dto.ObservationResponse, error) {
	text := strings.TrimSpace(req.Text)

	var saved *model.Observation
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := loadWritableWeek(ctx, tx, weekID); err != nil {
			return err
		}
		if err := requirePerson(ctx, tx, personID); err != nil {
			return err
		}

		if text == "" {
			_, err := tx.Observation.DeleteByWeekAndPerson(ctx, weekID, personID)
			return err
		}

		var err error
		saved, err = tx.Observation.Upsert(ctx, weekID, personID, text)
		return err
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("写入备注失败", zap.Uint("week_id", weekID), zap.Uint("person_id", personID), zap.Error(err))
		}
		return nil, err
	}

	if saved == nil {
		return nil, nil
	}
	resp := toObservationResponse(saved)
	return &resp, nil
}
