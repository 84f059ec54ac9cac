package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"weekly-planner/backend/internal/dto"
	"weekly-planner/backend/internal/model"
	"weekly-planner/backend/internal/repository"
	"weekly-planner/backend/pkg/metrics"
	"weekly-planner/backend/pkg/weekdate"
)

// ── 周模块业务错误 ──

var (
	ErrWeekNotFound         = errors.New("Semana não encontrada")
	ErrWeekAlreadyClosed    = errors.New("Semana já está fechada")
	ErrWeekAlreadyOpen      = errors.New("Semana já está aberta")
	ErrInvalidReferenceDate = errors.New("Data de referência inválida")
)

// WeekService 计划周生命周期接口
//
// 状态机：open → closed → open，无终态。
// 仓储层的 Close / Reopen 为幂等空操作；本层对冗余迁移返回
// ErrWeekAlreadyClosed / ErrWeekAlreadyOpen。
type WeekService interface {
	// List 按起始日期倒序分页
	List(ctx context.Context, req *dto.WeekListRequest) ([]dto.WeekResponse, int64, error)
	GetByID(ctx context.Context, id uint) (*dto.WeekResponse, error)
	// Current 查找或创建包含当前日期的周
	Current(ctx context.Context) (*dto.WeekResponse, error)
	// Create 按参考日期（缺省为当前日期）查找或创建周
	Create(ctx context.Context, req *dto.CreateWeekRequest) (*dto.WeekResponse, error)
	Previous(ctx context.Context, id uint) (*dto.WeekResponse, error)
	Next(ctx context.Context, id uint) (*dto.WeekResponse, error)
	Close(ctx context.Context, id uint, req *dto.CloseWeekRequest) (*dto.WeekResponse, error)
	Reopen(ctx context.Context, id uint) (*dto.WeekResponse, error)
}

type weekService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewWeekService 创建 WeekService 实例
func NewWeekService(repo *repository.Repository, logger *zap.Logger, now func() time.Time) WeekService {
	if now == nil {
		now = time.Now
	}
	return &weekService{repo: repo, logger: logger, now: now}
}

// ────────────────────── List ──────────────────────

func (s *weekService) List(ctx context.Context, req *dto.WeekListRequest) ([]dto.WeekResponse, int64, error) {
	weeks, total, err := s.repo.Week.List(ctx, repository.WeekFilter{Status: req.Status}, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出周失败", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.WeekResponse, 0, len(weeks))
	for i := range weeks {
		list = append(list, toWeekResponse(&weeks[i]))
	}
	return list, total, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *weekService) GetByID(ctx context.Context, id uint) (*dto.WeekResponse, error) {
	week, err := s.getWeek(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toWeekResponse(week)
	return &resp, nil
}

// ────────────────────── Current / Create ──────────────────────

func (s *weekService) Current(ctx context.Context) (*dto.WeekResponse, error) {
	return s.findOrCreate(ctx, s.now())
}

func (s *weekService) Create(ctx context.Context, req *dto.CreateWeekRequest) (*dto.WeekResponse, error) {
	ref := s.now()
	if raw := strings.TrimSpace(req.ReferenceDate); raw != "" {
		parsed, err := weekdate.Parse(raw)
		if err != nil {
			return nil, ErrInvalidReferenceDate
		}
		ref = parsed
	}
	return s.findOrCreate(ctx, ref)
}

func (s *weekService) findOrCreate(ctx context.Context, ref time.Time) (*dto.WeekResponse, error) {
	bounds := weekdate.WeekBounds(ref)
	week, created, err := s.repo.Week.FindOrCreate(ctx, bounds.Start, bounds.End)
	if err != nil {
		s.logger.Error("查找或创建周失败", zap.String("start_date", bounds.Start), zap.Error(err))
		return nil, err
	}
	if created {
		s.logger.Info("创建计划周", zap.Uint("id", week.ID), zap.String("start_date", week.StartDate))
	}
	resp := toWeekResponse(week)
	return &resp, nil
}

// ────────────────────── Previous / Next ──────────────────────

func (s *weekService) Previous(ctx context.Context, id uint) (*dto.WeekResponse, error) {
	week, err := s.getWeek(ctx, id)
	if err != nil {
		return nil, err
	}
	prev, err := s.repo.Week.FindPrevious(ctx, week.StartDate)
	return s.neighbour(prev, err, id)
}

func (s *weekService) Next(ctx context.Context, id uint) (*dto.WeekResponse, error) {
	week, err := s.getWeek(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := s.repo.Week.FindNext(ctx, week.StartDate)
	return s.neighbour(next, err, id)
}

func (s *weekService) neighbour(week *model.Week, err error, id uint) (*dto.WeekResponse, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWeekNotFound
		}
		s.logger.Error("查询相邻周失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	resp := toWeekResponse(week)
	return &resp, nil
}

// ────────────────────── Close / Reopen ──────────────────────

func (s *weekService) Close(ctx context.Context, id uint, req *dto.CloseWeekRequest) (*dto.WeekResponse, error) {
	week, err := s.getWeek(ctx, id)
	if err != nil {
		return nil, err
	}
	if week.IsClosed() {
		return nil, ErrWeekAlreadyClosed
	}

	var closedBy *string
	if req != nil {
		closedBy = trimOptional(req.ClosedBy)
	}

	updated, err := s.repo.Week.Close(ctx, id, closedBy, s.now())
	if err != nil {
		s.logger.Error("关闭周失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	metrics.RecordWeekTransition("close")
	s.logger.Info("周已关闭", zap.Uint("id", id), zap.String("start_date", updated.StartDate))

	resp := toWeekResponse(updated)
	return &resp, nil
}

func (s *weekService) Reopen(ctx context.Context, id uint) (*dto.WeekResponse, error) {
	week, err := s.getWeek(ctx, id)
	if err != nil {
		return nil, err
	}
	if !week.IsClosed() {
		return nil, ErrWeekAlreadyOpen
	}

	updated, err := s.repo.Week.Reopen(ctx, id)
	if err != nil {
		s.logger.Error("重新开放周失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	metrics.RecordWeekTransition("reopen")
	s.logger.Info("周已重新开放", zap.Uint("id", id), zap.String("start_date", updated.StartDate))

	resp := toWeekResponse(updated)
	return &resp, nil
}

// ── 辅助 ──

func (s *weekService) getWeek(ctx context.Context, id uint) (*model.Week, error) {
	week, err := s.repo.Week.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWeekNotFound
		}
		s.logger.Error("查询周失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return week, nil
}
