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

// ── 部门模块业务错误 ──

var (
	ErrSectorNotFound     = errors.New("Setor não encontrado")
	ErrSectorNameRequired = errors.New("Nome é obrigatório")
	ErrSectorNameExists   = errors.New("Já existe um setor com este nome")
	ErrSectorHasPeople    = errors.New("Não é possível excluir setor com pessoas vinculadas")
)

// SectorService 部门业务接口
type SectorService interface {
	List(ctx context.Context) ([]dto.SectorResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.SectorResponse, error)
	Create(ctx context.Context, req *dto.CreateSectorRequest) (*dto.SectorResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateSectorRequest) (*dto.SectorResponse, error)
	// Delete 仍有人员引用时返回 ErrSectorHasPeople
	Delete(ctx context.Context, id uint) error
}

type sectorService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSectorService 创建 SectorService 实例
func NewSectorService(repo *repository.Repository, logger *zap.Logger) SectorService {
	return &sectorService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *sectorService) List(ctx context.Context) ([]dto.SectorResponse, error) {
	sectors, err := s.repo.Sector.List(ctx)
	if err != nil {
		s.logger.Error("列出部门失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SectorResponse, 0, len(sectors))
	for i := range sectors {
		result = append(result, toSectorResponse(&sectors[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *sectorService) GetByID(ctx context.Context, id uint) (*dto.SectorResponse, error) {
	sector, err := s.repo.Sector.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectorNotFound
		}
		s.logger.Error("查询部门失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	resp := toSectorResponse(sector)
	return &resp, nil
}

// ────────────────────── Create ──────────────────────

func (s *sectorService) Create(ctx context.Context, req *dto.CreateSectorRequest) (*dto.SectorResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrSectorNameRequired
	}
	if err := s.ensureNameAvailable(ctx, name, 0); err != nil {
		return nil, err
	}

	sector := &model.Sector{Name: name}
	if req.Order != nil {
		sector.SortOrder = *req.Order
	}

	if err := s.repo.Sector.Create(ctx, sector); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSectorNameExists
		}
		s.logger.Error("创建部门失败", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	resp := toSectorResponse(sector)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *sectorService) Update(ctx context.Context, id uint, req *dto.UpdateSectorRequest) (*dto.SectorResponse, error) {
	sector, err := s.repo.Sector.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectorNotFound
		}
		s.logger.Error("查询部门失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrSectorNameRequired
		}
		if name != sector.Name {
			if err := s.ensureNameAvailable(ctx, name, id); err != nil {
				return nil, err
			}
		}
		sector.Name = name
	}
	if req.Order != nil {
		sector.SortOrder = *req.Order
	}

	if err := s.repo.Sector.Update(ctx, sector); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSectorNameExists
		}
		s.logger.Error("更新部门失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	resp := toSectorResponse(sector)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *sectorService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Sector.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectorNotFound
		}
		s.logger.Error("查询部门失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	count, err := s.repo.Sector.CountPeople(ctx, id)
	if err != nil {
		s.logger.Error("统计部门人员失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrSectorHasPeople
	}

	deleted, err := s.repo.Sector.Delete(ctx, id)
	if err != nil {
		s.logger.Error("删除部门失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if !deleted {
		return ErrSectorNotFound
	}
	return nil
}

// ── 辅助 ──

func (s *sectorService) ensureNameAvailable(ctx context.Context, name string, selfID uint) error {
	existing, err := s.repo.Sector.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		s.logger.Error("查询部门失败", zap.String("name", name), zap.Error(err))
		return err
	}
	if existing.ID != selfID {
		return ErrSectorNameExists
	}
	return nil
}
