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

// ── 条目模块业务错误 ──

var (
	ErrItemNotFound      = errors.New("Item não encontrado")
	ErrItemTitleRequired = errors.New("Título é obrigatório")
	ErrItemInvalid       = errors.New("Item informado não existe")
)

// ItemService 活动条目业务接口
type ItemService interface {
	List(ctx context.Context, req *dto.ItemListRequest) ([]dto.ItemResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.ItemResponse, error)
	Create(ctx context.Context, req *dto.CreateItemRequest) (*dto.ItemResponse, error)
	// Update 缺失字段保持不变；description / suggested_sector_id 为 null 时清空
	Update(ctx context.Context, id uint, req *dto.UpdateItemRequest) (*dto.ItemResponse, error)
	ToggleActive(ctx context.Context, id uint) (*dto.ItemResponse, error)
	Delete(ctx context.Context, id uint) error
}

type itemService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewItemService 创建 ItemService 实例
func NewItemService(repo *repository.Repository, logger *zap.Logger) ItemService {
	return &itemService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *itemService) List(ctx context.Context, req *dto.ItemListRequest) ([]dto.ItemResponse, error) {
	items, err := s.repo.Item.List(ctx, repository.ItemFilter{
		SuggestedSectorID: req.SuggestedSectorID,
		Active:            req.Active,
	})
	if err != nil {
		s.logger.Error("列出条目失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		result = append(result, toItemResponse(&items[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *itemService) GetByID(ctx context.Context, id uint) (*dto.ItemResponse, error) {
	item, err := s.repo.Item.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		s.logger.Error("查询条目失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	resp := toItemResponse(item)
	return &resp, nil
}

// ────────────────────── Create ──────────────────────

func (s *itemService) Create(ctx context.Context, req *dto.CreateItemRequest) (*dto.ItemResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrItemTitleRequired
	}
	if req.SuggestedSectorID != nil {
		if err := requireSector(ctx, s.repo, *req.SuggestedSectorID); err != nil {
			return nil, err
		}
	}

	item := &model.Item{
		Title:             title,
		Description:       trimOptional(req.Description),
		SuggestedSectorID: req.SuggestedSectorID,
		Color:             req.Color,
		Active:            true,
	}
	if item.Color == "" {
		item.Color = model.DefaultItemColor
	}
	if req.Active != nil {
		item.Active = *req.Active
	}

	if err := s.repo.Item.Create(ctx, item); err != nil {
		s.logger.Error("创建条目失败", zap.String("title", title), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, item.ID)
}

// ────────────────────── Update ──────────────────────

func (s *itemService) Update(ctx context.Context, id uint, req *dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := s.repo.Item.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		s.logger.Error("查询条目失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrItemTitleRequired
		}
		item.Title = title
	}
	if req.Description.Set {
		item.Description = trimOptional(req.Description.Value)
	}
	if req.SuggestedSectorID.Set {
		if v := req.SuggestedSectorID.Value; v != nil {
			if err := requireSector(ctx, s.repo, *v); err != nil {
				return nil, err
			}
		}
		item.SuggestedSectorID = req.SuggestedSectorID.Value
		item.SuggestedSector = nil
	}
	if req.Color != nil {
		item.Color = *req.Color
	}
	if req.Active != nil {
		item.Active = *req.Active
	}

	if err := s.repo.Item.Update(ctx, item); err != nil {
		s.logger.Error("更新条目失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── ToggleActive ──────────────────────

func (s *itemService) ToggleActive(ctx context.Context, id uint) (*dto.ItemResponse, error) {
	item, err := s.repo.Item.ToggleActive(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		s.logger.Error("切换条目状态失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	resp := toItemResponse(item)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *itemService) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Item.Delete(ctx, id)
	if err != nil {
		s.logger.Error("删除条目失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if !deleted {
		return ErrItemNotFound
	}
	return nil
}

// requireItem 外键引用的条目不存在时返回 ErrItemInvalid
func requireItem(ctx context.Context, repo *repository.Repository, itemID uint) error {
	if _, err := repo.Item.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemInvalid
		}
		return err
	}
	return nil
}
