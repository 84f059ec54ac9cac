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

// ── 人员模块业务错误 ──

var (
	ErrPersonNotFound     = errors.New("Pessoa não encontrada")
	ErrPersonNameRequired = errors.New("Nome é obrigatório")
	ErrPersonInvalid      = errors.New("Pessoa informada não existe")
	ErrSectorInvalid      = errors.New("Setor informado não existe")
)

// PersonService 人员业务接口
type PersonService interface {
	List(ctx context.Context, req *dto.PersonListRequest) ([]dto.PersonResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.PersonResponse, error)
	Create(ctx context.Context, req *dto.CreatePersonRequest) (*dto.PersonResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdatePersonRequest) (*dto.PersonResponse, error)
	ToggleActive(ctx context.Context, id uint) (*dto.PersonResponse, error)
	// Delete 不检查历史分配，分配与备注保留为孤立记录
	Delete(ctx context.Context, id uint) error
}

type personService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPersonService 创建 PersonService 实例
func NewPersonService(repo *repository.Repository, logger *zap.Logger) PersonService {
	return &personService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *personService) List(ctx context.Context, req *dto.PersonListRequest) ([]dto.PersonResponse, error) {
	people, err := s.repo.Person.List(ctx, repository.PersonFilter{
		SectorID: req.SectorID,
		Active:   req.Active,
	})
	if err != nil {
		s.logger.Error("列出人员失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.PersonResponse, 0, len(people))
	for i := range people {
		result = append(result, toPersonResponse(&people[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *personService) GetByID(ctx context.Context, id uint) (*dto.PersonResponse, error) {
	person, err := s.repo.Person.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		s.logger.Error("查询人员失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	resp := toPersonResponse(person)
	return &resp, nil
}

// ────────────────────── Create ──────────────────────

func (s *personService) Create(ctx context.Context, req *dto.CreatePersonRequest) (*dto.PersonResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrPersonNameRequired
	}
	if err := requireSector(ctx, s.repo, req.SectorID); err != nil {
		return nil, err
	}

	person := &model.Person{Name: name, SectorID: req.SectorID, Active: true}
	if req.Active != nil {
		person.Active = *req.Active
	}
	if req.Order != nil {
		person.SortOrder = *req.Order
	}

	if err := s.repo.Person.Create(ctx, person); err != nil {
		s.logger.Error("创建人员失败", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, person.ID)
}

// ────────────────────── Update ──────────────────────

func (s *personService) Update(ctx context.Context, id uint, req *dto.UpdatePersonRequest) (*dto.PersonResponse, error) {
	person, err := s.repo.Person.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		s.logger.Error("查询人员失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrPersonNameRequired
		}
		person.Name = name
	}
	if req.SectorID != nil && *req.SectorID != person.SectorID {
		if err := requireSector(ctx, s.repo, *req.SectorID); err != nil {
			return nil, err
		}
		person.SectorID = *req.SectorID
		person.Sector = nil
	}
	if req.Active != nil {
		person.Active = *req.Active
	}
	if req.Order != nil {
		person.SortOrder = *req.Order
	}

	if err := s.repo.Person.Update(ctx, person); err != nil {
		s.logger.Error("更新人员失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── ToggleActive ──────────────────────

func (s *personService) ToggleActive(ctx context.Context, id uint) (*dto.PersonResponse, error) {
	person, err := s.repo.Person.ToggleActive(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		s.logger.Error("切换人员状态失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	resp := toPersonResponse(person)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *personService) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Person.Delete(ctx, id)
	if err != nil {
		s.logger.Error("删除人员失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if !deleted {
		return ErrPersonNotFound
	}
	return nil
}

// ── 引用校验 ──

// requireSector 外键引用的部门不存在时返回 ErrSectorInvalid
func requireSector(ctx context.Context, repo *repository.Repository, sectorID uint) error {
	if _, err := repo.Sector.GetByID(ctx, sectorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectorInvalid
		}
		return err
	}
	return nil
}

// requirePerson 外键引用的人员不存在时返回 ErrPersonInvalid
func requirePerson(ctx context.Context, repo *repository.Repository, personID uint) error {
	if _, err := repo.Person.GetByID(ctx, personID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPersonInvalid
		}
		return err
	}
	return nil
}
