package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Sector      SectorRepository
	Person      PersonRepository
	Item        ItemRepository
	Week        WeekRepository
	Allocation  AllocationRepository
	Observation ObservationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:          db,
		Sector:      NewSectorRepo(db),
		Person:      NewPersonRepo(db),
		Item:        NewItemRepo(db),
		Week:        NewWeekRepo(db),
		Allocation:  NewAllocationRepo(db),
		Observation: NewObservationRepo(db),
	}
}

// BeginTx 开启事务；未持有连接（测试中的 mock 聚合）时返回 nil
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	return tx, tx.Error
}

// WithTx 返回绑定到事务连接的 Repository 聚合
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// Transaction 在单个事务内执行 fn，fn 返回错误或 panic 时整体回滚
// 未持有连接时直接以自身执行 fn
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
