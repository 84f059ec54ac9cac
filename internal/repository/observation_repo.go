package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"weekly-planner/backend/internal/model"
)

// ObservationRepository 周备注数据访问接口
type ObservationRepository interface {
	ListByWeek(ctx context.Context, weekID uint) ([]model.Observation, error)
	GetByWeekAndPerson(ctx context.Context, weekID, personID uint) (*model.Observation, error)
	// Upsert 以 (week_id, person_id) 为冲突键写入
	Upsert(ctx context.Context, weekID, personID uint, text string) (*model.Observation, error)
	DeleteByWeekAndPerson(ctx context.Context, weekID, personID uint) (bool, error)
}

// observationRepo ObservationRepository 的 GORM 实现
type observationRepo struct {
	db *gorm.DB
}

// NewObservationRepo 创建 ObservationRepository 实例
func NewObservationRepo(db *gorm.DB) ObservationRepository {
	return &observationRepo{db: db}
}

func (r *observationRepo) ListByWeek(ctx context.Context, weekID uint) ([]model.Observation, error) {
	var obs []model.Observation
	err := r.db.WithContext(ctx).
		Where("week_id = ?", weekID).
		Order("person_id ASC").
		Find(&obs).Error
	return obs, err
}

func (r *observationRepo) GetByWeekAndPerson(ctx context.Context, weekID, personID uint) (*model.Observation, error) {
	var obs model.Observation
	err := r.db.WithContext(ctx).
		Where("week_id = ? AND person_id = ?", weekID, personID).
		First(&obs).Error
	if err != nil {
		return nil, err
	}
	return &obs, nil
}

func (r *observationRepo) Upsert(ctx context.Context, weekID, personID uint, text string) (*model.Observation, error) {
	obs := &model.Observation{WeekID: weekID, PersonID: personID, Text: text}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "week_id"}, {Name: "person_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"text":       text,
				"updated_at": time.Now(),
			}),
		}).
		Create(obs).Error
	if err != nil {
		return nil, err
	}
	return r.GetByWeekAndPerson(ctx, weekID, personID)
}

func (r *observationRepo) DeleteByWeekAndPerson(ctx context.Context, weekID, personID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("week_id = ? AND person_id = ?", weekID, personID).
		Delete(&model.Observation{})
	return result.RowsAffected > 0, result.Error
}
