package service

import (
	"strings"

	"weekly-planner/backend/internal/dto"
	"weekly-planner/backend/internal/model"
)

// ── 模型 → 响应 ──

func toSectorResponse(s *model.Sector) dto.SectorResponse {
	return dto.SectorResponse{
		ID:        s.ID,
		Name:      s.Name,
		Order:     s.SortOrder,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toPersonResponse(p *model.Person) dto.PersonResponse {
	resp := dto.PersonResponse{
		ID:        p.ID,
		Name:      p.Name,
		SectorID:  p.SectorID,
		Active:    p.Active,
		Order:     p.SortOrder,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Sector != nil {
		sector := toSectorResponse(p.Sector)
		resp.Sector = &sector
	}
	return resp
}

func toItemResponse(it *model.Item) dto.ItemResponse {
	resp := dto.ItemResponse{
		ID:                it.ID,
		Title:             it.Title,
		Description:       it.Description,
		SuggestedSectorID: it.SuggestedSectorID,
		Color:             it.Color,
		Active:            it.Active,
		CreatedAt:         it.CreatedAt,
		UpdatedAt:         it.UpdatedAt,
	}
	if it.SuggestedSector != nil {
		sector := toSectorResponse(it.SuggestedSector)
		resp.SuggestedSector = &sector
	}
	return resp
}

func toWeekResponse(w *model.Week) dto.WeekResponse {
	return dto.WeekResponse{
		ID:        w.ID,
		StartDate: w.StartDate,
		EndDate:   w.EndDate,
		Status:    w.Status,
		ClosedAt:  w.ClosedAt,
		ClosedBy:  w.ClosedBy,
		CreatedAt: w.CreatedAt,
	}
}

func toAllocationResponse(a *model.Allocation) dto.AllocationResponse {
	resp := dto.AllocationResponse{
		ID:        a.ID,
		WeekID:    a.WeekID,
		PersonID:  a.PersonID,
		ItemID:    a.ItemID,
		Date:      a.Date,
		Order:     a.SortOrder,
		Status:    a.Status,
		Comment:   a.Comment,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	// 条目被删除后保留分配，item 输出为 null
	if a.Item != nil {
		resp.Item = &dto.AllocationItem{ID: a.Item.ID, Title: a.Item.Title, Color: a.Item.Color}
	}
	return resp
}

func toObservationResponse(o *model.Observation) dto.ObservationResponse {
	return dto.ObservationResponse{
		ID:        o.ID,
		WeekID:    o.WeekID,
		PersonID:  o.PersonID,
		Text:      o.Text,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// trimOptional 去除首尾空白，空串视为 nil
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
