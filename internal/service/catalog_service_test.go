package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"weekly-planner/backend/internal/dto"
	"weekly-planner/backend/internal/model"
)

// ── 测试辅助 ──

func setupTestSectorService() (SectorService, *mockRepos) {
	repos := newMockRepos()
	return NewSectorService(repos.repository(), zap.NewNop()), repos
}

func setupTestPersonService() (PersonService, *mockRepos) {
	repos := newMockRepos()
	return NewPersonService(repos.repository(), zap.NewNop()), repos
}

func setupTestItemService() (ItemService, *mockRepos) {
	repos := newMockRepos()
	return NewItemService(repos.repository(), zap.NewNop()), repos
}

func intPtr(v int) *int       { return &v }
func uintPtr(v uint) *uint    { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

// ── Sector ──

func TestSectorService_Create_Success(t *testing.T) {
	svc, _ := setupTestSectorService()

	result, err := svc.Create(context.Background(), &dto.CreateSectorRequest{Name: "  Dev  ", Order: intPtr(1)})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Name != "Dev" {
		t.Errorf("期望名称去除空白后为 Dev，实际=%q", result.Name)
	}
	if result.Order != 1 {
		t.Errorf("期望 Order=1，实际=%d", result.Order)
	}
}

func TestSectorService_Create_Validation(t *testing.T) {
	svc, repos := setupTestSectorService()
	repos.addSector("Dev", 0)

	tests := []struct {
		name    string
		req     dto.CreateSectorRequest
		wantErr error
	}{
		{"名称为空", dto.CreateSectorRequest{Name: "   "}, ErrSectorNameRequired},
		{"名称重复", dto.CreateSectorRequest{Name: "Dev"}, ErrSectorNameExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("期望 %v，实际: %v", tt.wantErr, err)
			}
		})
	}
}

func TestSectorService_Update_KeepsOwnName(t *testing.T) {
	svc, repos := setupTestSectorService()
	s := repos.addSector("Dev", 0)
	repos.addSector("QA", 1)

	if _, err := svc.Update(context.Background(), s.ID, &dto.UpdateSectorRequest{Name: strPtr("Dev"), Order: intPtr(5)}); err != nil {
		t.Fatalf("使用自身名称更新应成功: %v", err)
	}
	if _, err := svc.Update(context.Background(), s.ID, &dto.UpdateSectorRequest{Name: strPtr("QA")}); !errors.Is(err, ErrSectorNameExists) {
		t.Errorf("期望 ErrSectorNameExists，实际: %v", err)
	}
	if _, err := svc.Update(context.Background(), 999, &dto.UpdateSectorRequest{}); !errors.Is(err, ErrSectorNotFound) {
		t.Errorf("期望 ErrSectorNotFound，实际: %v", err)
	}
}

func TestSectorService_Delete_HasPeople(t *testing.T) {
	svc, repos := setupTestSectorService()
	s := repos.addSector("Dev", 0)
	repos.addPerson("Ana", s.ID, true)

	if err := svc.Delete(context.Background(), s.ID); !errors.Is(err, ErrSectorHasPeople) {
		t.Fatalf("期望 ErrSectorHasPeople，实际: %v", err)
	}
	if _, ok := repos.sectors.sectors[s.ID]; !ok {
		t.Error("有人员引用的部门不应被删除")
	}
}

func TestSectorService_Delete_Success(t *testing.T) {
	svc, repos := setupTestSectorService()
	s := repos.addSector("Dev", 0)

	if err := svc.Delete(context.Background(), s.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if err := svc.Delete(context.Background(), s.ID); !errors.Is(err, ErrSectorNotFound) {
		t.Errorf("重复删除期望 ErrSectorNotFound，实际: %v", err)
	}
}

func TestSectorService_List_Ordered(t *testing.T) {
	svc, repos := setupTestSectorService()
	repos.addSector("QA", 2)
	repos.addSector("Dev", 1)

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Dev" {
		t.Errorf("期望按 order 排序且 Dev 在前，实际=%+v", list)
	}
}

// ── Person ──

func TestPersonService_Create_Success(t *testing.T) {
	svc, repos := setupTestPersonService()
	s := repos.addSector("Dev", 1)

	result, err := svc.Create(context.Background(), &dto.CreatePersonRequest{Name: "Ana", SectorID: s.ID})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if !result.Active {
		t.Error("期望默认 Active=true")
	}
	if result.Sector == nil || result.Sector.Name != "Dev" {
		t.Errorf("期望响应内嵌部门 Dev，实际=%+v", result.Sector)
	}
}

func TestPersonService_Create_InvalidSector(t *testing.T) {
	svc, _ := setupTestPersonService()

	_, err := svc.Create(context.Background(), &dto.CreatePersonRequest{Name: "Ana", SectorID: 42})
	if !errors.Is(err, ErrSectorInvalid) {
		t.Errorf("期望 ErrSectorInvalid，实际: %v", err)
	}
	_, err = svc.Create(context.Background(), &dto.CreatePersonRequest{Name: " ", SectorID: 42})
	if !errors.Is(err, ErrPersonNameRequired) {
		t.Errorf("期望 ErrPersonNameRequired，实际: %v", err)
	}
}

func TestPersonService_CreateInactive(t *testing.T) {
	svc, repos := setupTestPersonService()
	s := repos.addSector("Dev", 1)

	result, err := svc.Create(context.Background(), &dto.CreatePersonRequest{Name: "Bia", SectorID: s.ID, Active: boolPtr(false)})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Active {
		t.Error("显式 active=false 应被保留")
	}
}

func TestPersonService_ToggleActive(t *testing.T) {
	svc, repos := setupTestPersonService()
	s := repos.addSector("Dev", 1)
	p := repos.addPerson("Ana", s.ID, true)

	result, err := svc.ToggleActive(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("ToggleActive 应成功: %v", err)
	}
	if result.Active {
		t.Error("期望切换后 Active=false")
	}
	if _, err := svc.ToggleActive(context.Background(), 999); !errors.Is(err, ErrPersonNotFound) {
		t.Errorf("期望 ErrPersonNotFound，实际: %v", err)
	}
}

func TestPersonService_Update_MoveSector(t *testing.T) {
	svc, repos := setupTestPersonService()
	dev := repos.addSector("Dev", 1)
	qa := repos.addSector("QA", 2)
	p := repos.addPerson("Ana", dev.ID, true)

	result, err := svc.Update(context.Background(), p.ID, &dto.UpdatePersonRequest{SectorID: uintPtr(qa.ID)})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.SectorID != qa.ID || result.Sector == nil || result.Sector.Name != "QA" {
		t.Errorf("期望转移到 QA，实际=%+v", result)
	}
	if _, err := svc.Update(context.Background(), p.ID, &dto.UpdatePersonRequest{SectorID: uintPtr(999)}); !errors.Is(err, ErrSectorInvalid) {
		t.Errorf("期望 ErrSectorInvalid，实际: %v", err)
	}
}

func TestPersonService_List_Filter(t *testing.T) {
	svc, repos := setupTestPersonService()
	dev := repos.addSector("Dev", 1)
	qa := repos.addSector("QA", 2)
	repos.addPerson("Ana", dev.ID, true)
	repos.addPerson("Bia", dev.ID, false)
	repos.addPerson("Caio", qa.ID, true)

	list, err := svc.List(context.Background(), &dto.PersonListRequest{SectorID: uintPtr(dev.ID), Active: boolPtr(true)})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Ana" {
		t.Errorf("期望仅返回 Ana，实际=%+v", list)
	}
}

func TestPersonService_Delete_KeepsAllocations(t *testing.T) {
	svc, repos := setupTestPersonService()
	s := repos.addSector("Dev", 1)
	p := repos.addPerson("Ana", s.ID, true)
	it := repos.addItem("Bug Fix", "#ef4444")
	w := repos.weeks.addWeek("2024-03-04", "2024-03-08", model.WeekStatusOpen)
	repos.allocations.add(w.ID, p.ID, it.ID, "2024-03-04", 0, model.AllocationPending)

	if err := svc.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if repos.allocations.count(w.ID) != 1 {
		t.Error("删除人员不应级联删除历史分配")
	}
}

// ── Item ──

func TestItemService_Create_DefaultColor(t *testing.T) {
	svc, _ := setupTestItemService()

	result, err := svc.Create(context.Background(), &dto.CreateItemRequest{Title: " Deploy ", Description: strPtr("  ")})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Color != model.DefaultItemColor {
		t.Errorf("期望默认颜色 %s，实际=%s", model.DefaultItemColor, result.Color)
	}
	if result.Title != "Deploy" {
		t.Errorf("期望标题去除空白，实际=%q", result.Title)
	}
	if result.Description != nil {
		t.Errorf("空白描述应存为 nil，实际=%q", *result.Description)
	}
	if !result.Active {
		t.Error("期望默认 Active=true")
	}
}

func TestItemService_Create_Validation(t *testing.T) {
	svc, _ := setupTestItemService()

	if _, err := svc.Create(context.Background(), &dto.CreateItemRequest{Title: ""}); !errors.Is(err, ErrItemTitleRequired) {
		t.Errorf("期望 ErrItemTitleRequired，实际: %v", err)
	}
	if _, err := svc.Create(context.Background(), &dto.CreateItemRequest{Title: "X", SuggestedSectorID: uintPtr(7)}); !errors.Is(err, ErrSectorInvalid) {
		t.Errorf("期望 ErrSectorInvalid，实际: %v", err)
	}
}

func TestItemService_Update_ClearsSuggestedSector(t *testing.T) {
	svc, repos := setupTestItemService()
	s := repos.addSector("Dev", 1)
	created, err := svc.Create(context.Background(), &dto.CreateItemRequest{
		Title:             "Bug Fix",
		Description:       strPtr("corrigir"),
		SuggestedSectorID: uintPtr(s.ID),
		Color:             "#ef4444",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if created.SuggestedSector == nil {
		t.Fatal("期望响应内嵌建议部门")
	}

	// 未出现的字段保持不变，显式 null 清空
	updated, err := svc.Update(context.Background(), created.ID, &dto.UpdateItemRequest{
		SuggestedSectorID: dto.Null[uint](),
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.SuggestedSectorID != nil || updated.SuggestedSector != nil {
		t.Errorf("期望建议部门被清空，实际=%+v", updated)
	}
	if updated.Description == nil || *updated.Description != "corrigir" {
		t.Error("未提供的 description 不应被修改")
	}
	if updated.Color != "#ef4444" {
		t.Errorf("未提供的 color 不应被修改，实际=%s", updated.Color)
	}
}

func TestItemService_ToggleAndDelete(t *testing.T) {
	svc, repos := setupTestItemService()
	it := repos.addItem("Bug Fix", "#ef4444")

	toggled, err := svc.ToggleActive(context.Background(), it.ID)
	if err != nil {
		t.Fatalf("ToggleActive 应成功: %v", err)
	}
	if toggled.Active {
		t.Error("期望切换后 Active=false")
	}
	if err := svc.Delete(context.Background(), it.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), it.ID); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("期望 ErrItemNotFound，实际: %v", err)
	}
}
