package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"weekly-planner/backend/internal/model"
	"weekly-planner/backend/internal/repository"
)

// ── Mock SectorRepository ──

type mockSectorRepo struct {
	sectors map[uint]*model.Sector
	nextID  uint
	people  *mockPersonRepo
}

func newMockSectorRepo() *mockSectorRepo {
	return &mockSectorRepo{sectors: make(map[uint]*model.Sector)}
}

func (m *mockSectorRepo) Create(_ context.Context, sector *model.Sector) error {
	m.nextID++
	sector.ID = m.nextID
	cp := *sector
	m.sectors[sector.ID] = &cp
	return nil
}

func (m *mockSectorRepo) GetByID(_ context.Context, id uint) (*model.Sector, error) {
	if s, ok := m.sectors[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSectorRepo) GetByName(_ context.Context, name string) (*model.Sector, error) {
	for _, s := range m.sectors {
		if s.Name == name {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSectorRepo) List(_ context.Context) ([]model.Sector, error) {
	result := make([]model.Sector, 0, len(m.sectors))
	for _, s := range m.sectors {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (m *mockSectorRepo) Update(_ context.Context, sector *model.Sector) error {
	cp := *sector
	m.sectors[sector.ID] = &cp
	return nil
}

func (m *mockSectorRepo) Delete(_ context.Context, id uint) (bool, error) {
	if _, ok := m.sectors[id]; !ok {
		return false, nil
	}
	delete(m.sectors, id)
	return true, nil
}

func (m *mockSectorRepo) CountPeople(_ context.Context, sectorID uint) (int64, error) {
	if m.people == nil {
		return 0, nil
	}
	var n int64
	for _, p := range m.people.people {
		if p.SectorID == sectorID {
			n++
		}
	}
	return n, nil
}

// ── Mock PersonRepository ──

type mockPersonRepo struct {
	people  map[uint]*model.Person
	nextID  uint
	sectors *mockSectorRepo
}

func newMockPersonRepo(sectors *mockSectorRepo) *mockPersonRepo {
	return &mockPersonRepo{people: make(map[uint]*model.Person), sectors: sectors}
}

func (m *mockPersonRepo) withSector(p *model.Person) *model.Person {
	cp := *p
	if s, ok := m.sectors.sectors[p.SectorID]; ok {
		sc := *s
		cp.Sector = &sc
	}
	return &cp
}

func (m *mockPersonRepo) Create(_ context.Context, person *model.Person) error {
	m.nextID++
	person.ID = m.nextID
	cp := *person
	cp.Sector = nil
	m.people[person.ID] = &cp
	return nil
}

func (m *mockPersonRepo) GetByID(_ context.Context, id uint) (*model.Person, error) {
	if p, ok := m.people[id]; ok {
		return m.withSector(p), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPersonRepo) List(_ context.Context, filter repository.PersonFilter) ([]model.Person, error) {
	result := make([]model.Person, 0, len(m.people))
	for _, p := range m.people {
		if filter.SectorID != nil && p.SectorID != *filter.SectorID {
			continue
		}
		if filter.Active != nil && p.Active != *filter.Active {
			continue
		}
		result = append(result, *m.withSector(p))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (m *mockPersonRepo) Update(_ context.Context, person *model.Person) error {
	cp := *person
	cp.Sector = nil
	m.people[person.ID] = &cp
	return nil
}

func (m *mockPersonRepo) ToggleActive(ctx context.Context, id uint) (*model.Person, error) {
	p, ok := m.people[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	p.Active = !p.Active
	return m.GetByID(ctx, id)
}

func (m *mockPersonRepo) Delete(_ context.Context, id uint) (bool, error) {
	if _, ok := m.people[id]; !ok {
		return false, nil
	}
	delete(m.people, id)
	return true, nil
}

// ── Mock ItemRepository ──

type mockItemRepo struct {
	items   map[uint]*model.Item
	nextID  uint
	sectors *mockSectorRepo
}

func newMockItemRepo(sectors *mockSectorRepo) *mockItemRepo {
	return &mockItemRepo{items: make(map[uint]*model.Item), sectors: sectors}
}

func (m *mockItemRepo) withSector(it *model.Item) *model.Item {
	cp := *it
	cp.SuggestedSector = nil
	if it.SuggestedSectorID != nil {
		if s, ok := m.sectors.sectors[*it.SuggestedSectorID]; ok {
			sc := *s
			cp.SuggestedSector = &sc
		}
	}
	return &cp
}

func (m *mockItemRepo) Create(_ context.Context, item *model.Item) error {
	m.nextID++
	item.ID = m.nextID
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func (m *mockItemRepo) GetByID(_ context.Context, id uint) (*model.Item, error) {
	if it, ok := m.items[id]; ok {
		return m.withSector(it), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockItemRepo) List(_ context.Context, filter repository.ItemFilter) ([]model.Item, error) {
	result := make([]model.Item, 0, len(m.items))
	for _, it := range m.items {
		if filter.SuggestedSectorID != nil && (it.SuggestedSectorID == nil || *it.SuggestedSectorID != *filter.SuggestedSectorID) {
			continue
		}
		if filter.Active != nil && it.Active != *filter.Active {
			continue
		}
		result = append(result, *m.withSector(it))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Title < result[j].Title })
	return result, nil
}

func (m *mockItemRepo) Update(_ context.Context, item *model.Item) error {
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func (m *mockItemRepo) ToggleActive(ctx context.Context, id uint) (*model.Item, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	it.Active = !it.Active
	return m.GetByID(ctx, id)
}

func (m *mockItemRepo) Delete(_ context.Context, id uint) (bool, error) {
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

// ── Mock WeekRepository ──

type mockWeekRepo struct {
	weeks  map[uint]*model.Week
	nextID uint
}

func newMockWeekRepo() *mockWeekRepo {
	return &mockWeekRepo{weeks: make(map[uint]*model.Week)}
}

// addWeek 测试辅助：直接插入一周
func (m *mockWeekRepo) addWeek(start, end, status string) *model.Week {
	m.nextID++
	w := &model.Week{ID: m.nextID, StartDate: start, EndDate: end, Status: status, CreatedAt: time.Now()}
	m.weeks[w.ID] = w
	cp := *w
	return &cp
}

func (m *mockWeekRepo) GetByID(_ context.Context, id uint) (*model.Week, error) {
	if w, ok := m.weeks[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWeekRepo) GetByStartDate(_ context.Context, startDate string) (*model.Week, error) {
	for _, w := range m.weeks {
		if w.StartDate == startDate {
			cp := *w
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWeekRepo) FindOrCreate(ctx context.Context, startDate, endDate string) (*model.Week, bool, error) {
	if w, err := m.GetByStartDate(ctx, startDate); err == nil {
		return w, false, nil
	}
	return m.addWeek(startDate, endDate, model.WeekStatusOpen), true, nil
}

func (m *mockWeekRepo) sorted() []model.Week {
	result := make([]model.Week, 0, len(m.weeks))
	for _, w := range m.weeks {
		result = append(result, *w)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate > result[j].StartDate })
	return result
}

func (m *mockWeekRepo) List(_ context.Context, filter repository.WeekFilter, offset, limit int) ([]model.Week, int64, error) {
	var filtered []model.Week
	for _, w := range m.sorted() {
		if filter.Status != "" && w.Status != filter.Status {
			continue
		}
		filtered = append(filtered, w)
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return []model.Week{}, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockWeekRepo) FindPrevious(_ context.Context, startDate string) (*model.Week, error) {
	for _, w := range m.sorted() {
		if w.StartDate < startDate {
			return &w, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWeekRepo) FindNext(_ context.Context, startDate string) (*model.Week, error) {
	weeks := m.sorted()
	for i := len(weeks) - 1; i >= 0; i-- {
		if weeks[i].StartDate > startDate {
			return &weeks[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWeekRepo) Close(ctx context.Context, id uint, closedBy *string, at time.Time) (*model.Week, error) {
	w, ok := m.weeks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if !w.IsClosed() {
		w.Status = model.WeekStatusClosed
		w.ClosedAt = &at
		w.ClosedBy = closedBy
	}
	return m.GetByID(ctx, id)
}

func (m *mockWeekRepo) Reopen(ctx context.Context, id uint) (*model.Week, error) {
	w, ok := m.weeks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	w.Status = model.WeekStatusOpen
	w.ClosedAt = nil
	w.ClosedBy = nil
	return m.GetByID(ctx, id)
}

// ── Mock AllocationRepository ──

type mockAllocationRepo struct {
	allocs map[uint]*model.Allocation
	nextID uint
	items  *mockItemRepo
}

func newMockAllocationRepo(items *mockItemRepo) *mockAllocationRepo {
	return &mockAllocationRepo{allocs: make(map[uint]*model.Allocation), items: items}
}

func (m *mockAllocationRepo) withItem(a *model.Allocation) model.Allocation {
	cp := *a
	cp.Item = nil
	if it, ok := m.items.items[a.ItemID]; ok {
		ic := *it
		cp.Item = &ic
	}
	return cp
}

// add 测试辅助：直接插入一条分配
func (m *mockAllocationRepo) add(weekID, personID, itemID uint, date string, order int, status string) *model.Allocation {
	a := &model.Allocation{WeekID: weekID, PersonID: personID, ItemID: itemID, Date: date, SortOrder: order, Status: status}
	_ = m.Create(context.Background(), a)
	return a
}

func (m *mockAllocationRepo) Create(_ context.Context, alloc *model.Allocation) error {
	m.nextID++
	alloc.ID = m.nextID
	if alloc.Status == "" {
		alloc.Status = model.AllocationPending
	}
	cp := *alloc
	cp.Item = nil
	m.allocs[alloc.ID] = &cp
	return nil
}

func (m *mockAllocationRepo) GetByID(_ context.Context, id uint) (*model.Allocation, error) {
	if a, ok := m.allocs[id]; ok {
		cp := m.withItem(a)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAllocationRepo) ListByWeek(_ context.Context, weekID uint) ([]model.Allocation, error) {
	result := make([]model.Allocation, 0)
	for _, a := range m.allocs {
		if a.WeekID == weekID {
			result = append(result, m.withItem(a))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.PersonID != b.PersonID {
			return a.PersonID < b.PersonID
		}
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.ID < b.ID
	})
	return result, nil
}

func (m *mockAllocationRepo) count(weekID uint) int {
	n := 0
	for _, a := range m.allocs {
		if a.WeekID == weekID {
			n++
		}
	}
	return n
}

func (m *mockAllocationRepo) NextOrder(_ context.Context, weekID, personID uint, date string) (int, error) {
	next := 0
	for _, a := range m.allocs {
		if a.WeekID == weekID && a.PersonID == personID && a.Date == date && a.SortOrder+1 > next {
			next = a.SortOrder + 1
		}
	}
	return next, nil
}

func (m *mockAllocationRepo) ReplaceCell(ctx context.Context, weekID, personID uint, date string, allocs []model.Allocation) error {
	for id, a := range m.allocs {
		if a.WeekID == weekID && a.PersonID == personID && a.Date == date {
			delete(m.allocs, id)
		}
	}
	for i := range allocs {
		if err := m.Create(ctx, &allocs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockAllocationRepo) Exists(_ context.Context, weekID, personID uint, date string, itemID uint, order int) (bool, error) {
	for _, a := range m.allocs {
		if a.WeekID == weekID && a.PersonID == personID && a.Date == date && a.ItemID == itemID && a.SortOrder == order {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAllocationRepo) get(id uint) (*model.Allocation, error) {
	if a, ok := m.allocs[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAllocationRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	a, err := m.get(id)
	if err != nil {
		return err
	}
	a.Status = status
	return nil
}

func (m *mockAllocationRepo) UpdateComment(_ context.Context, id uint, comment *string) error {
	a, err := m.get(id)
	if err != nil {
		return err
	}
	a.Comment = comment
	return nil
}

func (m *mockAllocationRepo) UpdateOrder(_ context.Context, id uint, order int) error {
	a, err := m.get(id)
	if err != nil {
		return err
	}
	a.SortOrder = order
	return nil
}

func (m *mockAllocationRepo) Move(_ context.Context, id, personID uint, date string, order int) error {
	a, err := m.get(id)
	if err != nil {
		return err
	}
	a.PersonID = personID
	a.Date = date
	a.SortOrder = order
	return nil
}

func (m *mockAllocationRepo) Delete(_ context.Context, id uint) (bool, error) {
	if _, ok := m.allocs[id]; !ok {
		return false, nil
	}
	delete(m.allocs, id)
	return true, nil
}

// ── Mock ObservationRepository ──

type obsKey struct{ weekID, personID uint }

type mockObservationRepo struct {
	obs    map[obsKey]*model.Observation
	nextID uint
}

func newMockObservationRepo() *mockObservationRepo {
	return &mockObservationRepo{obs: make(map[obsKey]*model.Observation)}
}

func (m *mockObservationRepo) ListByWeek(_ context.Context, weekID uint) ([]model.Observation, error) {
	result := make([]model.Observation, 0)
	for k, o := range m.obs {
		if k.weekID == weekID {
			result = append(result, *o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PersonID < result[j].PersonID })
	return result, nil
}

func (m *mockObservationRepo) GetByWeekAndPerson(_ context.Context, weekID, personID uint) (*model.Observation, error) {
	if o, ok := m.obs[obsKey{weekID, personID}]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockObservationRepo) Upsert(ctx context.Context, weekID, personID uint, text string) (*model.Observation, error) {
	key := obsKey{weekID, personID}
	if o, ok := m.obs[key]; ok {
		o.Text = text
	} else {
		m.nextID++
		m.obs[key] = &model.Observation{ID: m.nextID, WeekID: weekID, PersonID: personID, Text: text}
	}
	return m.GetByWeekAndPerson(ctx, weekID, personID)
}

func (m *mockObservationRepo) DeleteByWeekAndPerson(_ context.Context, weekID, personID uint) (bool, error) {
	key := obsKey{weekID, personID}
	if _, ok := m.obs[key]; !ok {
		return false, nil
	}
	delete(m.obs, key)
	return true, nil
}

// ── 测试夹具 ──

// mockRepos 一组相互关联的 mock 仓储
type mockRepos struct {
	sectors      *mockSectorRepo
	people       *mockPersonRepo
	items        *mockItemRepo
	weeks        *mockWeekRepo
	allocations  *mockAllocationRepo
	observations *mockObservationRepo
}

func newMockRepos() *mockRepos {
	sectors := newMockSectorRepo()
	people := newMockPersonRepo(sectors)
	sectors.people = people
	items := newMockItemRepo(sectors)
	return &mockRepos{
		sectors:      sectors,
		people:       people,
		items:        items,
		weeks:        newMockWeekRepo(),
		allocations:  newMockAllocationRepo(items),
		observations: newMockObservationRepo(),
	}
}

// repository 组装聚合；未持有 db，事务直接以自身执行
func (m *mockRepos) repository() *repository.Repository {
	return &repository.Repository{
		Sector:      m.sectors,
		Person:      m.people,
		Item:        m.items,
		Week:        m.weeks,
		Allocation:  m.allocations,
		Observation: m.observations,
	}
}

func (m *mockRepos) addSector(name string, order int) *model.Sector {
	s := &model.Sector{Name: name, SortOrder: order}
	_ = m.sectors.Create(context.Background(), s)
	return s
}

func (m *mockRepos) addPerson(name string, sectorID uint, active bool) *model.Person {
	p := &model.Person{Name: name, SectorID: sectorID, Active: active}
	_ = m.people.Create(context.Background(), p)
	return p
}

func (m *mockRepos) addItem(title, color string) *model.Item {
	it := &model.Item{Title: title, Color: color, Active: true}
	_ = m.items.Create(context.Background(), it)
	return it
}
