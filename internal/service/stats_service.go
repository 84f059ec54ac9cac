package service

import (
	"context"
	"errors"
	"math"
	"sort"

	"go.uber.org/zap"

	"weekly-planner/backend/internal/dto"
	"weekly-planner/backend/internal/model"
	"weekly-planner/backend/internal/repository"
	"weekly-planner/backend/pkg/metrics"
)

// 战力等级（按完成率从低到高）
const (
	PowerHuman        = "human"
	PowerSaiyan       = "saiyan"
	PowerSuperSaiyan  = "super_saiyan"
	PowerSuperSaiyan2 = "super_saiyan_2"
	PowerSuperSaiyan3 = "super_saiyan_3"
	PowerSuperSaiyan4 = "super_saiyan_4"
)

// topPerformerLimit 排行榜人数
const topPerformerLimit = 3

// StatsService 周统计接口
type StatsService interface {
	GetWeekStats(ctx context.Context, weekID uint) (*dto.WeekStatsResponse, error)
}

type statsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStatsService 创建 StatsService 实例
func NewStatsService(repo *repository.Repository, logger *zap.Logger) StatsService {
	return &statsService{repo: repo, logger: logger}
}

// ────────────────────── 纯函数 ──────────────────────

// Percentage round(done / total × 100)，total 为 0 时返回 0
func Percentage(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// PowerLevel 完成率对应的战力等级，区间下界包含
func PowerLevel(pct int) string {
	switch {
	case pct >= 96:
		return PowerSuperSaiyan4
	case pct >= 81:
		return PowerSuperSaiyan3
	case pct >= 61:
		return PowerSuperSaiyan2
	case pct >= 41:
		return PowerSuperSaiyan
	case pct >= 21:
		return PowerSaiyan
	default:
		return PowerHuman
	}
}

// DragonBalls 完成率对应的 0-7 龙珠数
func DragonBalls(pct int) int {
	switch {
	case pct >= 100:
		return 7
	case pct >= 85:
		return 6
	case pct >= 70:
		return 5
	case pct >= 55:
		return 4
	case pct >= 40:
		return 3
	case pct >= 25:
		return 2
	case pct >= 10:
		return 1
	default:
		return 0
	}
}

// pairKey (person, item) 组合键
type pairKey struct {
	PersonID uint
	ItemID   uint
}

// pairState 折叠过程中的中间状态
type pairState struct {
	anyDone    bool
	allNotDone bool
}

// collapsePairs 将同一 (person, item) 的多条分配折叠为一个状态：
// 任一 done → done；全部 not_done → not_done；其余 → pending
func collapsePairs(allocs []model.Allocation) map[pairKey]string {
	states := make(map[pairKey]*pairState)
	for _, a := range allocs {
		key := pairKey{PersonID: a.PersonID, ItemID: a.ItemID}
		st, ok := states[key]
		if !ok {
			st = &pairState{allNotDone: true}
			states[key] = st
		}
		if a.Status == model.AllocationDone {
			st.anyDone = true
		}
		if a.Status != model.AllocationNotDone {
			st.allNotDone = false
		}
	}

	resolved := make(map[pairKey]string, len(states))
	for key, st := range states {
		switch {
		case st.anyDone:
			resolved[key] = model.AllocationDone
		case st.allNotDone:
			resolved[key] = model.AllocationNotDone
		default:
			resolved[key] = model.AllocationPending
		}
	}
	return resolved
}

// tally 一组已折叠组合的计数
type tally struct {
	total, done, notDone, pending int
}

func (t *tally) add(status string) {
	t.total++
	switch status {
	case model.AllocationDone:
		t.done++
	case model.AllocationNotDone:
		t.notDone++
	default:
		t.pending++
	}
}

// streakDays 从最近的日期往前，统计连续 100% 完成的天数
// 每天独立去重 (person, item)，一天内任一分配 done 即视为该组合完成
func streakDays(allocs []model.Allocation) int {
	type dayPairs struct {
		all  map[pairKey]struct{}
		done map[pairKey]struct{}
	}
	days := make(map[string]*dayPairs)
	for _, a := range allocs {
		d, ok := days[a.Date]
		if !ok {
			d = &dayPairs{all: map[pairKey]struct{}{}, done: map[pairKey]struct{}{}}
			days[a.Date] = d
		}
		key := pairKey{PersonID: a.PersonID, ItemID: a.ItemID}
		d.all[key] = struct{}{}
		if a.Status == model.AllocationDone {
			d.done[key] = struct{}{}
		}
	}

	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	// YYYY-MM-DD 字典序即时间序
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	streak := 0
	for _, date := range dates {
		d := days[date]
		if len(d.all) == 0 || len(d.done) != len(d.all) {
			break
		}
		streak++
	}
	return streak
}

// personTally 排行榜计算用
type personTally struct {
	person *model.Person
	tally
}

// topPerformers 按 done 降序、total 降序、人员 ID 升序取前 n 名
func topPerformers(tallies []personTally, n int) []personTally {
	ranked := make([]personTally, 0, len(tallies))
	for _, pt := range tallies {
		if pt.total > 0 {
			ranked = append(ranked, pt)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.done != b.done {
			return a.done > b.done
		}
		if a.total != b.total {
			return a.total > b.total
		}
		return a.person.ID < b.person.ID
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// ────────────────────── GetWeekStats ──────────────────────

func (s *statsService) GetWeekStats(ctx context.Context, weekID uint) (*dto.WeekStatsResponse, error) {
	week, err := findWeek(ctx, s.repo, weekID)
	if err != nil {
		if !errors.Is(err, ErrWeekNotFound) {
			s.logger.Error("查询周失败", zap.Uint("week_id", weekID), zap.Error(err))
		}
		return nil, err
	}

	allocs, err := s.repo.Allocation.ListByWeek(ctx, weekID)
	if err != nil {
		s.logger.Error("查询周分配失败", zap.Uint("week_id", weekID), zap.Error(err))
		return nil, err
	}
	sectors, err := s.repo.Sector.List(ctx)
	if err != nil {
		s.logger.Error("列出部门失败", zap.Error(err))
		return nil, err
	}
	people, err := s.repo.Person.List(ctx, repository.PersonFilter{})
	if err != nil {
		s.logger.Error("列出人员失败", zap.Error(err))
		return nil, err
	}

	pairs := collapsePairs(allocs)

	// ── 全周汇总（含已删除人员 / 条目的组合） ──
	var weekTally tally
	perPerson := make(map[uint]*tally)
	for key, status := range pairs {
		weekTally.add(status)
		pt, ok := perPerson[key.PersonID]
		if !ok {
			pt = &tally{}
			perPerson[key.PersonID] = pt
		}
		pt.add(status)
	}

	weekPct := Percentage(weekTally.done, weekTally.total)
	result := &dto.WeekStatsResponse{
		Week: toWeekResponse(week),
		Totals: dto.StatsTotals{
			Total:       weekTally.total,
			Done:        weekTally.done,
			NotDone:     weekTally.notDone,
			Pending:     weekTally.pending,
			Percentage:  weekPct,
			PowerLevel:  PowerLevel(weekPct),
			DragonBalls: DragonBalls(weekPct),
		},
		Sectors:       []dto.SectorStats{},
		TopPerformers: []dto.PersonStats{},
		StreakDays:    streakDays(allocs),
	}

	// ── 部门汇总：仅统计仍存在的人员，无组合的部门省略 ──
	bySector := make(map[uint]*tally)
	personTallies := make([]personTally, 0, len(people))
	for i := range people {
		p := &people[i]
		pt, ok := perPerson[p.ID]
		if !ok {
			continue
		}
		st, ok := bySector[p.SectorID]
		if !ok {
			st = &tally{}
			bySector[p.SectorID] = st
		}
		st.total += pt.total
		st.done += pt.done
		st.notDone += pt.notDone
		st.pending += pt.pending
		personTallies = append(personTallies, personTally{person: p, tally: *pt})
	}

	for i := range sectors {
		st, ok := bySector[sectors[i].ID]
		if !ok || st.total == 0 {
			continue
		}
		pct := Percentage(st.done, st.total)
		result.Sectors = append(result.Sectors, dto.SectorStats{
			Sector:     toSectorResponse(&sectors[i]),
			Total:      st.total,
			Done:       st.done,
			NotDone:    st.notDone,
			Pending:    st.pending,
			Percentage: pct,
			PowerLevel: PowerLevel(pct),
		})
	}

	// ── 排行榜 ──
	for _, pt := range topPerformers(personTallies, topPerformerLimit) {
		result.TopPerformers = append(result.TopPerformers, dto.PersonStats{
			Person:     toPersonResponse(pt.person),
			Total:      pt.total,
			Done:       pt.done,
			Percentage: Percentage(pt.done, pt.total),
		})
	}

	metrics.SetWeekCompletion(week.StartDate, weekPct)
	return result, nil
}
