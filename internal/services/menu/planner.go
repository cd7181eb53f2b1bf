// Package menu управляет недельным меню: нормализация сохранённых
// документов, правки в памяти с отслеживанием несохранённых дней,
// пакетное сохранение и копирование меню между днями и неделями.
package menu

import (
	"fmt"

	"github.com/magabrotheeeer/tiffin-admin/internal/lib/week"
	"github.com/magabrotheeeer/tiffin-admin/internal/models"
)

// WeekMenu меню недели в памяти, по дню недели.
type WeekMenu map[week.DayName]models.DayMenu

// Field редактируемое поле слота приёма пищи.
type Field string

// Поля слота и под-слота риса.
const (
	FieldMain        Field = "main"
	FieldRoti        Field = "roti"
	FieldExtra       Field = "extra"
	FieldRiceEnabled Field = "enabled"
	FieldRiceType    Field = "type"
)

// Planner правки недельного меню в памяти. Каждое изменение помечает
// день как «грязный» — ожидающий сохранения. Чистые переходы состояния,
// без ввода-вывода.
type Planner struct {
	Menu  WeekMenu
	dirty map[week.DayName]struct{}
}

// NewPlanner создает Planner поверх загруженного меню недели.
// Отсутствующие дни дополняются пустыми слотами.
func NewPlanner(menu WeekMenu) *Planner {
	full := make(WeekMenu, len(week.Days))
	for _, day := range week.Days {
		if dm, ok := menu[day]; ok {
			full[day] = dm
		} else {
			full[day] = models.EmptyDayMenu()
		}
	}
	return &Planner{Menu: full, dirty: make(map[week.DayName]struct{})}
}

// UpdateField меняет текстовое или логическое поле слота и помечает день.
func (p *Planner) UpdateField(day week.DayName, meal models.Meal, field Field, value any) error {
	dm := p.Menu[day]
	slot := slotFor(&dm, meal)

	switch field {
	case FieldMain:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %s expects string", field)
		}
		slot.Main = s
	case FieldExtra:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %s expects string", field)
		}
		slot.Extra = s
	case FieldRoti:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("field %s expects bool", field)
		}
		slot.Roti = b
	default:
		return fmt.Errorf("unknown meal field %q", field)
	}

	p.Menu[day] = dm
	p.markDirty(day)
	return nil
}

// UpdateRiceField меняет поле под-слота риса и помечает день.
func (p *Planner) UpdateRiceField(day week.DayName, meal models.Meal, field Field, value any) error {
	dm := p.Menu[day]
	slot := slotFor(&dm, meal)

	switch field {
	case FieldRiceEnabled:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("field %s expects bool", field)
		}
		slot.Rice.Enabled = b
	case FieldRiceType:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %s expects string", field)
		}
		slot.Rice.Type = s
	default:
		return fmt.Errorf("unknown rice field %q", field)
	}

	p.Menu[day] = dm
	p.markDirty(day)
	return nil
}

// DuplicateDayTo копирует меню одного дня в перечисленные дни,
// помечая каждый из них.
func (p *Planner) DuplicateDayTo(source week.DayName, targets []week.DayName) {
	src := p.Menu[source]
	for _, target := range targets {
		if target == source {
			continue
		}
		p.Menu[target] = src
		p.markDirty(target)
	}
}

// Overlay накладывает чужие дни меню (например, прошлой недели)
// поверх текущих, помечая наложенные дни.
func (p *Planner) Overlay(days WeekMenu) {
	for day, dm := range days {
		p.Menu[day] = dm
		p.markDirty(day)
	}
}

// DirtyDays возвращает дни, ожидающие сохранения, в порядке недели.
func (p *Planner) DirtyDays() []week.DayName {
	var result []week.DayName
	for _, day := range week.Days {
		if _, ok := p.dirty[day]; ok {
			result = append(result, day)
		}
	}
	return result
}

// ClearDirty снимает пометку с сохранённых дней.
func (p *Planner) ClearDirty(days ...week.DayName) {
	for _, day := range days {
		delete(p.dirty, day)
	}
}

func (p *Planner) markDirty(day week.DayName) {
	p.dirty[day] = struct{}{}
}

func slotFor(dm *models.DayMenu, meal models.Meal) *models.MealSlot {
	if meal == models.MealDinner {
		return &dm.Dinner
	}
	return &dm.Lunch
}
