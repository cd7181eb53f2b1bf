package models

import (
	"encoding/json"
	"time"
)

// RiceSlot под-слот риса в приёме пищи.
type RiceSlot struct {
	Enabled bool   `json:"enabled"` // Готовится ли рис
	Type    string `json:"type"`    // Вид риса, свободный текст
}

// MealSlot канонический состав одного приёма пищи.
type MealSlot struct {
	Main  string   `json:"main"`  // Основное блюдо, пустая строка = не задано
	Roti  bool     `json:"roti"`  // Подаются ли роти
	Rice  RiceSlot `json:"rice"`  // Под-слот риса
	Extra string   `json:"extra"` // Дополнение/салат, опционально
}

// DayMenu меню одного дня: обед и ужин.
type DayMenu struct {
	Lunch  MealSlot `json:"lunch"`
	Dinner MealSlot `json:"dinner"`
}

// DayMenuDoc документ меню, как он хранится: дата-ключ плюс слоты.
type DayMenuDoc struct {
	Date      time.Time
	Menu      DayMenu
	UpdatedAt time.Time
}

// RawMealSlot слот приёма пищи в том виде, в каком он мог быть сохранён
// старыми версиями приложения: рис как голая строка, поле extra под
// устаревшим именем side, любые поля могут отсутствовать.
type RawMealSlot struct {
	Main  *string         `json:"main"`
	Roti  *bool           `json:"roti"`
	Rice  json.RawMessage `json:"rice"`
	Extra *string         `json:"extra"`
	Side  *string         `json:"side"`
}

// RawDayMenu документ меню дня до нормализации.
type RawDayMenu struct {
	Lunch  *RawMealSlot `json:"lunch"`
	Dinner *RawMealSlot `json:"dinner"`
}

// EmptyMealSlot возвращает слот по умолчанию: блюдо не задано,
// роти подаются, рис выключен.
func EmptyMealSlot() MealSlot {
	return MealSlot{Main: "", Roti: true, Rice: RiceSlot{Enabled: false, Type: ""}, Extra: ""}
}

// EmptyDayMenu возвращает меню дня со слотами по умолчанию.
func EmptyDayMenu() DayMenu {
	return DayMenu{Lunch: EmptyMealSlot(), Dinner: EmptyMealSlot()}
}

// NormalizeMealSlot приводит сохранённый слот к каноническому виду.
// Терпит полностью отсутствующий вход, рис-строку из старых записей и
// устаревшее поле side вместо extra. Второе возвращаемое значение true,
// когда хотя бы одно поле пришлось заполнить значением по умолчанию
// или перенести из устаревшей формы.
func NormalizeMealSlot(raw *RawMealSlot) (MealSlot, bool) {
	slot := EmptyMealSlot()
	if raw == nil {
		return slot, true
	}

	defaulted := false

	if raw.Main != nil {
		slot.Main = *raw.Main
	} else {
		defaulted = true
	}

	if raw.Roti != nil {
		slot.Roti = *raw.Roti
	} else {
		defaulted = true
	}

	if rice, ok := parseRice(raw.Rice); ok {
		slot.Rice = rice
	} else {
		defaulted = true
		// Старый формат: рис хранился голой строкой с видом риса.
		var legacy string
		if len(raw.Rice) > 0 && json.Unmarshal(raw.Rice, &legacy) == nil {
			slot.Rice.Type = legacy
		}
	}

	switch {
	case raw.Extra != nil:
		slot.Extra = *raw.Extra
	case raw.Side != nil:
		slot.Extra = *raw.Side
		defaulted = true
	default:
		defaulted = true
	}

	return slot, defaulted
}

// NormalizeDayMenu нормализует оба слота документа меню.
func NormalizeDayMenu(raw RawDayMenu) DayMenu {
	lunch, _ := NormalizeMealSlot(raw.Lunch)
	dinner, _ := NormalizeMealSlot(raw.Dinner)
	return DayMenu{Lunch: lunch, Dinner: dinner}
}

// parseRice принимает рис только в каноническом виде объекта с полем enabled.
func parseRice(raw json.RawMessage) (RiceSlot, bool) {
	if len(raw) == 0 {
		return RiceSlot{}, false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return RiceSlot{}, false
	}
	if _, ok := probe["enabled"]; !ok {
		return RiceSlot{}, false
	}
	var rice RiceSlot
	if err := json.Unmarshal(raw, &rice); err != nil {
		return RiceSlot{}, false
	}
	return rice, true
}
