package models

import "time"

// Meal тип приёма пищи.
type Meal string

// Приёмы пищи, которые готовит кухня.
const (
	MealLunch  Meal = "lunch"
	MealDinner Meal = "dinner"
)

// AttendanceOverride явное отклонение от правила «подписанный клиент ест».
// Ключ записи — пара (дата, клиент). Отсутствие записи значимо:
// клиент считается присутствующим. Поля Lunch и Dinner трёхзначные:
// nil на существующей записи тоже означает «присутствует».
type AttendanceOverride struct {
	Date       time.Time // Дата, к которой относится отметка
	CustomerID string    // Клиент
	Lunch      *bool     // Отметка на обед, только false исключает
	Dinner     *bool     // Отметка на ужин, только false исключает
	UpdatedAt  time.Time // Время последнего изменения
}

// MealValue возвращает значение отметки для приёма пищи.
func (o *AttendanceOverride) MealValue(meal Meal) *bool {
	if o == nil {
		return nil
	}
	if meal == MealDinner {
		return o.Dinner
	}
	return o.Lunch
}

// DummyToggle используется для приёма запроса на переключение отметки.
type DummyToggle struct {
	CustomerID string `json:"customer_id" validate:"required,uuid"`        // Клиент
	Date       string `json:"date" validate:"required,datetime=2006-01-02"` // Дата отметки
	Meal       string `json:"meal" validate:"required,oneof=lunch dinner"`  // Приём пищи
}
