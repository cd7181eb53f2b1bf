// Package models содержит доменные структуры тиффин-сервиса:
// клиенты, отметки посещаемости, меню и платежи, а также
// вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// MealsPerDay флаги подписки клиента на обед и ужин.
// nil означает «подписан» — клиент исключается из приёма пищи
// только явным значением false.
type MealsPerDay struct {
	Lunch  *bool `json:"lunch,omitempty"`
	Dinner *bool `json:"dinner,omitempty"`
}

// Customer основная модель клиента тиффин-сервиса.
// EndDate — единственная граница жизненного цикла подписки;
// IsActive — отдельный ручной флаг для фильтрации списков,
// не зависящий от статуса по датам.
type Customer struct {
	ID            string      // Идентификатор клиента (uuid)
	Name          string      // Имя клиента
	Phone         string      // Контактный телефон
	MealsPerDay   MealsPerDay // Флаги подписки на обед/ужин
	PricePerMonth int         // Цена подписки за месяц
	StartDate     time.Time   // Дата начала подписки
	EndDate       time.Time   // Граница оплаченного периода
	TotalPaid     int         // Сумма всех платежей
	Notes         string      // Свободные заметки
	IsActive      bool        // Ручной флаг активности
}

// DummyCustomer используется для приёма данных клиента из JSON-запроса.
type DummyCustomer struct {
	Name          string `json:"name" validate:"required"`                        // Имя клиента
	Phone         string `json:"phone"`                                           // Контактный телефон
	Lunch         *bool  `json:"lunch"`                                           // Подписка на обед, nil = подписан
	Dinner        *bool  `json:"dinner"`                                          // Подписка на ужин, nil = подписан
	PricePerMonth int    `json:"price_per_month" validate:"required,gt=0"`        // Цена (>0)
	StartDate     string `json:"start_date" validate:"omitempty,datetime=2006-01-02"` // Дата начала, по умолчанию сегодня
	Notes         string `json:"notes"`                                           // Заметки
	IsActive      *bool  `json:"is_active"`                                       // Флаг активности, по умолчанию true
}
