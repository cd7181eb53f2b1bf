package models

import "time"

// PaymentRecord неизменяемая запись журнала платежей.
// Имя клиента денормализовано — это снимок на момент оплаты,
// он переживает удаление самого клиента.
type PaymentRecord struct {
	ID           string    `json:"id"`            // Идентификатор записи (uuid)
	CustomerID   string    `json:"customer_id"`   // Клиент, за которого внесён платёж
	CustomerName string    `json:"customer_name"` // Имя клиента на момент оплаты
	Amount       int       `json:"amount"`        // Сумма платежа
	Date         time.Time `json:"date"`          // Момент оплаты
	Method       string    `json:"method"`        // Способ оплаты: cash или bank
	MonthTag     string    `json:"month_tag"`     // Метка месяца вида "2026-02"
}

// LedgerEntry запись журнала для отображения: платёж плюс признак,
// что клиент, на которого он ссылается, уже не существует.
type LedgerEntry struct {
	PaymentRecord
	IsOrphan bool `json:"is_orphan"`
}

// DummyPayment используется для приёма платежа из JSON-запроса.
// Amount равный нулю означает «месячная цена клиента».
type DummyPayment struct {
	CustomerID string `json:"customer_id" validate:"required,uuid"`        // Клиент
	Amount     int    `json:"amount" validate:"omitempty,gt=0"`            // Сумма, по умолчанию цена за месяц
	Method     string `json:"method" validate:"required,oneof=cash bank"`  // Способ оплаты
}

// MonthTagFor возвращает метку месяца вида "YYYY-MM" для даты платежа.
func MonthTagFor(date time.Time) string {
	return date.Format("2006-01")
}
