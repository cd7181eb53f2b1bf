package models

import "time"

// ExpiringNotice сообщение об истекающей подписке клиента,
// публикуемое планировщиком и потребляемое отправителем писем.
type ExpiringNotice struct {
	CustomerID string    `json:"customer_id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	EndDate    time.Time `json:"end_date"`
	DaysLeft   int       `json:"days_left"`
}
