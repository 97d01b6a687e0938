package models

import "strings"

// Record представляет запись о продаже (FBSC).
// Поля first_name/last_name заполняет сервер, клиент их только показывает.
type Record struct {
	ID           ID     `json:"record_id"`
	CustomerName string `json:"customer_name"`
	Product      string `json:"product"`
	Pair         Count  `json:"pair"`
	Price        Money  `json:"price"`
	RecordDate   Date   `json:"record_date"`
	Notes        string `json:"notes"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
}

// Pairs возвращает количество пар, по умолчанию 1.
func (r Record) Pairs() int {
	if r.Pair < 1 {
		return 1
	}
	return r.Pair.Int()
}

// AddedBy возвращает имя пользователя, добавившего запись.
func (r Record) AddedBy() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// Author - имя для колонки "Added By" в таблице.
func (r Record) Author() string {
	if r.FirstName == "" {
		return "User"
	}
	return r.FirstName
}

// RecordInput - тело запроса на создание/обновление записи.
type RecordInput struct {
	CustomerName string  `json:"customer_name"`
	Product      string  `json:"product"`
	Pair         int     `json:"pair"`
	Price        float64 `json:"price"`
	RecordDate   string  `json:"record_date"`
	Notes        string  `json:"notes"`
}

// RecordPage - страница записей вместе с данными пагинации.
type RecordPage struct {
	Records    []Record   `json:"records"`
	Pagination Pagination `json:"pagination"`
}

// Revenue - агрегированная выручка за период.
type Revenue struct {
	TotalOrders   Count `json:"total_orders"`
	TotalRevenue  Money `json:"total_revenue"`
	AvgOrderValue Money `json:"avg_order_value"`
}

// RecordStats - ответ GET /stats.
type RecordStats struct {
	Revenue Revenue `json:"revenue"`
}
