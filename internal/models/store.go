// Package models содержит доменные структуры магазинов и формы строк,
// возвращаемых агрегирующими запросами хранилища.
package models

import "time"

// Store представляет магазин, принадлежащий пользователю с ролью OWNER.
// Принадлежность владельцу обеспечивается обработчиком создания,
// на уровне типов она не выражена.
type Store struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	OwnerID   int       `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// StoreWithRating — строка витрины магазинов для обычного пользователя:
// агрегаты по всем оценкам плюс собственная оценка запрашивающего.
// AvgRating равен nil, если у магазина нет ни одной оценки,
// UserRating равен nil, если запрашивающий магазин не оценивал.
type StoreWithRating struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	AvgRating    *float64 `json:"avg_rating"`
	TotalRatings int      `json:"total_ratings"`
	UserRating   *int     `json:"user_rating"`
}

// OwnerStoreRating — строка выборки владельца: одна строка на каждую оценку
// его магазина вместе с автором и оконным средним по магазину.
// Магазин без оценок представлен одной строкой с nil в полях оценки.
type OwnerStoreRating struct {
	StoreID   int        `json:"store_id"`
	StoreName string     `json:"store_name"`
	UserID    *int       `json:"user_id"`
	UserName  *string    `json:"user_name"`
	UserEmail *string    `json:"user_email"`
	Rating    *int       `json:"rating"`
	CreatedAt *time.Time `json:"created_at"`
	AvgRating *float64   `json:"avg_rating"`
}

// AdminStoreRow — строка административного списка магазинов:
// данные владельца и агрегаты оценок.
type AdminStoreRow struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	OwnerName    string   `json:"owner_name"`
	OwnerEmail   string   `json:"owner_email"`
	AvgRating    *float64 `json:"avg_rating"`
	TotalRatings int      `json:"total_ratings"`
}

// DashboardStats — сводные счетчики для административной панели.
// Снимок не является транзакционно согласованным между тремя счетчиками.
type DashboardStats struct {
	TotalUsers   int `json:"total_users"`
	TotalStores  int `json:"total_stores"`
	TotalRatings int `json:"total_ratings"`
}

// DummyCreateStore используется администратором для создания магазина.
type DummyCreateStore struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required"`
	OwnerID int    `json:"owner_id" validate:"required,gt=0"`
}
