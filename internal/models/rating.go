// Package models содержит доменную модель оценки магазина.
package models

import "time"

// Rating представляет оценку магазина пользователем.
// Инвариант: не более одной оценки на пару (user_id, store_id);
// повторная отправка перезаписывает значение и обновляет updated_at.
type Rating struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	StoreID   int       `json:"store_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DummyRating используется для приёма оценки из JSON-запроса.
// Допустимые значения — целые от 1 до 5.
type DummyRating struct {
	Rating int `json:"rating" validate:"required,gte=1,lte=5"`
}
