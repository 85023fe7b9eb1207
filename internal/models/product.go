package models

import "time"

// Product is a rubber duck in the catalog.
type Product struct {
	ID                 string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name               string    `json:"name" gorm:"type:varchar(255);not null"`
	Description        string    `json:"description" gorm:"type:varchar(1024);not null"`
	ImageURL           string    `json:"imageUrl" gorm:"type:varchar(1024);not null"`
	Color              string    `json:"color" gorm:"type:varchar(255);not null"`
	Theme              string    `json:"theme" gorm:"type:varchar(255);not null"`
	Size               int       `json:"size" gorm:"not null"`
	Price              float64   `json:"price" gorm:"not null"`
	InStock            bool      `json:"inStock" gorm:"not null"`
	IsOnDiscount       bool      `json:"isOnDiscount" gorm:"not null"`
	DiscountPercentage float64   `json:"discountPercentage" gorm:"not null"`
	IsHidden           bool      `json:"isHidden" gorm:"not null"`
	CreatedBy          string    `json:"_createdBy" gorm:"type:varchar(36);index;not null"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
