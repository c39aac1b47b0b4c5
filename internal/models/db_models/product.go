package db_models

import "github.com/lib/pq"

type Product struct {
	BaseModel
	Name        string `gorm:"index;not null"`
	Description *string
	// PriceMinor in whole KES; M-Pesa push amounts take no decimals.
	PriceMinor int64          `gorm:"not null"`
	Unit       string         // "kg", "bunch", "piece", "litre"
	Tags       pq.StringArray `gorm:"type:text[]"`
	ImageURL   string
	InStock    bool `gorm:"default:true"`
}
