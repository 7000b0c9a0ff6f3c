package models

import "time"

// PriceSchedule is a recurring daily local-time window, both bounds "HH:MM".
// The zero value means no schedule.
type PriceSchedule struct {
	ActiveFrom string `bson:"activeFrom" json:"activeFrom"`
	ActiveTo   string `bson:"activeTo" json:"activeTo"`
}

// Translations holds a category name per supported menu language.
type Translations struct {
	TR string `bson:"tr" json:"tr"`
	EN string `bson:"en" json:"en"`
	RU string `bson:"ru" json:"ru"`
	DE string `bson:"de" json:"de"`
	FR string `bson:"fr" json:"fr"`
}

// Category groups menu items.
type Category struct {
	ID           string       `bson:"_id" json:"_id"`
	Name         string       `bson:"name" json:"name"`
	Translations Translations `bson:"translations" json:"translations"`
	Image        string       `bson:"image" json:"image"`
	PublicID     string       `bson:"publicId" json:"publicId"` // storage asset id of Image
	CreatedAt    time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// Subcategory is a sellable menu item.
//
// RawPriceSchedule keeps whatever shape is stored in the document (embedded
// object, legacy JSON string or nothing); it is normalized by the pricing
// package before use.
type Subcategory struct {
	ID               string    `bson:"_id" json:"_id"`
	Category         string    `bson:"category" json:"category"`
	Name             string    `bson:"name" json:"name"`
	Description      string    `bson:"description" json:"description"`
	Image            string    `bson:"image" json:"image"`
	PublicID         string    `bson:"publicId" json:"publicId"`
	Price            float64   `bson:"price" json:"price"`
	RawPriceSchedule any       `bson:"priceSchedule,omitempty" json:"-"`
	IsActive         bool      `bson:"isActive" json:"isActive"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SubcategoryView is the listing shape of a subcategory.
type SubcategoryView struct {
	Subcategory
	PriceSchedule PriceSchedule `json:"priceSchedule"`
	DisplayPrice  float64       `json:"displayPrice"`
}

// CategoryWithSubcategories is one section of the guest menu.
type CategoryWithSubcategories struct {
	Category
	Subcategories []SubcategoryView `json:"subcategories"`
}
