package model

// Address is embedded into doctor and patient rows as flat columns.
type Address struct {
	Street       string `json:"street" gorm:"size:255"`
	Neighborhood string `json:"neighborhood" gorm:"size:120"`
	PostalCode   string `json:"postal_code" gorm:"size:9"`
	Number       string `json:"number" gorm:"size:20"`
	Complement   string `json:"complement" gorm:"size:120"`
	City         string `json:"city" gorm:"size:120"`
	State        string `json:"state" gorm:"size:2"`
}
