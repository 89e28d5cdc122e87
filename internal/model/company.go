package model

// swagger:model Company
type Company struct {
	BaseModel
	Name     string `gorm:"size:150;not null" json:"name"`
	Industry string `gorm:"size:100" json:"industry"`
	Country  string `gorm:"size:2" json:"country"`
	Website  string `gorm:"size:255" json:"website"`
}

func (Company) TableName() string {
	return "companies"
}
