package refdata

// City is a static reference row with localized names
type City struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	NameEn string `gorm:"size:100;not null" json:"name_en"`
	NameAr string `gorm:"size:100;not null" json:"name_ar"`
	NameKu string `gorm:"size:100;not null" json:"name_ku"`
	Image  string `gorm:"size:500" json:"image,omitempty"`
}

func (City) TableName() string {
	return "cities"
}

// Category optionally carries a sponsor for promotional display
type Category struct {
	ID        uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	NameEn    string   `gorm:"size:100;not null" json:"name_en"`
	NameAr    string   `gorm:"size:100;not null" json:"name_ar"`
	NameKu    string   `gorm:"size:100;not null" json:"name_ku"`
	Icon      string   `gorm:"size:50" json:"icon"`
	SponsorID *uint    `gorm:"index" json:"sponsor_id,omitempty"`
	Sponsor   *Sponsor `gorm:"foreignKey:SponsorID" json:"sponsor,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

type Sponsor struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"size:150;not null" json:"name"`
	LogoURL string `gorm:"size:500;not null" json:"logo_url"`
}

func (Sponsor) TableName() string {
	return "sponsors"
}
