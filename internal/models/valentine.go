package models

// ValentinePageModel is a legacy, single-template valentine page. Unlike the
// new-format ContentBag every field here is mandatory at the schema level; the
// dispatcher treats these rows as pre-normalized.
type ValentinePageModel struct {
	Base
	Slug          string          `json:"slug"           gorm:"uniqueIndex;not null"`
	RecipientName string          `json:"recipient_name" gorm:"not null"`
	HeroHeadline  string          `json:"hero_headline"  gorm:"not null"`
	HeroSubtext   string          `json:"hero_subtext"   gorm:"not null"`
	SecretMessage string          `json:"secret_message" gorm:"type:text;not null"`
	SecretCode    *string         `json:"secret_code"`
	LoveLetter    string          `json:"love_letter"    gorm:"type:longtext;not null"`
	Promises      StringArray     `json:"promises"       gorm:"type:longtext"`
	Timeline      []TimelineEvent `json:"timeline"       gorm:"type:longtext;serializer:json"`
	MusicURL      *string         `json:"music_url"`
	FinalMessage  string          `json:"final_message"  gorm:"type:text;not null"`
}

func (ValentinePageModel) TableName() string { return "valentine_pages" }

// ValentinePhotoModel is a gallery photo owned by a legacy valentine page.
// DisplayOrder defines the presentation sequence.
type ValentinePhotoModel struct {
	Base
	ValentineID  string  `json:"valentine_id"  gorm:"index;not null"`
	PhotoURL     string  `json:"photo_url"     gorm:"not null"`
	Caption      *string `json:"caption"`
	DisplayOrder int     `json:"display_order" gorm:"default:0"`
}

func (ValentinePhotoModel) TableName() string { return "valentine_photos" }
