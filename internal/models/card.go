package models

// CardTemplateType selects a story-card rendering variant.
type CardTemplateType string

const (
	CardStorySimple   CardTemplateType = "story_simple"
	CardStoryAnimated CardTemplateType = "story_animated"
	CardStoryPhoto    CardTemplateType = "story_photo"
)

// Valid reports whether t is a declared card template.
func (t CardTemplateType) Valid() bool {
	return t == CardStorySimple || t == CardStoryAnimated || t == CardStoryPhoto
}

// CardContent is the sparse content record of a story card.
type CardContent struct {
	SenderName    string `json:"sender_name,omitempty"`
	RecipientName string `json:"recipient_name,omitempty"`
	Message       string `json:"message,omitempty"`
	PhotoURL      string `json:"photo_url,omitempty"`
	ThemeColor    string `json:"theme_color,omitempty"`
}

// GiftCardModel is a 9:16 story-style card addressed by id, not slug.
type GiftCardModel struct {
	Base
	UserID     string           `json:"user_id"     gorm:"index"`
	TemplateID CardTemplateType `json:"template_id" gorm:"not null"`
	Content    CardContent      `json:"content"     gorm:"type:longtext;serializer:json"`
}

func (GiftCardModel) TableName() string { return "gift_cards" }
