package models

// TemplateType selects which section sequence renders a gift site.
type TemplateType string

const (
	TemplateValentineClassic TemplateType = "valentine_classic"
	TemplateValentineAsk     TemplateType = "valentine_ask"
	TemplateBirthday         TemplateType = "birthday"
	TemplateAnniversary      TemplateType = "anniversary"
	TemplateCustom           TemplateType = "custom"
)

// Valid reports whether t is one of the declared template types.
func (t TemplateType) Valid() bool {
	switch t {
	case TemplateValentineClassic, TemplateValentineAsk,
		TemplateBirthday, TemplateAnniversary, TemplateCustom:
		return true
	}
	return false
}

// TimelineEvent is an embedded relationship-timeline entry. The date is a
// free-form label; it is never parsed or sorted, array order is display order.
type TimelineEvent struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// ContentBag is the open, sparsely-populated content record of a gift site.
// Every field is optional; which fields are meaningful depends on the
// site's template type.
type ContentBag struct {
	RecipientName string          `json:"recipient_name,omitempty"`
	HeroHeadline  string          `json:"hero_headline,omitempty"`
	HeroSubtext   string          `json:"hero_subtext,omitempty"`
	SecretMessage string          `json:"secret_message,omitempty"`
	SecretCode    string          `json:"secret_code,omitempty"`
	LoveLetter    string          `json:"love_letter,omitempty"`
	Promises      []string        `json:"promises,omitempty"`
	Timeline      []TimelineEvent `json:"timeline,omitempty"`
	MusicURL      string          `json:"music_url,omitempty"`
	FinalMessage  string          `json:"final_message,omitempty"`

	// birthday
	Age    *int     `json:"age,omitempty"`
	Wishes []string `json:"wishes,omitempty"`

	// valentine_ask
	AskQuestion string `json:"ask_question,omitempty"`
	YesResponse string `json:"yes_response,omitempty"`
	NoResponse  string `json:"no_response,omitempty"`
}

// GiftSiteModel is a new-format, template-tagged gift page.
type GiftSiteModel struct {
	Base
	UserID       string       `json:"user_id"       gorm:"index"`
	Slug         string       `json:"slug"          gorm:"uniqueIndex;not null"`
	TemplateType TemplateType `json:"template_type" gorm:"not null"`
	Content      ContentBag   `json:"content"       gorm:"type:longtext;serializer:json"`
	IsPublished  bool         `json:"is_published"  gorm:"default:false;index"`
}

func (GiftSiteModel) TableName() string { return "gift_sites" }

// ResponseKind is the visitor's answer on a valentine_ask site.
type ResponseKind string

const (
	ResponseYes   ResponseKind = "yes"
	ResponseNo    ResponseKind = "no"
	ResponseMaybe ResponseKind = "maybe"
)

// Valid reports whether k is a declared response kind.
func (k ResponseKind) Valid() bool {
	return k == ResponseYes || k == ResponseNo || k == ResponseMaybe
}

// GiftResponseModel records a visitor's answer to a valentine_ask site.
// Message and SelectedDate are only collected on the yes/maybe path.
type GiftResponseModel struct {
	Base
	GiftSiteID   string       `json:"gift_site_id"  gorm:"index;not null"`
	Kind         ResponseKind `json:"response_type" gorm:"column:response_type;not null"`
	Message      *string      `json:"message,omitempty"`
	SelectedDate *string      `json:"selected_date,omitempty"`
}

func (GiftResponseModel) TableName() string { return "gift_site_responses" }
