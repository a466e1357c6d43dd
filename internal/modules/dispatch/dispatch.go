// Package dispatch turns a resolved content document into an ordered
// list of renderable sections. It owns the per-template section
// sequences and the default text substituted for omitted fields.
package dispatch

import (
	"errors"
	"fmt"

	"github.com/giftloom/core/internal/models"
)

// SectionKind identifies one renderable unit of a page.
type SectionKind string

const (
	SectionHero          SectionKind = "hero"
	SectionGallery       SectionKind = "gallery"
	SectionSecretMessage SectionKind = "secret_message"
	SectionTimeline      SectionKind = "timeline"
	SectionLoveLetter    SectionKind = "love_letter"
	SectionPromises      SectionKind = "promises"
	SectionFinalSurprise SectionKind = "final_surprise"
	SectionAsk           SectionKind = "ask"
	SectionCard          SectionKind = "card"
)

// ErrUnsupportedTemplate is returned for template types that have no
// defined section sequence. The caller must stop rendering instead of
// guessing a layout.
var ErrUnsupportedTemplate = errors.New("unsupported template type")

// Section pairs a component kind with its fully-resolved props. Props
// are complete at build time so the presentation layer never applies
// defaults of its own.
type Section struct {
	Kind  SectionKind `json:"kind"`
	Props interface{} `json:"props"`
}

// Layout is the full render instruction for one page. Music sits
// outside Sections because it is a persistent floating control, not a
// slot in the scroll sequence.
type Layout struct {
	Template string      `json:"template"`
	Sections []Section   `json:"sections"`
	Music    *MusicProps `json:"music,omitempty"`
}

type HeroProps struct {
	RecipientName string `json:"recipient_name"`
	Headline      string `json:"headline"`
	Subtext       string `json:"subtext"`
}

// PhotoView is a gallery entry, already ordered for presentation.
type PhotoView struct {
	URL          string  `json:"url"`
	Caption      *string `json:"caption,omitempty"`
	DisplayOrder int     `json:"display_order"`
}

type GalleryProps struct {
	Photos []PhotoView `json:"photos"`
}

type SecretMessageProps struct {
	Message    string  `json:"message"`
	SecretCode *string `json:"secret_code,omitempty"`
}

type TimelineProps struct {
	Events []models.TimelineEvent `json:"events"`
}

type LoveLetterProps struct {
	Letter string `json:"letter"`
}

type PromisesProps struct {
	Promises []string `json:"promises"`
}

type FinalSurpriseProps struct {
	Message string `json:"message"`
}

type MusicProps struct {
	URL string `json:"url"`
}

type AskProps struct {
	Headline    string `json:"headline"`
	Question    string `json:"question"`
	YesResponse string `json:"yes_response"`
	NoResponse  string `json:"no_response"`
}

type CardProps struct {
	Variant       models.CardTemplateType `json:"variant"`
	SenderName    string                  `json:"sender_name"`
	RecipientName string                  `json:"recipient_name"`
	Message       string                  `json:"message"`
	PhotoURL      string                  `json:"photo_url,omitempty"`
	ThemeColor    string                  `json:"theme_color"`
}

// Fallback text for optional fields, applied once at build time.
const (
	defaultRecipientName = "Valentine"
	defaultHeadline      = "Happy Valentine Day!"
	defaultAskHeadline   = "I have a question..."
	defaultAskQuestion   = "Will you be my Valentine? 💕"
	defaultYesResponse   = "YAY! I knew you'd say Yes! ❤️"
	defaultNoResponse    = "No"
	defaultThemeColor    = "#e11d48"
)

// classicContent is the normalized input of the classic section
// sequence. Both document shapes funnel into it: gift-site content
// after defaulting, valentine pages verbatim.
type classicContent struct {
	RecipientName string
	Headline      string
	Subtext       string
	SecretMessage string
	SecretCode    *string
	LoveLetter    string
	Promises      []string
	Timeline      []models.TimelineEvent
	MusicURL      string
	FinalMessage  string
}

// BuildGiftLayout selects the section sequence for a gift site. Photos
// may be nil; gift-site content carries no photo collection of its own
// but the classic sequence accepts one for parity with valentine pages.
func BuildGiftLayout(site *models.GiftSiteModel, photos []PhotoView) (*Layout, error) {
	switch site.TemplateType {
	case models.TemplateValentineClassic:
		return buildClassic(string(site.TemplateType), normalizeGiftContent(site.Content), photos), nil
	case models.TemplateValentineAsk:
		return buildAsk(site.Content), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTemplate, site.TemplateType)
	}
}

// BuildValentineLayout maps a legacy valentine page onto the classic
// sequence. All fields are mandatory on that schema, so no defaulting
// happens here.
func BuildValentineLayout(page *models.ValentinePageModel, photos []models.ValentinePhotoModel) *Layout {
	views := make([]PhotoView, 0, len(photos))
	for _, p := range photos {
		views = append(views, PhotoView{URL: p.PhotoURL, Caption: p.Caption, DisplayOrder: p.DisplayOrder})
	}

	content := classicContent{
		RecipientName: page.RecipientName,
		Headline:      page.HeroHeadline,
		Subtext:       page.HeroSubtext,
		SecretMessage: page.SecretMessage,
		SecretCode:    page.SecretCode,
		LoveLetter:    page.LoveLetter,
		Promises:      []string(page.Promises),
		Timeline:      page.Timeline,
		FinalMessage:  page.FinalMessage,
	}
	if page.MusicURL != nil {
		content.MusicURL = *page.MusicURL
	}
	return buildClassic("valentine_page", content, views)
}

// BuildCardLayout builds the single-section layout for a gift card.
func BuildCardLayout(card *models.GiftCardModel) (*Layout, error) {
	if !card.TemplateID.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTemplate, card.TemplateID)
	}

	props := CardProps{
		Variant:       card.TemplateID,
		SenderName:    card.Content.SenderName,
		RecipientName: card.Content.RecipientName,
		Message:       card.Content.Message,
		PhotoURL:      card.Content.PhotoURL,
		ThemeColor:    card.Content.ThemeColor,
	}
	if props.ThemeColor == "" {
		props.ThemeColor = defaultThemeColor
	}

	return &Layout{
		Template: string(card.TemplateID),
		Sections: []Section{{Kind: SectionCard, Props: props}},
	}, nil
}

// normalizeGiftContent substitutes fallback text for omitted optional
// fields. It reads from the bag and never writes back, so repeated
// dispatches of the same document are identical.
func normalizeGiftContent(bag models.ContentBag) classicContent {
	c := classicContent{
		RecipientName: stringOr(bag.RecipientName, defaultRecipientName),
		Headline:      stringOr(bag.HeroHeadline, defaultHeadline),
		Subtext:       bag.HeroSubtext,
		SecretMessage: bag.SecretMessage,
		LoveLetter:    bag.LoveLetter,
		Promises:      bag.Promises,
		Timeline:      bag.Timeline,
		MusicURL:      bag.MusicURL,
		FinalMessage:  bag.FinalMessage,
	}
	if bag.SecretCode != "" {
		code := bag.SecretCode
		c.SecretCode = &code
	}
	return c
}

func buildClassic(template string, c classicContent, photos []PhotoView) *Layout {
	sections := make([]Section, 0, 7)

	sections = append(sections, Section{Kind: SectionHero, Props: HeroProps{
		RecipientName: c.RecipientName,
		Headline:      c.Headline,
		Subtext:       c.Subtext,
	}})
	if len(photos) > 0 {
		sections = append(sections, Section{Kind: SectionGallery, Props: GalleryProps{Photos: photos}})
	}
	// The secret message renders even when empty: a secret with no
	// code still shows its reveal interaction.
	sections = append(sections, Section{Kind: SectionSecretMessage, Props: SecretMessageProps{
		Message:    c.SecretMessage,
		SecretCode: c.SecretCode,
	}})
	if len(c.Timeline) > 0 {
		sections = append(sections, Section{Kind: SectionTimeline, Props: TimelineProps{Events: c.Timeline}})
	}
	if c.LoveLetter != "" {
		sections = append(sections, Section{Kind: SectionLoveLetter, Props: LoveLetterProps{Letter: c.LoveLetter}})
	}
	if len(c.Promises) > 0 {
		sections = append(sections, Section{Kind: SectionPromises, Props: PromisesProps{Promises: c.Promises}})
	}
	sections = append(sections, Section{Kind: SectionFinalSurprise, Props: FinalSurpriseProps{Message: c.FinalMessage}})

	layout := &Layout{Template: template, Sections: sections}
	if c.MusicURL != "" {
		layout.Music = &MusicProps{URL: c.MusicURL}
	}
	return layout
}

func buildAsk(bag models.ContentBag) *Layout {
	return &Layout{
		Template: string(models.TemplateValentineAsk),
		Sections: []Section{{Kind: SectionAsk, Props: AskProps{
			Headline:    stringOr(bag.HeroHeadline, defaultAskHeadline),
			Question:    stringOr(bag.AskQuestion, defaultAskQuestion),
			YesResponse: stringOr(bag.YesResponse, defaultYesResponse),
			NoResponse:  stringOr(bag.NoResponse, defaultNoResponse),
		}}},
	}
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
