// Package quiz implements the couples quiz: a creator answers a fixed
// question set, shares a slug, and a partner's attempt is scored by
// answer matches.
package quiz

import (
	"errors"
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/gin-gonic/gin"
	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/giftloom/core/internal/middleware"
	"github.com/giftloom/core/internal/models"
	"github.com/giftloom/core/internal/pkg/response"
)

var ErrSlugTaken = errors.New("slug already exists")

// DefaultQuestions is the built-in question set used when a quiz does
// not carry its own.
var DefaultQuestions = []models.QuizQuestion{
	{ID: 1, Text: "What's their favorite comfort food?", Options: []string{"Pizza", "Ice Cream", "Home Cooked Meal", "Fast Food"}},
	{ID: 2, Text: "Where is their dream vacation destination?", Options: []string{"Beach Resort", "Mountain Cabin", "European City", "Adventure Safari"}},
	{ID: 3, Text: "What's their primary love language?", Options: []string{"Words of Affirmation", "Acts of Service", "Receiving Gifts", "Quality Time"}},
	{ID: 4, Text: "How do they prefer to spend a rainy Sunday?", Options: []string{"Watching Movies", "Reading a Book", "Sleeping In", "Playing Games"}},
	{ID: 5, Text: "Which superpower would they choose?", Options: []string{"Flight", "Invisibility", "Telepathy", "Time Travel"}},
}

type CreateQuizDTO struct {
	Slug      string                `json:"slug"`
	Questions []models.QuizQuestion `json:"questions"`
	Answers   map[int]string        `json:"answers" binding:"required"`
}

type AttemptDTO struct {
	Answers map[int]string `json:"answers" binding:"required"`
}

type AttemptResult struct {
	Matches    int `json:"matches"`
	Total      int `json:"total"`
	MatchScore int `json:"match_score"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) GetBySlug(slug string) (*models.CouplesQuizModel, error) {
	var quiz models.CouplesQuizModel
	if err := s.db.Where("slug = ?", slug).First(&quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quiz, nil
}

func (s *Service) Create(creatorID string, dto *CreateQuizDTO) (*models.CouplesQuizModel, error) {
	slug := dto.Slug
	if slug == "" {
		slug = "quiz-" + strconv.FormatUint(uint64(rand.Uint32()), 36)
	}

	var count int64
	if err := s.db.Model(&models.CouplesQuizModel{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugTaken
	}

	questions := dto.Questions
	if len(questions) == 0 {
		questions = DefaultQuestions
	}

	quiz := models.CouplesQuizModel{
		Slug:      slug,
		Questions: questions,
		Answers:   dto.Answers,
	}
	if creatorID != "" {
		quiz.CreatorID = &creatorID
	}
	if err := s.db.Create(&quiz).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return &quiz, nil
}

// isDuplicateKey detects a lost slug race against the unique index.
func isDuplicateKey(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// Score counts exact answer matches per question id and rounds the
// percentage the way the results screen shows it.
func Score(questions []models.QuizQuestion, creator, attempt map[int]string) AttemptResult {
	matches := 0
	for _, q := range questions {
		if a, ok := attempt[q.ID]; ok && a == creator[q.ID] {
			matches++
		}
	}
	total := len(questions)
	score := 0
	if total > 0 {
		score = int(math.Round(float64(matches) / float64(total) * 100))
	}
	return AttemptResult{Matches: matches, Total: total, MatchScore: score}
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/quizzes")
	g.POST("", h.create)
	g.GET("/questions", h.questions)
	g.GET("/:slug", h.get)
	g.POST("/:slug/attempt", h.attempt)
}

func (h *Handler) questions(c *gin.Context) {
	response.OK(c, DefaultQuestions)
}

func (h *Handler) get(c *gin.Context) {
	quiz, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if quiz == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, quiz)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateQuizDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	quiz, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, quiz)
}

func (h *Handler) attempt(c *gin.Context) {
	var dto AttemptDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	quiz, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if quiz == nil {
		response.NotFound(c)
		return
	}

	questions := quiz.Questions
	if len(questions) == 0 {
		questions = DefaultQuestions
	}
	response.OK(c, Score(questions, quiz.Answers, dto.Answers))
}
