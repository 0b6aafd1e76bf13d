package router

import (
	"context"
	"net/http"

	"github.com/DjordjeVuckovic/post-qa/internal/apperr"
	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/DjordjeVuckovic/post-qa/internal/merge"
	"github.com/labstack/echo/v4"
)

type Answerer interface {
	Answer(ctx context.Context, userID, question string) (*domain.ResponseRecord, error)
	TextAnswer(ctx context.Context, userID, question string) (*domain.ResponseRecord, error)
}

type AnswersRouter struct {
	e        *echo.Echo
	answerer Answerer
}

func NewAnswersRouter(e *echo.Echo, answerer Answerer) *AnswersRouter {
	return &AnswersRouter{
		e:        e,
		answerer: answerer,
	}
}

func (r *AnswersRouter) Bind() {
	v1 := r.e.Group("/api/v1")
	v1.GET("/answers", r.answersHandler)
	v1.GET("/text-answers", r.textAnswersHandler)
	v1.POST("/merge", r.mergeHandler)
}

// answersHandler godoc
// @Summary Answer a question about the user's posts
// @Tags answers
// @Produce json
// @Param u query string true "User id"
// @Param q query string true "Question"
// @Success 200 {object} domain.ResponseRecord
// @Failure 400 {object} domain.ErrorRecord
// @Failure 500 {object} domain.ErrorRecord
// @Router /api/v1/answers [get]
func (r *AnswersRouter) answersHandler(c echo.Context) error {
	res, err := r.answerer.Answer(c.Request().Context(), c.QueryParam("u"), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// textAnswersHandler godoc
// @Summary Answer a question from post text only
// @Tags answers
// @Produce json
// @Param u query string true "User id"
// @Param q query string true "Question"
// @Success 200 {object} domain.ResponseRecord
// @Failure 400 {object} domain.ErrorRecord
// @Failure 500 {object} domain.ErrorRecord
// @Router /api/v1/text-answers [get]
func (r *AnswersRouter) textAnswersHandler(c echo.Context) error {
	res, err := r.answerer.TextAnswer(c.Request().Context(), c.QueryParam("u"), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// MergeRequest carries the responses of both pipelines.
type MergeRequest struct {
	Text       *domain.ResponseRecord `json:"text"`
	Multimedia *domain.ResponseRecord `json:"mm"`
}

// mergeHandler godoc
// @Summary Merge a text and a multimedia response
// @Tags answers
// @Accept json
// @Produce json
// @Param request body MergeRequest true "Responses to merge"
// @Success 200 {object} domain.ResponseRecord
// @Failure 400 {object} domain.ErrorRecord
// @Router /api/v1/merge [post]
func (r *AnswersRouter) mergeHandler(c echo.Context) error {
	var req MergeRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid merge request", err)
	}
	if req.Text == nil || req.Multimedia == nil {
		return apperr.NewValidation("both text and mm responses are required")
	}

	merged := merge.Merge(*req.Text, *req.Multimedia)
	return c.JSON(http.StatusOK, merged)
}
