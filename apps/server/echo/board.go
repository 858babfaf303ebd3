package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/darasahq/ubao/core"
	"github.com/darasahq/ubao/core/board"
	"github.com/darasahq/ubao/storage/memdb"
)

type boardApi struct {
	questions *memdb.QuestionRepository
	catalog   *memdb.CatalogRepository
	hub       *hub
}

func registerBoardAPI(g *echo.Group, jwt echo.MiddlewareFunc, questions *memdb.QuestionRepository, catalog *memdb.CatalogRepository, h *hub) {
	api := boardApi{
		questions: questions,
		catalog:   catalog,
		hub:       h,
	}

	lg := g.Group("/lectures/:id/questions", jwt)
	lg.GET("", api.list)
	lg.POST("", api.create, studentMiddleware())

	qg := g.Group("/questions/:id", jwt, taMiddleware())
	qg.PATCH("", api.patch)
	qg.DELETE("", api.destroy)
}

// Handlers

func (api *boardApi) list(ctx echo.Context) error {
	if _, err := api.catalog.GetLectureByID(ctx.Param("id")); err != nil {
		return errHttpNotFound
	}
	questions, err := api.questions.QueryLectureQuestions(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying questions")
	}
	return ctx.JSON(http.StatusOK, questions)
}

func (api *boardApi) create(ctx echo.Context) error {
	lectureID := ctx.Param("id")
	if _, err := api.catalog.GetLectureByID(lectureID); err != nil {
		return errHttpNotFound
	}

	var data board.NewQuestion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuestion")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	// the authoritative duplicate check; the client guard is best-effort
	if err := api.questions.CheckTextUniqueness(lectureID, data.Text); err != nil {
		if errors.Cause(err) == board.ErrDuplicateQuestion {
			return core.NewConflictError(err.Error())
		}
		return errors.Wrap(err, "checking text uniqueness")
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	var author null.String
	if claims.Name != "" {
		author = null.StringFrom(claims.Name)
	}

	question, err := api.questions.CreateQuestion(board.Question{
		LectureID: lectureID,
		Text:      data.Text,
		Author:    author,
	})
	if err != nil {
		return errors.Wrap(err, "creating question")
	}

	api.hub.notify(lectureID)
	return ctx.JSON(http.StatusCreated, question)
}

func (api *boardApi) patch(ctx echo.Context) error {
	var data board.QuestionPatch
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to QuestionPatch")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	question, err := api.questions.PatchQuestion(ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == board.ErrQuestionNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "patching question")
	}

	api.hub.notify(question.LectureID)
	return ctx.NoContent(http.StatusNoContent)
}

func (api *boardApi) destroy(ctx echo.Context) error {
	question, err := api.questions.GetQuestionByID(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	if err := api.questions.SoftDeleteQuestion(question.ID); err != nil {
		return errors.Wrap(err, "soft-deleting question")
	}

	api.hub.notify(question.LectureID)
	return ctx.NoContent(http.StatusNoContent)
}
