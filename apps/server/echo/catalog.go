package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/ubao/core"
	"github.com/darasahq/ubao/core/board"
	"github.com/darasahq/ubao/storage/memdb"
)

type catalogApi struct {
	catalog *memdb.CatalogRepository
}

func registerCatalogAPI(g *echo.Group, jwt echo.MiddlewareFunc, catalog *memdb.CatalogRepository) {
	api := catalogApi{catalog: catalog}

	cg := g.Group("/classes", jwt)
	cg.GET("/my", api.myClasses)
	cg.POST("/join", api.join)
	cg.GET("/:id/lectures", api.lectures)
}

func (api *catalogApi) myClasses(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	classes, err := api.catalog.QueryMemberClasses(claims.Username)
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *catalogApi) join(ctx echo.Context) error {
	var data board.JoinClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to JoinClass")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	class, err := api.catalog.GetClassByCode(data.Code)
	if err != nil {
		if errors.Cause(err) == board.ErrClassNotFound {
			return core.NewValidationError(errors.New("unknown class code"))
		}
		return errors.Wrap(err, "finding class by code")
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	if err := api.catalog.AddMember(class.ID, claims.Username); err != nil {
		return errors.Wrap(err, "adding class member")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *catalogApi) lectures(ctx echo.Context) error {
	lectures, err := api.catalog.QueryClassLectures(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying lectures")
	}
	return ctx.JSON(http.StatusOK, lectures)
}
