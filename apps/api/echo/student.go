package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/teacherpoli/backoffice/core"
	"github.com/teacherpoli/backoffice/core/student"
)

type studentApi struct {
	dir *student.Directory
}

func registerStudentAPI(g *echo.Group, dir *student.Directory) {
	api := studentApi{dir: dir}

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.GET("/stats", api.stats)
	sg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	students, err := api.dir.Search(ctx.Request().Context(), ctx.QueryParam("search"))
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	data.AddedBy = claims.Email

	s, err := api.dir.Add(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding student")
	}
	return ctx.JSON(http.StatusCreated, s)
}

// destroy always succeeds for ids the directory does not know.
func (api *studentApi) destroy(ctx echo.Context) error {
	if err := api.dir.Remove(ctx.Request().Context(), ctx.Param("id")); err != nil && !core.IsNotFound(err) {
		return errors.Wrap(err, "removing student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) stats(ctx echo.Context) error {
	stats, err := api.dir.Stats(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "computing student stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}
