package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/teacherpoli/backoffice/core/bonus"
)

type bonusApi struct {
	svc *bonus.Service
}

func registerBonusAPI(g *echo.Group, svc *bonus.Service) {
	api := bonusApi{svc: svc}

	bg := g.Group("/bonuses")
	bg.GET("", api.query)
	bg.POST("", api.create)
	bg.GET("/events", api.streamCatalogEvents)

	// detail endpoints
	dg := bg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)

	lg := dg.Group("/lessons")
	lg.POST("", api.createLesson)
	lg.PUT("/:lessonId", api.updateLesson)
	lg.DELETE("/:lessonId", api.destroyLesson)
	lg.POST("/:lessonId/exercises", api.createExercise)
	lg.DELETE("/:lessonId/exercises/:exerciseId", api.destroyExercise)
}

// Handlers

func (api *bonusApi) query(ctx echo.Context) error {
	catalog, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing bonuses")
	}
	return ctx.JSON(http.StatusOK, catalog)
}

func (api *bonusApi) retrieve(ctx echo.Context) error {
	res, err := api.svc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting bonus")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *bonusApi) create(ctx echo.Context) error {
	var data bonus.NewResource
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewResource")
	}
	res, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating bonus")
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (api *bonusApi) update(ctx echo.Context) error {
	var data bonus.UpdateResource
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateResource")
	}
	res, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating bonus")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *bonusApi) destroy(ctx echo.Context) error {
	if err := api.svc.Remove(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "removing bonus")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *bonusApi) createLesson(ctx echo.Context) error {
	var data bonus.NewLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLesson")
	}
	lesson, err := api.svc.AddLesson(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "adding lesson")
	}
	return ctx.JSON(http.StatusCreated, lesson)
}

func (api *bonusApi) updateLesson(ctx echo.Context) error {
	var data bonus.UpdateLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateLesson")
	}
	lesson, err := api.svc.UpdateLesson(ctx.Request().Context(), ctx.Param("id"), ctx.Param("lessonId"), data)
	if err != nil {
		return errors.Wrap(err, "updating lesson")
	}
	return ctx.JSON(http.StatusOK, lesson)
}

func (api *bonusApi) destroyLesson(ctx echo.Context) error {
	if err := api.svc.RemoveLesson(ctx.Request().Context(), ctx.Param("id"), ctx.Param("lessonId")); err != nil {
		return errors.Wrap(err, "removing lesson")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *bonusApi) createExercise(ctx echo.Context) error {
	var data bonus.NewExercise
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewExercise")
	}
	ex, err := api.svc.AddExercise(ctx.Request().Context(), ctx.Param("id"), ctx.Param("lessonId"), data)
	if err != nil {
		return errors.Wrap(err, "adding exercise")
	}
	return ctx.JSON(http.StatusCreated, ex)
}

func (api *bonusApi) destroyExercise(ctx echo.Context) error {
	err := api.svc.RemoveExercise(ctx.Request().Context(), ctx.Param("id"), ctx.Param("lessonId"), ctx.Param("exerciseId"))
	if err != nil {
		return errors.Wrap(err, "removing exercise")
	}
	return ctx.NoContent(http.StatusNoContent)
}
