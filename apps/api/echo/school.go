package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Axioms-Product/axiom-school-sub000/core/actor"
	"github.com/Axioms-Product/axiom-school-sub000/core/school"
)

type schoolApi struct {
	store *school.Store
}

func registerSchoolAPI(g *echo.Group, jwt echo.MiddlewareFunc, store *school.Store) {
	api := schoolApi{store: store}

	sg := g.Group("/school", jwt)

	sg.GET("/homeworks", api.homeworks)
	sg.POST("/homeworks", api.addHomework)
	sg.POST("/homeworks/:id/toggle", api.toggleHomework)
	sg.DELETE("/homeworks/:id", api.deleteHomework)

	sg.GET("/notices", api.notices)
	sg.POST("/notices", api.addNotice)
	sg.DELETE("/notices/:id", api.deleteNotice)

	sg.GET("/events", api.events)
	sg.POST("/events", api.addEvent)
	sg.DELETE("/events/:id", api.deleteEvent)

	sg.GET("/messages", api.messages)
	sg.POST("/messages", api.sendMessage)
	sg.POST("/messages/:id/read", api.markMessageRead)

	sg.GET("/marks", api.marks)
	sg.POST("/marks", api.addMark)

	sg.GET("/fees", api.fees)
	sg.POST("/fees", api.addFee)
	sg.POST("/fees/:id/paid", api.setFeePaid)

	sg.GET("/exam-schedules", api.examSchedules)
	sg.POST("/exam-schedules", api.addExamSchedule)
	sg.DELETE("/exam-schedules/:id", api.deleteExamSchedule)

	sg.GET("/attendance", api.attendance)
	sg.POST("/attendance", api.markAttendance)
	sg.GET("/attendance/notifications", api.notifications)
	sg.POST("/attendance/notifications/:id/respond", api.respondAttendance)

	sg.GET("/reports/student/:id", api.studentReport)
	sg.GET("/reports/class", api.classReport)
}

// withActor runs fn with the request's acting actor and maps lookup misses
// to 404.
func (api *schoolApi) withActor(ctx echo.Context, fn func(act actor.Actor) error) error {
	act, err := contextActor(ctx)
	if err != nil {
		return err
	}
	if err := fn(act); err != nil {
		if errors.Cause(err) == school.ErrNotFound {
			return errHTTPNotFound
		}
		return err
	}
	return nil
}

// Homework

func (api *schoolApi) homeworks(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		hws, err := api.store.Homeworks(ctx.Request().Context(), act)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, hws)
	})
}

func (api *schoolApi) addHomework(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		var data school.NewHomework
		if err := ctx.Bind(&data); err != nil {
			return errors.Wrap(err, "binding to NewHomework")
		}
		hw, err := api.store.AddHomework(ctx.Request().Context(), act, data)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusCreated, hw)
	})
}

func (api *schoolApi) toggleHomework(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		hw, err := api.store.ToggleHomeworkCompletion(ctx.Request().Context(), act, ctx.Param("id"))
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, hw)
	})
}

func (api *schoolApi) deleteHomework(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		if err := api.store.DeleteHomework(ctx.Request().Context(), act, ctx.Param("id")); err != nil {
			return err
		}
		return ctx.NoContent(http.StatusNoContent)
	})
}

// Notices

func (api *schoolApi) notices(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		ns, err := api.store.Notices(ctx.Request().Context(), act)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, ns)
	})
}

func (api *schoolApi) addNotice(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		var data school.NewNotice
		if err := ctx.Bind(&data); err != nil {
			return errors.Wrap(err, "binding to NewNotice")
		}
		n, err := api.store.AddNotice(ctx.Request().Context(), act, data)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusCreated, n)
	})
}

func (api *schoolApi) deleteNotice(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		if err := api.store.DeleteNotice(ctx.Request().Context(), act, ctx.Param("id")); err != nil {
			return err
		}
		return ctx.NoContent(http.StatusNoContent)
	})
}

// Events

func (api *schoolApi) events(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		evs, err := api.store.Events(ctx.Request().Context(), act)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, evs)
	})
}

func (api *schoolApi) addEvent(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		var data school.NewEvent
		if err := ctx.Bind(&data); err != nil {
			return errors.Wrap(err, "binding to NewEvent")
		}
		ev, err := api.store.AddEvent(ctx.Request().Context(), act, data)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusCreated, ev)
	})
}

func (api *schoolApi) deleteEvent(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		if err := api.store.DeleteEvent(ctx.Request().Context(), act, ctx.Param("id")); err != nil {
			return err
		}
		return ctx.NoContent(http.StatusNoContent)
	})
}

// Messages

func (api *schoolApi) messages(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		msgs, err := api.store.Messages(ctx.Request().Context(), act)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, msgs)
	})
}

func (api *schoolApi) sendMessage(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		var data school.NewMessage
		if err := ctx.Bind(&data); err != nil {
			return errors.Wrap(err, "binding to NewMessage")
		}
		msg, err := api.store.SendMessage(ctx.Request().Context(), act, data)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusCreated, msg)
	})
}

func (api *schoolApi) markMessageRead(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		if err := api.store.MarkMessageRead(ctx.Request().Context(), act, ctx.Param("id")); err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, SuccessResponse{Success: "message marked read"})
	})
}

// Marks

func (api *schoolApi) marks(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		var target []string
		if sid := ctx.QueryParam("student"); sid != "" {
			target = append(target, sid)
		}
		mks, err := api.store.Marks(ctx.Request().Context(), act, target...)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, mks)
	})
}

func (api *schoolApi) addMark(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		var data school.NewMark
		if err := ctx.Bind(&data); err != nil {
			return errors.Wrap(err, "binding to NewMark")
		}
		mk, err := api.store.AddMark(ctx.Request().Context(), act, data)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusCreated, mk)
	})
}

// Fees

func (api *schoolApi) fees(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		fees, err := api.store.Fees(ctx.Request().Context(), act)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, fees)
	})
}

func (api *schoolApi) addFee(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		var data school.NewFeePayment
		if err := ctx.Bind(&data); err != nil {
			return errors.Wrap(err, "binding to NewFeePayment")
		}
		fee, err := api.store.AddFeePayment(ctx.Request().Context(), act, data)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusCreated, fee)
	})
}

func (api *schoolApi) setFeePaid(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		fee, err := api.store.SetFeePaid(ctx.Request().Context(), act, ctx.Param("id"))
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, fee)
	})
}

// Exam schedules

func (api *schoolApi) examSchedules(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		exs, err := api.store.ExamSchedules(ctx.Request().Context(), act)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, exs)
	})
}

func (api *schoolApi) addExamSchedule(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		var data school.NewExamSchedule
		if err := ctx.Bind(&data); err != nil {
			return errors.Wrap(err, "binding to NewExamSchedule")
		}
		ex, err := api.store.AddExamSchedule(ctx.Request().Context(), act, data)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusCreated, ex)
	})
}

func (api *schoolApi) deleteExamSchedule(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		if err := api.store.DeleteExamSchedule(ctx.Request().Context(), act, ctx.Param("id")); err != nil {
			return err
		}
		return ctx.NoContent(http.StatusNoContent)
	})
}

// Attendance

func (api *schoolApi) attendance(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		recs, err := api.store.AttendanceRecords(ctx.Request().Context(), act)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, recs)
	})
}

func (api *schoolApi) markAttendance(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		var data school.AttendanceSheet
		if err := ctx.Bind(&data); err != nil {
			return errors.Wrap(err, "binding to AttendanceSheet")
		}
		recs, err := api.store.MarkAttendance(ctx.Request().Context(), act, data)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusCreated, recs)
	})
}

func (api *schoolApi) notifications(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		ns, err := api.store.AttendanceNotifications(ctx.Request().Context(), act)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, ns)
	})
}

func (api *schoolApi) respondAttendance(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		var data RespondRequest
		if err := ctx.Bind(&data); err != nil {
			return errors.Wrap(err, "binding to RespondRequest")
		}
		if err := data.Validate(); err != nil {
			return err
		}
		resp := school.AttendanceResponse(data.Response)
		if err := api.store.RespondAttendance(ctx.Request().Context(), act, ctx.Param("id"), resp); err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, SuccessResponse{Success: "response recorded"})
	})
}

// Reports

func (api *schoolApi) studentReport(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		report, err := api.store.StudentReport(ctx.Request().Context(), act, ctx.Param("id"))
		if err != nil {
			return err
		}
		return ctx.String(http.StatusOK, report.Render())
	})
}

func (api *schoolApi) classReport(ctx echo.Context) error {
	return api.withActor(ctx, func(act actor.Actor) error {
		report, err := api.store.ClassReport(ctx.Request().Context(), act)
		if err != nil {
			return err
		}
		return ctx.String(http.StatusOK, report.Render())
	})
}
