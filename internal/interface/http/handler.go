package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/digital-user-report/internal/application"
	"github.com/oksasatya/digital-user-report/internal/domain/entity"
	"github.com/oksasatya/digital-user-report/internal/infrastructure/reportapi"
	"github.com/oksasatya/digital-user-report/pkg/response"
	"github.com/oksasatya/digital-user-report/pkg/validation"
)

// Services consumed by the handlers. The application package implements all of them.
type (
	ClientLister interface {
		List(ctx context.Context, r entity.DateRange) (*application.ClientReport, error)
	}
	UserQuerier interface {
		FetchUsers(ctx context.Context, r entity.DateRange) ([]entity.ProjectedUserView, error)
		FetchUsersBasic(ctx context.Context, r entity.DateRange) ([]entity.ProjectedUserView, error)
	}
	PhotoOpener interface {
		Open(ctx context.Context, id entity.DigitalUserID) (*application.Photo, error)
	}
	ReasonManager interface {
		SaveReason(ctx context.Context, id entity.DigitalUserID, text string) (*entity.NonAffiliationReason, error)
		ListReasons(ctx context.Context) map[string]string
		DeleteReason(ctx context.Context, id entity.DigitalUserID) (bool, error)
		SearchReasons(ctx context.Context, q string, size int) ([]application.ReasonHit, error)
	}
	ReportProxy interface {
		Fetch(ctx context.Context, endpoint reportapi.Endpoint, r entity.DateRange) (*reportapi.Envelope, error)
	}
)

type rangeQuery struct {
	FechaInicio string `form:"fechaInicio" binding:"omitempty,isodate"`
	FechaFin    string `form:"fechaFin" binding:"omitempty,isodate"`
}

// bindRange reads fechaInicio/fechaFin and aborts with 400 when malformed
func bindRange(c *gin.Context) (entity.DateRange, bool) {
	var q rangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid date range", validation.ToDetails(err))
		return entity.DateRange{}, false
	}
	r, err := entity.ParseDateRange(q.FechaInicio, q.FechaFin)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid date range", nil)
		return entity.DateRange{}, false
	}
	return r, true
}
