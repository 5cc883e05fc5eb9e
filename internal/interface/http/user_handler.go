package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/digital-user-report/internal/application"
	"github.com/oksasatya/digital-user-report/internal/domain/entity"
	"github.com/oksasatya/digital-user-report/pkg/response"
)

type UserHandler struct {
	Clients ClientLister
	Users   UserQuerier
	Photos  PhotoOpener
}

func NewUserHandler(clients ClientLister, users UserQuerier, photos PhotoOpener) *UserHandler {
	return &UserHandler{Clients: clients, Users: users, Photos: photos}
}

// ListClients returns the joined rows with the reason overlay and the missing-contact count in meta.
func (h *UserHandler) ListClients(c *gin.Context) {
	r, ok := bindRange(c)
	if !ok {
		return
	}
	report, err := h.Clients.List(c.Request.Context(), r)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, application.ErrRecordsUnavailable.Error(), nil)
		return
	}
	rows := report.Rows
	if rows == nil {
		rows = []application.ClientRow{}
	}
	response.List(c, rows, gin.H{"sinContacto": report.MissingContactCount})
}

func (h *UserHandler) ListDigitalUsers(c *gin.Context) {
	r, ok := bindRange(c)
	if !ok {
		return
	}
	rows, err := h.Users.FetchUsers(c.Request.Context(), r)
	h.writeUsers(c, rows, err)
}

func (h *UserHandler) ListDigitalUsersBasic(c *gin.Context) {
	r, ok := bindRange(c)
	if !ok {
		return
	}
	rows, err := h.Users.FetchUsersBasic(c.Request.Context(), r)
	h.writeUsers(c, rows, err)
}

func (h *UserHandler) writeUsers(c *gin.Context, rows []entity.ProjectedUserView, err error) {
	if err != nil {
		response.Error(c, http.StatusInternalServerError, application.ErrRecordsUnavailable.Error(), nil)
		return
	}
	if rows == nil {
		rows = []entity.ProjectedUserView{}
	}
	response.List(c, rows, nil)
}

// Photo redirects to absolute photo URIs and streams stored objects.
func (h *UserHandler) Photo(c *gin.Context) {
	id := entity.DigitalUserID(strings.TrimSpace(c.Param("id")))
	if id == "" {
		response.Error(c, http.StatusBadRequest, "idUsuarioDigital is required", nil)
		return
	}
	photo, err := h.Photos.Open(c.Request.Context(), id)
	switch {
	case errors.Is(err, application.ErrUserNotFound), errors.Is(err, application.ErrPhotoNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)
		return
	case errors.Is(err, application.ErrPhotoUnavailable):
		response.Error(c, http.StatusServiceUnavailable, err.Error(), nil)
		return
	case err != nil:
		response.Error(c, http.StatusInternalServerError, application.ErrRecordsUnavailable.Error(), nil)
		return
	}
	if photo.RedirectURL != "" {
		c.Redirect(http.StatusFound, photo.RedirectURL)
		return
	}
	defer photo.Body.Close()
	c.DataFromReader(http.StatusOK, -1, photo.ContentType, photo.Body, nil)
}
