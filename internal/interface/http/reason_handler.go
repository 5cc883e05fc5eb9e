package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/digital-user-report/internal/application"
	"github.com/oksasatya/digital-user-report/internal/domain/entity"
	"github.com/oksasatya/digital-user-report/pkg/response"
	"github.com/oksasatya/digital-user-report/pkg/validation"
)

type ReasonHandler struct {
	Svc ReasonManager
}

func NewReasonHandler(svc ReasonManager) *ReasonHandler {
	return &ReasonHandler{Svc: svc}
}

// userKey accepts the user id as a JSON string or number; both map to the same key.
type userKey string

func (k *userKey) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*k = userKey(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil || n == "" {
		return &json.UnmarshalTypeError{Value: string(b), Type: reflect.TypeOf(""), Field: "idUsuarioDigital"}
	}
	*k = userKey(n.String())
	return nil
}

type saveReasonRequest struct {
	IDUsuarioDigital userKey `json:"idUsuarioDigital" binding:"required"`
	Motivo           string  `json:"motivo" binding:"required"`
}

type reasonResponse struct {
	IDUsuarioDigital string `json:"idUsuarioDigital"`
	Motivo           string `json:"motivo"`
}

// List returns the {userId: reasonText} mapping
func (h *ReasonHandler) List(c *gin.Context) {
	reasons := h.Svc.ListReasons(c.Request.Context())
	n := len(reasons)
	response.Success(c, http.StatusOK, reasons, &n, nil)
}

func (h *ReasonHandler) Save(c *gin.Context) {
	var req saveReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, application.ErrInvalidReason.Error(), validation.ToDetails(err))
		return
	}
	saved, err := h.Svc.SaveReason(c.Request.Context(), entity.DigitalUserID(req.IDUsuarioDigital), req.Motivo)
	switch {
	case errors.Is(err, application.ErrInvalidReason):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	case err != nil:
		response.Error(c, http.StatusInternalServerError, application.ErrReasonWriteFailed.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, reasonResponse{IDUsuarioDigital: saved.DigitalUserID.String(), Motivo: saved.Reason}, nil, nil)
}

func (h *ReasonHandler) Delete(c *gin.Context) {
	id := entity.DigitalUserID(strings.TrimSpace(c.Param("id")))
	deleted, err := h.Svc.DeleteReason(c.Request.Context(), id)
	switch {
	case errors.Is(err, application.ErrInvalidReason):
		response.Error(c, http.StatusBadRequest, "idUsuarioDigital is required", nil)
		return
	case err != nil:
		response.Error(c, http.StatusInternalServerError, application.ErrReasonWriteFailed.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"idUsuarioDigital": id.String(), "deleted": deleted}, nil, nil)
}

// Search runs a full-text query over annotations; size defaults to 10 and is capped at 50.
func (h *ReasonHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error(c, http.StatusBadRequest, "q is required", nil)
		return
	}
	size := 10
	if s := c.Query("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			response.Error(c, http.StatusBadRequest, "size must be a positive integer", nil)
			return
		}
		size = min(n, 50)
	}
	hits, err := h.Svc.SearchReasons(c.Request.Context(), q, size)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "reason search failed", nil)
		return
	}
	if hits == nil {
		hits = []application.ReasonHit{}
	}
	response.List(c, hits, nil)
}
