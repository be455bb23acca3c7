package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/refdata-console/internal/application"
	"github.com/oksasatya/refdata-console/internal/domain/entity"
	"github.com/oksasatya/refdata-console/pkg/response"
	"github.com/oksasatya/refdata-console/pkg/validation"
)

// ScreenHandler serves one console screen over its controller.
type ScreenHandler[T entity.Record] struct {
	Ctrl     *application.Controller[T]
	PageSize func(size int) int
	Logger   *logrus.Logger
}

func NewScreenHandler[T entity.Record](ctrl *application.Controller[T], pageSize func(int) int, logger *logrus.Logger) *ScreenHandler[T] {
	if pageSize == nil {
		pageSize = func(size int) int { return size }
	}
	return &ScreenHandler[T]{Ctrl: ctrl, PageSize: pageSize, Logger: logger}
}

// List returns the derived page. A missing page (as after a new search) means page 1.
func (h *ScreenHandler[T]) List(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid page", map[string]string{"page": "must be numeric"})
		return
	}
	h.view(c, application.Query{Search: c.Query("q"), Page: page, Size: h.PageSize(size)}, "")
}

func (h *ScreenHandler[T]) view(c *gin.Context, q application.Query, message string) {
	v := h.Ctrl.View(c.Request.Context(), q)
	response.Success(c, http.StatusOK, v, message, response.PageMeta{
		Total:      v.Total,
		TotalPages: v.TotalPages,
		Page:       v.Page,
		Size:       v.Size,
		Search:     v.Search,
	})
}

// Load refetches the list and every reference list.
func (h *ScreenHandler[T]) Load(c *gin.Context) {
	if err := h.Ctrl.Mount(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	h.view(c, application.Query{Page: 1, Size: h.PageSize(0)}, "loaded")
}

func (h *ScreenHandler[T]) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	row, err := h.Ctrl.Record(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, row, "", nil)
}

func (h *ScreenHandler[T]) Form(c *gin.Context) {
	response.Success(c, http.StatusOK, h.Ctrl.Form(), "", nil)
}

func (h *ScreenHandler[T]) Edit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	form, err := h.Ctrl.Edit(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, form, "editing", nil)
}

func (h *ScreenHandler[T]) ResetForm(c *gin.Context) {
	h.Ctrl.ResetForm()
	response.Success(c, http.StatusOK, h.Ctrl.Form(), "form reset", nil)
}

// Save decodes the record without binding validation: the controller runs
// the required-field gate itself so a rejected record still becomes the form.
func (h *ScreenHandler[T]) Save(c *gin.Context) {
	var rec T
	if err := json.NewDecoder(c.Request.Body).Decode(&rec); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Ctrl.Save(c.Request.Context(), rec); err != nil {
		h.fail(c, err)
		return
	}
	h.view(c, application.Query{Page: 1, Size: h.PageSize(0)}, "Data saved successfully!")
}

func (h *ScreenHandler[T]) RequestDelete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.Ctrl.RequestDelete(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "confirm delete", nil)
}

func (h *ScreenHandler[T]) ConfirmDelete(c *gin.Context) {
	if err := h.Ctrl.ConfirmDelete(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	h.view(c, application.Query{Page: 1, Size: h.PageSize(0)}, "Data deleted successfully!")
}

func (h *ScreenHandler[T]) CancelDelete(c *gin.Context) {
	had := h.Ctrl.CancelDelete()
	response.Success(c, http.StatusOK, gin.H{"cancelled": had}, "delete cancelled", nil)
}

func (h *ScreenHandler[T]) ExportCSV(c *gin.Context) {
	h.attachment(c, "csv", "text/csv; charset=utf-8")
	if err := h.Ctrl.ExportCSV(c.Writer); err != nil {
		h.Logger.WithError(err).WithField("screen", h.Ctrl.Name()).Error("csv export failed")
	}
}

func (h *ScreenHandler[T]) ExportXLSX(c *gin.Context) {
	h.attachment(c, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := h.Ctrl.ExportXLSX(c.Writer); err != nil {
		h.Logger.WithError(err).WithField("screen", h.Ctrl.Name()).Error("xlsx export failed")
	}
}

func (h *ScreenHandler[T]) attachment(c *gin.Context, ext, contentType string) {
	c.Header("Content-Disposition", `attachment; filename="`+h.Ctrl.ExportName()+"."+ext+`"`)
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
}

// fail maps controller errors onto HTTP statuses.
func (h *ScreenHandler[T]) fail(c *gin.Context, err error) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error[any](c, http.StatusBadRequest, verr.Message(), verr.Fields)
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "record not found", nil)
	case errors.Is(err, application.ErrNoPendingDelete):
		response.Error[any](c, http.StatusConflict, "no delete awaiting confirmation", nil)
	case errors.Is(err, application.ErrImageStoreDisabled):
		response.Error[any](c, http.StatusServiceUnavailable, "image storage not configured", nil)
	default:
		h.Logger.WithError(err).WithField("screen", h.Ctrl.Name()).Warn("backend request failed")
		response.Error[any](c, http.StatusBadGateway, "backend request failed", err.Error())
	}
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid id", map[string]string{"id": "must be a positive integer"})
		return 0, false
	}
	return id, true
}

func queryID(c *gin.Context, key string) (int, bool) {
	id, err := strconv.Atoi(c.Query(key))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid "+key, map[string]string{key: "must be numeric"})
		return 0, false
	}
	return id, true
}
