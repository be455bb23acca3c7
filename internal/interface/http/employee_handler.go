package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/refdata-console/internal/application"
	"github.com/oksasatya/refdata-console/internal/domain/entity"
	"github.com/oksasatya/refdata-console/pkg/response"
)

// EmployeeHandler adds the dependent dropdowns, the language multi-select and
// picture upload to the generic screen routes.
type EmployeeHandler struct {
	*ScreenHandler[entity.Employee]
	Images application.ImageStore
}

func NewEmployeeHandler(ctrl *application.Controller[entity.Employee], pageSize func(int) int, images application.ImageStore, logger *logrus.Logger) *EmployeeHandler {
	return &EmployeeHandler{ScreenHandler: NewScreenHandler(ctrl, pageSize, logger), Images: images}
}

// StateOptions lists the loaded states of ?countryId=.
func (h *EmployeeHandler) StateOptions(c *gin.Context) {
	id, ok := queryID(c, "countryId")
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, application.ChildOptions(h.Ctrl.Refs()[application.RefStates], id), "", nil)
}

// DistrictOptions lists the loaded districts of ?stateId=.
func (h *EmployeeHandler) DistrictOptions(c *gin.Context) {
	id, ok := queryID(c, "stateId")
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, application.ChildOptions(h.Ctrl.Refs()[application.RefDistricts], id), "", nil)
}

func (h *EmployeeHandler) SetCountry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	form := h.Ctrl.UpdateForm(func(e *entity.Employee, refs application.Refs) { application.SelectCountry(e, id, refs) })
	response.Success(c, http.StatusOK, form, "", nil)
}

func (h *EmployeeHandler) SetState(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	form := h.Ctrl.UpdateForm(func(e *entity.Employee, refs application.Refs) { application.SelectState(e, id, refs) })
	response.Success(c, http.StatusOK, form, "", nil)
}

func (h *EmployeeHandler) ToggleLanguage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	form := h.Ctrl.UpdateForm(func(e *entity.Employee, _ application.Refs) { application.ToggleLanguage(e, id) })
	response.Success(c, http.StatusOK, form, "", nil)
}

// UploadImage takes a multipart "image" file and sets its URL on the form.
func (h *EmployeeHandler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing image", map[string]string{"image": "is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable image", err.Error())
		return
	}
	defer func() { _ = f.Close() }()

	form, err := application.AttachImage(c.Request.Context(), h.Images, h.Ctrl, fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, form, "image uploaded", nil)
}
