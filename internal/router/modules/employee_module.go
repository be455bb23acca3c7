package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/refdata-console/internal/domain/entity"
	handlers "github.com/oksasatya/refdata-console/internal/interface/http"
)

// EmployeeModule adds the cascading dropdowns, language toggle and picture
// upload to the employee screen routes.
type EmployeeModule struct {
	Handler *handlers.EmployeeHandler
	screen  *ScreenModule[entity.Employee]
}

func NewEmployeeModule(h *handlers.EmployeeHandler, exportLimiter gin.HandlerFunc) *EmployeeModule {
	return &EmployeeModule{Handler: h, screen: NewScreenModule(h.ScreenHandler, exportLimiter)}
}

func (m *EmployeeModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/" + m.Handler.Ctrl.Name())
	m.screen.routes(g)

	g.GET("/options/states", m.Handler.StateOptions)
	g.GET("/options/districts", m.Handler.DistrictOptions)
	g.PUT("/form/country/:id", m.Handler.SetCountry)
	g.PUT("/form/state/:id", m.Handler.SetState)
	g.POST("/form/languages/:id", m.Handler.ToggleLanguage)
	g.POST("/form/image", m.Handler.UploadImage)
}
