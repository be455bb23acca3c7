package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/refdata-console/internal/domain/entity"
	handlers "github.com/oksasatya/refdata-console/internal/interface/http"
)

// ScreenModule wires the list, form, delete and export routes of one screen
// under /api/<screen>.
type ScreenModule[T entity.Record] struct {
	Handler       *handlers.ScreenHandler[T]
	ExportLimiter gin.HandlerFunc
}

func NewScreenModule[T entity.Record](h *handlers.ScreenHandler[T], exportLimiter gin.HandlerFunc) *ScreenModule[T] {
	if exportLimiter == nil {
		exportLimiter = func(c *gin.Context) { c.Next() }
	}
	return &ScreenModule[T]{Handler: h, ExportLimiter: exportLimiter}
}

func (m *ScreenModule[T]) Register(rg *gin.RouterGroup) {
	m.routes(rg.Group("/" + m.Handler.Ctrl.Name()))
}

func (m *ScreenModule[T]) routes(g *gin.RouterGroup) {
	h := m.Handler
	g.GET("", h.List)
	g.POST("/load", h.Load)
	g.GET("/export.csv", m.ExportLimiter, h.ExportCSV)
	g.GET("/export.xlsx", m.ExportLimiter, h.ExportXLSX)
	g.GET("/:id", h.Get)

	g.GET("/form", h.Form)
	g.POST("/form/edit/:id", h.Edit)
	g.POST("/form/reset", h.ResetForm)
	g.POST("/save", h.Save)

	g.POST("/delete/:id", h.RequestDelete)
	g.POST("/delete/confirm", h.ConfirmDelete)
	g.POST("/delete/cancel", h.CancelDelete)
}
