package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zaqqye/weld_backend_v1/internal/export"
	"github.com/zaqqye/weld_backend_v1/internal/models"
	"github.com/zaqqye/weld_backend_v1/internal/repository"
	"github.com/zaqqye/weld_backend_v1/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type WeldController struct {
	Service *service.WeldService
	Log     *zap.Logger
}

// filterFromQuery reads search, objectName, page and limit. Bad numbers are ignored.
func filterFromQuery(c *gin.Context) repository.WeldFilter {
	f := repository.WeldFilter{
		Search:     strings.TrimSpace(c.Query("search")),
		ObjectName: strings.TrimSpace(c.Query("objectName")),
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			f.Limit = n
		}
	}
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			f.Page = n
		}
	}
	return f
}

func (wc *WeldController) ListWelds(c *gin.Context) {
	f := filterFromQuery(c)
	welds, total, err := wc.Service.List(c.Request.Context(), f)
	if err != nil {
		wc.fail(c, err)
		return
	}
	if f.Limit > 0 {
		c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	}
	c.JSON(http.StatusOK, welds)
}

func (wc *WeldController) GetWeld(c *gin.Context) {
	w, err := wc.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		wc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (wc *WeldController) CreateWeld(c *gin.Context) {
	var req models.CreateWeldDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	w, err := wc.Service.Create(c.Request.Context(), req)
	if err != nil {
		wc.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (wc *WeldController) UpdateWeld(c *gin.Context) {
	var req models.UpdateWeldDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	w, err := wc.Service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		wc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (wc *WeldController) DeleteWeld(c *gin.Context) {
	if err := wc.Service.Remove(c.Request.Context(), c.Param("id")); err != nil {
		wc.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportWelds streams the filtered registry as an xlsx workbook. Paging is ignored.
func (wc *WeldController) ExportWelds(c *gin.Context) {
	f := filterFromQuery(c)
	f.Page, f.Limit = 0, 0
	welds, _, err := wc.Service.List(c.Request.Context(), f)
	if err != nil {
		wc.fail(c, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteWeldsXLSX(&buf, welds); err != nil {
		wc.fail(c, err)
		return
	}
	name := fmt.Sprintf("welds-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// badRequest answers a body that failed to bind. Rule violations found by the
// binding tags are reported the same way as service validation errors.
func badRequest(c *gin.Context, err error) {
	if verr := service.BindingError(err); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "messages": verr.Messages()})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "messages": []string{err.Error()}})
}

func (wc *WeldController) fail(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "messages": verr.Messages()})
	case errors.Is(err, service.ErrWeldNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "weld not found"})
	default:
		_ = c.Error(err)
		if wc.Log != nil {
			wc.Log.Error("weld request failed", zap.String("path", c.FullPath()), zap.Error(err))
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
