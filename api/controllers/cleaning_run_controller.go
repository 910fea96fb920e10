/*
 * @module api/controllers/cleaning_run_controller
 * @description 清洗运行记录查询控制器
 * @architecture MVC架构 - 控制器层
 * @stateFlow HTTP请求 -> 解析limit -> 查询运行记录 -> JSON响应
 * @rules 未启用运行记录存储时返回503
 * @dependencies github.com/go-chi/render, github.com/go-chi/chi/v5
 * @refs service/run_store/run_store.go
 */

package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"employee-datahub/service/models"
	"employee-datahub/service/run_store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// RunHistory 运行记录查询接口
type RunHistory interface {
	List(ctx context.Context, limit int) ([]models.CleaningRun, error)
	Get(ctx context.Context, id string) (*models.CleaningRun, error)
}

// CleaningRunController 清洗运行记录控制器
type CleaningRunController struct {
	runs RunHistory
}

// NewCleaningRunController 创建控制器实例，runs为nil表示未启用运行记录存储
func NewCleaningRunController(runs RunHistory) *CleaningRunController {
	return &CleaningRunController{runs: runs}
}

// ListRuns 清洗运行记录列表
// @Summary 清洗运行记录列表
// @Description 按开始时间倒序返回最近的清洗运行记录
// @Tags 清洗运行
// @Produce json
// @Param limit query int false "返回条数" default(20)
// @Success 200 {object} PaginatedResponse{data=[]models.CleaningRun}
// @Failure 422 {object} APIResponse "limit不是整数"
// @Failure 503 {object} APIResponse "未启用运行记录存储"
// @Router /cleaning-runs [get]
func (c *CleaningRunController) ListRuns(w http.ResponseWriter, r *http.Request) {
	if c.runs == nil {
		renderError(w, r, http.StatusServiceUnavailable, "未启用清洗运行记录存储", nil)
		return
	}

	limit := run_store.DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			renderError(w, r, http.StatusUnprocessableEntity, "参数limit必须是整数", err)
			return
		}
		limit = v
	}

	runs, err := c.runs.List(r.Context(), limit)
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "查询清洗运行记录失败", err)
		return
	}
	render.JSON(w, r, &PaginatedResponse{
		Status: 0,
		Msg:    "获取成功",
		Data:   runs,
		Total:  int64(len(runs)),
		Limit:  limit,
	})
}

// GetRun 获取单条清洗运行记录
// @Summary 获取清洗运行记录
// @Tags 清洗运行
// @Produce json
// @Param id path string true "运行ID"
// @Success 200 {object} APIResponse{data=models.CleaningRun}
// @Failure 404 {object} APIResponse "运行记录不存在"
// @Failure 503 {object} APIResponse "未启用运行记录存储"
// @Router /cleaning-runs/{id} [get]
func (c *CleaningRunController) GetRun(w http.ResponseWriter, r *http.Request) {
	if c.runs == nil {
		renderError(w, r, http.StatusServiceUnavailable, "未启用清洗运行记录存储", nil)
		return
	}

	run, err := c.runs.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, run_store.ErrRunNotFound) {
		renderError(w, r, http.StatusNotFound, "清洗运行记录不存在", err)
		return
	}
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "获取清洗运行记录失败", err)
		return
	}
	render.JSON(w, r, SuccessResponse("获取成功", run))
}
