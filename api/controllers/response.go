package controllers

import (
	"net/http"

	"github.com/go-chi/render"
)

// APIResponse 统一API响应结构
type APIResponse struct {
	Status int         `json:"status" example:"0"`
	Msg    string      `json:"msg" example:"操作成功"`
	Data   interface{} `json:"data,omitempty"`
}

// PaginatedResponse 分页响应结构
type PaginatedResponse struct {
	Status int         `json:"status" example:"0"`
	Msg    string      `json:"msg" example:"操作成功"`
	Data   interface{} `json:"data"`
	Total  int64       `json:"total" example:"100"`
	Limit  int         `json:"limit" example:"20"`
}

// SuccessResponse 成功响应
func SuccessResponse(msg string, data interface{}) *APIResponse {
	return &APIResponse{Status: 0, Msg: msg, Data: data}
}

// ErrorResponse 错误响应，Status与HTTP状态码一致
func ErrorResponse(code int, msg string, err error) *APIResponse {
	resp := &APIResponse{Status: code, Msg: msg}
	if err != nil {
		resp.Data = err.Error()
	}
	return resp
}

// renderError 写入HTTP状态码和错误响应体
func renderError(w http.ResponseWriter, r *http.Request, code int, msg string, err error) {
	render.Status(r, code)
	render.JSON(w, r, ErrorResponse(code, msg, err))
}
