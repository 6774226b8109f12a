package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-management/internal/application"
	"github.com/oksasatya/go-user-management/internal/domain/entity"
	"github.com/oksasatya/go-user-management/pkg/apperror"
	"github.com/oksasatya/go-user-management/pkg/helpers"
	"github.com/oksasatya/go-user-management/pkg/response"
	"github.com/oksasatya/go-user-management/pkg/validation"
)

const userIDParam = "userId"

type UserHandler struct {
	Svc    *application.UserService
	Logger logrus.FieldLogger
}

func NewUserHandler(svc *application.UserService, logger logrus.FieldLogger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: helpers.OrDiscard(logger)}
}

type listUsersQuery struct {
	Name     *string `form:"name"`
	Age      *int    `form:"age"`
	Email    *string `form:"email"`
	Role     *string `form:"role"`
	Page     int     `form:"page,default=1" binding:"pagenum"`
	PageSize int     `form:"pageSize,default=10" binding:"pagenum"`
}

type searchQuery struct {
	Q    string `form:"q" binding:"required"`
	Size int    `form:"size,default=10" binding:"pagenum,max=50"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req application.RegisterUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, u.View(), "user registered", nil)
}

func (h *UserHandler) List(c *gin.Context) {
	var q listUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	filter := application.UserFilter{Name: q.Name, Age: q.Age, Email: q.Email}
	if q.Role != nil && *q.Role != "" {
		role, ok := entity.ParseRole(*q.Role)
		if !ok {
			respondError(c, h.Logger, apperror.BadRequest("Invalid user role"))
			return
		}
		filter.Role = &role
	}

	page, err := h.Svc.ListUsers(c.Request.Context(), filter, q.Page, q.PageSize)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, page.Items, "users", map[string]any{
		"page":        page.Page,
		"page_size":   page.PageSize,
		"total_count": page.TotalCount,
		"total_pages": page.TotalPages,
	})
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := pathID(c, userIDParam)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	u, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u.View(), "user", nil)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := pathID(c, userIDParam)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	var req application.UpdateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u.View(), "user updated", nil)
}

func (h *UserHandler) AddRole(c *gin.Context) {
	id, err := pathID(c, userIDParam)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	role, ok := entity.ParseRole(c.Query("newRole"))
	if !ok {
		respondError(c, h.Logger, apperror.BadRequest("Invalid user role"))
		return
	}
	u, err := h.Svc.AddRole(c.Request.Context(), id, role)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u.View(), "role added", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := pathID(c, userIDParam)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "user deleted", nil)
}

func (h *UserHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	users, err := h.Svc.Search(c.Request.Context(), q.Q, q.Size)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, users, "search results", nil)
}
