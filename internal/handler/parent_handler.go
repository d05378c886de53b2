package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tutordesk/internal/service"
)

// ParentHandler handles parent account endpoints.
type ParentHandler struct {
	parentService service.ParentService
}

// NewParentHandler creates a new parent handler.
func NewParentHandler(parentService service.ParentService) *ParentHandler {
	return &ParentHandler{parentService: parentService}
}

// CreateParentRequest represents a new parent account.
type CreateParentRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateParentRequest is a partial update of a parent account.
type UpdateParentRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password"`
}

// ListParents godoc
// @Summary List parents
// @Tags parents
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /parents [get]
func (h *ParentHandler) ListParents(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	parents, err := h.parentService.ListParents(c.Request().Context(), p)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, parents)
}

// CreateParent godoc
// @Summary Create parent
// @Tags parents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateParentRequest true "Parent account"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /parents [post]
func (h *ParentHandler) CreateParent(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req CreateParentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	parent, err := h.parentService.CreateParent(c.Request().Context(), p, service.CreateParentInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, parent)
}

// GetParent godoc
// @Summary Get parent by id
// @Tags parents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Parent ID"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /parents/{id} [get]
func (h *ParentHandler) GetParent(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	parent, err := h.parentService.GetParent(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, parent)
}

// UpdateParent godoc
// @Summary Update parent
// @Tags parents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Parent ID"
// @Param request body UpdateParentRequest true "Fields to change"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /parents/{id} [patch]
func (h *ParentHandler) UpdateParent(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req UpdateParentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	parent, err := h.parentService.UpdateParent(c.Request().Context(), p, c.Param("id"), service.UpdateParentInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, parent)
}

// DeleteParent godoc
// @Summary Delete parent
// @Description Parents that still have students cannot be deleted.
// @Tags parents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Parent ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /parents/{id} [delete]
func (h *ParentHandler) DeleteParent(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := h.parentService.DeleteParent(c.Request().Context(), p, c.Param("id")); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "parent deleted successfully"})
}
