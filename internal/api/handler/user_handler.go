package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fintrust/auth-service/internal/core/domain"
	"github.com/fintrust/auth-service/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type documentRequest struct {
	IDDocument string `json:"idDocument" validate:"required,len=8,number"`
}

type userValidationResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	IDDocument string  `json:"idDocument"`
	BaseSalary float64 `json:"baseSalary"`
	Role       string  `json:"role"`
}

type batchRequest struct {
	UserIDs []string `json:"userIds" validate:"required"`
}

type userFoundResponse struct {
	ID         string  `json:"id"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	IDDocument string  `json:"idDocument"`
	BaseSalary float64 `json:"baseSalary"`
}

// FindByDocument returns the user holding an id document, with the current
// role name resolved from the store.
//
// @Summary      Find a user by id document
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      documentRequest  true  "Id document to look up"
// @Success      200   {object}  userValidationResponse
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/users/document [post]
func (h *UserHandler) FindByDocument(c echo.Context) error {
	var req documentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	user, err := h.userService.FindByIDDocument(ctx, req.IDDocument)
	if err != nil {
		return err
	}

	role, err := h.userService.FindRoleByID(ctx, user.RoleID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userValidationResponse{
		ID:         user.ID,
		Email:      user.Email,
		IDDocument: user.IDDocument,
		BaseSalary: user.BaseSalary,
		Role:       role.Name,
	})
}

// FindByIDs returns the users matching a list of ids. Unknown ids are
// silently skipped.
//
// @Summary      Find users by ids
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      batchRequest  true  "User ids to look up"
// @Success      200   {array}   userFoundResponse
// @Router       /api/v1/users/batch [post]
func (h *UserHandler) FindByIDs(c echo.Context) error {
	var req batchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	users, err := h.userService.FindByIDs(c.Request().Context(), req.UserIDs)
	if err != nil {
		return err
	}

	resp := make([]userFoundResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserFound(u))
	}
	return c.JSON(http.StatusOK, resp)
}

func toUserFound(u domain.User) userFoundResponse {
	return userFoundResponse{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		IDDocument: u.IDDocument,
		BaseSalary: u.BaseSalary,
	}
}
