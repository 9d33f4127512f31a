package routes

import (
	"net/http"

	"Fundbridge/internal/contracts"
	"Fundbridge/internal/domain/user"

	"github.com/gin-gonic/gin"
)

// CreateUser godoc
// @Summary      Cadastra um usuário
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      contracts.UserCreateRequest  true  "Dados do usuário"
// @Success      201   {object}  contracts.UserResponse
// @Failure      400   {object}  contracts.ErrorResponse
// @Failure      409   {object}  contracts.ErrorResponse
// @Router       /users [post]
func (h *Handler) CreateUser(c *gin.Context) {
	var body contracts.UserCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondBindError(c, err)
		return
	}

	entity := &user.User{
		Name:  body.Name,
		Email: body.Email,
		Role:  user.Role(body.Role),
		Bio:   body.Bio,
	}
	if err := h.UserService.Create(c.Request.Context(), entity); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.UserResponse{User: entity})
}

// GetMe godoc
// @Summary      Perfil do ator atual
// @Tags         users
// @Produce      json
// @Param        X-Actor-ID  header    string  true  "ULID do ator"
// @Success      200         {object}  contracts.UserResponse
// @Router       /users/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	entity, err := h.UserService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.UserResponse{User: entity})
}

// UpdateMe godoc
// @Summary      Atualiza nome e bio do ator
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        X-Actor-ID  header    string                       true  "ULID do ator"
// @Param        body        body      contracts.UserUpdateRequest  true  "Campos alterados"
// @Success      200         {object}  contracts.UserResponse
// @Router       /users/me [patch]
func (h *Handler) UpdateMe(c *gin.Context) {
	var body contracts.UserUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondBindError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	entity, err := h.UserService.UpdateProfile(c.Request.Context(), userID, body.Name, body.Bio)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.UserResponse{User: entity})
}
