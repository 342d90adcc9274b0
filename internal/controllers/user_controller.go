package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"user-service/internal/models"
	"user-service/internal/repository"
	"user-service/internal/service"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// ListUsers handles GET /users
func (uc *UserController) ListUsers(c *gin.Context) {
	users, err := uc.userService.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /users/:id
func (uc *UserController) GetUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	user, err := uc.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateUser handles POST /users
func (uc *UserController) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	// Required-field check happens before any store call.
	if req.Name == "" || req.Email == "" || req.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Semua field harus diisi"})
		return
	}

	user, err := uc.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.UserMutationResponse{
		Message: "User berhasil ditambahkan",
		User:    user,
	})
}

// UpdateUser handles PUT /users/:id
func (uc *UserController) UpdateUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := uc.userService.UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.UserMutationResponse{
		Message: "User updated",
		User:    user,
	})
}

// DeleteUser handles DELETE /users/:id
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	user, err := uc.userService.DeleteUser(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.UserMutationResponse{
		Message: "User deleted",
		User:    user,
	})
}

// userID parses the :id path param. A non-numeric id is rejected here,
// before any store access.
func userID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return 0, false
	}
	return id, true
}

// respondStoreError maps repository failures to response codes. Raw
// error detail never reaches the body; it is logged in the service.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case errors.Is(err, repository.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email sudah terdaftar"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
	}
}
