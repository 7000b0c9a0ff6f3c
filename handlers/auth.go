package handlers

import (
	"net/http"
	"strings"

	"roomservice/middleware"
	"roomservice/services/user"
	"roomservice/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves staff login and staff account management.
type AuthHandler struct {
	UserService user.UserService
}

func NewAuthHandler(svc user.UserService) *AuthHandler {
	return &AuthHandler{UserService: svc}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler handles POST /auth/login. The session token is only ever set
// as a cookie.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "email and password are required"})
		return
	}

	res, err := h.UserService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("Login failed", zap.String("email", req.Email), zap.Error(err))
		utils.RespondError(c, err, "Login failed")
		return
	}
	utils.SetAuthCookie(c, res.Token)
	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	if err := h.UserService.Logout(c.Request.Context(), c.GetString(middleware.CtxUserID)); err != nil {
		getLogger(c).Warn("Logout cleanup failed", zap.Error(err))
	}
	utils.ClearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// MeHandler handles GET /auth/me.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	usr, err := h.UserService.GetUserByID(c.GetString(middleware.CtxUserID))
	if err != nil {
		utils.RespondError(c, err, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, usr)
}

func (h *AuthHandler) AddUserHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "Invalid request", Details: err.Error()})
		return
	}
	usr, err := h.UserService.AddUser(req.Email, req.Password, req.Role)
	if err != nil {
		utils.RespondError(c, err, "Failed to add user")
		return
	}
	getLogger(c).Info("Staff user added",
		zap.String("by", c.GetString(middleware.CtxUserID)), zap.String("userId", usr.ID), zap.String("role", usr.Role))
	c.JSON(http.StatusCreated, usr)
}

func (h *AuthHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := h.UserService.ListUsers()
	if err != nil {
		utils.RespondError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AuthHandler) UpdateRoleHandler(c *gin.Context) {
	var req struct {
		UserID  string `json:"userId"`
		NewRole string `json:"newRole"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.NewRole == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "userId and newRole are required"})
		return
	}
	usr, err := h.UserService.UpdateUserRole(c.Request.Context(), req.UserID, strings.ToUpper(req.NewRole))
	if err != nil {
		utils.RespondError(c, err, "Failed to update role")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User role updated", "user": usr})
}

// DeleteUserHandler handles DELETE /auth/delete-user. The id comes from the
// JSON body or the userId query parameter.
func (h *AuthHandler) DeleteUserHandler(c *gin.Context) {
	var req struct {
		UserID string `json:"userId"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.UserID == "" {
		req.UserID = c.Query("userId")
	}
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "userId is required"})
		return
	}
	if err := h.UserService.DeleteUser(c.Request.Context(), req.UserID); err != nil {
		utils.RespondError(c, err, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
