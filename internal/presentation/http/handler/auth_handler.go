package handler

import (
	"github.com/essamaboelmgd/sanabel-elkhair/internal/application/service"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/presentation/http/dto/request"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles login, logout and customer first-login requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles staff login. The role defaults to admin.
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	role := enum.UserRole(req.Role)
	if role == "" {
		role = enum.UserRoleAdmin
	}
	if !role.IsStaff() {
		response.BadRequest(c, "Customers sign in through the customer portal")
		return
	}
	h.login(c, req, role)
}

// CustomerLogin handles customer portal login.
func (h *AuthHandler) CustomerLogin(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	h.login(c, req, enum.UserRoleCustomer)
}

func (h *AuthHandler) login(c *gin.Context, req request.LoginRequest, role enum.UserRole) {
	out, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Phone:    req.Phone,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		c.Set(response.LoginRouteKey, role.LoginRoute())
		response.Error(c, err)
		return
	}
	response.OK(c, "Login successful", out)
}

// Logout ends the current session
func (h *AuthHandler) Logout(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	if err := h.authService.Logout(c.Request.Context(), session); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, 200, "Logged out successfully", gin.H{"redirect": session.LoginRoute()})
}

// Me returns the logged-in user as the backend sees them
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.Me(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "User retrieved successfully", user)
}

// CheckCustomer answers whether a phone number belongs to a customer and
// whether they still need to set a password.
func (h *AuthHandler) CheckCustomer(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		response.BadRequest(c, "phone is required")
		return
	}
	check, err := h.authService.CheckCustomer(c.Request.Context(), phone)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer checked", check)
}

// SetCustomerPassword sets a first-login customer's password
func (h *AuthHandler) SetCustomerPassword(c *gin.Context) {
	var req request.SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	result, err := h.authService.SetCustomerPassword(c.Request.Context(), &service.SetPasswordInput{
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Password set successfully", result)
}

// SetCustomerPasswordByID lets staff set a customer's password
func (h *AuthHandler) SetCustomerPasswordByID(c *gin.Context) {
	var req request.SetPasswordByIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	result, err := h.authService.SetCustomerPasswordByID(c.Request.Context(), c.Param("id"), req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Password set successfully", result)
}
