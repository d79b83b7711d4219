package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/freelance-directory/internal/api/dto"
	"github.com/spec-kit/freelance-directory/internal/domain"
	"github.com/spec-kit/freelance-directory/internal/service"
	"github.com/spec-kit/freelance-directory/internal/validation"
)

// AccountsHandler exposes sign-up, activation, login and password reset.
type AccountsHandler struct {
	accounts  *service.AccountService
	validator *validation.Validator
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accounts *service.AccountService, v *validation.Validator) *AccountsHandler {
	return &AccountsHandler{accounts: accounts, validator: v}
}

// SignUp handles POST /accounts/signup.
func (h *AccountsHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}

	user, err := h.accounts.SignUp(c.UserContext(), service.SignUpInput{
		Username:         req.Username,
		Email:            req.Email,
		Password:         req.Password,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Skill:            domain.Skill(req.Skill),
		Area:             domain.Area(req.Area),
		RequestFee:       domain.RequestFee(req.RequestFee),
		Portfolio:        req.Portfolio,
		SelfIntroduction: req.SelfIntroduction,
		Twitter:          req.Twitter,
		Instagram:        req.Instagram,
	})
	if err != nil {
		return mapServiceError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user":    dto.NewAccountResponse(user),
			"message": "check your email to activate your account",
		},
	})
}

// Activate handles GET /accounts/activate/:token.
func (h *AccountsHandler) Activate(c *fiber.Ctx) error {
	if err := h.accounts.Activate(c.UserContext(), c.Params("token")); err != nil {
		return mapServiceError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "activated"}})
}

// Login handles POST /accounts/login.
func (h *AccountsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}

	user, token, exp, err := h.accounts.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewAccountResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Logout handles POST /accounts/logout.
func (h *AccountsHandler) Logout(c *fiber.Ctx) error {
	token := strings.TrimSpace(strings.TrimPrefix(c.Get("Authorization"), "Bearer "))
	if err := h.accounts.Logout(c.UserContext(), token); err != nil {
		return mapServiceError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// RequestPasswordReset handles POST /accounts/password/reset. The response is
// the same whether or not the login exists.
func (h *AccountsHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}
	if err := h.accounts.RequestPasswordReset(c.UserContext(), req.Login); err != nil {
		return mapServiceError(err)
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{
		"data": fiber.Map{"message": "if the account exists, a reset link has been sent"},
	})
}

// ConfirmPasswordReset handles POST /accounts/password/reset/:token.
func (h *AccountsHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}
	if err := h.accounts.ConfirmPasswordReset(c.UserContext(), c.Params("token"), req.NewPassword); err != nil {
		return mapServiceError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "password updated"}})
}

// GetAccount handles GET /accounts/:id.
func (h *AccountsHandler) GetAccount(c *fiber.Ctx) error {
	id, err := userIDParam(c)
	if err != nil {
		return err
	}
	user, err := h.accounts.GetProfile(c.UserContext(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(user)})
}

// UpdateAccount handles PATCH /accounts/:id.
func (h *AccountsHandler) UpdateAccount(c *fiber.Ctx) error {
	id, err := userIDParam(c)
	if err != nil {
		return err
	}
	var req dto.ProfileUpdateRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}

	upd := service.ProfileUpdate{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Portfolio:        req.Portfolio,
		SelfIntroduction: req.SelfIntroduction,
		Twitter:          req.Twitter,
		Instagram:        req.Instagram,
		TopImage:         req.TopImage,
	}
	if req.Skill != nil {
		skill := domain.Skill(*req.Skill)
		upd.Skill = &skill
	}
	if req.Area != nil {
		area := domain.Area(*req.Area)
		upd.Area = &area
	}
	if req.RequestFee != nil {
		fee := domain.RequestFee(*req.RequestFee)
		upd.RequestFee = &fee
	}

	user, err := h.accounts.UpdateProfile(c.UserContext(), id, upd)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(user)})
}
