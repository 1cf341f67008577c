package handlers

import (
	"log"
	"net/http"

	"github.com/heksoli/Stocks-Watcher/config"
	"github.com/heksoli/Stocks-Watcher/events"
	"github.com/heksoli/Stocks-Watcher/models"
	"github.com/heksoli/Stocks-Watcher/producer"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthResponse is the uniform result envelope for auth operations.
type AuthResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// SignUpRequest carries credentials plus the investor profile collected at
// sign-up. Password limits follow the auth subsystem's 8-32 policy.
type SignUpRequest struct {
	Email             string `json:"email" validate:"required,email"`
	Password          string `json:"password" validate:"required,min=8,max=32"`
	FullName          string `json:"fullName" validate:"required"`
	Country           string `json:"country" validate:"required"`
	InvestmentGoals   string `json:"investmentGoals" validate:"required"`
	RiskTolerance     string `json:"riskTolerance" validate:"required"`
	PreferredIndustry string `json:"preferredIndustry" validate:"required"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignUp creates a user and publishes a user.created event. The publish is
// fire-and-forget: a broker failure is logged but the sign-up still reports
// success, so the welcome email is simply never triggered for that user.
func SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, AuthResponse{Success: false, Message: "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, AuthResponse{Success: false, Message: err.Error()})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, AuthResponse{Success: false, Message: "Password encryption failed"})
	}

	user := models.User{
		Name:              req.FullName,
		Email:             req.Email,
		Password:          string(hash),
		Country:           req.Country,
		InvestmentGoals:   req.InvestmentGoals,
		RiskTolerance:     req.RiskTolerance,
		PreferredIndustry: req.PreferredIndustry,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		return c.JSON(http.StatusBadRequest, AuthResponse{Success: false, Message: err.Error()})
	}

	publishUserCreated(req)

	return c.JSON(http.StatusCreated, AuthResponse{Success: true, Data: user})
}

// publishUserCreated emits the sign-up event without surfacing failures to
// the HTTP caller.
func publishUserCreated(req SignUpRequest) {
	prod, err := producer.GetProducer()
	if err != nil {
		log.Printf("❌ Event publish skipped, producer unavailable: %v", err)
		return
	}

	event := events.NewUserCreated(events.UserCreatedEvent{
		Email:             req.Email,
		Name:              req.FullName,
		Country:           req.Country,
		InvestmentGoals:   req.InvestmentGoals,
		RiskTolerance:     req.RiskTolerance,
		PreferredIndustry: req.PreferredIndustry,
	})

	if err := prod.PublishUserCreated(event); err != nil {
		log.Printf("❌ Event publish failed (Email: %s): %v", req.Email, err)
	}
}

// SignIn verifies credentials. Failures are normalized to the envelope,
// never surfaced as 5xx.
func SignIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, AuthResponse{Success: false, Message: "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, AuthResponse{Success: false, Message: err.Error()})
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, AuthResponse{Success: false, Message: "Invalid email or password"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, AuthResponse{Success: false, Message: "Invalid email or password"})
	}

	return c.JSON(http.StatusOK, AuthResponse{Success: true, Data: user})
}

// SignOut ends the caller's session. Session mechanics live in the identity
// subsystem; this is the single call boundary.
func SignOut(c echo.Context) error {
	return c.JSON(http.StatusOK, AuthResponse{Success: true})
}

// GetUserByID returns a single user by ID.
func GetUserByID(c echo.Context) error {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, AuthResponse{Success: false, Message: "User not found"})
	}
	return c.JSON(http.StatusOK, AuthResponse{Success: true, Data: user})
}
