package userControllers

import (
	"errors"
	"net/http"

	"github.com/DillanMilo/angus-biltong-sub000/auth"
	"github.com/DillanMilo/angus-biltong-sub000/controllers/respond"
	"github.com/DillanMilo/angus-biltong-sub000/middleware"
	"github.com/gin-gonic/gin"
)

// POST /auth/register
func Register(accounts *auth.Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input auth.RegistrationInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respond.BadJSON(c, err)
			return
		}

		customer, err := accounts.Register(c.Request.Context(), input)
		var verrs auth.ValidationErrors
		switch {
		case err == nil:
			c.JSON(http.StatusCreated, customer)
		case errors.As(err, &verrs):
			respond.Invalid(c, verrs)
		case errors.Is(err, auth.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			respond.Upstream(c, err, "Failed to create account")
		}
	}
}

// POST /auth/login
func Login(accounts *auth.Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input auth.LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respond.BadJSON(c, err)
			return
		}

		session, err := accounts.Login(c.Request.Context(), input)
		var verrs auth.ValidationErrors
		switch {
		case err == nil:
			c.JSON(http.StatusOK, session)
		case errors.As(err, &verrs):
			respond.Invalid(c, verrs)
		case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrCustomerNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidCredentials.Error()})
		default:
			respond.Upstream(c, err, "Failed to sign in")
		}
	}
}

// GET /account
func GetAccount(accounts *auth.Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(middleware.EmailKey)

		customer, err := accounts.Profile(c.Request.Context(), email)
		if err != nil {
			if errors.Is(err, auth.ErrCustomerNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			respond.Upstream(c, err, "Failed to load account")
			return
		}
		if customer.ID != c.GetInt(middleware.CustomerIDKey) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}
