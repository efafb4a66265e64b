package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campwild-api-io/api/internal/auth"
	"campwild-api-io/api/internal/middleware"
	"campwild-api-io/api/pkg/apperr"
	"campwild-api-io/api/pkg/models"
	"campwild-api-io/api/pkg/services"
	"campwild-api-io/api/pkg/util"
)

type UserController struct {
	userService services.UserService
	sessions    *auth.SessionStore
}

func InitUserController(userService services.UserService, sessions *auth.SessionStore) *UserController {
	return &UserController{userService: userService, sessions: sessions}
}

// CreateUser handles POST /v1/signup and logs the new account in right
// away.
func (uc *UserController) CreateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		var req models.CreateUserRequest
		if err := c.BindJSON(&req); err != nil {
			util.HandleErrorStatus(c, http.StatusBadRequest, err, "invalid JSON data")
			return
		}

		user, err := uc.userService.Register(ctx, req)
		if err != nil {
			util.HandleError(c, err)
			return
		}

		if _, err := uc.sessions.Set(c, user.ID, user.Username); err != nil {
			util.HandleError(c, apperr.Wrap(apperr.Internal, err, "failed to start session"))
			return
		}

		util.HandleSuccess(c, http.StatusCreated, "signup successful", gin.H{"user": user})
	}
}

// HandleUserAuthentication handles POST /v1/auth. A pending return-to
// destination is consumed and echoed so the client can land the user back
// where they were headed.
func (uc *UserController) HandleUserAuthentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		var req models.UserLoginBody
		if err := c.BindJSON(&req); err != nil {
			util.HandleErrorStatus(c, http.StatusBadRequest, err, "invalid JSON data")
			return
		}

		user, err := uc.userService.Authenticate(ctx, req)
		if err != nil {
			util.HandleError(c, err)
			return
		}

		if _, err := uc.sessions.Set(c, user.ID, user.Username); err != nil {
			util.HandleError(c, apperr.Wrap(apperr.Internal, err, "failed to start session"))
			return
		}

		returnTo := uc.sessions.ConsumeReturnTo(c)
		if returnTo == "" {
			returnTo = "/campgrounds"
		}

		util.HandleSuccess(c, http.StatusOK, "Authentication successful", gin.H{
			"user":     user,
			"returnTo": returnTo,
		})
	}
}

// HandleUserGoogleAuthentication handles POST /v1/auth/google.
func (uc *UserController) HandleUserGoogleAuthentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		var req models.GoogleAuthRequest
		if err := c.BindJSON(&req); err != nil {
			util.HandleErrorStatus(c, http.StatusBadRequest, err, "invalid JSON data")
			return
		}

		user, err := uc.userService.AuthenticateGoogle(ctx, req.IDToken)
		if err != nil {
			util.HandleError(c, err)
			return
		}

		if _, err := uc.sessions.Set(c, user.ID, user.Username); err != nil {
			util.HandleError(c, apperr.Wrap(apperr.Internal, err, "failed to start session"))
			return
		}

		returnTo := uc.sessions.ConsumeReturnTo(c)
		if returnTo == "" {
			returnTo = "/campgrounds"
		}

		util.HandleSuccess(c, http.StatusOK, "Authentication successful", gin.H{
			"user":     user,
			"returnTo": returnTo,
		})
	}
}

// Logout handles DELETE /v1/logout.
func (uc *UserController) Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := uc.sessions.Clear(c); err != nil {
			util.HandleError(c, apperr.Wrap(apperr.Internal, err, "failed to end session"))
			return
		}
		util.HandleSuccess(c, http.StatusOK, "Goodbye", nil)
	}
}

// Me handles GET /v1/me, loading the session principal from the store.
func (uc *UserController) Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		session, ok := middleware.CurrentSession(c)
		if !ok {
			util.HandleError(c, apperr.New(apperr.Unauthorized, "you must be signed in first"))
			return
		}

		user, err := uc.userService.GetByID(ctx, session.UserId)
		if err != nil {
			util.HandleError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "success", gin.H{"user": user})
	}
}
