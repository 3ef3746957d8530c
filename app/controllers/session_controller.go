package controllers

import (
	"net/http"

	"github.com/sommystore/storefront/app/models"
	"github.com/sommystore/storefront/app/services"
	"github.com/sommystore/storefront/pkg/bind"
	"github.com/sommystore/storefront/pkg/response"
)

type SessionController struct {
	session *services.SessionService
	auth    *services.AuthService
}

func NewSessionController(session *services.SessionService, auth *services.AuthService) *SessionController {
	return &SessionController{session: session, auth: auth}
}

type sessionView struct {
	User        *models.Identity `json:"user"`
	Admin       *models.Identity `json:"admin"`
	Active      *models.Identity `json:"active"`
	DisplayName string           `json:"displayName,omitempty"`
}

// Show returns both cached identities and which one the navigation shows.
func (c *SessionController) Show(w http.ResponseWriter, r *http.Request) {
	view := sessionView{
		User:  c.session.CurrentUser(),
		Admin: c.session.CurrentAdmin(),
	}
	if view.Active = c.session.Active(); view.Active != nil {
		view.DisplayName = view.Active.DisplayName()
	}
	response.Success(w, view)
}

// SignIn authenticates a shopper by email or phone.
func (c *SessionController) SignIn(w http.ResponseWriter, r *http.Request) {
	var input services.SignInInput
	if _, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	identity, err := c.auth.SignIn(r.Context(), input)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, identity)
}

// SignUp registers a shopper.
func (c *SessionController) SignUp(w http.ResponseWriter, r *http.Request) {
	var input services.SignUpInput
	if _, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	identity, err := c.auth.SignUp(r.Context(), input)
	if err != nil {
		fail(w, err)
		return
	}
	response.Created(w, identity)
}

// SignOut destroys the shopper session.
func (c *SessionController) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := c.auth.SignOut(); err != nil {
		fail(w, err)
		return
	}
	response.Success(w, nil)
}

// AdminSignIn authenticates an admin.
func (c *SessionController) AdminSignIn(w http.ResponseWriter, r *http.Request) {
	var input services.AdminInput
	if _, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	identity, err := c.auth.AdminSignIn(r.Context(), input)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, identity)
}

// AdminSignUp registers an admin account.
func (c *SessionController) AdminSignUp(w http.ResponseWriter, r *http.Request) {
	var input services.AdminInput
	if _, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	identity, err := c.auth.AdminSignUp(r.Context(), input)
	if err != nil {
		fail(w, err)
		return
	}
	response.Created(w, identity)
}

// AdminSignOut destroys the admin session.
func (c *SessionController) AdminSignOut(w http.ResponseWriter, r *http.Request) {
	if err := c.auth.AdminSignOut(); err != nil {
		fail(w, err)
		return
	}
	response.Success(w, nil)
}

type resetRequestInput struct {
	Identifier string `json:"identifier" validate:"required"`
}

// RequestReset issues a local password-reset token.
func (c *SessionController) RequestReset(w http.ResponseWriter, r *http.Request) {
	var input resetRequestInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, err := c.auth.RequestReset(input.Identifier)
	if err != nil {
		fail(w, err)
		return
	}
	response.Created(w, map[string]string{"token": token})
}

type resetInput struct {
	Token    string `json:"token"    validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// ResetPassword consumes a reset token.
func (c *SessionController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var input resetInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.auth.ResetPassword(input.Token, input.Password); err != nil {
		fail(w, err)
		return
	}
	response.Success(w, nil)
}
