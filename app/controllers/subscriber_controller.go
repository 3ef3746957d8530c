package controllers

import (
	"net/http"

	"github.com/sommystore/storefront/app/services"
	"github.com/sommystore/storefront/pkg/bind"
	"github.com/sommystore/storefront/pkg/response"
)

type SubscriberController struct {
	subscribers *services.SubscriberService
}

func NewSubscriberController(subscribers *services.SubscriberService) *SubscriberController {
	return &SubscriberController{subscribers: subscribers}
}

type subscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Subscribe adds an email to the mailing list.
func (c *SubscriberController) Subscribe(w http.ResponseWriter, r *http.Request) {
	var input subscribeRequest
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.subscribers.Subscribe(r.Context(), input.Email); err != nil {
		fail(w, err)
		return
	}
	response.Created(w, nil)
}
