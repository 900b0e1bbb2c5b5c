package echoapi

import (
	"github.com/Axioms-Product/axiom-school-sub000/core"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Secret   string `json:"secret" validate:"required"`
}

func (lr *LoginRequest) Validate() error {
	lr.Username = core.CleanString(lr.Username, true /* lower */)
	return core.Validate.Struct(lr)
}

type LoginResponse struct {
	Token string `json:"token"`
}

type RespondRequest struct {
	Response string `json:"response" validate:"required,oneof=confirmed disputed"`
}

func (rr *RespondRequest) Validate() error {
	rr.Response = core.CleanString(rr.Response, true /* lower */)
	return core.Validate.Struct(rr)
}

type SuccessResponse struct {
	Success string `json:"success"`
}
