package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/ubao/core"
	"github.com/darasahq/ubao/storage/memdb"
)

type (
	loginApi struct {
		accounts *memdb.AccountRepository
		conf     *core.Config
	}

	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}
)

func (lr *LoginRequest) Validate() error {
	lr.Username = core.CleanString(lr.Username, true /* lower */)
	return core.Validate.Struct(lr)
}

func registerLoginAPI(g *echo.Group, accounts *memdb.AccountRepository, conf *core.Config) {
	api := loginApi{accounts: accounts, conf: conf}
	g.POST("/users/login", api.login)
}

func (api *loginApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	acct, err := api.accounts.GetAccountByUsername(data.Username)
	if err != nil {
		return errAuthenticationFailed
	}
	if err := acct.CheckPassword(data.Password); err != nil {
		return errAuthenticationFailed
	}

	token, err := GenerateToken(api.conf, GetAccountClaims(api.conf, acct))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}
