package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"holistay/internal/cep"
	"holistay/internal/domain"
	"holistay/internal/property"
	httpez "holistay/internal/transport/http/ez"
	mdw "holistay/internal/transport/http/middleware"
)

// ---------- 房源：/api/v1/properties ----------

func mountPropertyActions(api *gin.RouterGroup, svc *property.Service, log *zap.Logger) {
	authed := api.Group("")
	authed.Use(mdw.RequireUser())
	ezAuthed := httpez.New(authed, log)

	type listOut struct {
		Items []domain.Property `json:"items"`
		Total int               `json:"total"`
	}
	httpez.RegisterAction[struct{}, listOut](ezAuthed, httpez.Action[struct{}, listOut]{
		Method: http.MethodGet,
		Path:   "/properties",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (listOut, error) {
			items, err := svc.List(c.Request.Context(), c.GetString(mdw.KeyUserID))
			if err != nil {
				return listOut{}, httpez.Internal("Não foi possível carregar os imóveis.", err)
			}
			if items == nil {
				items = []domain.Property{}
			}
			return listOut{Items: items, Total: len(items)}, nil
		},
	})

	httpez.RegisterAction[property.Input, domain.Property](ezAuthed, httpez.Action[property.Input, domain.Property]{
		Method: http.MethodPost,
		Path:   "/properties",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *property.Input) (domain.Property, error) {
			// 归属永远取会话身份，载荷里带 profile_id 也不看
			p, err := svc.Add(c.Request.Context(), c.GetString(mdw.KeyUserID), *in)
			if err != nil {
				var ve *property.ValidationError
				switch {
				case errors.As(err, &ve):
					return domain.Property{}, httpez.Invalid("dados inválidos", ve.Fields)
				case errors.Is(err, property.ErrNotAuthenticated):
					return domain.Property{}, httpez.Unauthorized("não autenticado")
				default:
					return domain.Property{}, httpez.Internal("Não foi possível adicionar o imóvel.", err)
				}
			}
			return *p, nil
		},
	})
}

// ---------- 地址补全：/api/v1/cep/:cep ----------

func mountCEPActions(api *gin.RouterGroup, client *cep.Client, log *zap.Logger) {
	ezPublic := httpez.New(api, log)

	httpez.RegisterAction[struct{}, cep.Address](ezPublic, httpez.Action[struct{}, cep.Address]{
		Method: http.MethodGet,
		Path:   "/cep/:cep",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (cep.Address, error) {
			addr, err := client.Lookup(c.Request.Context(), c.Param("cep"))
			switch {
			case errors.Is(err, cep.ErrInvalidCEP):
				return cep.Address{}, httpez.BadRequest("O CEP deve ter 8 dígitos")
			case errors.Is(err, cep.ErrNotFound):
				return cep.Address{}, httpez.NotFound("CEP não encontrado.")
			case err != nil:
				return cep.Address{}, httpez.Internal("Erro ao buscar CEP.", err)
			}
			return *addr, nil
		},
	})
}
