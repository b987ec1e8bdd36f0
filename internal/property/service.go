// Package property 房源登记：校验 → 以当前业主身份落库 → 按业主列出。
package property

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"holistay/internal/domain"
	"holistay/pkg/utils"
)

var (
	// ErrNotAuthenticated 未解析出身份时直接拒绝，校验都不跑
	ErrNotAuthenticated = errors.New("property: not authenticated")
	// ErrStore 落库失败对外只给这个，底层错误进日志
	ErrStore = errors.New("property: failed to add property")
)

// Input 房源提交。注意没有 profile_id 字段：
// 归属永远由服务端用解析出的身份覆盖，不信任客户端。
type Input struct {
	Name         string `json:"name" validate:"required"`
	CEP          string `json:"cep" validate:"required,min=8,max=9"`
	Street       string `json:"street" validate:"required"`
	Number       string `json:"number" validate:"required"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood" validate:"required"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
}

// ValidationError 字段名 → 提示语，原样回给表单
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("property: %d invalid fields", len(e.Fields))
}

// 与表单字段一一对应的提示语
var fieldMessages = map[string]string{
	"name":         "O nome é obrigatório",
	"cep":          "O CEP deve ter 8 dígitos",
	"street":       "O logradouro é obrigatório",
	"number":       "O número é obrigatório",
	"neighborhood": "O bairro é obrigatório",
	"city":         "A cidade é obrigatória",
	"state":        "O estado é obrigatório",
}

type Service struct {
	repo     domain.PropertyRepository
	validate *validator.Validate
	log      *zap.Logger
}

func NewService(repo domain.PropertyRepository, log *zap.Logger) *Service {
	return &Service{repo: repo, validate: validator.New(), log: log}
}

// Add 登记一处房源。profileID 必须是会话解析出的身份。
func (s *Service) Add(ctx context.Context, profileID string, in Input) (*domain.Property, error) {
	if profileID == "" {
		return nil, ErrNotAuthenticated
	}
	if ve := s.check(in); ve != nil {
		return nil, ve
	}

	p := &domain.Property{
		ID:           utils.NewID(),
		ProfileID:    profileID,
		Name:         in.Name,
		CEP:          in.CEP,
		Street:       in.Street,
		Number:       in.Number,
		Complement:   in.Complement,
		Neighborhood: in.Neighborhood,
		City:         in.City,
		State:        in.State,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("insert property", zap.String("profile_id", profileID), zap.Error(err))
		return nil, ErrStore
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, profileID string) ([]domain.Property, error) {
	if profileID == "" {
		return nil, ErrNotAuthenticated
	}
	return s.repo.ListByProfile(ctx, profileID)
}

func (s *Service) check(in Input) *ValidationError {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: map[string]string{"form": "dados inválidos"}}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := jsonName(fe.Field())
		if msg, ok := fieldMessages[key]; ok {
			fields[key] = msg
		} else {
			fields[key] = "campo inválido"
		}
	}
	return &ValidationError{Fields: fields}
}

// jsonName 校验器报的是 Go 字段名，换算成表单/JSON 字段名
func jsonName(goField string) string {
	switch goField {
	case "Name":
		return "name"
	case "CEP":
		return "cep"
	case "Street":
		return "street"
	case "Number":
		return "number"
	case "Complement":
		return "complement"
	case "Neighborhood":
		return "neighborhood"
	case "City":
		return "city"
	case "State":
		return "state"
	}
	return goField
}
