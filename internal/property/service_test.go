package property_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"holistay/internal/domain"
	"holistay/internal/property"
)

type fakeRepo struct {
	created []domain.Property
	listed  []domain.Property
	err     error
}

func (f *fakeRepo) Create(_ context.Context, p *domain.Property) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, *p)
	return nil
}

func (f *fakeRepo) ListByProfile(_ context.Context, profileID string) ([]domain.Property, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Property
	for _, p := range f.listed {
		if p.ProfileID == profileID {
			out = append(out, p)
		}
	}
	return out, nil
}

func validInput() property.Input {
	return property.Input{
		Name:         "Apartamento em Copacabana",
		CEP:          "01310930",
		Street:       "Avenida Paulista",
		Number:       "1000",
		Neighborhood: "Bela Vista",
		City:         "São Paulo",
		State:        "SP",
	}
}

func TestAdd_Valid(t *testing.T) {
	repo := &fakeRepo{}
	svc := property.NewService(repo, zap.NewNop())

	p, err := svc.Add(context.Background(), "owner-1", validInput())
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	require.NotEmpty(t, p.ID)
	require.Equal(t, "owner-1", p.ProfileID)
}

func TestAdd_OwnerAlwaysFromCaller(t *testing.T) {
	// Input 根本没有 profile_id 字段，归属只能来自第二个参数
	repo := &fakeRepo{}
	svc := property.NewService(repo, zap.NewNop())

	_, err := svc.Add(context.Background(), "caller-id", validInput())
	require.NoError(t, err)
	require.Equal(t, "caller-id", repo.created[0].ProfileID)
}

func TestAdd_RequiredFields(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*property.Input)
	}{
		{"name", func(in *property.Input) { in.Name = "" }},
		{"cep", func(in *property.Input) { in.CEP = "" }},
		{"street", func(in *property.Input) { in.Street = "" }},
		{"number", func(in *property.Input) { in.Number = "" }},
		{"neighborhood", func(in *property.Input) { in.Neighborhood = "" }},
		{"city", func(in *property.Input) { in.City = "" }},
		{"state", func(in *property.Input) { in.State = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			repo := &fakeRepo{}
			svc := property.NewService(repo, zap.NewNop())

			in := validInput()
			tc.mutate(&in)

			_, err := svc.Add(context.Background(), "owner-1", in)
			var ve *property.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Contains(t, ve.Fields, tc.field)
			require.Empty(t, repo.created, "store must not be written")
		})
	}
}

func TestAdd_CEPLength(t *testing.T) {
	repo := &fakeRepo{}
	svc := property.NewService(repo, zap.NewNop())

	in := validInput()
	in.CEP = "0131093" // 7 位不行
	_, err := svc.Add(context.Background(), "owner-1", in)
	var ve *property.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Fields, "cep")

	in.CEP = "01310-930" // 带分隔符 9 位可以
	_, err = svc.Add(context.Background(), "owner-1", in)
	require.NoError(t, err)
}

func TestAdd_ComplementOptional(t *testing.T) {
	repo := &fakeRepo{}
	svc := property.NewService(repo, zap.NewNop())

	in := validInput()
	in.Complement = ""
	_, err := svc.Add(context.Background(), "owner-1", in)
	require.NoError(t, err)
}

func TestAdd_AnonymousRejectedBeforeValidation(t *testing.T) {
	repo := &fakeRepo{}
	svc := property.NewService(repo, zap.NewNop())

	// 全空输入：若先跑校验会拿到 ValidationError，这里必须是未认证
	_, err := svc.Add(context.Background(), "", property.Input{})
	require.ErrorIs(t, err, property.ErrNotAuthenticated)
	require.Empty(t, repo.created)
}

func TestAdd_StoreErrorIsOpaque(t *testing.T) {
	repo := &fakeRepo{err: errors.New("pq: connection reset")}
	svc := property.NewService(repo, zap.NewNop())

	_, err := svc.Add(context.Background(), "owner-1", validInput())
	require.ErrorIs(t, err, property.ErrStore)
	require.NotContains(t, err.Error(), "connection reset")
}

func TestList_FiltersByProfile(t *testing.T) {
	repo := &fakeRepo{listed: []domain.Property{
		{ID: "a", ProfileID: "owner-1"},
		{ID: "b", ProfileID: "owner-2"},
	}}
	svc := property.NewService(repo, zap.NewNop())

	out, err := svc.List(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "a", out[0].ID)

	_, err = svc.List(context.Background(), "")
	require.ErrorIs(t, err, property.ErrNotAuthenticated)
}
