package environment

import (
	"context"

	"github.com/searchops/searchops/domain/model"
)

func (u *UseCase) Get(ctx context.Context, id string) (*model.Environment, error) {
	if id == "" {
		return nil, model.ErrEnvironmentInvalid
	}
	return u.Repos.Environment.Get(ctx, id)
}
