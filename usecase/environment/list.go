package environment

import (
	"context"

	"github.com/searchops/searchops/domain/model"
)

func (u *UseCase) List(ctx context.Context) ([]*model.Environment, error) {
	return u.Repos.Environment.List(ctx)
}
