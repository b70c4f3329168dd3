package service

import (
	"context"

	"github.com/searchops/searchops/domain/model"
)

func (u *UseCase) List(ctx context.Context) ([]*model.Service, error) { return u.Repos.Service.List(ctx) }
