package service

import "context"

// DeleteInput identifies the service to remove.
type DeleteInput struct {
	// ServiceID is the identifier of the service to delete.
	ServiceID string `json:"service_id"`
}

// DeleteOutput is empty because delete has no payload.
type DeleteOutput struct{}

// Delete removes a service; empty ID is a no-op.
func (u *UseCase) Delete(ctx context.Context, in *DeleteInput) (*DeleteOutput, error) {
	if in == nil || in.ServiceID == "" { // idempotent
		return &DeleteOutput{}, nil
	}
	if err := u.Repos.Service.Delete(ctx, in.ServiceID); err != nil {
		return nil, err
	}
	return &DeleteOutput{}, nil
}
