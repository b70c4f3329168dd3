package environment

import "context"

// DeleteInput identifies the environment to remove.
type DeleteInput struct {
	// EnvironmentID is the identifier of the environment to delete.
	EnvironmentID string `json:"environment_id"`
}

// DeleteOutput is empty because delete has no payload.
type DeleteOutput struct{}

// Delete removes an environment record; empty ID is a no-op. Deployed
// resources are not touched, use Destroy for teardown.
func (u *UseCase) Delete(ctx context.Context, in *DeleteInput) (*DeleteOutput, error) {
	if in == nil || in.EnvironmentID == "" { // idempotent
		return &DeleteOutput{}, nil
	}
	if err := u.Repos.Environment.Delete(ctx, in.EnvironmentID); err != nil {
		return nil, err
	}
	return &DeleteOutput{}, nil
}
