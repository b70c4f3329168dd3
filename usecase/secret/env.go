package secret

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/searchops/searchops/internal/naming"
)

type EnvInput struct {
	EnvironmentID string
	Entry         string
}

type EnvOutput struct {
	SecretName string
	Keys       []string
	// Content is the secret rendered as dotenv lines, one KEY=value per line.
	Content string
}

// Env renders one sync entry's source secret as dotenv content for
// local development. Values come from the cloud secret store, or from
// environment settings on the local driver.
func (u *UseCase) Env(ctx context.Context, in *EnvInput) (*EnvOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("EnvInput is required")
	}
	if in.EnvironmentID == "" {
		return nil, fmt.Errorf("EnvInput.EnvironmentID is required")
	}
	if in.Entry == "" {
		return nil, fmt.Errorf("EnvInput.Entry is required")
	}

	env, _, entries, err := u.resolve(ctx, in.EnvironmentID, in.Entry)
	if err != nil {
		return nil, err
	}
	entry := entries[0]

	var source Source
	if u.NewSource != nil && env.Region != "" {
		source, err = u.NewSource(ctx, env.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create secret source: %w", err)
		}
	}
	sourceName := naming.SecretName(env.Name, entry.Name)
	values, err := u.readValues(ctx, source, env, entry, sourceName)
	if err != nil {
		return nil, err
	}
	if values == nil {
		return nil, fmt.Errorf("source secret %s not found", sourceName)
	}

	out := &EnvOutput{SecretName: entry.TargetSecret}
	for k := range values {
		out.Keys = append(out.Keys, k)
	}
	sort.Strings(out.Keys)
	var b strings.Builder
	for _, k := range out.Keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(values[k])
		b.WriteByte('\n')
	}
	out.Content = b.String()
	return out, nil
}
