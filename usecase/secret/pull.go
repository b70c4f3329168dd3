package secret

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/searchops/searchops/adapters/kube"
	"github.com/searchops/searchops/domain/model"
	"github.com/searchops/searchops/internal/logging"
	"github.com/searchops/searchops/internal/naming"
)

type PullOperation string

const (
	PullOpSet    PullOperation = "set"
	PullOpDelete PullOperation = "delete"
)

type PullInput struct {
	EnvironmentID string
	// Entry selects a single sync entry by name. Empty pulls all entries.
	Entry     string
	Operation PullOperation
	DryRun    bool
}

// PullResult reports the outcome for one sync entry.
type PullResult struct {
	Entry      string
	SecretName string
	Namespace  string
	Action     string
	Hash       string
	Keys       []string
}

type PullOutput struct {
	Results  []PullResult
	Warnings []string
}

// Pull reads source secrets from the cloud secret store and applies them
// as Kubernetes Secrets, bypassing the in-cluster sync operator. It is
// the manual escape hatch when the operator lags or is not installed.
func (u *UseCase) Pull(ctx context.Context, in *PullInput) (*PullOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("PullInput is required")
	}
	if in.EnvironmentID == "" {
		return nil, fmt.Errorf("PullInput.EnvironmentID is required")
	}
	if in.Operation != PullOpSet && in.Operation != PullOpDelete {
		return nil, fmt.Errorf("unsupported operation: %s", in.Operation)
	}

	logger := logging.FromContext(ctx)

	env, cluster, entries, err := u.resolve(ctx, in.EnvironmentID, in.Entry)
	if err != nil {
		return nil, err
	}

	kubeconfig, err := u.ClusterPort.Kubeconfig(ctx, cluster)
	if err != nil {
		return nil, fmt.Errorf("failed to get cluster kubeconfig: %w", err)
	}
	kcli, err := kube.NewClientFromKubeconfig(ctx, kubeconfig, &kube.Options{UserAgent: "searchops"})
	if err != nil {
		return nil, fmt.Errorf("failed to create kube client: %w", err)
	}

	var source Source
	if in.Operation == PullOpSet && u.NewSource != nil && env.Region != "" {
		source, err = u.NewSource(ctx, env.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create secret source: %w", err)
		}
	}

	out := &PullOutput{}
	for _, e := range entries {
		namespace := e.Namespace
		if namespace == "" {
			namespace = naming.Namespace(env.Name)
		}
		res := PullResult{Entry: e.Name, SecretName: e.TargetSecret, Namespace: namespace}

		switch in.Operation {
		case PullOpDelete:
			if in.DryRun {
				res.Action = "deleted"
				out.Results = append(out.Results, res)
				continue
			}
			if err := kcli.DeleteSecret(ctx, namespace, e.TargetSecret); err != nil {
				return nil, err
			}
			res.Action = "deleted"
		case PullOpSet:
			sourceName := naming.SecretName(env.Name, e.Name)
			values, err := u.readValues(ctx, source, env, e, sourceName)
			if err != nil {
				return nil, err
			}
			if values == nil {
				out.Warnings = append(out.Warnings, fmt.Sprintf("source secret %s not found", sourceName))
				res.Action = "skipped"
				out.Results = append(out.Results, res)
				continue
			}
			data := make(map[string][]byte, len(values))
			for k, v := range values {
				data[k] = []byte(v)
				res.Keys = append(res.Keys, k)
			}
			sort.Strings(res.Keys)
			if in.DryRun {
				res.Action = "updated"
				res.Hash = kube.SecretContentHash(data)
				out.Results = append(out.Results, res)
				continue
			}
			action, hash, err := kcli.ApplySecret(ctx, namespace, e.TargetSecret, "pull:"+sourceName, data)
			if err != nil {
				return nil, err
			}
			res.Action = action
			res.Hash = hash
		}
		logger.Info(ctx, "secret pull", "entry", e.Name, "secret", res.SecretName, "action", res.Action)
		out.Results = append(out.Results, res)
	}
	return out, nil
}

// resolve loads the environment, its cluster, and the selected sync entries.
func (u *UseCase) resolve(ctx context.Context, environmentID, entryName string) (*model.Environment, *model.Cluster, []model.SecretEntry, error) {
	env, err := u.Repos.Environment.Get(ctx, environmentID)
	if err != nil || env == nil {
		return nil, nil, nil, fmt.Errorf("failed to get environment %s: %w", environmentID, err)
	}
	if env.Secrets == nil || len(env.Secrets.Entries) == 0 {
		return nil, nil, nil, fmt.Errorf("environment %s has no secret sync entries", env.Name)
	}
	clusters, err := u.Repos.Cluster.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	var cluster *model.Cluster
	for _, c := range clusters {
		if c.EnvironmentID == env.ID {
			cluster = c
			break
		}
	}
	if cluster == nil {
		return nil, nil, nil, fmt.Errorf("environment %s has no cluster: %w", env.Name, model.ErrClusterNotFound)
	}
	entries := env.Secrets.Entries
	if entryName != "" {
		var found []model.SecretEntry
		for _, e := range entries {
			if e.Name == entryName {
				found = append(found, e)
			}
		}
		if len(found) == 0 {
			return nil, nil, nil, fmt.Errorf("unknown secret sync entry: %s", entryName)
		}
		entries = found
	}
	return env, cluster, entries, nil
}

// readValues reads source secret values, falling back to environment
// settings when no cloud secret store is configured (local driver).
// A nil map with nil error means the source secret does not exist.
func (u *UseCase) readValues(ctx context.Context, source Source, env *model.Environment, e model.SecretEntry, sourceName string) (map[string]string, error) {
	if source != nil {
		values, err := source.GetSecretValues(ctx, sourceName)
		if err != nil {
			return nil, fmt.Errorf("read secret %s: %w", sourceName, err)
		}
		return values, nil
	}
	prefix := "secret." + e.Name + "."
	values := map[string]string{}
	for k, v := range env.Settings {
		if strings.HasPrefix(k, prefix) {
			values[strings.TrimPrefix(k, prefix)] = v
		}
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}
