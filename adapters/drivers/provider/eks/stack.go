package eks

import (
	"context"
	"fmt"

	"github.com/pulumi/pulumi/sdk/v3/go/auto"
	"github.com/pulumi/pulumi/sdk/v3/go/auto/optdestroy"
	"github.com/pulumi/pulumi/sdk/v3/go/auto/optpreview"
	"github.com/pulumi/pulumi/sdk/v3/go/auto/optup"
	"github.com/pulumi/pulumi/sdk/v3/go/common/tokens"
	"github.com/pulumi/pulumi/sdk/v3/go/common/workspace"

	"github.com/searchops/searchops/domain/model"
	"github.com/searchops/searchops/internal/logging"
	"github.com/searchops/searchops/internal/naming"
)

const projectName = "searchops"

// Stack output keys. The inline program exports these; drivers and
// usecases read them back through StackOutputs.
const (
	outClusterName         = "clusterName"
	outClusterEndpoint     = "clusterEndpoint"
	outKubeconfig          = "kubeconfig"
	outInstalledComponents = "installedComponents"
	outScope               = "scope"
	outBootstrapBrokers    = "bootstrapBrokers"
	outTopics              = "topics"
	outAlbHostname         = "albHostname"
)

func scopeString(s deployScope) string {
	switch s {
	case scopeCluster:
		return "cluster"
	case scopeInfra:
		return "infra"
	default:
		return "all"
	}
}

func scopeFromString(s string) deployScope {
	switch s {
	case "cluster":
		return scopeCluster
	case "infra":
		return scopeInfra
	case "all":
		return scopeAll
	default:
		return -1
	}
}

// selectStack opens the environment stack against the configured backend,
// creating it on first use.
func (d *driver) selectStack(ctx context.Context, env *model.Environment, cluster *model.Cluster, services []*model.Service, scope deployScope) (auto.Stack, error) {
	stackName := naming.StackName(env.Name)
	program := stackProgram(env, cluster, services, scope)

	proj := workspace.Project{
		Name:    tokens.PackageName(projectName),
		Runtime: workspace.NewProjectRuntimeInfo("go", nil),
		Backend: &workspace.ProjectBackend{URL: d.backendURL},
	}
	envVars := map[string]string{
		"PULUMI_CONFIG_PASSPHRASE": d.passphrase,
	}

	stack, err := auto.UpsertStackInlineSource(ctx, stackName, projectName, program,
		auto.Project(proj),
		auto.EnvVars(envVars),
		auto.SecretsProvider("passphrase"),
	)
	if err != nil {
		return auto.Stack{}, fmt.Errorf("select stack %s: %w", stackName, err)
	}

	cfg := auto.ConfigMap{
		"aws:region": auto.ConfigValue{Value: d.region},
	}
	if err := stack.SetAllConfig(ctx, cfg); err != nil {
		return auto.Stack{}, fmt.Errorf("configure stack %s: %w", stackName, err)
	}
	return stack, nil
}

func (d *driver) up(ctx context.Context, env *model.Environment, cluster *model.Cluster, services []*model.Service, scope deployScope) (*model.StackSummary, error) {
	logger := logging.FromContext(ctx)
	stack, err := d.selectStack(ctx, env, cluster, services, scope)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "stack up", "stack", stack.Name(), "scope", scopeString(scope))

	res, err := stack.Up(ctx, optup.Message(fmt.Sprintf("searchops up scope=%s", scopeString(scope))))
	if err != nil {
		return nil, fmt.Errorf("stack up %s: %w", stack.Name(), err)
	}

	summary := &model.StackSummary{
		ResourceChanges: map[string]int{},
		Outputs:         outputStrings(res.Outputs),
	}
	if res.Summary.ResourceChanges != nil {
		for op, n := range *res.Summary.ResourceChanges {
			summary.ResourceChanges[op] = n
		}
	}
	logger.Info(ctx, "stack up complete", "stack", stack.Name(), "changes", summary.ResourceChanges)
	return summary, nil
}

func (d *driver) preview(ctx context.Context, env *model.Environment, cluster *model.Cluster, services []*model.Service, scope deployScope) (*model.StackSummary, error) {
	stack, err := d.selectStack(ctx, env, cluster, services, scope)
	if err != nil {
		return nil, err
	}
	res, err := stack.Preview(ctx, optpreview.Message(fmt.Sprintf("searchops preview scope=%s", scopeString(scope))))
	if err != nil {
		return nil, fmt.Errorf("stack preview %s: %w", stack.Name(), err)
	}
	summary := &model.StackSummary{ResourceChanges: map[string]int{}}
	for op, n := range res.ChangeSummary {
		summary.ResourceChanges[string(op)] = n
	}
	return summary, nil
}

// StackDestroy tears down every resource of the environment stack and
// removes the stack from the backend.
func (d *driver) StackDestroy(ctx context.Context, env *model.Environment, cluster *model.Cluster) error {
	logger := logging.FromContext(ctx)
	stack, err := d.selectStack(ctx, env, cluster, nil, scopeCluster)
	if err != nil {
		return err
	}
	logger.Info(ctx, "stack destroy", "stack", stack.Name())
	if _, err := stack.Destroy(ctx, optdestroy.Message("searchops destroy")); err != nil {
		return fmt.Errorf("stack destroy %s: %w", stack.Name(), err)
	}
	if err := stack.Workspace().RemoveStack(ctx, stack.Name()); err != nil {
		return fmt.Errorf("remove stack %s: %w", stack.Name(), err)
	}
	return nil
}

// StackOutputs returns the current stack outputs as strings. A stack
// that has never been deployed yields an empty map.
func (d *driver) StackOutputs(ctx context.Context, env *model.Environment) (map[string]string, error) {
	stackName := naming.StackName(env.Name)
	proj := workspace.Project{
		Name:    tokens.PackageName(projectName),
		Runtime: workspace.NewProjectRuntimeInfo("go", nil),
		Backend: &workspace.ProjectBackend{URL: d.backendURL},
	}
	stack, err := auto.SelectStackInlineSource(ctx, stackName, projectName, nil,
		auto.Project(proj),
		auto.EnvVars(map[string]string{"PULUMI_CONFIG_PASSPHRASE": d.passphrase}),
		auto.SecretsProvider("passphrase"),
	)
	if err != nil {
		if auto.IsSelectStack404Error(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("select stack %s: %w", stackName, err)
	}
	outs, err := stack.Outputs(ctx)
	if err != nil {
		return nil, fmt.Errorf("read stack outputs %s: %w", stackName, err)
	}
	return outputStrings(outs), nil
}

func (d *driver) currentScope(ctx context.Context, env *model.Environment) (deployScope, error) {
	outs, err := d.StackOutputs(ctx, env)
	if err != nil {
		return -1, err
	}
	return scopeFromString(outs[outScope]), nil
}

func outputStrings(outs auto.OutputMap) map[string]string {
	m := make(map[string]string, len(outs))
	for k, v := range outs {
		switch val := v.Value.(type) {
		case string:
			m[k] = val
		case nil:
			// skip
		default:
			m[k] = fmt.Sprintf("%v", val)
		}
	}
	return m
}
