package model

import "context"

// StackPort is an interface (domain port) for the declarative resource
// stack of an environment. Cloud drivers back it with a Pulumi stack;
// local drivers may implement a subset.
type StackPort interface {
	Preview(ctx context.Context, env *Environment, cluster *Cluster, services []*Service) (*StackSummary, error)
	Up(ctx context.Context, env *Environment, cluster *Cluster, services []*Service) (*StackSummary, error)
	Destroy(ctx context.Context, env *Environment, cluster *Cluster) error
	Outputs(ctx context.Context, env *Environment) (map[string]string, error)
}

// StackSummary reports the result of a stack operation.
type StackSummary struct {
	// ResourceChanges counts operations by kind ("create", "update",
	// "delete", "same") as reported by the engine.
	ResourceChanges map[string]int
	// Outputs holds the exported stack outputs after an up.
	Outputs map[string]string
}
