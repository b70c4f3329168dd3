package eks

import (
	"fmt"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/secretsmanager"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/searchops/searchops/domain/model"
	"github.com/searchops/searchops/internal/naming"
)

// newSecrets creates the Secrets Manager secrets referenced by the
// environment's secret sync entries. Each secret is seeded with an empty
// JSON object; operators fill in real values out of band, and the stack
// never overwrites them afterwards.
func newSecrets(ctx *pulumi.Context, env *model.Environment) error {
	if env.Secrets == nil {
		return nil
	}
	tags := pulumi.ToStringMap(naming.Tags(env.Name))

	for _, e := range env.Secrets.Entries {
		name := naming.SecretName(env.Name, e.Name)
		secret, err := secretsmanager.NewSecret(ctx, name, &secretsmanager.SecretArgs{
			Name:        pulumi.String(name),
			Description: pulumi.String(fmt.Sprintf("searchops %s secret %s", env.Name, e.Name)),
			Tags:        tags,
		})
		if err != nil {
			return fmt.Errorf("secret %s: %w", e.Name, err)
		}
		if _, err := secretsmanager.NewSecretVersion(ctx, name+"-seed", &secretsmanager.SecretVersionArgs{
			SecretId:     secret.ID(),
			SecretString: pulumi.String("{}"),
		}, pulumi.IgnoreChanges([]string{"secretString"})); err != nil {
			return fmt.Errorf("secret version %s: %w", e.Name, err)
		}
	}
	return nil
}
