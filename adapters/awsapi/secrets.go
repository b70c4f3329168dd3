package awsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	smtypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
)

// GetSecretValues fetches a Secrets Manager secret and decodes its JSON
// payload into a flat string map. Secrets written as a plain string are
// returned under the "value" key. Returns (nil, nil) when the secret
// does not exist.
func (c *Client) GetSecretValues(ctx context.Context, name string) (map[string]string, error) {
	if c == nil || c.SecretsManager == nil {
		return nil, fmt.Errorf("aws client is not initialized")
	}
	out, err := c.SecretsManager.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		var nf *smtypes.ResourceNotFoundException
		if errors.As(err, &nf) {
			return nil, nil
		}
		return nil, fmt.Errorf("get secret %s: %w", name, err)
	}

	var raw []byte
	switch {
	case out.SecretString != nil:
		raw = []byte(*out.SecretString)
	case out.SecretBinary != nil:
		raw = out.SecretBinary
	default:
		return map[string]string{}, nil
	}

	values := map[string]string{}
	if err := json.Unmarshal(raw, &values); err != nil {
		// Not a JSON object; treat the whole payload as one value.
		return map[string]string{"value": string(raw)}, nil
	}
	return values, nil
}
