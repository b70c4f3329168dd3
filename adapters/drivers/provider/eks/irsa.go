package eks

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/iam"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/searchops/searchops/domain/model"
	"github.com/searchops/searchops/internal/naming"
)

// Well-known service account names for the in-cluster components.
const (
	albControllerNamespace      = "kube-system"
	albControllerServiceAccount = "aws-load-balancer-controller"
	extSecretsNamespace         = "external-secrets"
	extSecretsServiceAccount    = "external-secrets"
)

// irsaRoles holds the IAM roles assumed by in-cluster service accounts
// through the cluster OIDC provider.
type irsaRoles struct {
	ALBController   *iam.Role
	ExternalSecrets *iam.Role
	Storage         *iam.Role
	Queues          *iam.Role
}

// assumeRolePolicy renders a web identity trust policy binding one
// Kubernetes service account to the role.
func assumeRolePolicy(cl *clusterResources, namespace, serviceAccount string) pulumi.StringOutput {
	return pulumi.All(cl.OidcArn, cl.OidcURL).ApplyT(func(args []any) (string, error) {
		arn := args[0].(string)
		issuer := strings.TrimPrefix(args[1].(string), "https://")
		doc := map[string]any{
			"Version": "2012-10-17",
			"Statement": []any{
				map[string]any{
					"Effect":    "Allow",
					"Principal": map[string]any{"Federated": arn},
					"Action":    "sts:AssumeRoleWithWebIdentity",
					"Condition": map[string]any{
						"StringEquals": map[string]string{
							issuer + ":sub": fmt.Sprintf("system:serviceaccount:%s:%s", namespace, serviceAccount),
							issuer + ":aud": "sts.amazonaws.com",
						},
					},
				},
			},
		}
		b, err := json.Marshal(doc)
		return string(b), err
	}).(pulumi.StringOutput)
}

// newIRSARoles creates the roles for the ALB controller, the External
// Secrets operator, indexer bucket access and writer/indexer queue access.
func newIRSARoles(ctx *pulumi.Context, env *model.Environment, cl *clusterResources) (*irsaRoles, error) {
	prefix := naming.StackName(env.Name)
	ns := naming.Namespace(env.Name)
	tags := pulumi.ToStringMap(naming.Tags(env.Name))

	albRole, err := iam.NewRole(ctx, prefix+"-alb-controller", &iam.RoleArgs{
		AssumeRolePolicy: assumeRolePolicy(cl, albControllerNamespace, albControllerServiceAccount),
		Tags:             tags,
	})
	if err != nil {
		return nil, err
	}
	if _, err := iam.NewRolePolicy(ctx, prefix+"-alb-controller", &iam.RolePolicyArgs{
		Role:   albRole.Name,
		Policy: pulumi.String(albControllerPolicy),
	}); err != nil {
		return nil, err
	}

	esRole, err := iam.NewRole(ctx, prefix+"-external-secrets", &iam.RoleArgs{
		AssumeRolePolicy: assumeRolePolicy(cl, extSecretsNamespace, extSecretsServiceAccount),
		Tags:             tags,
	})
	if err != nil {
		return nil, err
	}
	if _, err := iam.NewRolePolicy(ctx, prefix+"-external-secrets", &iam.RolePolicyArgs{
		Role: esRole.Name,
		Policy: pulumi.String(policyDoc([]policyStatement{{
			Actions:   []string{"secretsmanager:GetSecretValue", "secretsmanager:DescribeSecret", "secretsmanager:ListSecretVersionIds"},
			Resources: []string{fmt.Sprintf("arn:aws:secretsmanager:%s:*:secret:searchops/%s/*", env.Region, env.Name)},
		}})),
	}); err != nil {
		return nil, err
	}

	roles := &irsaRoles{ALBController: albRole, ExternalSecrets: esRole}

	if env.Storage != nil && len(env.Storage.Buckets) > 0 {
		var bucketARNs []string
		for _, b := range env.Storage.Buckets {
			name := naming.BucketName(env.Name, b.Name)
			bucketARNs = append(bucketARNs,
				"arn:aws:s3:::"+name,
				"arn:aws:s3:::"+name+"/*")
		}
		storageRole, err := iam.NewRole(ctx, prefix+"-storage", &iam.RoleArgs{
			AssumeRolePolicy: assumeRolePolicy(cl, ns, "indexer"),
			Tags:             tags,
		})
		if err != nil {
			return nil, err
		}
		if _, err := iam.NewRolePolicy(ctx, prefix+"-storage", &iam.RolePolicyArgs{
			Role: storageRole.Name,
			Policy: pulumi.String(policyDoc([]policyStatement{{
				Actions:   []string{"s3:GetObject", "s3:PutObject", "s3:DeleteObject", "s3:ListBucket"},
				Resources: bucketARNs,
			}})),
		}); err != nil {
			return nil, err
		}
		roles.Storage = storageRole
	}

	if env.Messaging != nil && env.Messaging.Kind == "sqs" && len(env.Messaging.Queues) > 0 {
		queueRole, err := iam.NewRole(ctx, prefix+"-queues", &iam.RoleArgs{
			AssumeRolePolicy: assumeRolePolicy(cl, ns, "writer"),
			Tags:             tags,
		})
		if err != nil {
			return nil, err
		}
		if _, err := iam.NewRolePolicy(ctx, prefix+"-queues", &iam.RolePolicyArgs{
			Role: queueRole.Name,
			Policy: pulumi.String(policyDoc([]policyStatement{{
				Actions: []string{
					"sqs:SendMessage", "sqs:ReceiveMessage", "sqs:DeleteMessage",
					"sqs:GetQueueUrl", "sqs:GetQueueAttributes",
				},
				Resources: []string{fmt.Sprintf("arn:aws:sqs:%s:*:searchops-%s-*", env.Region, env.Name)},
			}})),
		}); err != nil {
			return nil, err
		}
		roles.Queues = queueRole
	}

	return roles, nil
}

type policyStatement struct {
	Actions   []string
	Resources []string
}

func policyDoc(statements []policyStatement) string {
	var stmts []any
	for _, s := range statements {
		stmts = append(stmts, map[string]any{
			"Effect":   "Allow",
			"Action":   s.Actions,
			"Resource": s.Resources,
		})
	}
	b, _ := json.Marshal(map[string]any{"Version": "2012-10-17", "Statement": stmts})
	return string(b)
}

// albControllerPolicy is the subset of the upstream
// aws-load-balancer-controller IAM policy the controller needs to manage
// ALBs, target groups and security groups for Ingress resources.
const albControllerPolicy = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Effect": "Allow",
      "Action": [
        "ec2:DescribeAvailabilityZones",
        "ec2:DescribeInstances",
        "ec2:DescribeInternetGateways",
        "ec2:DescribeNetworkInterfaces",
        "ec2:DescribeSecurityGroups",
        "ec2:DescribeSubnets",
        "ec2:DescribeTags",
        "ec2:DescribeVpcs",
        "ec2:AuthorizeSecurityGroupIngress",
        "ec2:RevokeSecurityGroupIngress",
        "ec2:CreateSecurityGroup",
        "ec2:DeleteSecurityGroup",
        "ec2:CreateTags",
        "ec2:DeleteTags"
      ],
      "Resource": "*"
    },
    {
      "Effect": "Allow",
      "Action": [
        "elasticloadbalancing:AddTags",
        "elasticloadbalancing:RemoveTags",
        "elasticloadbalancing:CreateListener",
        "elasticloadbalancing:DeleteListener",
        "elasticloadbalancing:CreateLoadBalancer",
        "elasticloadbalancing:DeleteLoadBalancer",
        "elasticloadbalancing:CreateRule",
        "elasticloadbalancing:DeleteRule",
        "elasticloadbalancing:CreateTargetGroup",
        "elasticloadbalancing:DeleteTargetGroup",
        "elasticloadbalancing:DescribeListeners",
        "elasticloadbalancing:DescribeLoadBalancers",
        "elasticloadbalancing:DescribeLoadBalancerAttributes",
        "elasticloadbalancing:DescribeRules",
        "elasticloadbalancing:DescribeTags",
        "elasticloadbalancing:DescribeTargetGroups",
        "elasticloadbalancing:DescribeTargetGroupAttributes",
        "elasticloadbalancing:DescribeTargetHealth",
        "elasticloadbalancing:ModifyListener",
        "elasticloadbalancing:ModifyLoadBalancerAttributes",
        "elasticloadbalancing:ModifyRule",
        "elasticloadbalancing:ModifyTargetGroup",
        "elasticloadbalancing:ModifyTargetGroupAttributes",
        "elasticloadbalancing:RegisterTargets",
        "elasticloadbalancing:DeregisterTargets",
        "elasticloadbalancing:SetIpAddressType",
        "elasticloadbalancing:SetSecurityGroups",
        "elasticloadbalancing:SetSubnets"
      ],
      "Resource": "*"
    },
    {
      "Effect": "Allow",
      "Action": [
        "iam:CreateServiceLinkedRole",
        "acm:DescribeCertificate",
        "acm:ListCertificates",
        "wafv2:GetWebACL",
        "wafv2:AssociateWebACL",
        "wafv2:DisassociateWebACL",
        "shield:DescribeProtection",
        "shield:GetSubscriptionState"
      ],
      "Resource": "*"
    }
  ]
}`
