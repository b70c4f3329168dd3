package eks

import (
	"fmt"
	"strings"

	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/searchops/searchops/domain/model"
)

// stackProgram builds the inline Pulumi program for one environment at a
// given scope. The program is deterministic for a given (env, cluster,
// services, scope) tuple; Pulumi diffs it against the last deployed state.
func stackProgram(env *model.Environment, cluster *model.Cluster, services []*model.Service, scope deployScope) pulumi.RunFunc {
	return func(ctx *pulumi.Context) error {
		var (
			net *networkResources
			cl  *clusterResources
			err error
		)
		if cluster != nil && cluster.Existing {
			// Bring-your-own cluster: reference it and its VPC instead
			// of provisioning them.
			cl, net, err = lookupCluster(ctx, env, cluster)
		} else {
			if net, err = newNetwork(ctx, env); err != nil {
				return err
			}
			cl, err = newCluster(ctx, env, cluster, net)
		}
		if err != nil {
			return err
		}

		ctx.Export(outScope, pulumi.String(scopeString(scope)))
		ctx.Export(outClusterName, cl.Name)
		ctx.Export(outClusterEndpoint, cl.Endpoint)
		ctx.Export(outKubeconfig, pulumi.ToSecret(cl.Kubeconfig))

		if scope < scopeInfra {
			ctx.Export(outInstalledComponents, pulumi.String(""))
			return nil
		}

		irsa, err := newIRSARoles(ctx, env, cl)
		if err != nil {
			return err
		}

		var msgOut *messagingOutputs
		if env.Messaging != nil {
			switch env.Messaging.Kind {
			case "msk":
				msgOut, err = newMSKCluster(ctx, env, net)
			case "sqs":
				msgOut, err = newQueues(ctx, env)
			default:
				return fmt.Errorf("messaging kind %q is not supported by the eks driver", env.Messaging.Kind)
			}
			if err != nil {
				return err
			}
		}
		if msgOut != nil {
			if msgOut.BootstrapBrokers != nil {
				ctx.Export(outBootstrapBrokers, pulumi.ToSecret(msgOut.BootstrapBrokers))
			}
			if len(msgOut.Topics) > 0 {
				ctx.Export(outTopics, pulumi.String(strings.Join(msgOut.Topics, ",")))
			}
			for name, url := range msgOut.QueueURLs {
				ctx.Export("queueUrl:"+name, url)
			}
		}

		buckets, err := newBuckets(ctx, env)
		if err != nil {
			return err
		}
		for name, b := range buckets {
			ctx.Export("bucket:"+name, b.Bucket)
		}

		if err := newSecrets(ctx, env); err != nil {
			return err
		}

		k8s, err := newKubernetes(ctx, env, cl, irsa)
		if err != nil {
			return err
		}
		charts, err := installCharts(ctx, env, cl, irsa, k8s)
		if err != nil {
			return err
		}
		ctx.Export(outInstalledComponents, pulumi.String(charts.Installed))

		if err := newExternalSecrets(ctx, env, k8s, charts); err != nil {
			return err
		}

		if scope < scopeAll {
			return nil
		}

		alb, err := newWorkloads(ctx, env, cluster, services, msgOut, buckets, k8s)
		if err != nil {
			return err
		}
		if alb != nil {
			ctx.Export(outAlbHostname, alb)
		}
		return nil
	}
}
