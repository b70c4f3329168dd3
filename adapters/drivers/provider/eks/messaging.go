package eks

import (
	"encoding/json"
	"fmt"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/ec2"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/msk"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/sqs"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/searchops/searchops/domain/model"
	"github.com/searchops/searchops/internal/naming"
)

// messagingOutputs carries messaging endpoints into workloads and exports.
type messagingOutputs struct {
	// BootstrapBrokers is the TLS bootstrap string of the MSK cluster,
	// nil when the environment uses SQS.
	BootstrapBrokers pulumi.StringInput
	// QueueURLs maps logical queue names to their SQS URLs, empty when
	// the environment uses MSK.
	QueueURLs map[string]pulumi.StringInput
	// Topics lists the Kafka topic names the applications expect on the
	// broker.
	Topics []string
}

func topicNames(m *model.Messaging) []string {
	names := make([]string, 0, len(m.Topics))
	for _, t := range m.Topics {
		names = append(names, t.Name)
	}
	return names
}

// newMSKCluster provisions an MSK cluster on the private subnets with
// TLS client traffic and EBS broker storage. Topics are created by the
// applications on first use, not by the stack.
func newMSKCluster(ctx *pulumi.Context, env *model.Environment, net *networkResources) (*messagingOutputs, error) {
	m := env.Messaging
	prefix := naming.StackName(env.Name)
	tags := pulumi.ToStringMap(naming.Tags(env.Name))

	brokers := m.Brokers
	if brokers <= 0 {
		// One broker per AZ is the MSK minimum for 3-AZ subnets.
		brokers = 3
	}
	kafkaVersion := m.KafkaVersion
	if kafkaVersion == "" {
		kafkaVersion = "3.6.0"
	}
	instanceType := m.InstanceType
	if instanceType == "" {
		instanceType = "kafka.m5.large"
	}
	volumeSize := m.VolumeSizeGB
	if volumeSize <= 0 {
		volumeSize = 100
	}

	sg, err := ec2.NewSecurityGroup(ctx, prefix+"-msk", &ec2.SecurityGroupArgs{
		VpcId:       net.VpcID,
		Description: pulumi.String("Kafka client traffic from within the VPC"),
		Ingress: ec2.SecurityGroupIngressArray{
			&ec2.SecurityGroupIngressArgs{
				Protocol:   pulumi.String("tcp"),
				FromPort:   pulumi.Int(9092),
				ToPort:     pulumi.Int(9094),
				CidrBlocks: pulumi.StringArray{pulumi.String("10.0.0.0/16")},
			},
		},
		Egress: ec2.SecurityGroupEgressArray{
			&ec2.SecurityGroupEgressArgs{
				Protocol:   pulumi.String("-1"),
				FromPort:   pulumi.Int(0),
				ToPort:     pulumi.Int(0),
				CidrBlocks: pulumi.StringArray{pulumi.String("0.0.0.0/0")},
			},
		},
		Tags: tags,
	})
	if err != nil {
		return nil, err
	}

	cluster, err := msk.NewCluster(ctx, prefix+"-kafka", &msk.ClusterArgs{
		ClusterName:         pulumi.String(prefix + "-kafka"),
		KafkaVersion:        pulumi.String(kafkaVersion),
		NumberOfBrokerNodes: pulumi.Int(brokers),
		BrokerNodeGroupInfo: &msk.ClusterBrokerNodeGroupInfoArgs{
			InstanceType:   pulumi.String(instanceType),
			ClientSubnets:  net.PrivateSubnetIDs,
			SecurityGroups: pulumi.StringArray{sg.ID()},
			StorageInfo: &msk.ClusterBrokerNodeGroupInfoStorageInfoArgs{
				EbsStorageInfo: &msk.ClusterBrokerNodeGroupInfoStorageInfoEbsStorageInfoArgs{
					VolumeSize: pulumi.Int(volumeSize),
				},
			},
		},
		EncryptionInfo: &msk.ClusterEncryptionInfoArgs{
			EncryptionInTransit: &msk.ClusterEncryptionInfoEncryptionInTransitArgs{
				ClientBroker: pulumi.String("TLS"),
				InCluster:    pulumi.Bool(true),
			},
		},
		Tags: tags,
	})
	if err != nil {
		return nil, err
	}

	return &messagingOutputs{
		BootstrapBrokers: cluster.BootstrapBrokersTls,
		Topics:           topicNames(m),
	}, nil
}

// newQueues provisions the SQS queues of the environment, with a
// companion dead letter queue and redrive policy where requested.
func newQueues(ctx *pulumi.Context, env *model.Environment) (*messagingOutputs, error) {
	tags := pulumi.ToStringMap(naming.Tags(env.Name))
	out := &messagingOutputs{QueueURLs: map[string]pulumi.StringInput{}}

	for _, q := range env.Messaging.Queues {
		name := naming.QueueName(env.Name, q.Name)
		args := &sqs.QueueArgs{
			Name: pulumi.String(name),
			Tags: tags,
		}
		if q.VisibilityTimeout > 0 {
			args.VisibilityTimeoutSeconds = pulumi.Int(q.VisibilityTimeout)
		}

		if q.DeadLetter {
			dlqName := naming.DeadLetterQueueName(env.Name, q.Name)
			dlq, err := sqs.NewQueue(ctx, dlqName, &sqs.QueueArgs{
				Name: pulumi.String(dlqName),
				// Retain dead letters for the SQS maximum.
				MessageRetentionSeconds: pulumi.Int(1209600),
				Tags:                    tags,
			})
			if err != nil {
				return nil, err
			}
			maxReceive := q.MaxReceiveCount
			if maxReceive <= 0 {
				maxReceive = 5
			}
			args.RedrivePolicy = dlq.Arn.ApplyT(func(arn string) (string, error) {
				b, err := json.Marshal(map[string]any{
					"deadLetterTargetArn": arn,
					"maxReceiveCount":     maxReceive,
				})
				return string(b), err
			}).(pulumi.StringOutput)
		}

		queue, err := sqs.NewQueue(ctx, name, args)
		if err != nil {
			return nil, fmt.Errorf("queue %s: %w", q.Name, err)
		}
		out.QueueURLs[q.Name] = queue.Url
	}
	return out, nil
}
