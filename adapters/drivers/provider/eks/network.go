package eks

import (
	"fmt"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/ec2"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/searchops/searchops/domain/model"
	"github.com/searchops/searchops/internal/naming"
)

// networkResources groups the VPC pieces the rest of the program needs.
// They come from newNetwork for managed clusters and from a cluster
// lookup for existing ones.
type networkResources struct {
	VpcID            pulumi.StringOutput
	PublicSubnetIDs  pulumi.StringArray
	PrivateSubnetIDs pulumi.StringArray
}

// newNetwork creates a VPC spanning three availability zones with a
// public and a private subnet per zone. Private subnets reach the
// internet through a single NAT gateway.
func newNetwork(ctx *pulumi.Context, env *model.Environment) (*networkResources, error) {
	prefix := naming.StackName(env.Name)
	tags := pulumi.ToStringMap(naming.Tags(env.Name))

	vpc, err := ec2.NewVpc(ctx, prefix+"-vpc", &ec2.VpcArgs{
		CidrBlock:          pulumi.String("10.0.0.0/16"),
		EnableDnsHostnames: pulumi.Bool(true),
		EnableDnsSupport:   pulumi.Bool(true),
		Tags:               tags,
	})
	if err != nil {
		return nil, err
	}

	azs := []string{env.Region + "a", env.Region + "b", env.Region + "c"}

	net := &networkResources{VpcID: vpc.ID().ToStringOutput()}
	var publicSubnets, privateSubnets []*ec2.Subnet
	for i, az := range azs {
		priv, err := ec2.NewSubnet(ctx, fmt.Sprintf("%s-priv-%d", prefix, i+1), &ec2.SubnetArgs{
			VpcId:            vpc.ID(),
			CidrBlock:        pulumi.String(fmt.Sprintf("10.0.%d.0/24", i+1)),
			AvailabilityZone: pulumi.String(az),
			Tags: pulumi.ToStringMap(mergeTags(naming.Tags(env.Name), map[string]string{
				// ALB controller discovers subnets through this tag.
				"kubernetes.io/role/internal-elb": "1",
			})),
		})
		if err != nil {
			return nil, err
		}
		privateSubnets = append(privateSubnets, priv)

		pub, err := ec2.NewSubnet(ctx, fmt.Sprintf("%s-pub-%d", prefix, i+1), &ec2.SubnetArgs{
			VpcId:               vpc.ID(),
			CidrBlock:           pulumi.String(fmt.Sprintf("10.0.%d.0/24", i+101)),
			AvailabilityZone:    pulumi.String(az),
			MapPublicIpOnLaunch: pulumi.Bool(true),
			Tags: pulumi.ToStringMap(mergeTags(naming.Tags(env.Name), map[string]string{
				"kubernetes.io/role/elb": "1",
			})),
		})
		if err != nil {
			return nil, err
		}
		publicSubnets = append(publicSubnets, pub)
	}

	igw, err := ec2.NewInternetGateway(ctx, prefix+"-igw", &ec2.InternetGatewayArgs{
		VpcId: vpc.ID(),
		Tags:  tags,
	})
	if err != nil {
		return nil, err
	}

	eip, err := ec2.NewEip(ctx, prefix+"-nat-eip", &ec2.EipArgs{
		Domain: pulumi.String("vpc"),
		Tags:   tags,
	})
	if err != nil {
		return nil, err
	}

	// One NAT gateway keeps costs down; all private subnets route via it.
	natGw, err := ec2.NewNatGateway(ctx, prefix+"-nat", &ec2.NatGatewayArgs{
		AllocationId: eip.ID(),
		SubnetId:     publicSubnets[0].ID(),
		Tags:         tags,
	})
	if err != nil {
		return nil, err
	}

	publicRT, err := ec2.NewRouteTable(ctx, prefix+"-rtb-public", &ec2.RouteTableArgs{
		VpcId: vpc.ID(),
		Routes: ec2.RouteTableRouteArray{
			&ec2.RouteTableRouteArgs{
				CidrBlock: pulumi.String("0.0.0.0/0"),
				GatewayId: igw.ID(),
			},
		},
		Tags: tags,
	})
	if err != nil {
		return nil, err
	}
	privateRT, err := ec2.NewRouteTable(ctx, prefix+"-rtb-private", &ec2.RouteTableArgs{
		VpcId: vpc.ID(),
		Routes: ec2.RouteTableRouteArray{
			&ec2.RouteTableRouteArgs{
				CidrBlock:    pulumi.String("0.0.0.0/0"),
				NatGatewayId: natGw.ID(),
			},
		},
		Tags: tags,
	})
	if err != nil {
		return nil, err
	}

	for i, s := range publicSubnets {
		if _, err := ec2.NewRouteTableAssociation(ctx, fmt.Sprintf("%s-rtba-pub-%d", prefix, i+1), &ec2.RouteTableAssociationArgs{
			SubnetId:     s.ID(),
			RouteTableId: publicRT.ID(),
		}); err != nil {
			return nil, err
		}
		net.PublicSubnetIDs = append(net.PublicSubnetIDs, s.ID())
	}
	for i, s := range privateSubnets {
		if _, err := ec2.NewRouteTableAssociation(ctx, fmt.Sprintf("%s-rtba-priv-%d", prefix, i+1), &ec2.RouteTableAssociationArgs{
			SubnetId:     s.ID(),
			RouteTableId: privateRT.ID(),
		}); err != nil {
			return nil, err
		}
		net.PrivateSubnetIDs = append(net.PrivateSubnetIDs, s.ID())
	}

	return net, nil
}

func mergeTags(base, extra map[string]string) map[string]string {
	m := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		m[k] = v
	}
	for k, v := range extra {
		m[k] = v
	}
	return m
}
