package network

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// resourceTags builds the standard tag set for a named network resource.
func resourceTags(project, name string, extra map[string]string) []ec2types.Tag {
	tags := []ec2types.Tag{
		{Key: aws.String("Name"), Value: aws.String(name)},
		{Key: aws.String("project"), Value: aws.String(project)},
	}
	for k, v := range extra {
		tags = append(tags, ec2types.Tag{Key: aws.String(k), Value: aws.String(v)})
	}
	return tags
}

func tagSpec(resourceType ec2types.ResourceType, tags []ec2types.Tag) []ec2types.TagSpecification {
	return []ec2types.TagSpecification{{
		ResourceType: resourceType,
		Tags:         tags,
	}}
}

func nameFilter(name string) []ec2types.Filter {
	return []ec2types.Filter{{
		Name:   aws.String("tag:Name"),
		Values: []string{name},
	}}
}
