package naming

import (
	"fmt"
	"strings"

	utilvalidation "k8s.io/apimachinery/pkg/util/validation"
)

const (
	environmentNameMaxLength = 16
	serviceNameMaxLength     = 24
	bucketNameMaxLength      = 40 // leaves room for the environment/hash suffix within S3's 63
)

func validateDNS1123Label(name string, maximum int, labelKind string) error {
	if name == "" {
		return fmt.Errorf("%s name must not be empty", labelKind)
	}
	if len(name) > maximum {
		return fmt.Errorf("%s name exceeds %d characters", labelKind, maximum)
	}
	if errs := utilvalidation.IsDNS1123Label(name); len(errs) > 0 {
		return fmt.Errorf("invalid %s name: %s", labelKind, strings.Join(errs, ", "))
	}
	return nil
}

func ValidateEnvironmentName(name string) error {
	return validateDNS1123Label(name, environmentNameMaxLength, "environment")
}

func ValidateServiceName(name string) error {
	return validateDNS1123Label(name, serviceNameMaxLength, "service")
}

func ValidateBucketName(name string) error {
	return validateDNS1123Label(name, bucketNameMaxLength, "bucket")
}
