package eks

import (
	"errors"
	"fmt"
	"testing"

	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestIsAlreadyExists(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "typed IAM error",
			err:  &iamtypes.EntityAlreadyExistsException{},
			want: true,
		},
		{
			name: "wrapped typed IAM error",
			err:  fmt.Errorf("operation error IAM: CreateRole: %w", &iamtypes.EntityAlreadyExistsException{}),
			want: true,
		},
		{
			name: "API error code without the SDK type",
			err:  &smithy.GenericAPIError{Code: "EntityAlreadyExists", Message: "Role already exists"},
			want: true,
		},
		{
			name: "unrelated API error code",
			err:  &smithy.GenericAPIError{Code: "AccessDenied", Message: "not authorized"},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection refused"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isAlreadyExists(tt.err))
		})
	}
}
