package azure_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kubesetctx/internal/services/azure"
)

func TestCredentialsArgs(t *testing.T) {
	base := []string{"aks", "get-credentials", "--resource-group", "R", "--name", "C", "-f", "P"}

	tests := []struct {
		name   string
		target azure.Target
		want   []string
	}{
		{
			name:   "user credentials",
			target: azure.Target{ResourceGroup: "R", ClusterName: "C"},
			want:   base,
		},
		{
			name:   "admin appended last",
			target: azure.Target{ResourceGroup: "R", ClusterName: "C", Admin: true},
			want:   append(append([]string{}, base...), "--admin"),
		},
		{
			name:   "subscription",
			target: azure.Target{ResourceGroup: "R", ClusterName: "C", Subscription: "S"},
			want:   append(append([]string{}, base...), "--subscription", "S"),
		},
		{
			name:   "subscription before admin",
			target: azure.Target{ResourceGroup: "R", ClusterName: "C", Subscription: "S", Admin: true},
			want:   append(append([]string{}, base...), "--subscription", "S", "--admin"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, azure.CredentialsArgs(tt.target, "P"))
		})
	}
}

func TestSetContextArgs(t *testing.T) {
	got := azure.SetContextArgs(azure.Target{
		ResourceGroup: "sample-rg",
		ClusterName:   "sample-cluster",
		Subscription:  "sub-x",
		Admin:         true,
	}, "/tmp/kubeconfig_1")

	assert.Equal(t, []string{
		"aks", "get-credentials",
		"--resource-group", "sample-rg",
		"--name", "sample-cluster",
		"-f", "/tmp/kubeconfig_1",
		"--overwrite-existing",
		"--context", "sample-cluster-admin",
		"--subscription", "sub-x",
		"--admin",
	}, got)
}

func TestContextName(t *testing.T) {
	assert.Equal(t, "c1", azure.ContextName(azure.Target{ClusterName: "c1"}))
	assert.Equal(t, "c1-admin", azure.ContextName(azure.Target{ClusterName: "c1", Admin: true}))
}
