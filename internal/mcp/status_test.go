package mcp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusUnhealthy(t *testing.T) {
	status := Status{
		MCPServers: []ServerStatus{
			{Name: "filesystem", Status: "connected"},
			{Name: "flaky", Status: "failed"},
			{Name: "pending", Status: "connecting"},
		},
	}

	require.ElementsMatch(t, []string{"flaky", "pending"}, status.Unhealthy())
}

func TestStatusUnhealthy_AllConnected(t *testing.T) {
	status := Status{
		MCPServers: []ServerStatus{
			{Name: "filesystem", Status: "connected"},
		},
	}

	require.Empty(t, status.Unhealthy())
}
