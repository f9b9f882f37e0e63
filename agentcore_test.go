package agentcore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacadeEcho(t *testing.T) {
	rt := New()
	require.NoError(t, rt.RegisterFactory("echo", func(ctx context.Context, id ID, h Handle) (Agent, error) {
		return NewFuncAgent(id, "echoes its input", func(ctx context.Context, payload any, mc MessageContext) (any, error) {
			return payload, nil
		}), nil
	}))

	ctx := context.Background()
	require.NoError(t, rt.Start(ctx))
	defer rt.Stop(ctx)

	c, err := rt.Send(ctx, "ping", ID{Type: "echo", Key: "e1"})
	require.NoError(t, err)
	result, err := c.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ping", result)
}

func TestNewFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agentcore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
subscriptions:
  - topic_type: events
    agent_type: worker
`), 0o600))

	rt, err := NewFromConfig(path)
	require.NoError(t, err)

	got := make(chan any, 1)
	require.NoError(t, rt.RegisterFactory("worker", func(ctx context.Context, id ID, h Handle) (Agent, error) {
		return NewFuncAgent(id, "collects events", func(ctx context.Context, payload any, mc MessageContext) (any, error) {
			got <- payload
			return nil, nil
		}), nil
	}))

	ctx := context.Background()
	require.NoError(t, rt.Start(ctx))
	defer rt.Stop(ctx)

	c, err := rt.Publish(ctx, "hello", TopicID{Type: "events", Source: "s1"})
	require.NoError(t, err)
	_, err = c.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello", <-got)
}

func TestNewFromConfigMissingFile(t *testing.T) {
	_, err := NewFromConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
