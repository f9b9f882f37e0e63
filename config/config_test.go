package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentcore-dev/agentcore/agent"
	"github.com/agentcore-dev/agentcore/runtime"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agentcore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
runtime:
  deliver_to_self: true
  queue_capacity: 128
subscriptions:
  - topic_type: events
    agent_type: worker
  - topic_type_prefix: "task:"
    agent_type: runner
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Runtime.DeliverToSelf)
	assert.Equal(t, 128, cfg.Runtime.QueueCapacity)
	require.Len(t, cfg.Subscriptions, 2)
	assert.Equal(t, "events", cfg.Subscriptions[0].TopicType)
	assert.Equal(t, "worker", cfg.Subscriptions[0].AgentType)
	assert.Equal(t, "task:", cfg.Subscriptions[1].TopicTypePrefix)

	assert.Len(t, cfg.Options(), 2)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestParseInvalid(t *testing.T) {
	cases := map[string]string{
		"malformed yaml": `runtime: [`,
		"both topic fields": `
subscriptions:
  - topic_type: events
    topic_type_prefix: "ev"
    agent_type: worker
`,
		"neither topic field": `
subscriptions:
  - agent_type: worker
`,
		"missing agent type": `
subscriptions:
  - topic_type: events
`,
		"negative queue capacity": `
runtime:
  queue_capacity: -1
`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestApplyWiresSubscriptions(t *testing.T) {
	cfg, err := Parse([]byte(`
subscriptions:
  - topic_type: events
    agent_type: worker
`))
	require.NoError(t, err)

	rt := runtime.New(cfg.Options()...)
	require.NoError(t, cfg.Apply(rt))

	handled := make(chan any, 1)
	require.NoError(t, rt.RegisterFactory("worker", func(ctx context.Context, id agent.ID, h agent.Runtime) (agent.Agent, error) {
		return agent.NewFuncAgent(id, "config test worker", func(ctx context.Context, payload any, mc agent.MessageContext) (any, error) {
			handled <- payload
			return nil, nil
		}), nil
	}))

	ctx := context.Background()
	require.NoError(t, rt.Start(ctx))
	defer rt.Stop(ctx)

	c, err := rt.Publish(ctx, "hello", agent.TopicID{Type: "events", Source: "s1"})
	require.NoError(t, err)
	_, err = c.Wait(ctx)
	require.NoError(t, err)

	assert.Equal(t, "hello", <-handled)
}
