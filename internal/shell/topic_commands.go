package shell

import (
	"context"
	"errors"
	"strings"

	"minkafka/pkg/logging"
)

// TopicCommand provisions a topic in the background. The outcome arrives
// as an alert.
type TopicCommand struct {
	sup   Supervisor
	out   *console
	spawn func(func())
}

func (c *TopicCommand) Execute(ctx context.Context, args []string) error {
	if !c.sup.Controls().CreateTopic {
		return errors.New("topic creation is already in progress")
	}
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	c.spawn(func() {
		if err := c.sup.CreateTopic(name); err != nil {
			logging.Debug("Shell", "Create topic %q: %v", name, err)
		}
	})
	return nil
}

func (c *TopicCommand) Usage() string                     { return "topic <name>" }
func (c *TopicCommand) Description() string               { return "Create a topic if it does not exist" }
func (c *TopicCommand) Completions(input string) []string { return nil }
func (c *TopicCommand) Aliases() []string                 { return []string{"create-topic"} }

// SendCommand publishes one message in the background. The outcome arrives
// as an alert.
type SendCommand struct {
	sup   Supervisor
	out   *console
	spawn func(func())
}

// Execute sends everything after the topic as the message content.
func (c *SendCommand) Execute(ctx context.Context, args []string) error {
	if !c.sup.Controls().Send {
		return errors.New("a send is already in progress")
	}
	topic, content := "", ""
	if len(args) > 0 {
		topic = args[0]
		content = strings.Join(args[1:], " ")
	}
	c.spawn(func() {
		res := c.sup.Send(context.Background(), topic, content)
		if res.Err != nil {
			logging.Debug("Shell", "Send to %q: %v", topic, res.Err)
		}
	})
	return nil
}

func (c *SendCommand) Usage() string                     { return "send <topic> <content...>" }
func (c *SendCommand) Description() string               { return "Publish a text message to a topic" }
func (c *SendCommand) Completions(input string) []string { return nil }
func (c *SendCommand) Aliases() []string                 { return []string{"publish"} }
