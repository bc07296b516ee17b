// Package chat implements the support-chat widget: messages go to the chat
// endpoint when it is reachable, and fall back to a scripted keyword table
// when it is not.
package chat

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

type Message struct {
	Text   string
	Sender Sender
}

// Greeting opens every conversation.
const Greeting = "Hello! Welcome to GreenRoots! How can I help you today?"

// QuickActions are the canned prompts offered next to the input.
var QuickActions = []string{
	"What products do you have?",
	"How much do they cost?",
	"How do I place an order?",
	"Tell me about delivery",
}

// Remote relays a message to the chat backend. *api.Client satisfies it.
type Remote interface {
	SendChat(ctx context.Context, message string) (string, error)
}

// Responder appends from command goroutines while the transcript renders,
// so the message log is mutex-guarded.
type Responder struct {
	remote Remote
	log    *zap.Logger

	mu       sync.RWMutex
	messages []Message
}

func NewResponder(remote Remote, log *zap.Logger) *Responder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Responder{
		remote:   remote,
		log:      log,
		messages: []Message{{Text: Greeting, Sender: SenderBot}},
	}
}

func (r *Responder) Messages() []Message {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Reply records the user's message and produces the bot's answer, preferring
// the backend and falling back to the script on any error.
func (r *Responder) Reply(ctx context.Context, message string) Message {
	r.mu.Lock()
	r.messages = append(r.messages, Message{Text: message, Sender: SenderUser})
	r.mu.Unlock()

	text := ""
	if r.remote != nil {
		reply, err := r.remote.SendChat(ctx, message)
		if err != nil {
			r.log.Debug("chat backend unavailable, using script", zap.Error(err))
		} else {
			text = reply
		}
	}
	if text == "" {
		text = Scripted(message)
	}

	bot := Message{Text: text, Sender: SenderBot}
	r.mu.Lock()
	r.messages = append(r.messages, bot)
	r.mu.Unlock()
	return bot
}

type rule struct {
	keywords []string
	reply    string
}

var script = []rule{
	{
		keywords: []string{"product", "what do you have"},
		reply:    "We offer biogas systems and organic fertilizers for homes and farms. Browse the shop for plant sizes, stoves, and soil-ready compost!",
	},
	{
		keywords: []string{"price", "cost", "how much"},
		reply:    "Our products range from Rs.100 to Rs.50000 depending on type and capacity. There are affordable options for every budget!",
	},
	{
		keywords: []string{"order", "buy", "purchase"},
		reply:    "Ordering is easy! Browse the products, add items to your cart, and proceed to checkout. We accept cash on delivery and card payments.",
	},
	{
		keywords: []string{"shipping", "delivery"},
		reply:    "We deliver across India! Standard delivery takes 3-5 business days. Express delivery is available in major cities.",
	},
	{
		keywords: []string{"hello", "hi"},
		reply:    Greeting,
	},
}

const fallback = "Thank you for your question! For more specific information about our biogas and fertilizer products, please check the shop or contact customer support."

// Scripted answers from the keyword table. First matching rule wins.
func Scripted(message string) string {
	lower := strings.ToLower(message)
	for _, r := range script {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.reply
			}
		}
	}
	return fallback
}
