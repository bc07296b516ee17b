package api

import "context"

// SendChat relays a chat message. The chat service lives on the payment host.
func (c *Client) SendChat(ctx context.Context, message string) (string, error) {
	if err := required(message, "Message"); err != nil {
		return "", err
	}
	var out struct {
		Reply string `json:"reply"`
	}
	body := map[string]string{"message": message}
	if err := c.do(ctx, call{op: "Chat", method: "POST", path: "/api/chat", body: body, payment: true}, &out); err != nil {
		return "", err
	}
	return out.Reply, nil
}
