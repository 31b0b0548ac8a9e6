package email

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultAPIURL is the Brevo v3 transactional email endpoint.
const DefaultAPIURL = "https://api.brevo.com/v3/smtp/email"

// APIChannel delivers through an HTTP email provider. It is the preferred
// channel because many hosts block outbound SMTP.
type APIChannel struct {
	apiKey     string
	fromEmail  string
	fromName   string
	url        string
	httpClient *http.Client
}

type APIOption func(*APIChannel)

func WithHTTPClient(c *http.Client) APIOption {
	return func(ch *APIChannel) {
		ch.httpClient = c
	}
}

func NewAPIChannel(apiKey, fromEmail, fromName, url string, opts ...APIOption) *APIChannel {
	if url == "" {
		url = DefaultAPIURL
	}
	ch := &APIChannel{
		apiKey:     apiKey,
		fromEmail:  fromEmail,
		fromName:   fromName,
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(ch)
	}
	return ch
}

func (c *APIChannel) Name() string { return ChannelAPI }

// Configured returns true if an API key is set.
func (c *APIChannel) Configured() bool { return c.apiKey != "" }

type apiAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type apiAttachment struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type apiPayload struct {
	Sender      apiAddress      `json:"sender"`
	To          []apiAddress    `json:"to"`
	Subject     string          `json:"subject"`
	HTMLContent string          `json:"htmlContent"`
	Attachment  []apiAttachment `json:"attachment,omitempty"`
}

func (c *APIChannel) Send(m Message) error {
	payload := apiPayload{
		Sender:      apiAddress{Email: c.fromEmail, Name: c.fromName},
		To:          []apiAddress{{Email: m.To, Name: m.ToName}},
		Subject:     m.Subject,
		HTMLContent: m.HTMLBody,
	}
	if len(m.Attachment) > 0 {
		payload.Attachment = []apiAttachment{{
			Name:    m.AttachmentName,
			Content: base64.StdEncoding.EncodeToString(m.Attachment),
		}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequest("POST", c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("provider rejected message: status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}

	return nil
}
