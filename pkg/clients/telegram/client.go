package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ParseModeHTML tells Telegram to render <b>, <i> and friends in the text
const ParseModeHTML = "HTML"

// Client defines the interface for interacting with the Telegram Bot API
type Client interface {
	SendMessage(ctx context.Context, text string) error
}

type clientImpl struct {
	botToken   string
	chatID     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Telegram client that always posts to chatID
func NewClient(baseURL, botToken, chatID string, timeout time.Duration) Client {
	return &clientImpl{
		botToken:   botToken,
		chatID:     chatID,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

func (c *clientImpl) SendMessage(ctx context.Context, text string) error {
	sendURL := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.botToken)

	jsonPayload, err := json.Marshal(sendMessageRequest{
		ChatID:    c.chatID,
		Text:      text,
		ParseMode: ParseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		// the URL carries the bot token, keep it out of the error
		return errors.New("error creating request")
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending message: %w", redactToken(err, c.botToken))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	var response apiResponse
	parseErr := json.Unmarshal(body, &response)

	if resp.StatusCode < 200 || resp.StatusCode > 299 || parseErr != nil || !response.OK {
		description := response.Description
		if description == "" {
			description = "Unknown error"
		}
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, description)
	}

	return nil
}

// redactToken strips the bot token from transport errors, which embed the URL.
func redactToken(err error, token string) error {
	if token == "" || !strings.Contains(err.Error(), token) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), token, "<redacted>"))
}
