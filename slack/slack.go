package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"macromentor/nutrition"
)

type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client posts messages to a Slack incoming webhook.
type Client struct {
	webhookURL string
	httpClient doer
}

func NewClient(webhookURL string, httpClient doer) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: httpClient,
	}
}

func (c *Client) PostMessage(ctx context.Context, channel string, message string) error {
	payload, err := json.Marshal(map[string]any{
		"channel": channel,
		"text":    message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to post message: %s", resp.Status)
	}

	return nil
}

// FormatPlan renders a result as Slack mrkdwn text.
func FormatPlan(res nutrition.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Daily target:* %d kcal, %d g protein, %d g carbs, %d g fats\n",
		res.DailyCalories, res.Macros.ProteinGrams, res.Macros.CarbGrams, res.Macros.FatGrams)

	if len(res.Plan.Items) == 0 {
		b.WriteString("_No plan could be generated with current foods._\n")
	}
	for _, item := range res.Plan.Items {
		fmt.Fprintf(&b, "• %s × %.2f: %.0f kcal, %.1f g protein\n", item.Food, item.Servings, item.Calories, item.Protein)
	}

	fmt.Fprintf(&b, "*Totals:* %d kcal · %d g protein", res.Plan.TotalCalories, res.Plan.TotalProtein)
	if res.Plan.Note != "" {
		fmt.Fprintf(&b, "\n:warning: %s", res.Plan.Note)
	}
	for _, insight := range res.Insights {
		fmt.Fprintf(&b, "\n> %s", insight)
	}
	return b.String()
}
