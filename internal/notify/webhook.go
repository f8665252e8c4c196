package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/hance08/walletsync/internal/breaker"
	"github.com/hance08/walletsync/internal/model"
)

const webhookPath = "/api/transactions/add"

// WebhookSink posts deposit batches to the wallet API as a url-encoded form.
type WebhookSink struct {
	endpoint string
	apiKey   string
	client   *breaker.HTTPClient
}

func NewWebhookSink(endpoint, apiKey string, client *breaker.HTTPClient) *WebhookSink {
	if client == nil {
		client = breaker.NewHTTPClient("webhook", breaker.DefaultConfig(), nil)
	}
	return &WebhookSink{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		client:   client,
	}
}

func (w *WebhookSink) Name() string { return "webhook" }

func (w *WebhookSink) Send(ctx context.Context, batch model.DepositBatch) error {
	target := w.endpoint + webhookPath + "?api_key=" + url.QueryEscape(w.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(EncodeForm(batch)))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (w *WebhookSink) Close() error { return nil }

// EncodeForm renders the batch with bracketed keys, e.g.
// transactions[0][amount]=5000000.
func EncodeForm(batch model.DepositBatch) string {
	form := url.Values{}
	form.Set("currency", batch.Currency)
	for i, d := range batch.Transactions {
		prefix := "transactions[" + strconv.Itoa(i) + "]"
		form.Set(prefix+"[amount]", strconv.FormatInt(d.Amount, 10))
		form.Set(prefix+"[confirmations]", strconv.FormatInt(d.Confirmations, 10))
		form.Set(prefix+"[guid]", d.GUID)
		form.Set(prefix+"[address]", d.Address)
	}
	return form.Encode()
}
