package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"boxoffice/entity"
)

// PaymentProviderClient talks to the external payment provider. The
// provider's internals are opaque; only the request/result contract is
// consumed here.
type PaymentProviderClient struct {
	baseURL string
	client  *http.Client
}

func NewPaymentProviderClient(baseURL string, client *http.Client) PaymentProviderClient {
	return PaymentProviderClient{
		baseURL: baseURL,
		client:  client,
	}
}

// RequestPayment runs one provider checkout. A returned error means the
// provider could not be reached at all; provider-level failures and
// customer cancellations come back inside the PaymentResult.
func (c PaymentProviderClient) RequestPayment(ctx context.Context, request entity.PaymentRequest) (entity.PaymentResult, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return entity.PaymentResult{}, fmt.Errorf("could not marshal payment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v2/payments", bytes.NewReader(payload))
	if err != nil {
		return entity.PaymentResult{}, fmt.Errorf("could not build payment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return entity.PaymentResult{}, fmt.Errorf("payment provider call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entity.PaymentResult{}, fmt.Errorf("unexpected status code from payment provider: %d", resp.StatusCode)
	}

	var result entity.PaymentResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return entity.PaymentResult{}, fmt.Errorf("could not decode payment result: %w", err)
	}

	return result, nil
}
