package configs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ConsulService struct {
	ID      string            `json:"ID"`
	Name    string            `json:"Name"`
	Address string            `json:"Address"`
	Port    int               `json:"Port"`
	Check   map[string]string `json:"Check"`
}

// RegisterService registers the service with the local Consul agent.
func RegisterService(ctx context.Context, consulAddress string, service ConsulService) error {
	data, err := json.Marshal(service)
	if err != nil {
		return fmt.Errorf("failed to marshal service data: %w", err)
	}

	url := strings.TrimRight(consulAddress, "/") + "/v1/agent/service/register"
	return consulPut(ctx, url, data)
}

// DeregisterService removes a previously registered service id.
func DeregisterService(ctx context.Context, consulAddress, serviceID string) error {
	url := fmt.Sprintf("%s/v1/agent/service/deregister/%s", strings.TrimRight(consulAddress, "/"), serviceID)
	return consulPut(ctx, url, nil)
}

// NewConsulService builds the registration payload with an HTTP health check on /health.
func NewConsulService(name, address string, port int) ConsulService {
	return ConsulService{
		ID:      fmt.Sprintf("%s-%d", name, port),
		Name:    name,
		Address: address,
		Port:    port,
		Check: map[string]string{
			"HTTP":     fmt.Sprintf("http://%s:%d/health", address, port),
			"Interval": "10s",
		},
	}
}

func consulPut(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create PUT request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("consul request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("consul request failed: %s", resp.Status)
	}
	return nil
}
