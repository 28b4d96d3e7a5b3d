package notifier

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"inventory-service/data"
)

// Notifier pushes a read-only booking snapshot to the notification
// collaborator after a successful reservation. Delivery failures are
// logged and never roll back the reservation.
type Notifier struct {
	url            string
	logger         *logrus.Logger
	CircuitBreaker *gobreaker.CircuitBreaker
}

func New(url string, logger *logrus.Logger) *Notifier {
	circuitBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "HTTPSRequest",
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{"path": "notifier"}).
				Infof("Circuit Breaker state changed from %s to %s", from, to)
		},
	})

	return &Notifier{
		url:            url,
		logger:         logger,
		CircuitBreaker: circuitBreaker,
	}
}

// BookingConfirmed delivers the snapshot. Safe to call from a goroutine;
// the breaker keeps a dead collaborator from stalling booking traffic.
func (n *Notifier) BookingConfirmed(ctx context.Context, snapshot *data.BookingSnapshot) {
	if n.url == "" {
		return
	}

	_, err := n.CircuitBreaker.Execute(func() (interface{}, error) {
		return nil, n.post(ctx, snapshot)
	})
	if err != nil {
		n.logger.WithFields(logrus.Fields{"path": "notifier"}).
			Errorf("Error notifying booking %s: %v", snapshot.ReservationID, err)
	}
}

func (n *Notifier) post(ctx context.Context, snapshot *data.BookingSnapshot) error {
	body, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}

	client := &http.Client{
		Transport: tr,
		Timeout:   10 * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("notification collaborator returned status %d", resp.StatusCode)
	}
	return nil
}
