package repositories

import (
	"context"

	"github.com/sommystore/storefront/pkg/http"
)

// SubscriberRepository wraps the backend's newsletter endpoint.
type SubscriberRepository struct {
	base string
}

func NewSubscriberRepository() *SubscriberRepository {
	return &SubscriberRepository{base: baseURL()}
}

// Available reports whether a backend is configured.
func (r *SubscriberRepository) Available() bool {
	return r.base != ""
}

// Subscribe registers an email with the mailing list.
func (r *SubscriberRepository) Subscribe(ctx context.Context, email string) error {
	resp, err := http.Post(r.base+"/api/subscribe").
		WithContext(ctx).
		Body(map[string]string{"email": email}).
		Send()
	if err != nil {
		return err
	}
	if !resp.OK() {
		return apiError(resp, "Failed to subscribe")
	}
	return nil
}
