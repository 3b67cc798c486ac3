package memory

import (
	"context"
	"time"

	"github.com/adscreener/adscreener/models"
	"github.com/adscreener/adscreener/store"
)

func (r *AdRepository) Create(_ context.Context, ad models.Ad) (models.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if ad.ID == "" {
		ad.ID = nextIDString("ad", &r.nextID)
	}
	if ad.Status == "" {
		ad.Status = models.AdStatusPending
	}
	ad.CreatedAt = now
	ad.UpdatedAt = now
	r.records = append(r.records, ad)
	return ad, nil
}

func (r *AdRepository) GetByID(_ context.Context, id string) (models.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range r.records {
		if record.ID == id {
			return record, nil
		}
	}
	return models.Ad{}, store.ErrNotFound
}

func (r *AdRepository) ListAll(_ context.Context) ([]models.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]models.Ad, 0, len(r.records))
	for i := len(r.records) - 1; i >= 0; i-- {
		result = append(result, r.records[i])
	}
	return result, nil
}

func (r *AdRepository) ListBySubmitter(_ context.Context, submitterID string) ([]models.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []models.Ad{}
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].SubmitterID == submitterID {
			result = append(result, r.records[i])
		}
	}
	return result, nil
}

func (r *AdRepository) UpdateReview(_ context.Context, id, status, note, reviewerID string) (models.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].ID == id {
			r.records[i].Status = status
			r.records[i].ReviewNote = note
			r.records[i].ReviewerID = reviewerID
			r.records[i].UpdatedAt = time.Now().UTC()
			return r.records[i], nil
		}
	}
	return models.Ad{}, store.ErrNotFound
}
