package memory

import (
	"context"
	"time"

	"github.com/adscreener/adscreener/models"
	"github.com/adscreener/adscreener/store"
)

func (r *UserRepository) Create(_ context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if user.ID == "" {
		user.ID = nextIDString("u", &r.nextID)
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	r.records = append(r.records, user)
	return user, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range r.records {
		if record.Email == email {
			return record, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range r.records {
		if record.ID == id {
			return record, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (r *UserRepository) Update(_ context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].ID == user.ID {
			r.records[i].Name = user.Name
			r.records[i].Email = user.Email
			r.records[i].UpdatedAt = time.Now().UTC()
			return r.records[i], nil
		}
	}
	return models.User{}, store.ErrNotFound
}
