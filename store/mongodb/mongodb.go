package mongodb

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names
const (
	CollectionAds    = "ads"
	CollectionUsers  = "users"
	CollectionNotifs = "notifications"
)

type NotificationRepository struct {
	coll *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{coll: db.Collection(CollectionNotifs)}
}

type AdRepository struct {
	coll *mongo.Collection
}

func NewAdRepository(db *mongo.Database) *AdRepository {
	return &AdRepository{coll: db.Collection(CollectionAds)}
}

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(CollectionUsers)}
}
