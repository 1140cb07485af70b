package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Unknownlegend09/ff-tournament/internal/models"
)

var ErrRegistrationNotFound = errors.New("registration not found")

type RegistrationRepository interface {
	Create(ctx context.Context, reg *models.Registration) error
	FindByID(ctx context.Context, id string) (*models.Registration, error)
	FindAll(ctx context.Context) ([]models.Registration, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Registration, error)
	UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus) (*models.Registration, error)
}

type mongoRegistrationRepo struct {
	col *mongo.Collection
}

func NewMongoRegistrationRepo(db *mongo.Database) RegistrationRepository {
	// no unique index on (tournament_id, user_id): duplicate registrations
	// are currently allowed and admins dedupe manually
	return &mongoRegistrationRepo{col: db.Collection("registrations")}
}

func (r *mongoRegistrationRepo) Create(ctx context.Context, reg *models.Registration) error {
	_, err := r.col.InsertOne(ctx, reg)
	return err
}

func (r *mongoRegistrationRepo) FindByID(ctx context.Context, id string) (*models.Registration, error) {
	var reg models.Registration
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&reg)
	if err == mongo.ErrNoDocuments {
		return nil, ErrRegistrationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *mongoRegistrationRepo) FindAll(ctx context.Context) ([]models.Registration, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoRegistrationRepo) FindByUserID(ctx context.Context, userID string) ([]models.Registration, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *mongoRegistrationRepo) find(ctx context.Context, filter bson.M) ([]models.Registration, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	regs := []models.Registration{}
	if err := cur.All(ctx, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *mongoRegistrationRepo) UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus) (*models.Registration, error) {
	var reg models.Registration
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&reg)
	if err == mongo.ErrNoDocuments {
		return nil, ErrRegistrationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}
