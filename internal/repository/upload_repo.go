package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Unknownlegend09/ff-tournament/internal/models"
)

type UploadRepository interface {
	Insert(ctx context.Context, u *models.Upload) error
}

type mongoUploadRepo struct {
	col *mongo.Collection
}

func NewMongoUploadRepo(db *mongo.Database) UploadRepository {
	return &mongoUploadRepo{col: db.Collection("uploads")}
}

func (r *mongoUploadRepo) Insert(ctx context.Context, u *models.Upload) error {
	_, err := r.col.InsertOne(ctx, u)
	return err
}
