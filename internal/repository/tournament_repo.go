package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Unknownlegend09/ff-tournament/internal/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type TournamentRepository interface {
	Create(ctx context.Context, t *models.Tournament) error
	FindByID(ctx context.Context, id string) (*models.Tournament, error)
	FindAll(ctx context.Context) ([]models.Tournament, error)
}

type mongoTournamentRepo struct {
	col *mongo.Collection
}

func NewMongoTournamentRepo(db *mongo.Database) TournamentRepository {
	return &mongoTournamentRepo{col: db.Collection("tournaments")}
}

func (r *mongoTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	_, err := r.col.InsertOne(ctx, t)
	return err
}

func (r *mongoTournamentRepo) FindByID(ctx context.Context, id string) (*models.Tournament, error) {
	var t models.Tournament
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, ErrTournamentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *mongoTournamentRepo) FindAll(ctx context.Context) ([]models.Tournament, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tournaments := []models.Tournament{}
	if err := cur.All(ctx, &tournaments); err != nil {
		return nil, err
	}
	return tournaments, nil
}
