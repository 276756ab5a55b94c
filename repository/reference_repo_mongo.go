package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"freightdesk/models"
)

type MongoReferenceRepo struct {
	DB *mongo.Database
}

func NewMongoReferenceRepo(db *mongo.Database) *MongoReferenceRepo {
	return &MongoReferenceRepo{DB: db}
}

func (r *MongoReferenceRepo) Options(kind string) ([]models.Option, error) {
	ctx := context.Background()

	if kind == models.RefParties {
		cursor, err := r.DB.Collection("party").
			Find(ctx, bson.M{"status": "active"}, options.Find().SetSort(bson.M{"name": 1}))
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		var result []models.Option
		for cursor.Next(ctx) {
			var p models.Party
			if err := cursor.Decode(&p); err != nil {
				return nil, err
			}
			result = append(result, models.Option{Value: p.ID, Label: p.Name})
		}
		return result, cursor.Err()
	}

	cursor, err := r.DB.Collection("reference_option").
		Find(ctx, bson.M{"kind": kind}, options.Find().SetSort(bson.M{"label": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []models.Option
	for cursor.Next(ctx) {
		var o models.Option
		if err := cursor.Decode(&o); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, cursor.Err()
}

func (r *MongoReferenceRepo) SaveCompanyProfile(profile *models.CompanyProfile) error {
	ctx := context.Background()

	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}
	if profile.ID == 0 {
		profile.ID = 1 // single profile document
	}

	_, err := r.DB.Collection("company_profile").
		ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile, options.Replace().SetUpsert(true))
	return err
}

func (r *MongoReferenceRepo) GetCompanyProfile() (*models.CompanyProfile, error) {
	ctx := context.Background()

	var profile models.CompanyProfile
	err := r.DB.Collection("company_profile").
		FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.M{"_id": -1})).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
