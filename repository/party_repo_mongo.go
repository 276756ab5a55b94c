package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"freightdesk/models"
)

type MongoPartyRepo struct {
	DB *mongo.Database
}

func NewMongoPartyRepo(db *mongo.Database) *MongoPartyRepo {
	return &MongoPartyRepo{DB: db}
}

func (r *MongoPartyRepo) CreateParty(party *models.Party) error {
	ctx := context.Background()

	if party.CreatedAt.IsZero() {
		party.CreatedAt = time.Now().UTC()
	}

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := r.DB.Collection("counters").FindOneAndUpdate(ctx,
		bson.M{"_id": "party"},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return err
	}
	party.ID = doc.Seq

	for i := range party.Addresses {
		party.Addresses[i].ID = int64(i + 1)
		party.Addresses[i].PartyID = party.ID
	}
	for i := range party.Contacts {
		party.Contacts[i].ID = int64(i + 1)
		party.Contacts[i].PartyID = party.ID
	}

	_, err = r.DB.Collection("party").InsertOne(ctx, party)
	return err
}

func (r *MongoPartyRepo) GetParties(filters map[string]interface{}, single bool) ([]*models.Party, error) {
	ctx := context.Background()

	filter := bson.M{}
	for k, v := range filters {
		if k == "id" {
			k = "_id"
		}
		filter[k] = v
	}

	opts := options.Find().SetSort(bson.M{"name": 1})
	if single {
		opts.SetLimit(1)
	}

	cursor, err := r.DB.Collection("party").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []*models.Party
	for cursor.Next(ctx) {
		var p models.Party
		if err := cursor.Decode(&p); err != nil {
			return nil, err
		}
		if p.Addresses == nil {
			p.Addresses = []models.PartyAddress{}
		}
		if p.Contacts == nil {
			p.Contacts = []models.PartyContact{}
		}
		result = append(result, &p)
	}
	return result, cursor.Err()
}
