package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"freightdesk/models"
)

type MongoJobRepo struct {
	DB *mongo.Database
}

func NewMongoJobRepo(db *mongo.Database) *MongoJobRepo {
	return &MongoJobRepo{DB: db}
}

// nextID allocates a sequential int64 id from the counters collection so
// both backends expose the same id shape.
func (r *MongoJobRepo) nextID(ctx context.Context, name string) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := r.DB.Collection("counters").FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

// CreateJob stores the whole tree as one denormalized document.
func (r *MongoJobRepo) CreateJob(job *models.JobMaster) error {
	ctx := context.Background()

	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	job.Version = 1

	id, err := r.nextID(ctx, "job_master")
	if err != nil {
		return err
	}
	job.JobID = id
	numberChildren(job)

	_, err = r.DB.Collection("job_master").InsertOne(ctx, job)
	return err
}

// numberChildren assigns stable child ids within the document.
func numberChildren(job *models.JobMaster) {
	for i := range job.Containers {
		job.Containers[i].ID = int64(i + 1)
		job.Containers[i].JobID = job.JobID
	}
	for i := range job.Invoices {
		inv := &job.Invoices[i]
		inv.ID = int64(i + 1)
		inv.JobID = job.JobID
		for k := range inv.Items {
			inv.Items[k].ID = int64(k + 1)
			inv.Items[k].InvoiceID = inv.ID
		}
	}
}

// UpdateJob replaces the document if the stored version still matches.
func (r *MongoJobRepo) UpdateJob(job *models.JobMaster) error {
	ctx := context.Background()

	now := time.Now().UTC()
	current := job.Version
	job.Version = current + 1
	job.UpdatedAt = &now
	numberChildren(job)

	res, err := r.DB.Collection("job_master").
		ReplaceOne(ctx, bson.M{"_id": job.JobID, "version": current}, job)
	if err != nil {
		job.Version = current
		return err
	}
	if res.MatchedCount == 0 {
		job.Version = current
		return ErrVersionConflict
	}
	return nil
}

func (r *MongoJobRepo) GetJobs(filters map[string]interface{}, single bool) ([]*models.JobMaster, error) {
	ctx := context.Background()

	filter := bson.M{}
	for k, v := range filters {
		if k == "id" {
			k = "_id"
		}
		filter[k] = v
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	if single {
		opts.SetLimit(1)
	}

	cursor, err := r.DB.Collection("job_master").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []*models.JobMaster
	for cursor.Next(ctx) {
		var j models.JobMaster
		if err := cursor.Decode(&j); err != nil {
			return nil, err
		}
		if j.Containers == nil {
			j.Containers = []models.Container{}
		}
		if j.Invoices == nil {
			j.Invoices = []models.Invoice{}
		}
		result = append(result, &j)
	}
	return result, cursor.Err()
}

func (r *MongoJobRepo) DeleteJob(jobID int64) error {
	ctx := context.Background()
	res, err := r.DB.Collection("job_master").
		DeleteOne(ctx, bson.M{"_id": jobID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoJobRepo) UpdatePDFCreatedAt(jobID int64, t time.Time, path string) error {
	ctx := context.Background()
	_, err := r.DB.Collection("job_master").
		UpdateOne(ctx, bson.M{"_id": jobID}, bson.M{"$set": bson.M{"pdf_created_at": t, "pdf_path": path}})
	return err
}
