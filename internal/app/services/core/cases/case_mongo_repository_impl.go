package cases

import (
	"context"
	"time"

	"preauth-service/internal/app/contracts"
	"preauth-service/internal/app/models"
	"preauth-service/internal/pkg/constvars"
	"preauth-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type CaseMongoRepository struct {
	Collection *mongo.Collection
}

func NewCaseMongoRepository(db *mongo.Client, dbName string) contracts.CaseRepository {
	return &CaseMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionCases),
	}
}

func (r *CaseMongoRepository) CreateCase(ctx context.Context, caseModel *models.Case) error {
	_, err := r.Collection.InsertOne(ctx, caseModel)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *CaseMongoRepository) FindByID(ctx context.Context, caseID string) (*models.Case, error) {
	var caseModel models.Case
	err := r.Collection.FindOne(ctx, bson.M{"_id": caseID}).Decode(&caseModel)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &caseModel, nil
}

func (r *CaseMongoRepository) FindByPatientID(ctx context.Context, patientID string) ([]models.Case, error) {
	return r.findAll(ctx, bson.M{"patientId": patientID})
}

func (r *CaseMongoRepository) FindByStatus(ctx context.Context, status models.CaseStatus) ([]models.Case, error) {
	return r.findAll(ctx, bson.M{"status": status})
}

func (r *CaseMongoRepository) findAll(ctx context.Context, filter bson.M) ([]models.Case, error) {
	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	caseModels := make([]models.Case, 0)
	if err := cursor.All(ctx, &caseModels); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return caseModels, nil
}

// UpdateIfStatus re-reads the case, applies mutate in memory and replaces the
// stored document conditioned on the status still being expected. A racing
// writer that moved the status first makes the replace match nothing, which
// surfaces as a concurrent-update conflict instead of a silent overwrite.
func (r *CaseMongoRepository) UpdateIfStatus(ctx context.Context, caseID string, expected models.CaseStatus, mutate func(*models.Case)) (*models.Case, error) {
	caseModel, err := r.FindByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if caseModel == nil {
		return nil, exceptions.ErrCaseNotFound(mongo.ErrNoDocuments)
	}
	if caseModel.Status != expected {
		return nil, exceptions.ErrCaseConcurrentUpdate(nil)
	}

	mutate(caseModel)
	caseModel.UpdatedAt = time.Now().UTC()

	filter := bson.M{"_id": caseID, "status": expected}
	result, err := r.Collection.ReplaceOne(ctx, filter, caseModel)
	if err != nil {
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return nil, exceptions.ErrCaseConcurrentUpdate(nil)
	}
	return caseModel, nil
}
