package accountRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicelink/database"
	"servicelink/models"
	"servicelink/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// accountDocument flattens the lookup keys next to the profile variant.
type accountDocument struct {
	ID        string                `bson:"id"`
	Role      models.Role           `bson:"role"`
	Phone     string                `bson:"phone,omitempty"`
	Email     string                `bson:"email,omitempty"`
	Client    *models.ClientProfile `bson:"client,omitempty"`
	Worker    *models.WorkerProfile `bson:"worker,omitempty"`
	UpdatedAt time.Time             `bson:"updatedAt"`
}

func toDocument(a models.Account) accountDocument {
	base := a.Base()
	return accountDocument{
		ID:        base.ID,
		Role:      a.Role(),
		Phone:     base.Phone,
		Email:     base.Email,
		Client:    a.Client,
		Worker:    a.Worker,
		UpdatedAt: time.Now(),
	}
}

func (d accountDocument) account() *models.Account {
	return &models.Account{Client: d.Client, Worker: d.Worker}
}

// MongoAccountRepo implements AccountRepository using MongoDB.
type MongoAccountRepo struct {
	coll *mongo.Collection
}

func NewMongoAccountRepo() *MongoAccountRepo {
	repo := &MongoAccountRepo{coll: database.Collection("accounts")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create account indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoAccountRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "phone", Value: 1}}},
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "email", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoAccountRepo) findOne(ctx context.Context, filter bson.M) (*models.Account, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var doc accountDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, err
	}
	return doc.account(), nil
}

func (r *MongoAccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	a, err := r.findOne(ctx, bson.M{"id": id})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFoundError("account", id)
		}
		return nil, fmt.Errorf("failed to fetch account with id %s: %w", id, err)
	}
	return a, nil
}

func (r *MongoAccountRepo) FindByContact(ctx context.Context, role models.Role, phone, email string) (*models.Account, error) {
	var or bson.A
	if phone != "" {
		or = append(or, bson.M{"phone": phone})
	}
	if email != "" {
		or = append(or, bson.M{"email": email})
	}
	if len(or) == 0 {
		return nil, utils.NewValidationError("phone or email is required", "phone", "email")
	}
	a, err := r.findOne(ctx, bson.M{"role": role, "$or": or})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFoundError("account", contactKey(phone, email))
		}
		return nil, fmt.Errorf("failed to fetch account by contact: %w", err)
	}
	return a, nil
}

func (r *MongoAccountRepo) Create(ctx context.Context, account models.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, toDocument(account)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.NewStateError("account %s already exists", account.ID())
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *MongoAccountRepo) Update(ctx context.Context, account models.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	// Role is part of the filter so a variant swap never matches.
	filter := bson.M{"id": account.ID(), "role": account.Role()}
	result, err := r.coll.ReplaceOne(ctx, filter, toDocument(account))
	if err != nil {
		return fmt.Errorf("failed to update account with id %s: %w", account.ID(), err)
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError("account", account.ID())
	}
	return nil
}
