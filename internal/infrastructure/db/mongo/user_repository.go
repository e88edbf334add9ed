package mongo

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fintrust/auth-service/internal/core/domain"
)

const (
	usersCollection = "users"

	uniqueEmailIndex      = "uniq_email"
	uniqueIDDocumentIndex = "uniq_id_document"
)

// UserRepository is the MongoDB-backed identity store for users.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type userDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	FirstName   string             `bson:"first_name"`
	LastName    string             `bson:"last_name"`
	Email       string             `bson:"email"`
	IDDocument  string             `bson:"id_document"`
	PhoneNumber string             `bson:"phone_number"`
	RoleID      string             `bson:"id_role"`
	BaseSalary  float64            `bson:"base_salary"`
	Password    string             `bson:"password"`
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:          d.ID.Hex(),
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Email:       d.Email,
		IDDocument:  d.IDDocument,
		PhoneNumber: d.PhoneNumber,
		RoleID:      d.RoleID,
		BaseSalary:  d.BaseSalary,
		Password:    d.Password,
	}
}

// Save inserts user and returns it with the generated id. A unique-index
// violation (the race the application-level checks cannot close without a
// transaction) is mapped back to the matching domain conflict error.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := userDoc{
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		IDDocument:  user.IDDocument,
		PhoneNumber: user.PhoneNumber,
		RoleID:      user.RoleID,
		BaseSalary:  user.BaseSalary,
		Password:    user.Password,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateKeyToDomain(err)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	saved := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		saved.ID = oid.Hex()
	}
	return &saved, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, fmt.Errorf("count users by email: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) ExistsByIDDocument(ctx context.Context, idDocument string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"id_document": idDocument})
	if err != nil {
		return false, fmt.Errorf("count users by id document: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByIDDocument(ctx context.Context, idDocument string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"id_document": idDocument})
}

// FindByIDs returns the users whose ids appear in ids. Malformed ids are
// treated as absent rather than failing the whole batch.
func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return nil, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find users by ids: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, *docs[i].toDomain())
	}
	return users, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrEntityNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// duplicateKeyToDomain picks the conflict error matching the violated index.
func duplicateKeyToDomain(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, uniqueEmailIndex):
		return domain.ErrEmailAlreadyExists
	case strings.Contains(msg, uniqueIDDocumentIndex):
		return domain.ErrIDDocumentAlreadyExists
	default:
		return domain.ErrEmailAlreadyExists
	}
}
