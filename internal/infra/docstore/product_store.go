package docstore

import (
	"context"
	"errors"
	"time"

	"biobag/internal/domain/model"
	repo "biobag/internal/repository"

	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type sizeDoc struct {
	ID       string `bson:"id"`
	Size     string `bson:"size"`
	Micron   int    `bson:"micron"`
	Capacity string `bson:"capacity"`
	PcsPerKg int    `bson:"pcs_per_kg"`
}

type productDoc struct {
	ID          primitive.ObjectID   `bson:"_id"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Category    string               `bson:"category"`
	Image       string               `bson:"image"`
	PricePerKg  primitive.Decimal128 `bson:"price_per_kg"`
	Features    []string             `bson:"features"`
	Sizes       []sizeDoc            `bson:"sizes"`
	IsActive    bool                 `bson:"is_active"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

type ProductStore struct {
	coll *mongo.Collection
}

var _ repo.ProductDocumentStore = (*ProductStore)(nil)

func NewProductStore(db *mongo.Database) *ProductStore {
	return &ProductStore{coll: db.Collection(productsCollection)}
}

func (s *ProductStore) List(ctx context.Context, activeOnly bool) ([]model.Product, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}

	cur, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return []model.Product{}, err
	}
	defer cur.Close(ctx)

	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return []model.Product{}, err
	}

	out := make([]model.Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (s *ProductStore) FindByID(ctx context.Context, id string) (model.Product, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}

	var d productDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return d.toModel(), nil
}

func (s *ProductStore) Insert(ctx context.Context, p model.Product) (model.Product, error) {
	d := newProductDoc(p)
	d.ID = primitive.NewObjectID()

	if _, err := s.coll.InsertOne(ctx, d); err != nil {
		return model.Product{}, err
	}
	return d.toModel(), nil
}

func (s *ProductStore) Replace(ctx context.Context, p model.Product) error {
	oid, ok := parseObjectID(p.ID)
	if !ok {
		return repo.ErrNotFound
	}
	d := newProductDoc(p)
	d.ID = oid

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": oid}, d)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, id string) (bool, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return false, nil
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func newProductDoc(p model.Product) productDoc {
	sizes := make([]sizeDoc, 0, len(p.Sizes))
	for _, sz := range p.Sizes {
		sizes = append(sizes, sizeDoc{
			ID:       sz.ID,
			Size:     sz.Size,
			Micron:   sz.Micron,
			Capacity: sz.Capacity,
			PcsPerKg: sz.PcsPerKg,
		})
	}
	features := []string(p.Features)
	if features == nil {
		features = []string{}
	}
	return productDoc{
		Name:        p.Name,
		Description: p.Description,
		Category:    string(p.Category),
		Image:       p.Image,
		PricePerKg:  toDecimal128(p.PricePerKg),
		Features:    features,
		Sizes:       sizes,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (d productDoc) toModel() model.Product {
	id := d.ID.Hex()
	sizes := make([]model.ProductSize, 0, len(d.Sizes))
	for i, sz := range d.Sizes {
		sizes = append(sizes, model.ProductSize{
			ID:        sz.ID,
			ProductID: id,
			Size:      sz.Size,
			Micron:    sz.Micron,
			Capacity:  sz.Capacity,
			PcsPerKg:  sz.PcsPerKg,
			Position:  i,
			CreatedAt: d.CreatedAt,
		})
	}
	return model.Product{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		Category:    model.ProductCategory(d.Category),
		Image:       d.Image,
		PricePerKg:  fromDecimal128(d.PricePerKg),
		Features:    pq.StringArray(d.Features),
		IsActive:    d.IsActive,
		Sizes:       sizes,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
