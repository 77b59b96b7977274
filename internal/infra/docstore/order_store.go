package docstore

import (
	"context"
	"errors"
	"time"

	"biobag/internal/domain/model"
	repo "biobag/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderItemDoc struct {
	ID          string               `bson:"id"`
	ProductID   *string              `bson:"product_id,omitempty"`
	ProductName string               `bson:"product_name"`
	Size        string               `bson:"size"`
	Quantity    int64                `bson:"quantity"`
	PricePerKg  primitive.Decimal128 `bson:"price_per_kg"`
}

// 明細は埋め込み（1回のInsertOneで完結する）
type orderDoc struct {
	ID           primitive.ObjectID   `bson:"_id"`
	OrderNumber  string               `bson:"order_number"`
	CustomerName string               `bson:"customer_name"`
	Email        string               `bson:"email"`
	Phone        string               `bson:"phone"`
	Address      string               `bson:"address"`
	City         string               `bson:"city"`
	State        string               `bson:"state"`
	Pincode      string               `bson:"pincode"`
	TotalAmount  primitive.Decimal128 `bson:"total_amount"`
	Status       string               `bson:"status"`
	Notes        *string              `bson:"notes,omitempty"`
	Items        []orderItemDoc       `bson:"items"`
	CreatedAt    time.Time            `bson:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at"`
}

type OrderStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ repo.OrderDocumentStore = (*OrderStore)(nil)

func NewOrderStore(db *mongo.Database) *OrderStore {
	return &OrderStore{coll: db.Collection(ordersCollection), now: time.Now}
}

// 新しい順
func (s *OrderStore) List(ctx context.Context) ([]model.Order, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return []model.Order{}, err
	}
	defer cur.Close(ctx)

	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return []model.Order{}, err
	}

	out := make([]model.Order, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (s *OrderStore) FindByID(ctx context.Context, id string) (model.Order, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}

	var d orderDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return d.toModel(), nil
}

func (s *OrderStore) Insert(ctx context.Context, o model.Order) (model.Order, error) {
	d := newOrderDoc(o)
	d.ID = primitive.NewObjectID()

	if _, err := s.coll.InsertOne(ctx, d); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.Order{}, repo.ErrDuplicateOrderNumber
		}
		return model.Order{}, err
	}
	return d.toModel(), nil
}

func (s *OrderStore) UpdateFields(ctx context.Context, id string, status *model.OrderStatus, notes *string) error {
	oid, ok := parseObjectID(id)
	if !ok {
		return repo.ErrNotFound
	}

	set := bson.M{"updated_at": s.now()}
	if status != nil {
		set["status"] = string(*status)
	}
	if notes != nil {
		set["notes"] = *notes
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *OrderStore) Delete(ctx context.Context, id string) (bool, error) {
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

func newOrderDoc(o model.Order) orderDoc {
	items := make([]orderItemDoc, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemDoc{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Size:        it.Size,
			Quantity:    it.Quantity,
			PricePerKg:  toDecimal128(it.PricePerKg),
		})
	}
	return orderDoc{
		OrderNumber:  o.OrderNumber,
		CustomerName: o.CustomerName,
		Email:        o.Email,
		Phone:        o.Phone,
		Address:      o.Address,
		City:         o.City,
		State:        o.State,
		Pincode:      o.Pincode,
		TotalAmount:  toDecimal128(o.TotalAmount),
		Status:       string(o.Status),
		Notes:        o.Notes,
		Items:        items,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func (d orderDoc) toModel() model.Order {
	id := d.ID.Hex()
	items := make([]model.OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, model.OrderItem{
			ID:          it.ID,
			OrderID:     id,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Size:        it.Size,
			Quantity:    it.Quantity,
			PricePerKg:  fromDecimal128(it.PricePerKg),
			CreatedAt:   d.CreatedAt,
		})
	}
	return model.Order{
		ID:           id,
		OrderNumber:  d.OrderNumber,
		CustomerName: d.CustomerName,
		Email:        d.Email,
		Phone:        d.Phone,
		Address:      d.Address,
		City:         d.City,
		State:        d.State,
		Pincode:      d.Pincode,
		TotalAmount:  fromDecimal128(d.TotalAmount),
		Status:       model.OrderStatus(d.Status),
		Notes:        d.Notes,
		Items:        items,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
