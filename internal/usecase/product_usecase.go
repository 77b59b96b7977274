package usecase

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"biobag/internal/domain/model"
	repo "biobag/internal/repository"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	tx        repo.TransactionManager
	products  repo.ProductRepository
	validator ProductValidator
	idGen     IDGenerator
	clock     Clock
}

// DI
func NewProductUsecase(
	tx repo.TransactionManager,
	products repo.ProductRepository,
	validator ProductValidator,
	idGen IDGenerator,
	clock Clock,
) *ProductUsecase {
	return &ProductUsecase{
		tx:        tx,
		products:  products,
		validator: validator,
		idGen:     idGen,
		clock:     clock,
	}
}

type ProductSizeInput struct {
	Size     string
	Micron   int
	Capacity string
	PcsPerKg int
}

// 作成・更新共通。更新時Sizesがnilなら既存のサイズを残す
type ProductInput struct {
	Name        string
	Description string
	Category    string
	Image       string
	PricePerKg  decimal.Decimal
	Features    []string
	IsActive    *bool
	Sizes       []ProductSizeInput
}

// サイズが無い商品は個別見積（custom_pricing）
type ProductOutput struct {
	model.Product
	CustomPricing bool `json:"custom_pricing"`
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Category string
	Q        string
}

type AdminListProductsInput struct {
	Category string
	Q        string
	Active   *bool
}

func NormalizeProductInput(in ProductInput) ProductInput {
	out := in
	out.Name = strings.TrimSpace(in.Name)
	out.Description = strings.TrimSpace(in.Description)
	out.Category = strings.ToLower(strings.TrimSpace(in.Category))
	if out.Category == "" {
		out.Category = string(model.CategoryCustom)
	}
	out.Image = strings.TrimSpace(in.Image)

	if in.Features != nil {
		out.Features = make([]string, 0, len(in.Features))
		for _, f := range in.Features {
			if f = strings.TrimSpace(f); f != "" {
				out.Features = append(out.Features, f)
			}
		}
	}
	if in.Sizes != nil {
		out.Sizes = make([]ProductSizeInput, 0, len(in.Sizes))
		for _, s := range in.Sizes {
			s.Size = strings.TrimSpace(s.Size)
			s.Capacity = strings.TrimSpace(s.Capacity)
			out.Sizes = append(out.Sizes, s)
		}
	}
	return out
}

func (u *ProductUsecase) ListPublicProducts(ctx context.Context, in ListProductsInput) ([]ProductOutput, error) {
	q, err := checkListQuery(in.Category, in.Q)
	if err != nil {
		return []ProductOutput{}, err
	}
	q.ActiveOnly = true

	items, err := u.products.List(ctx, q)
	if err != nil {
		return []ProductOutput{}, WrapHTTPError(http.StatusInternalServerError, "db error", err)
	}
	return toProductOutputs(items), nil
}

// 非公開・存在しない商品は404
func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID string) (ProductOutput, error) {
	p, err := u.findProduct(ctx, u.products, productID)
	if err != nil {
		return ProductOutput{}, err
	}
	if !p.IsActive {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return ToProductOutput(p), nil
}

func (u *ProductUsecase) ListAdminProducts(ctx context.Context, in AdminListProductsInput) ([]ProductOutput, error) {
	q, err := checkListQuery(in.Category, in.Q)
	if err != nil {
		return []ProductOutput{}, err
	}
	q.Active = in.Active

	items, err := u.products.List(ctx, q)
	if err != nil {
		return []ProductOutput{}, WrapHTTPError(http.StatusInternalServerError, "db error", err)
	}
	return toProductOutputs(items), nil
}

func (u *ProductUsecase) AdminGetProduct(ctx context.Context, productID string) (ProductOutput, error) {
	p, err := u.findProduct(ctx, u.products, productID)
	if err != nil {
		return ProductOutput{}, err
	}
	return ToProductOutput(p), nil
}

func (u *ProductUsecase) AdminCreateProduct(ctx context.Context, adminUserID string, in ProductInput) (ProductOutput, error) {
	if adminUserID == "" {
		return ProductOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	in = NormalizeProductInput(in)
	if err := u.validator.ValidateProduct(in); err != nil {
		return ProductOutput{}, err
	}

	var out ProductOutput

	//商品とサイズは同じTxで入れる
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		now := u.clock.Now()
		active := true
		if in.IsActive != nil {
			active = *in.IsActive
		}

		p, err := r.Products().Create(ctx, model.Product{
			ID:          u.idGen.NewID(),
			Name:        in.Name,
			Description: in.Description,
			Category:    model.ProductCategory(in.Category),
			Image:       in.Image,
			PricePerKg:  in.PricePerKg,
			Features:    pq.StringArray(nonNilStrings(in.Features)),
			IsActive:    active,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return WrapHTTPError(http.StatusInternalServerError, "db error", err)
		}

		sizes := buildProductSizes(in.Sizes, now, u.idGen)
		if len(sizes) > 0 {
			if err := r.ProductSizes().CreateBulk(ctx, p.ID, sizes); err != nil {
				return WrapHTTPError(http.StatusInternalServerError, "db error", err)
			}
		}
		p.Sizes = sizes

		out = ToProductOutput(p)
		return nil
	})
	if err != nil {
		return ProductOutput{}, err
	}
	return out, nil
}

// サイズは送られたときだけ丸ごと入れ替える
func (u *ProductUsecase) AdminUpdateProduct(ctx context.Context, adminUserID string, productID string, in ProductInput) (ProductOutput, error) {
	if adminUserID == "" {
		return ProductOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(productID) == "" {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	in = NormalizeProductInput(in)
	if err := u.validator.ValidateProduct(in); err != nil {
		return ProductOutput{}, err
	}

	var out ProductOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		current, err := u.findProduct(ctx, r.Products(), productID)
		if err != nil {
			return err
		}

		active := current.IsActive
		if in.IsActive != nil {
			active = *in.IsActive
		}
		features := current.Features
		if in.Features != nil {
			features = pq.StringArray(in.Features)
		}

		err = r.Products().Update(ctx, model.Product{
			ID:          productID,
			Name:        in.Name,
			Description: in.Description,
			Category:    model.ProductCategory(in.Category),
			Image:       in.Image,
			PricePerKg:  in.PricePerKg,
			Features:    features,
			IsActive:    active,
		})
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return WrapHTTPError(http.StatusInternalServerError, "db error", err)
		}

		if in.Sizes != nil {
			if err := r.ProductSizes().DeleteByProductID(ctx, productID); err != nil {
				return WrapHTTPError(http.StatusInternalServerError, "db error", err)
			}
			sizes := buildProductSizes(in.Sizes, u.clock.Now(), u.idGen)
			if len(sizes) > 0 {
				if err := r.ProductSizes().CreateBulk(ctx, productID, sizes); err != nil {
					return WrapHTTPError(http.StatusInternalServerError, "db error", err)
				}
			}
		}

		updated, err := u.findProduct(ctx, r.Products(), productID)
		if err != nil {
			return err
		}
		out = ToProductOutput(updated)
		return nil
	})
	if err != nil {
		return ProductOutput{}, err
	}
	return out, nil
}

// 物理削除。サイズも同じTxで消す
func (u *ProductUsecase) AdminDeleteProduct(ctx context.Context, adminUserID string, productID string) error {
	if adminUserID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(productID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := u.findProduct(ctx, r.Products(), productID)
		if err != nil {
			return err
		}

		if err := r.ProductSizes().DeleteByProductID(ctx, productID); err != nil {
			return WrapHTTPError(http.StatusInternalServerError, "db error", err)
		}
		err = r.Products().Delete(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return WrapHTTPError(http.StatusInternalServerError, "db error", err)
		}

		//監査ログ（DELETE_PRODUCT）
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  adminUserID,
			Action:       model.AuditActionDeleteProduct,
			ResourceType: model.AuditResourceProduct,
			ResourceID:   productID,
			BeforeJSON:   auditJSON(map[string]string{"name": p.Name, "category": string(p.Category)}),
			AfterJSON:    "{}",
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return WrapHTTPError(http.StatusInternalServerError, "db error", err)
		}
		return nil
	})
}

// 公開/非公開の切替。2回呼ぶと元に戻る
func (u *ProductUsecase) AdminToggleActive(ctx context.Context, adminUserID string, productID string) (ProductOutput, error) {
	if adminUserID == "" {
		return ProductOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(productID) == "" {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var out ProductOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := u.findProduct(ctx, r.Products(), productID)
		if err != nil {
			return err
		}

		next := !p.IsActive
		err = r.Products().SetActive(ctx, productID, next)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return WrapHTTPError(http.StatusInternalServerError, "db error", err)
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  adminUserID,
			Action:       model.AuditActionToggleProduct,
			ResourceType: model.AuditResourceProduct,
			ResourceID:   productID,
			BeforeJSON:   auditJSON(map[string]string{"is_active": strconv.FormatBool(p.IsActive)}),
			AfterJSON:    auditJSON(map[string]string{"is_active": strconv.FormatBool(next)}),
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return WrapHTTPError(http.StatusInternalServerError, "db error", err)
		}

		p.IsActive = next
		out = ToProductOutput(p)
		return nil
	})
	if err != nil {
		return ProductOutput{}, err
	}
	return out, nil
}

func (u *ProductUsecase) findProduct(ctx context.Context, products repo.ProductRepository, productID string) (model.Product, error) {
	if err := checkRowID(productID, "invalid product id"); err != nil {
		return model.Product{}, err
	}
	p, err := products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, WrapHTTPError(http.StatusInternalServerError, "db error", err)
	}
	return p, nil
}

func checkListQuery(category string, q string) (repo.ProductListQuery, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category != "" && !model.ProductCategory(category).Valid() {
		return repo.ProductListQuery{}, NewHTTPError(http.StatusBadRequest, "invalid category")
	}
	q = strings.TrimSpace(q)
	if len(q) > 100 {
		return repo.ProductListQuery{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}
	return repo.ProductListQuery{Category: category, Q: q}, nil
}

// 送られた順をPositionで保持する
func buildProductSizes(in []ProductSizeInput, now time.Time, idGen IDGenerator) []model.ProductSize {
	out := make([]model.ProductSize, 0, len(in))
	for i, s := range in {
		out = append(out, model.ProductSize{
			ID:        idGen.NewID(),
			Size:      s.Size,
			Micron:    s.Micron,
			Capacity:  s.Capacity,
			PcsPerKg:  s.PcsPerKg,
			Position:  i,
			CreatedAt: now,
		})
	}
	return out
}

// 画像未設定はプレースホルダ、nilの配列は空配列で返す
func ToProductOutput(p model.Product) ProductOutput {
	if p.Image == "" {
		p.Image = model.PlaceholderImage
	}
	if p.Features == nil {
		p.Features = pq.StringArray{}
	}
	if p.Sizes == nil {
		p.Sizes = []model.ProductSize{}
	}
	return ProductOutput{
		Product:       p,
		CustomPricing: len(p.Sizes) == 0,
	}
}

func toProductOutputs(items []model.Product) []ProductOutput {
	out := make([]ProductOutput, 0, len(items))
	for _, p := range items {
		out = append(out, ToProductOutput(p))
	}
	return out
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
