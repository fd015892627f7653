package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"handcrafted-haven/internal/catalog"
	"handcrafted-haven/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access.
// It also serves as the catalog Store.
type ProductRepository interface {
	catalog.Store
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	UpdateDescription(ctx context.Context, id, sellerID uuid.UUID, description string) error
	Delete(ctx context.Context, id, sellerID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindViewByID(ctx context.Context, id uuid.UUID) (*catalog.JoinedProductRow, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const joinedProductColumns = `
	p.id, p.seller_id, p.name, p.description, p.price::text, p.image, p.category,
	u.first_name, u.last_name, sp.user_id, sp.category
`

const joinedProductFrom = `
	FROM products p
	JOIN users u ON u.id = p.seller_id
	LEFT JOIN seller_profiles sp ON sp.user_id = p.seller_id
`

// Create inserts a new product into the database using parameterized queries
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, seller_id, name, description, price, image, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.SellerID,
		product.Name,
		product.Description,
		product.Price,
		product.Image,
		product.Category,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update replaces the editable fields of a product owned by product.SellerID
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $3, description = $4, price = $5, image = $6, category = $7, updated_at = $8
		WHERE id = $1 AND seller_id = $2
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.SellerID,
		product.Name,
		product.Description,
		product.Price,
		product.Image,
		product.Category,
		product.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	return expectOneRow(result, ErrProductNotFound)
}

// UpdateDescription changes only the description of a product owned by sellerID
func (r *productRepository) UpdateDescription(ctx context.Context, id, sellerID uuid.UUID, description string) error {
	query := `
		UPDATE products
		SET description = $3, updated_at = NOW()
		WHERE id = $1 AND seller_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, id, sellerID, description)
	if err != nil {
		return fmt.Errorf("failed to update product description: %w", err)
	}

	return expectOneRow(result, ErrProductNotFound)
}

// Delete removes a product owned by sellerID
func (r *productRepository) Delete(ctx context.Context, id, sellerID uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1 AND seller_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, sellerID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return expectOneRow(result, ErrProductNotFound)
}

// FindByID retrieves a product by ID using parameterized queries
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, seller_id, name, description, price::text, image, category, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var (
		product     domain.Product
		description sql.NullString
		image       sql.NullString
		category    sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.SellerID,
		&product.Name,
		&description,
		&product.Price,
		&image,
		&category,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	product.Description = description.String
	product.Image = image.String
	if category.Valid {
		product.Category = &category.String
	}

	return &product, nil
}

// FindViewByID retrieves a single product joined with its seller
func (r *productRepository) FindViewByID(ctx context.Context, id uuid.UUID) (*catalog.JoinedProductRow, error) {
	query := "SELECT " + joinedProductColumns + joinedProductFrom + " WHERE p.id = $1"

	row, err := scanJoinedProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product view by ID: %w", err)
	}

	return row, nil
}

// Count returns the number of products matching pred
func (r *productRepository) Count(ctx context.Context, pred catalog.Predicate) (int, error) {
	whereClause, args := buildWhereClause(pred)

	query := "SELECT COUNT(*)" + joinedProductFrom + whereClause

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return total, nil
}

// Find returns the products matching pred ordered by name then id.
// A limit of zero or less returns every matching row from offset on.
func (r *productRepository) Find(ctx context.Context, pred catalog.Predicate, limit, offset int) ([]catalog.JoinedProductRow, error) {
	whereClause, args := buildWhereClause(pred)
	argIndex := len(args) + 1

	query := "SELECT " + joinedProductColumns + joinedProductFrom + whereClause + " ORDER BY p.name ASC, p.id ASC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, limit)
		argIndex++
	}
	if offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []catalog.JoinedProductRow{}
	for rows.Next() {
		row, err := scanJoinedProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// buildWhereClause renders a predicate as a parameterized WHERE clause.
// An empty predicate yields an empty clause and no arguments.
func buildWhereClause(pred catalog.Predicate) (string, []interface{}) {
	clauses := []string{}
	args := []interface{}{}
	argIndex := 1

	if pred.SellerCategoryEquals != nil {
		clauses = append(clauses, fmt.Sprintf("sp.category = $%d", argIndex))
		args = append(args, *pred.SellerCategoryEquals)
		argIndex++
	}

	if pred.SellerIDEquals != nil {
		clauses = append(clauses, fmt.Sprintf("p.seller_id = $%d", argIndex))
		args = append(args, *pred.SellerIDEquals)
		argIndex++
	}

	if pred.Price != nil {
		if pred.Price.Min != nil {
			op := ">"
			if pred.Price.MinInclusive {
				op = ">="
			}
			clauses = append(clauses, fmt.Sprintf("p.price %s $%d", op, argIndex))
			args = append(args, *pred.Price.Min)
			argIndex++
		}
		if pred.Price.Max != nil {
			op := "<"
			if pred.Price.MaxInclusive {
				op = "<="
			}
			clauses = append(clauses, fmt.Sprintf("p.price %s $%d", op, argIndex))
			args = append(args, *pred.Price.Max)
		}
	}

	if len(clauses) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJoinedProduct(s rowScanner) (*catalog.JoinedProductRow, error) {
	var (
		row             catalog.JoinedProductRow
		description     sql.NullString
		image           sql.NullString
		category        sql.NullString
		firstName       sql.NullString
		lastName        sql.NullString
		profileUserID   uuid.NullUUID
		profileCategory sql.NullString
	)

	err := s.Scan(
		&row.ID,
		&row.SellerID,
		&row.Name,
		&description,
		&row.Price,
		&image,
		&category,
		&firstName,
		&lastName,
		&profileUserID,
		&profileCategory,
	)
	if err != nil {
		return nil, err
	}

	row.Description = nullStringPtr(description)
	row.Image = nullStringPtr(image)
	row.Category = nullStringPtr(category)
	row.Seller.FirstName = nullStringPtr(firstName)
	row.Seller.LastName = nullStringPtr(lastName)
	if profileUserID.Valid {
		row.Seller.Profile = &catalog.ProfileRow{Category: profileCategory.String}
	}

	return &row, nil
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func expectOneRow(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}
