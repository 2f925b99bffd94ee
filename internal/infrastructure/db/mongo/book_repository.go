package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bookvault/bookstore-api/internal/core/domain"
)

const (
	booksCollection   = "books"
	reviewsCollection = "reviews"
)

type BookRepository struct {
	coll    *mongo.Collection
	reviews *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{
		coll:    db.Collection(booksCollection),
		reviews: db.Collection(reviewsCollection),
	}
}

type mongoBook struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Author        string             `bson:"author"`
	ISBN          string             `bson:"isbn"`
	PublishedDate time.Time          `bson:"published_date"`
	Description   string             `bson:"description,omitempty"`
	CreatedBy     string             `bson:"created_by,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (mb *mongoBook) toDomain() *domain.Book {
	return &domain.Book{
		ID:            mb.ID.Hex(),
		Title:         mb.Title,
		Author:        mb.Author,
		ISBN:          mb.ISBN,
		PublishedDate: mb.PublishedDate.UTC(),
		Description:   mb.Description,
		CreatedBy:     mb.CreatedBy,
		CreatedAt:     mb.CreatedAt.UTC(),
		UpdatedAt:     mb.UpdatedAt.UTC(),
	}
}

func fromDomainBook(b *domain.Book) mongoBook {
	return mongoBook{
		Title:         b.Title,
		Author:        b.Author,
		ISBN:          b.ISBN,
		PublishedDate: b.PublishedDate,
		Description:   b.Description,
		CreatedBy:     b.CreatedBy,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func (r *BookRepository) Insert(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	res, err := r.coll.InsertOne(ctx, fromDomainBook(book))
	if err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}

	created := *book
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *BookRepository) FindByID(ctx context.Context, id string) (*domain.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookNotFound
	}

	var mb mongoBook
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book by id: %w", err)
	}
	return mb.toDomain(), nil
}

func (r *BookRepository) FindByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	var mb mongoBook
	if err := r.coll.FindOne(ctx, bson.M{"isbn": isbn}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book by isbn: %w", err)
	}
	return mb.toDomain(), nil
}

func (r *BookRepository) List(ctx context.Context, page, limit int) ([]domain.Book, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	defer cur.Close(ctx)

	var books []domain.Book
	for cur.Next(ctx) {
		var mb mongoBook
		if err := cur.Decode(&mb); err != nil {
			return nil, 0, fmt.Errorf("decode book: %w", err)
		}
		books = append(books, *mb.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("list books cursor: %w", err)
	}
	return books, total, nil
}

func (r *BookRepository) Update(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	oid, err := primitive.ObjectIDFromHex(book.ID)
	if err != nil {
		return nil, domain.ErrBookNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":          book.Title,
		"author":         book.Author,
		"isbn":           book.ISBN,
		"published_date": book.PublishedDate,
		"description":    book.Description,
		"updated_at":     book.UpdatedAt,
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrBookNotFound
	}
	return book, nil
}

// Delete removes a book after verifying no reviews still reference it.
// Mongo has no foreign keys, so the reference check runs inside the same
// unit-of-work as the delete; the guard classifies ErrBookReferenced as a
// referential violation.
func (r *BookRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBookNotFound
	}

	refs, err := r.reviews.CountDocuments(ctx, bson.M{"book_id": oid})
	if err != nil {
		return fmt.Errorf("count book references: %w", err)
	}
	if refs > 0 {
		return domain.ErrBookReferenced
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

// EnsureIndexes creates the unique ISBN index, the arbiter of concurrent
// duplicate inserts.
func (r *BookRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "isbn", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "created_by", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
