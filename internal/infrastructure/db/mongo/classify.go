package mongo

import (
	"context"
	"errors"
	"net"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"

	"github.com/bookvault/bookstore-api/internal/core/domain"
)

// Mongo server error codes that indicate the document itself was rejected.
const (
	codeBadValue                  = 2
	codeTypeMismatch              = 14
	codeDocumentValidationFailure = 121
)

// Classify maps a failed write to exactly one PersistenceError kind. The
// driver's native errors carry enough information (duplicate key, failed
// document validation, network state) to make the translation
// deterministic. Domain sentinels produced inside a unit-of-work keep their
// meaning: ErrBookReferenced classifies as a referential violation, while
// not-found sentinels and ErrLastAdmin pass through untouched so callers
// keep their specific mapping.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrBookNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrLastAdmin):
		return err
	case errors.Is(err, domain.ErrBookReferenced):
		return &domain.PersistenceError{Kind: domain.KindReferenced, Err: err}
	case mongo.IsDuplicateKeyError(err):
		return &domain.PersistenceError{Kind: domain.KindDuplicate, Err: err}
	case hasServerErrorCode(err, codeBadValue, codeTypeMismatch, codeDocumentValidationFailure):
		return &domain.PersistenceError{Kind: domain.KindMalformedData, Err: err}
	case isUnavailable(err):
		return &domain.PersistenceError{Kind: domain.KindUnavailable, Err: err}
	default:
		return &domain.PersistenceError{Kind: domain.KindUnknown, Err: err}
	}
}

func hasServerErrorCode(err error, codes ...int32) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			for _, c := range codes {
				if int32(e.Code) == c {
					return true
				}
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		for _, c := range codes {
			if ce.Code == c {
				return true
			}
		}
	}
	return false
}

func isUnavailable(err error) bool {
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var sse topology.ServerSelectionError
	if errors.As(err, &sse) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}
