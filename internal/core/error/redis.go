package errx

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
)

// WrapRedis maps Redis errors to the unified Error type with appropriate status codes.
// Everything except a key miss carries the ErrStorageUnavailable sentinel.
func WrapRedis(err error) *Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, redis.Nil) {
		return New(err, http.StatusNotFound, StorageNotFoundMessage)
	}

	return New(fmt.Errorf("%w: %w", ErrStorageUnavailable, err), http.StatusBadGateway, StorageErrorMessage)
}
