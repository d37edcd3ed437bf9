package utils

import (
	"os"
	"strconv"
	"time"

	"github.com/momoa-tech/hardware_backend/config"
)

func cacheLifespan() time.Duration {
	lifespan, err := strconv.Atoi(os.Getenv("CACHE_LIFESPAN_HOURS"))
	if err != nil {
		lifespan = 1
	}
	return time.Duration(lifespan) * time.Hour
}

/* Redis caching for read-mostly models (products). Cache misses and redis
outages both fall through to the database. */

// store instance, obj should be a pointer
func StoreRedis[T any](obj any, id string) error {
	key := GetTypeName[T]() + ":" + id
	return config.SetRedisObject(key, obj, cacheLifespan())
}

// retrieve instance, returns (nil, nil) on cache miss
func RetrieveRedis[T any](id string) (*T, error) {
	key := GetTypeName[T]() + ":" + id
	var obj T
	found, err := config.GetRedisObject(key, &obj)
	if err != nil || !found {
		return nil, err
	}
	return &obj, nil
}

// invalidate instance
func RemoveRedis[T any](id string) error {
	key := GetTypeName[T]() + ":" + id
	return config.RemoveRedisKey(key)
}
