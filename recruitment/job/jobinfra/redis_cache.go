package jobinfra

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/talencee/careers/internal/metrics"
	"github.com/talencee/careers/pkg/errx"
	"github.com/talencee/careers/pkg/kernel"
	"github.com/talencee/careers/pkg/logx"
	"github.com/talencee/careers/recruitment/job"
)

const jobKeyPrefix = "careers:job:"

// CachedJobRepository is a read-through Redis cache in front of another
// job.Repository. Cache failures fall back to the inner repository and never
// fail a lookup.
type CachedJobRepository struct {
	inner  job.Repository
	client *redis.Client
	ttl    time.Duration
}

var (
	_ job.Repository   = (*CachedJobRepository)(nil)
	_ job.CacheEvicter = (*CachedJobRepository)(nil)
)

// NewCachedJobRepository wraps inner with a cache whose entries live for ttl
func NewCachedJobRepository(inner job.Repository, client *redis.Client, ttl time.Duration) *CachedJobRepository {
	return &CachedJobRepository{
		inner:  inner,
		client: client,
		ttl:    ttl,
	}
}

func jobKey(id kernel.JobID) string {
	return jobKeyPrefix + id.String()
}

// Create stores the job and primes the cache
func (r *CachedJobRepository) Create(ctx context.Context, j *job.Job) error {
	if err := r.inner.Create(ctx, j); err != nil {
		return err
	}
	r.store(ctx, j)
	return nil
}

// GetByID serves from cache when possible
func (r *CachedJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	data, err := r.client.Get(ctx, jobKey(id)).Bytes()
	switch {
	case err == nil:
		var cached job.Job
		if jsonErr := json.Unmarshal(data, &cached); jsonErr == nil {
			metrics.JobCacheLookupsTotal.WithLabelValues("hit").Inc()
			return &cached, nil
		}
		logx.Warnf("Discarding unreadable cache entry for job %s", id)
	case errors.Is(err, redis.Nil):
		metrics.JobCacheLookupsTotal.WithLabelValues("miss").Inc()
	default:
		metrics.JobCacheLookupsTotal.WithLabelValues("error").Inc()
		logx.Warnf("Job cache read failed for %s: %v", id, err)
	}

	j, err := r.inner.GetByID(ctx, id)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			if evictErr := r.Evict(ctx, id); evictErr != nil {
				logx.Warnf("Job cache eviction failed for %s: %v", id, evictErr)
			}
		}
		return nil, err
	}
	r.store(ctx, j)
	return j, nil
}

// Evict drops the cached entry for id
func (r *CachedJobRepository) Evict(ctx context.Context, id kernel.JobID) error {
	return r.client.Del(ctx, jobKey(id)).Err()
}

// List always reads through; listings are not cached
func (r *CachedJobRepository) List(ctx context.Context) ([]job.Job, error) {
	return r.inner.List(ctx)
}

// DeleteAll clears the inner repository and evicts every cached job
func (r *CachedJobRepository) DeleteAll(ctx context.Context) error {
	if err := r.inner.DeleteAll(ctx); err != nil {
		return err
	}

	iter := r.client.Scan(ctx, 0, jobKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logx.Warnf("Job cache scan failed: %v", err)
		return nil
	}
	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			logx.Warnf("Job cache eviction failed: %v", err)
		}
	}
	return nil
}

func (r *CachedJobRepository) store(ctx context.Context, j *job.Job) {
	data, err := json.Marshal(j)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, jobKey(j.ID), data, r.ttl).Err(); err != nil {
		logx.Warnf("Job cache write failed for %s: %v", j.ID, err)
	}
}
