package http

import (
	"context"

	"golang.org/x/sync/singleflight"
)

var buildGroup singleflight.Group

// singleflightBuild collapses concurrent builds of the same report payload
// into one execution while still honouring the caller's context.
func singleflightBuild(ctx context.Context, key string, fn func(context.Context) ([]byte, error)) ([]byte, error) {
	resultChan := buildGroup.DoChan(key, func() (interface{}, error) {
		return fn(ctx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}
