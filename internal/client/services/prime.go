package services

import (
	"context"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// prime loads everything a ready session shows: all profiles, posts,
// comments and the own profile. The four calls run concurrently and each
// result is applied as soon as it arrives. A failing call does not cancel the
// others; all failures are returned together once every call is done.
func (a *authService) prime(ctx context.Context) error {
	ctx, span := a.tracer.Start(ctx, "auth.prime")
	defer span.End()

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs error
	)
	spawn := func(fn func(context.Context) error) {
		g.Go(func() error {
			if err := fn(ctx); err != nil {
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}

	spawn(func(ctx context.Context) error {
		list, err := a.api.FetchAllProfiles(ctx)
		if err != nil {
			return err
		}
		a.state.SetAllProfiles(list)
		return nil
	})
	spawn(a.feed.FetchAllPosts)
	spawn(a.feed.FetchAllComments)
	spawn(func(ctx context.Context) error {
		p, err := a.api.FetchMyProfile(ctx)
		if err != nil {
			return err
		}
		a.state.SetMyProfile(p)
		return nil
	})

	_ = g.Wait()
	if errs != nil {
		span.RecordError(errs)
	}
	return errs
}
