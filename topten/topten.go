// Package topten prints the titles of the hottest posts of a subreddit.
//
// The fetch itself produces a typed Result; the "None" sentinel the
// original tooling expects is rendered only by Result.Print.
package topten

import (
	"context"
	"regexp"
	"time"

	"hotposts/3rdparty/reddit"
	"hotposts/util"

	"github.com/jfk9w-go/flu"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const DefaultLimit = 10

var subredditRegexp = regexp.MustCompile(`^[0-9A-Za-z_]+$`)

type Client interface {
	GetListing(ctx context.Context, subreddit, sort string, limit int) ([]reddit.Thing, error)
}

type Storage interface {
	Init(ctx context.Context) error
	SaveThings(ctx context.Context, things []reddit.Thing) error
	DeleteStaleThings(ctx context.Context, until time.Time) (int64, error)
}

type Fetcher struct {
	Clock   flu.Clock
	Client  Client
	Storage Storage
	Limit   int
}

// Fetch returns the hot post titles for a subreddit.
// It never fails: every error collapses into Result.Reason.
func (f *Fetcher) Fetch(ctx context.Context, subreddit string) Result {
	result := Result{Subreddit: subreddit}
	if !subredditRegexp.MatchString(subreddit) {
		result.Reason = ReasonInvalidInput
		return result
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	log := logrus.WithField("subreddit", subreddit)
	things, err := f.Client.GetListing(ctx, subreddit, "hot", limit)
	if err != nil {
		log.Warnf("get hot listing: %s", err)
		result.Reason = failureReason(err)
		return result
	}

	if len(things) > 0 {
		log.Debugf("hottest: %s", util.Ellipsis(things[0].Data.Title, 50))
	}

	f.archive(ctx, log, things)

	// only the first `limit` children count: a title-less entry among
	// them shortens the output, it is never backfilled from below
	if len(things) > limit {
		things = things[:limit]
	}

	titles := make([]string, 0, limit)
	for _, thing := range things {
		// entries without a usable title are skipped, not printed
		// as blank lines
		if thing.Data.Title == "" {
			continue
		}

		titles = append(titles, thing.Data.Title)
	}

	if len(titles) == 0 {
		result.Reason = ReasonEmpty
		return result
	}

	result.Titles = titles
	return result
}

func (f *Fetcher) archive(ctx context.Context, log *logrus.Entry, things []reddit.Thing) {
	if f.Storage == nil || len(things) == 0 {
		return
	}

	if f.Clock != nil {
		now := f.Clock.Now()
		for i := range things {
			things[i].LastSeen = now
		}
	}

	if err := f.Storage.SaveThings(ctx, things); err != nil {
		log.Warnf("save %d things: %s", len(things), err)
	} else {
		log.Debugf("saved %d things", len(things))
	}
}

func failureReason(err error) Reason {
	switch errors.Cause(err) {
	case reddit.ErrInvalidSubreddit:
		return ReasonInvalidSubreddit
	case reddit.ErrForbidden:
		return ReasonForbidden
	default:
		return ReasonUnavailable
	}
}
