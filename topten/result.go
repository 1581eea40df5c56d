package topten

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"hotposts/3rdparty/reddit"
)

// Sentinel is printed whenever there is nothing valid to show.
// Callers reading the output cannot tell an unknown subreddit from
// a network failure, and that is intentional.
const Sentinel = "None"

type Reason string

const (
	ReasonNone             Reason = ""
	ReasonInvalidInput     Reason = "invalid input"
	ReasonInvalidSubreddit Reason = "invalid subreddit"
	ReasonForbidden        Reason = "forbidden"
	ReasonUnavailable      Reason = "unavailable"
	ReasonEmpty            Reason = "empty listing"
)

type Result struct {
	Subreddit string
	Titles    []string
	Reason    Reason
}

func (r Result) OK() bool {
	return r.Reason == ReasonNone
}

// Print writes one title per line, or the sentinel for a failed result.
func (r Result) Print(w io.Writer) error {
	if !r.OK() || len(r.Titles) == 0 {
		_, err := fmt.Fprintln(w, Sentinel)
		return err
	}

	for _, title := range r.Titles {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}

	return nil
}

// TopTen prints the titles of the first 10 hot posts of a subreddit
// to stdout, or the sentinel if the subreddit is empty or invalid.
// It preserves the original one-argument, no-return contract.
func TopTen(subreddit string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fetcher := &Fetcher{Client: reddit.NewClient(nil, nil, "dev")}
	_ = fetcher.Fetch(ctx, subreddit).Print(os.Stdout)
}
