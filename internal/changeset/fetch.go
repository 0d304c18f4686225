package changeset

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/go-github/v68/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	DefaultAttempts = 3
	defaultDelay    = 500 * time.Millisecond
	filesPerPage    = 100
)

// Fetcher lists the files a pull request touches.
type Fetcher struct {
	client   *github.Client
	attempts uint
	delay    time.Duration
	logger   *zap.Logger
}

type Option func(*Fetcher)

func WithAttempts(n int) Option {
	return func(f *Fetcher) {
		// retry-go treats zero attempts as unlimited.
		if n < 1 {
			n = 1
		}
		f.attempts = uint(n)
	}
}

func WithDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.delay = d
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewClient builds a GitHub client, authenticated when token is set.
func NewClient(ctx context.Context, token string) *github.Client {
	if token == "" {
		return github.NewClient(nil)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return github.NewClient(oauth2.NewClient(ctx, ts))
}

func NewFetcher(client *github.Client, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   client,
		attempts: DefaultAttempts,
		delay:    defaultDelay,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ChangedFiles returns the names of every file in the pull request, in the
// order the API reports them.
func (f *Fetcher) ChangedFiles(ctx context.Context, repository string, number int) ([]string, error) {
	owner, repo, err := SplitRepo(repository)
	if err != nil {
		return nil, err
	}
	if number <= 0 {
		return nil, fmt.Errorf("invalid pull request number %d", number)
	}

	var names []string
	opts := &github.ListOptions{PerPage: filesPerPage}
	for {
		files, resp, err := f.listPage(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("list files of %s#%d: %w", repository, number, err)
		}
		for _, file := range files {
			names = append(names, file.GetFilename())
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	f.logger.Info("pull request files fetched", zap.String("repo", repository), zap.Int("pr", number), zap.Int("files", len(names)))
	return names, nil
}

type page struct {
	files []*github.CommitFile
	resp  *github.Response
}

func (f *Fetcher) listPage(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error) {
	p, err := retry.DoWithData(func() (page, error) {
		files, resp, err := f.client.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			return page{}, err
		}
		return page{files: files, resp: resp}, nil
	},
		retry.Context(ctx),
		retry.Attempts(f.attempts),
		retry.Delay(f.delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			f.logger.Warn("list files retry", zap.Uint("attempt", n+1), zap.Int("page", opts.Page), zap.Error(err))
		}),
	)
	if err != nil {
		return nil, nil, err
	}
	return p.files, p.resp, nil
}

// retryable reports whether a failed request may succeed on a second try.
// Client errors other than rate limiting are final.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		code := ghErr.Response.StatusCode
		return code >= http.StatusInternalServerError || code == http.StatusTooManyRequests
	}
	return true
}
