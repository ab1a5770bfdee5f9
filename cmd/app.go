package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/marcus/tailor/internal/client"
	"github.com/marcus/tailor/internal/config"
	"github.com/marcus/tailor/internal/history"
	"github.com/marcus/tailor/internal/models"
	"github.com/marcus/tailor/internal/output"
	"github.com/marcus/tailor/internal/pager"
	"github.com/marcus/tailor/internal/statusflow"
)

// requestTimeout bounds one-shot CLI commands
const requestTimeout = 30 * time.Second

// loadSettings resolves settings from <home>/config.json and the environment
func loadSettings() (config.Settings, error) {
	s, err := config.LoadSettings(getHomeDir())
	if err != nil {
		return s, fmt.Errorf("load config: %w", err)
	}
	return s, nil
}

// newClient builds an API client from resolved settings
func newClient(s config.Settings) *client.Client {
	return client.New(s.APIURL, s.APIToken)
}

// openHistory opens the local mutation log
func openHistory() (*history.Store, error) {
	return history.Open(getHomeDir())
}

// newFlow returns a status flow that records to local history when it can
// be opened. The returned func closes the history store.
func newFlow(api statusflow.API) (*statusflow.Flow, func()) {
	store, err := openHistory()
	if err != nil {
		output.Warning("history unavailable: %v", err)
		return statusflow.New(api, nil), func() {}
	}
	return statusflow.New(api, store), func() { store.Close() }
}

// commandContext returns a context bounded by requestTimeout
func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// findItem pages through the report until a row matches ref, either the
// item id or its order-item key.
func findItem(ctx context.Context, l *pager.Loader, ref string) (models.PendingItem, error) {
	if err := l.Reload(ctx); err != nil {
		return models.PendingItem{}, err
	}
	for {
		for _, r := range l.Rows() {
			if r.ID == ref || r.Key() == ref {
				return r, nil
			}
		}
		err := l.LoadMore(ctx)
		if errors.Is(err, pager.ErrNoMorePages) {
			return models.PendingItem{}, fmt.Errorf("item %s: %w", ref, client.ErrNotFound)
		}
		if err != nil {
			return models.PendingItem{}, err
		}
	}
}

// reportError prints err the way the API phrased it and hands it back to cobra
func reportError(err error, fallback string) error {
	if statusflow.IsLocalRejection(err) {
		output.Error("%v", err)
		return err
	}
	output.Error("%s", client.UserMessage(err, fallback))
	return err
}
