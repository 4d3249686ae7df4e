package syncnotes

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/syncnotes/pkg/accounts"
	"github.com/agentstation/syncnotes/pkg/constants"
	"github.com/agentstation/syncnotes/pkg/differ"
	"github.com/agentstation/syncnotes/pkg/errors"
	"github.com/agentstation/syncnotes/pkg/logging"
	"github.com/agentstation/syncnotes/pkg/reconciler"
	"github.com/agentstation/syncnotes/pkg/snapshot"
	"github.com/agentstation/syncnotes/pkg/sync"
)

// Sync loads every account, reconciles them and applies the instructions.
func (c *client) Sync(ctx context.Context, opts ...sync.Option) (*sync.Result, error) {
	// Step 0: Set context
	if ctx == nil {
		ctx = context.Background()
	}

	// Step 1: Parse and validate options
	options := sync.Defaults().Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Tag the run
	runID := uuid.NewString()
	ctx = logging.WithOperation(logging.WithRunID(ctx, runID), "sync")
	logger := logging.FromContext(ctx)

	// Step 3: Load and reconcile
	loaded, result, err := c.plan(ctx, options)
	if err != nil {
		return nil, err
	}

	syncResult := &sync.Result{
		RunID:          runID,
		Reconciliation: result,
		Simulation:     options.Simulation,
		Applied:        []string{},
	}

	// Step 4: Nothing to do
	if !result.HasChanges() {
		logger.Info().Msg("No changes detected")
		return syncResult, nil
	}

	// Step 5: Simulation reports and stops
	if options.Simulation {
		for _, id := range result.Accounts {
			if err := c.reporter.Write(ctx, loaded[id], result.Changeset(id)); err != nil {
				return nil, errors.WrapResource("report", "account", id, err)
			}
		}
		logger.Info().Bool("simulation", true).Msg("Simulation completed - no changes applied")
		return syncResult, nil
	}

	// Step 6: Confirm. The prompt may wait on a person, so it runs outside
	// any deadline.
	if !options.AutoApprove {
		approved := false
		if options.Confirm != nil {
			if approved, err = options.Confirm(ctx, result); err != nil {
				return nil, err
			}
		}
		if !approved {
			syncResult.Declined = true
			logger.Info().Msg("Changes declined - nothing written")
			return syncResult, nil
		}
	}

	// Step 7: Write each changed account
	writer := c.writer
	if writer == nil {
		writer = accounts.NewFileWriter(accounts.WithBackup(options.Backup))
	}
	for _, id := range result.Accounts {
		changeset := result.Changeset(id)
		if !changeset.HasChanges() {
			continue
		}
		if err := writeAccount(ctx, writer, loaded[id], changeset, options); err != nil {
			logger.Error().
				Err(err).
				Strs("applied", syncResult.Applied).
				Msg("Write failed")
			return nil, errors.WrapResource("write", "account", id, err)
		}
		syncResult.Applied = append(syncResult.Applied, id)
	}

	logger.Info().
		Int("accounts_written", len(syncResult.Applied)).
		Int("changes_applied", syncResult.TotalChanges()).
		Msg("Sync completed successfully")

	return syncResult, nil
}

// Plan loads and reconciles the accounts without writing.
func (c *client) Plan(ctx context.Context, opts ...sync.Option) (*reconciler.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	options := sync.Defaults().Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}

	ctx = logging.WithOperation(logging.WithRunID(ctx, uuid.NewString()), "plan")

	_, result, err := c.plan(ctx, options)
	return result, err
}

// plan loads every account in parallel, waits for all of them and
// reconciles the snapshots under the run timeout.
func (c *client) plan(ctx context.Context, options *sync.Options) (map[string]*accounts.Account, *reconciler.Result, error) {
	ctx, cancel := withTimeout(ctx, options)
	defer cancel()

	loaded, err := c.load(ctx, options)
	if err != nil {
		return nil, nil, timeoutOr(err, options, "loading accounts took too long")
	}

	byID := make(map[string]*accounts.Account, len(loaded))
	snapshots := make([]*snapshot.Snapshot, 0, len(loaded))
	for i, acct := range loaded {
		if _, dup := byID[acct.ID]; dup {
			return nil, nil, &errors.ValidationError{
				Field:   "Accounts",
				Value:   options.Accounts[i],
				Message: fmt.Sprintf("resolves to account '%s' given more than once", acct.ID),
			}
		}
		byID[acct.ID] = acct
		snapshots = append(snapshots, acct.Snapshot)
	}

	result, err := c.reconciler.Reconcile(ctx, snapshots)
	if err != nil {
		return nil, nil, timeoutOr(err, options, "reconciling accounts took too long")
	}

	c.hooks.trigger(result)

	return byID, result, nil
}

// load reads the accounts concurrently. The first failure cancels the
// remaining loads.
func (c *client) load(ctx context.Context, options *sync.Options) ([]*accounts.Account, error) {
	limit := options.Concurrency
	if limit <= 0 {
		limit = constants.DefaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	loaded := make([]*accounts.Account, len(options.Accounts))
	for i, path := range options.Accounts {
		g.Go(func() error {
			acct, err := c.loader.Load(gctx, path)
			if err != nil {
				return err
			}
			loaded[i] = acct
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug().Int("accounts", len(loaded)).Msg("All accounts loaded")
	return loaded, nil
}

// writeAccount applies one changeset under its own timeout.
func writeAccount(ctx context.Context, writer accounts.Writer, acct *accounts.Account, changeset *differ.Changeset, options *sync.Options) error {
	ctx, cancel := withTimeout(ctx, options)
	defer cancel()

	if err := writer.Write(ctx, acct, changeset); err != nil {
		return timeoutOr(err, options, "writing the account took too long")
	}
	return nil
}

func withTimeout(ctx context.Context, options *sync.Options) (context.Context, context.CancelFunc) {
	if options.Timeout > 0 {
		return context.WithTimeout(ctx, options.Timeout)
	}
	return ctx, func() {} // No-op cancel if no timeout
}

// timeoutOr converts a deadline expiry into a TimeoutError.
func timeoutOr(err error, options *sync.Options, message string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.NewTimeoutError("sync", options.Timeout.String(), message)
	}
	return err
}
