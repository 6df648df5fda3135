package driver

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/playbill/internal/logger"
)

type MemgraphDriver struct {
	Driver neo4j.DriverWithContext
	log    *logger.Logger
}

type Options struct {
	MaxPoolSize    int
	ConnectTimeout time.Duration
}

func NewMemgraphDriver(uri, username, password string, opts Options, log *logger.Logger) (*MemgraphDriver, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""), func(cfg *neo4j.Config) {
		if opts.MaxPoolSize > 0 {
			cfg.MaxConnectionPoolSize = opts.MaxPoolSize
		}
		if opts.ConnectTimeout > 0 {
			cfg.SocketConnectTimeout = opts.ConnectTimeout
		}
	})
	if err != nil {
		return nil, &StoreError{Err: err}
	}

	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		_ = driver.Close(context.Background())
		return nil, &StoreError{Err: err}
	}

	log.Info("connected to graph store", "uri", uri)
	return &MemgraphDriver{Driver: driver, log: log.With("component", "driver")}, nil
}

func (d *MemgraphDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *MemgraphDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, &StoreError{Query: query, Err: err}
	}
	return *result, nil
}

func (d *MemgraphDriver) ExecuteWrite(ctx context.Context, statements []Statement) error {
	session := d.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	var current string
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, stmt := range statements {
			current = stmt.Query
			res, err := tx.Run(ctx, stmt.Query, stmt.Params)
			if err != nil {
				return nil, err
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return &StoreError{Query: current, Err: err}
	}
	return nil
}

func (d *MemgraphDriver) BuildIndices(ctx context.Context) error {
	// Uniqueness constraints here are authoritative over the pre-write checks.
	for _, q := range IndexQueries() {
		_, err := d.ExecuteQuery(ctx, q, nil)
		if err != nil {
			// Continue, as index might already exist
			d.log.Warn("failed to create index", "query", q, "error", err)
		}
	}

	return nil
}
