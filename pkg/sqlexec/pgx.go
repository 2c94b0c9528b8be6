package sqlexec

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxOpener acquires channels from a pgx connection pool.
type PgxOpener struct {
	pool *pgxpool.Pool
}

// NewPgxOpener wraps an existing pool. The opener does not own the pool;
// closing it stays with the caller.
func NewPgxOpener(pool *pgxpool.Pool) *PgxOpener {
	return &PgxOpener{pool: pool}
}

func (o *PgxOpener) Open(ctx context.Context) (Channel, error) {
	conn, err := o.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &pgxChannel{conn: conn}, nil
}

type pgxChannel struct {
	conn *pgxpool.Conn
}

func (c *pgxChannel) Exec(ctx context.Context, stmt string) error {
	_, err := c.conn.Exec(ctx, stmt)
	return err
}

func (c *pgxChannel) Release(context.Context) error {
	c.conn.Release()
	return nil
}
