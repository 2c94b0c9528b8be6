package sqlexec

import (
	"context"
	"database/sql"
)

// SQLOpener acquires channels from a database/sql pool, one dedicated
// connection per invocation. It works with any registered driver.
type SQLOpener struct {
	db *sql.DB
}

// NewSQLOpener wraps an existing *sql.DB. The opener does not own the pool.
func NewSQLOpener(db *sql.DB) *SQLOpener {
	return &SQLOpener{db: db}
}

func (o *SQLOpener) Open(ctx context.Context) (Channel, error) {
	conn, err := o.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &sqlConnChannel{conn: conn}, nil
}

type sqlConnChannel struct {
	conn *sql.Conn
}

func (c *sqlConnChannel) Exec(ctx context.Context, stmt string) error {
	_, err := c.conn.ExecContext(ctx, stmt)
	return err
}

func (c *sqlConnChannel) Release(context.Context) error {
	return c.conn.Close()
}
