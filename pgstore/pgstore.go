// Package pgstore reads the ledger from PostgreSQL. It is strictly a read
// side: accounts and entries are written by the ingestion pipeline, and the
// running values stored there are trusted as-is.
package pgstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/openfin/networth"
	"github.com/openfin/networth/date"
)

// Store implements networth.LedgerReader over a sql.DB opened with the
// postgres driver.
type Store struct {
	db *sql.DB
}

// Open connects to the database named by a postgres connection string.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStore wraps an existing connection pool.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Close releases the underlying pool.
func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the connection, for startup checks.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

const accountColumns = "id, owner_id, kind, name, category, currency"

func scanAccount(row interface{ Scan(...any) error }) (networth.Account, error) {
	var a networth.Account
	var kind string
	if err := row.Scan(&a.ID, &a.OwnerID, &kind, &a.Name, &a.Category, &a.Currency); err != nil {
		return networth.Account{}, err
	}
	k, err := networth.ParseKind(kind)
	if err != nil {
		return networth.Account{}, fmt.Errorf("account %s: %w", a.ID, err)
	}
	a.Kind = k
	return a, nil
}

const entryColumns = "id, account_id, posted_on, value, change, coalesce(ticker,''), coalesce(sub_type,''), coalesce(bond_terms,''), coalesce(comment,'')"

func scanEntries(rows *sql.Rows) ([]networth.Entry, error) {
	defer rows.Close()
	var entries []networth.Entry
	for rows.Next() {
		var e networth.Entry
		var on time.Time
		if err := rows.Scan(&e.ID, &e.AccountID, &on, &e.Value, &e.Change, &e.Ticker, &e.SubType, &e.BondTerms, &e.Comment); err != nil {
			return nil, err
		}
		e.Date = date.FromTime(on)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// window loads the three entry sets of one account: in-range, plus one
// boundary row per timeline on each side. Stock accounts keep one boundary
// per ticker, DISTINCT ON does the per-timeline cut in the database.
func (s *Store) window(ctx context.Context, a networth.Account, r date.Range) (*networth.Window, error) {
	in, err := s.queryEntries(ctx, `
		SELECT `+entryColumns+` FROM entries
		WHERE account_id = $1 AND posted_on BETWEEN $2 AND $3
		ORDER BY posted_on, id`,
		a.ID, r.From.String(), r.To.String())
	if err != nil {
		return nil, fmt.Errorf("account %s entries: %w", a.ID, err)
	}

	olderQuery := `
		SELECT ` + entryColumns + ` FROM entries
		WHERE account_id = $1 AND posted_on < $2
		ORDER BY posted_on DESC, id DESC LIMIT 1`
	youngerQuery := `
		SELECT ` + entryColumns + ` FROM entries
		WHERE account_id = $1 AND posted_on > $2
		ORDER BY posted_on, id LIMIT 1`
	if a.Kind == networth.StockAccount {
		olderQuery = `
			SELECT DISTINCT ON (ticker) ` + entryColumns + ` FROM entries
			WHERE account_id = $1 AND posted_on < $2
			ORDER BY ticker, posted_on DESC, id DESC`
		youngerQuery = `
			SELECT DISTINCT ON (ticker) ` + entryColumns + ` FROM entries
			WHERE account_id = $1 AND posted_on > $2
			ORDER BY ticker, posted_on, id`
	}
	older, err := s.queryEntries(ctx, olderQuery, a.ID, r.From.String())
	if err != nil {
		return nil, fmt.Errorf("account %s older boundary: %w", a.ID, err)
	}
	younger, err := s.queryEntries(ctx, youngerQuery, a.ID, r.To.String())
	if err != nil {
		return nil, fmt.Errorf("account %s younger boundary: %w", a.ID, err)
	}
	return networth.NewWindow(a, r, in, older, younger), nil
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]networth.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// Accounts implements networth.LedgerReader.
func (s *Store) Accounts(ctx context.Context, ownerID string, kind networth.Kind, r date.Range) ([]*networth.Window, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE owner_id = $1 AND kind = $2
		ORDER BY name`,
		ownerID, kind.String())
	if err != nil {
		return nil, fmt.Errorf("listing %s accounts: %w", kind, err)
	}
	var accounts []networth.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	var windows []*networth.Window
	for _, a := range accounts {
		w, err := s.window(ctx, a, r)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, nil
}

// Account implements networth.LedgerReader.
func (s *Store) Account(ctx context.Context, ownerID, accountID string, r date.Range) (*networth.Window, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE owner_id = $1 AND id = $2`,
		ownerID, accountID)
	a, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no account %q for owner %q", accountID, ownerID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading account %s: %w", accountID, err)
	}
	return s.window(ctx, a, r)
}

var _ networth.LedgerReader = (*Store)(nil)
