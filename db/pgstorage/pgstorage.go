package pgstorage

import (
	"context"
	"fmt"

	"github.com/InvArch/invarch-bridge-service/gerror"
	"github.com/InvArch/invarch-bridge-service/log"
	"github.com/InvArch/invarch-bridge-service/models"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
)

const (
	upsertPriceSQL = `INSERT INTO portal.token_price (symbol, price, price_time, updated_at) VALUES ($1, $2, $3, NOW())
		ON CONFLICT (symbol) DO UPDATE SET price = EXCLUDED.price, price_time = EXCLUDED.price_time, updated_at = NOW()
		WHERE portal.token_price.price_time <= EXCLUDED.price_time`
	getPricesSQL         = "SELECT symbol, price, price_time FROM portal.token_price ORDER BY symbol"
	upsertPreferencesSQL = `INSERT INTO portal.preference (id, selected_account, selected_dao_id, updated_at) VALUES (1, $1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET selected_account = EXCLUDED.selected_account, selected_dao_id = EXCLUDED.selected_dao_id, updated_at = NOW()`
	getPreferencesSQL = "SELECT selected_account, selected_dao_id FROM portal.preference WHERE id = 1"
)

// PostgresStorage keeps the state store in postgres
type PostgresStorage struct {
	*pgxpool.Pool
}

// getExecQuerier determines which execQuerier to use, dbTx or the main pgxpool
func (p *PostgresStorage) getExecQuerier(dbTx pgx.Tx) execQuerier {
	if dbTx != nil {
		return &execQuerierWrapper{dbTx}
	}
	return &execQuerierWrapper{p.Pool}
}

// NewPostgresStorage creates a new Storage DB
func NewPostgresStorage(cfg Config) (*PostgresStorage, error) {
	log.Debugf("Create PostgresStorage with host %s:%s db %s", cfg.Host, cfg.Port, cfg.Name)
	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = 4 //nolint:gomnd
	}
	config, err := pgxpool.ParseConfig(fmt.Sprintf("postgres://%s:%s@%s:%s/%s?pool_max_conns=%d", cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name, maxConns))
	if err != nil {
		log.Errorf("Unable to parse DB config: %v\n", err)
		return nil, err
	}
	db, err := pgxpool.ConnectConfig(context.Background(), config)
	if err != nil {
		log.Errorf("Unable to connect to database: %v\n", err)
		return nil, err
	}
	return &PostgresStorage{db}, nil
}

// SetPrices upserts the prices in one transaction. Older prices never
// overwrite newer ones.
func (p *PostgresStorage) SetPrices(ctx context.Context, prices []*models.TokenPrice) error {
	dbTx, err := p.Begin(ctx)
	if err != nil {
		return err
	}
	e := p.getExecQuerier(dbTx)
	for _, price := range prices {
		if price == nil || price.Symbol == "" {
			continue
		}
		if _, err := e.Exec(ctx, upsertPriceSQL, price.Symbol, price.Price, price.Time); err != nil {
			if rollbackErr := dbTx.Rollback(ctx); rollbackErr != nil {
				log.Errorf("rollback error: %v", rollbackErr)
			}
			return errors.Wrapf(err, "upsert price %s", price.Symbol)
		}
	}
	return dbTx.Commit(ctx)
}

// GetPrices returns every stored price sorted by symbol.
func (p *PostgresStorage) GetPrices(ctx context.Context) ([]*models.TokenPrice, error) {
	rows, err := p.getExecQuerier(nil).Query(ctx, getPricesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prices []*models.TokenPrice
	for rows.Next() {
		price := &models.TokenPrice{}
		if err := rows.Scan(&price.Symbol, &price.Price, &price.Time); err != nil {
			return nil, err
		}
		prices = append(prices, price)
	}
	return prices, rows.Err()
}

// SetPreferences stores the selected account and DAO.
func (p *PostgresStorage) SetPreferences(ctx context.Context, prefs *models.Preferences) error {
	if prefs == nil {
		return errors.Wrap(gerror.ErrMissingParams, "preferences")
	}
	var daoID *int64
	if prefs.SelectedDaoID != nil {
		v := int64(*prefs.SelectedDaoID)
		daoID = &v
	}
	_, err := p.getExecQuerier(nil).Exec(ctx, upsertPreferencesSQL, prefs.SelectedAccount, daoID)
	return err
}

// GetPreferences returns gerror.ErrStorageNotFound when nothing was stored.
func (p *PostgresStorage) GetPreferences(ctx context.Context) (*models.Preferences, error) {
	var (
		prefs models.Preferences
		daoID *int64
	)
	err := p.getExecQuerier(nil).QueryRow(ctx, getPreferencesSQL).Scan(&prefs.SelectedAccount, &daoID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, gerror.ErrStorageNotFound
	} else if err != nil {
		return nil, err
	}
	if daoID != nil {
		v := uint32(*daoID)
		prefs.SelectedDaoID = &v
	}
	return &prefs, nil
}

// Close releases the pool.
func (p *PostgresStorage) Close() error {
	p.Pool.Close()
	return nil
}
