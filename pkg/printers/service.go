package printers

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"github.com/mallobois/woodstock/pkg/errcodes"
	"github.com/mallobois/woodstock/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type CreatePrinterOptions struct {
	ID   string
	Name string
	IP   string
	Port int
}

type UpdatePrinterOptions struct {
	Columns []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) ListPrinters(ctx context.Context) ([]*models.Printer, error) {
	printers := []*models.Printer{}
	err := svc.db.
		NewSelect().
		Model(&printers).
		Order("p.created_at ASC", "p.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return printers, nil
}

func (svc *Service) RetrievePrinter(ctx context.Context, id string) (*models.Printer, error) {
	printer := &models.Printer{}
	err := svc.db.
		NewSelect().
		Model(printer).
		Where("p.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Printer")
		}
		return nil, errors.WithStack(err)
	}
	return printer, nil
}

// ResolvePrinter returns the printer with the given id. A station pointing
// at a printer that no longer exists prints on the first configured one.
func (svc *Service) ResolvePrinter(ctx context.Context, id string) (*models.Printer, error) {
	printer, err := svc.RetrievePrinter(ctx, id)
	if err == nil {
		return printer, nil
	}
	if !errors.Is(err, errcodes.NotFound("Printer")) {
		return nil, err
	}

	printer = &models.Printer{}
	err = svc.db.
		NewSelect().
		Model(printer).
		Order("p.created_at ASC", "p.id ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Printer")
		}
		return nil, errors.WithStack(err)
	}
	return printer, nil
}

func (svc *Service) CreatePrinter(ctx context.Context, opts CreatePrinterOptions) (*models.Printer, error) {
	printer := &models.Printer{
		ID:   opts.ID,
		Name: opts.Name,
		IP:   opts.IP,
		Port: opts.Port,
	}

	err := svc.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		count, err := tx.
			NewSelect().
			Model((*models.Printer)(nil)).
			Count(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if count >= models.MaxPrinters {
			return errcodes.Conflict(fmt.Sprintf("Maximum %d imprimantes", models.MaxPrinters))
		}

		if printer.ID == "" {
			printer.ID = fmt.Sprintf("zebra%d", count+1)
		}
		exists, err := tx.
			NewSelect().
			Model((*models.Printer)(nil)).
			Where("id = ?", printer.ID).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if exists {
			return errcodes.Conflict("ID déjà utilisé")
		}

		now := time.Now()
		printer.CreatedAt = now
		printer.UpdatedAt = now
		if printer.Name == "" {
			printer.Name = printer.ID
		}

		_, err = tx.
			NewInsert().
			Model(printer).
			Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, err
	}
	return printer, nil
}

func (svc *Service) UpdatePrinter(ctx context.Context, printer *models.Printer, opts UpdatePrinterOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	printer.UpdatedAt = time.Now()
	columns := append(slices.Clone(opts.Columns), "updated_at")

	_, err := svc.db.
		NewUpdate().
		Model(printer).
		Column(columns...).
		WherePK().
		Exec(ctx)
	return errors.WithStack(err)
}

// DeletePrinter removes a printer unless it is the only one left. Stations
// that pointed at it fall back to the first printer.
func (svc *Service) DeletePrinter(ctx context.Context, id string) error {
	return svc.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		count, err := tx.
			NewSelect().
			Model((*models.Printer)(nil)).
			Count(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if count <= 1 {
			return errcodes.Conflict("Au moins une imprimante requise")
		}

		res, err := tx.
			NewDelete().
			Model((*models.Printer)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return errors.WithStack(err)
		}
		if n == 0 {
			return errcodes.NotFound("Printer")
		}
		return nil
	})
}
